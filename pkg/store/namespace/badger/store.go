// Package badger implements the namespace metadata store on BadgerDB.
//
// Folder and file records are stored as JSON values under owner-prefixed
// keys, so listings are prefix scans and every mutation is an isolated
// Badger transaction. Two users never touch overlapping key ranges.
package badger

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Config contains configuration for the Badger-backed namespace store.
type Config struct {
	// Path is the directory where BadgerDB keeps its files.
	Path string `mapstructure:"path" yaml:"path"`

	// InMemory runs the database without persistence, mainly for tests.
	InMemory bool `mapstructure:"in_memory" yaml:"in_memory"`
}

// Store is a BadgerDB-backed namespace store. Safe for concurrent use.
type Store struct {
	db *badger.DB
}

// New opens a namespace store at the configured path, creating the directory
// if needed.
func New(config Config) (*Store, error) {
	opts := badger.DefaultOptions(config.Path)
	opts = opts.WithLoggingLevel(badger.WARNING)
	// Metadata records are tiny JSON blobs; compression buys nothing here.
	opts = opts.WithCompression(options.None)

	if config.InMemory {
		opts = opts.WithInMemory(true).WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open namespace database at %s: %w", config.Path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
