package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teddexter0/simple-file-uploader/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a configuration file",
	Long: `Initialize an uploader configuration file with defaults and a freshly
generated session secret.

By default, the configuration file is created at
$XDG_CONFIG_HOME/uploader/config.yaml. Use --config to specify a custom path.

Examples:
  # Initialize with default location
  uploader init

  # Initialize with custom path
  uploader init --config /etc/uploader/config.yaml

  # Force overwrite existing config
  uploader init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		configPath, err = config.InitConfig(initForce)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file to customize your setup")
	fmt.Println("  2. Start the server with: uploader start")
	fmt.Printf("  3. Or specify custom config: uploader start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  A random session secret has been generated and stored in the file.")
	fmt.Println("  For production, manage it via an environment variable instead:")
	fmt.Println("    export UPLOADER_SESSION_SECRET=$(openssl rand -hex 32)")

	return nil
}
