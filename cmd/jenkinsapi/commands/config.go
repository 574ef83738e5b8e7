package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
)

// Config represents the CLI configuration.
type Config struct {
	Server            string `json:"server,omitempty"   yaml:"server,omitempty"`
	Username          string `json:"username,omitempty" yaml:"username,omitempty"`
	Token             string `json:"token,omitempty"    yaml:"token,omitempty"`
	Output            string `json:"output"             yaml:"output"`
	SkipSSLValidation bool   `json:"skip_ssl_validation" yaml:"skip_ssl_validation"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the CLI configuration stored in ~/.jenkinsapi/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(redactConfig(config))
			case constants.FormatYAML:
				return outputYAML(redactConfig(config))
			default:
				return displayConfigTable(config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a specific configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			config := loadConfig()

			switch key {
			case "server":
				config.Server = value
			case "username":
				config.Username = value
			case "token":
				config.Token = value
			case "output":
				if value != constants.FormatTable && value != constants.FormatJSON && value != constants.FormatYAML {
					return fmt.Errorf("%s: %w", value, constants.ErrInvalidOutputFormat)
				}

				config.Output = value
			case "skip_ssl_validation":
				config.SkipSSLValidation = value == "true" || value == "1"
			default:
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a specific configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			switch key {
			case "server":
				config.Server = ""
			case "username":
				config.Username = ""
			case "token":
				config.Token = ""
			case "output":
				config.Output = constants.FormatTable
			case "skip_ssl_validation":
				config.SkipSSLValidation = false
			default:
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile, err := configFilePath()
			if err != nil {
				return err
			}

			if err := os.Remove(configFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			fmt.Println("Cleared configuration")

			return nil
		},
	}
}

func loadConfig() *Config {
	return &Config{
		Server:            viper.GetString("server"),
		Username:          viper.GetString("username"),
		Token:             viper.GetString("token"),
		Output:            viper.GetString("output"),
		SkipSSLValidation: viper.GetBool("skip_ssl_validation"),
	}
}

func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".jenkinsapi", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configFile, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// redactConfig copies config with the token masked for display.
func redactConfig(config *Config) *Config {
	redacted := *config
	if redacted.Token != "" {
		redacted.Token = constants.MaskedSecret
	}

	return &redacted
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Server", formatValue(config.Server))
	_ = table.Append("Username", formatValue(config.Username))

	if config.Token != "" {
		_ = table.Append("Token", constants.MaskedSecret)
	} else {
		_ = table.Append("Token", constants.NotAvailable)
	}

	_ = table.Append("Output", formatValue(config.Output))

	if config.SkipSSLValidation {
		_ = table.Append("Skip SSL", "true")
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
