package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkinsclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		server   string
		username string
		token    string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a server",
		Long:  "Authenticate with a server and store the credentials in the CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = viper.GetString("server")
			}

			if server == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Server URL: ")
				server, _ = reader.ReadString('\n')
				server = strings.TrimSpace(server)
			}

			if server == "" {
				return constants.ErrServerURLRequired
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if token == "" {
				fmt.Print("API token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read API token: %w", err)
				}

				token = string(byteToken)

				fmt.Println()
			}

			// Verify the credentials before saving them
			client, err := jenkinsclient.New(cmd.Context(), &jenkins.Config{
				BaseURL:  server,
				Username: username,
				APIToken: token,
			})
			if err != nil {
				return err
			}

			home, err := client.GetHome(cmd.Context())
			if err != nil {
				return fmt.Errorf("verifying credentials: %w", err)
			}

			config := loadConfig()
			config.Server = server
			config.Username = username
			config.Token = token

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Printf("Logged in to %s", server)

			if home.NodeDescription != "" {
				fmt.Printf(" (%s)", home.NodeDescription)
			}

			fmt.Println()

			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL")
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&token, "token", "", "API token")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the server",
		Long:  "Remove the stored credentials from the CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Username = ""
			config.Token = ""

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}
