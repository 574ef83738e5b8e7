package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
)

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display server information",
		Long:  "Display the server's root object: node description, executors, jobs, and views",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			home, err := client.GetHome(cmd.Context())
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(home)
			case constants.FormatYAML:
				return outputYAML(home)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")

				_ = table.Append("Description", formatValue(home.NodeDescription))
				_ = table.Append("Node Name", formatValue(home.NodeName))
				_ = table.Append("Executors", formatInt64Ptr(home.NumExecutors))
				_ = table.Append("Jobs", strconv.Itoa(len(home.Jobs)))
				_ = table.Append("Views", strconv.Itoa(len(home.Views)))
				_ = table.Append("Quieting Down", strconv.FormatBool(home.QuietingDown))
				_ = table.Append("Uses Crumbs", strconv.FormatBool(home.UseCrumbs))
				_ = table.Append("Uses Security", strconv.FormatBool(home.UseSecurity))

				if home.PrimaryView != nil {
					_ = table.Append("Primary View", home.PrimaryView.Name)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}
