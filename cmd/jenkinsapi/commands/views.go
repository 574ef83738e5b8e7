package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// NewViewsCommand creates the views command group.
func NewViewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "views",
		Aliases: []string{"view"},
		Short:   "Manage views",
		Long:    "Inspect views and manage their job membership",
	}

	cmd.AddCommand(newViewsGetCommand())
	cmd.AddCommand(newViewsAddJobCommand())
	cmd.AddCommand(newViewsRemoveJobCommand())

	return cmd
}

func newViewsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Get view details",
		Long:  "Fetch a view and list the jobs it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			view, err := client.Views().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(view)
			case constants.FormatYAML:
				return outputYAML(view)
			default:
				return displayViewTable(view)
			}
		},
	}
}

func displayViewTable(view jenkins.View) error {
	fmt.Printf("View %s (%s)\n", view.ViewName(), formatValue(view.ViewClass()))

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Color", "URL")

	if common := viewCommon(view); common != nil {
		for _, job := range common.Jobs {
			_ = table.Append(job.Name, formatValue(string(job.Color)), job.URL)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// viewCommon extracts the shared view fields from any view variant.
func viewCommon(view jenkins.View) *jenkins.ViewCommon {
	switch v := view.(type) {
	case *jenkins.ListView:
		return &v.ViewCommon
	case *jenkins.AllView:
		return &v.ViewCommon
	case *jenkins.MyView:
		return &v.ViewCommon
	case *jenkins.GenericView:
		return &v.ViewCommon
	default:
		return nil
	}
}

func newViewsAddJobCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-job VIEW JOB",
		Short: "Add a job to a view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Views().AddJob(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			fmt.Printf("Added job %s to view %s\n", args[1], args[0])

			return nil
		},
	}
}

func newViewsRemoveJobCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-job VIEW JOB",
		Short: "Remove a job from a view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Views().RemoveJob(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			fmt.Printf("Removed job %s from view %s\n", args[1], args[0])

			return nil
		},
	}
}
