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

// NewBuildsCommand creates the builds command group.
func NewBuildsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "builds",
		Aliases: []string{"build"},
		Short:   "Inspect builds",
		Long:    "Fetch build details and console output",
	}

	cmd.AddCommand(newBuildsGetCommand())
	cmd.AddCommand(newBuildsLogCommand())

	return cmd
}

func newBuildsGetCommand() *cobra.Command {
	var folders []string

	cmd := &cobra.Command{
		Use:   "get JOB REF",
		Short: "Get build details",
		Long:  "Fetch a build by number or by an alias like lastBuild or lastSuccessfulBuild",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, ok := jenkins.ParseBuildRef(args[1])
			if !ok {
				return fmt.Errorf("%s: %w", args[1], constants.ErrInvalidBuildRef)
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			build, err := client.Builds().Get(cmd.Context(), args[0], ref, folders...)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(build)
			case constants.FormatYAML:
				return outputYAML(build)
			default:
				return displayBuildTable(build)
			}
		},
	}

	cmd.Flags().StringSliceVar(&folders, "folder", nil, "enclosing folder, repeatable for nesting")

	return cmd
}

func displayBuildTable(build jenkins.Build) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Number", formatInt64Ptr(build.BuildNumber()))
	_ = table.Append("Class", formatValue(build.BuildClass()))
	_ = table.Append("Result", formatBuildStatus(build.BuildResult()))
	_ = table.Append("URL", build.BuildURL())

	if common := buildCommon(build); common != nil {
		_ = table.Append("Started", formatTimestamp(common.Timestamp))
		_ = table.Append("Duration", formatDuration(common.Duration))
		_ = table.Append("Estimated", formatDuration(common.EstimatedDuration))
		_ = table.Append("Queue ID", formatInt64Ptr(common.QueueID))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newBuildsLogCommand() *cobra.Command {
	var folders []string

	cmd := &cobra.Command{
		Use:   "log JOB REF",
		Short: "Print build console output",
		Long:  "Fetch the plain text console output of a build",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, ok := jenkins.ParseBuildRef(args[1])
			if !ok {
				return fmt.Errorf("%s: %w", args[1], constants.ErrInvalidBuildRef)
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			console, err := client.Builds().GetConsole(cmd.Context(), args[0], ref, folders...)
			if err != nil {
				return err
			}

			fmt.Print(console)

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&folders, "folder", nil, "enclosing folder, repeatable for nesting")

	return cmd
}
