package commands

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// NewJobsCommand creates the jobs command group.
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "Manage jobs",
		Long:    "List, inspect, trigger, and control jobs",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsGetCommand())
	cmd.AddCommand(newJobsBuildCommand())
	cmd.AddCommand(newJobsEnableCommand())
	cmd.AddCommand(newJobsDisableCommand())
	cmd.AddCommand(newJobsPollCommand())

	return cmd
}

func newJobsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Long:  "List the jobs visible on the server's home page",
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
				return outputJSON(home.Jobs)
			case constants.FormatYAML:
				return outputYAML(home.Jobs)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Color", "URL")

				for _, job := range home.Jobs {
					_ = table.Append(job.Name, formatValue(string(job.Color)), job.URL)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newJobsGetCommand() *cobra.Command {
	var folders []string

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Get job details",
		Long:  "Fetch a job and display its current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			job, err := client.Jobs().Get(cmd.Context(), args[0], folders...)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(job)
			case constants.FormatYAML:
				return outputYAML(job)
			default:
				return displayJobTable(job)
			}
		},
	}

	cmd.Flags().StringSliceVar(&folders, "folder", nil, "enclosing folder, repeatable for nesting")

	return cmd
}

func displayJobTable(job jenkins.Job) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", job.JobName())
	_ = table.Append("Class", formatValue(job.JobClass()))
	_ = table.Append("URL", job.JobURL())

	if common := jobCommon(job); common != nil {
		_ = table.Append("Color", formatValue(string(common.Color)))
		_ = table.Append("Buildable", fmt.Sprintf("%t", common.Buildable))
		_ = table.Append("Next Build", formatInt64Ptr(common.NextBuildNumber))

		if common.LastBuild != nil {
			_ = table.Append("Last Build", formatInt64Ptr(common.LastBuild.Number))
		}

		if common.LastSuccessfulBuild != nil {
			_ = table.Append("Last Successful", formatInt64Ptr(common.LastSuccessfulBuild.Number))
		}

		if common.LastFailedBuild != nil {
			_ = table.Append("Last Failed", formatInt64Ptr(common.LastFailedBuild.Number))
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newJobsBuildCommand() *cobra.Command {
	var (
		folders []string
		params  []string
	)

	cmd := &cobra.Command{
		Use:   "build NAME",
		Short: "Trigger a build",
		Long:  "Trigger a build of a job, optionally with parameters, and report the queue item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			var item *jenkins.ShortQueueItem

			if len(params) > 0 {
				values := url.Values{}

				for _, param := range params {
					key, value, found := strings.Cut(param, "=")
					if !found || key == "" {
						return fmt.Errorf("%s: %w", param, constants.ErrParameterFormat)
					}

					values.Set(key, value)
				}

				item, err = client.Jobs().BuildWithParameters(cmd.Context(), args[0], values, folders...)
			} else {
				item, err = client.Jobs().Build(cmd.Context(), args[0], folders...)
			}

			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(item)
			case constants.FormatYAML:
				return outputYAML(item)
			default:
				fmt.Printf("Build queued: %s\n", item.URL)
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&folders, "folder", nil, "enclosing folder, repeatable for nesting")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "build parameter as key=value, repeatable")

	return cmd
}

func newJobsEnableCommand() *cobra.Command {
	var folders []string

	cmd := &cobra.Command{
		Use:   "enable NAME",
		Short: "Enable a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Jobs().Enable(cmd.Context(), args[0], folders...); err != nil {
				return err
			}

			fmt.Printf("Enabled job %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&folders, "folder", nil, "enclosing folder, repeatable for nesting")

	return cmd
}

func newJobsDisableCommand() *cobra.Command {
	var folders []string

	cmd := &cobra.Command{
		Use:   "disable NAME",
		Short: "Disable a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Jobs().Disable(cmd.Context(), args[0], folders...); err != nil {
				return err
			}

			fmt.Printf("Disabled job %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&folders, "folder", nil, "enclosing folder, repeatable for nesting")

	return cmd
}

func newJobsPollCommand() *cobra.Command {
	var folders []string

	cmd := &cobra.Command{
		Use:   "poll NAME",
		Short: "Poll SCM for changes",
		Long:  "Ask the server to poll the job's SCM for changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Jobs().PollSCM(cmd.Context(), args[0], folders...); err != nil {
				return err
			}

			fmt.Printf("Polling SCM for job %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&folders, "folder", nil, "enclosing folder, repeatable for nesting")

	return cmd
}
