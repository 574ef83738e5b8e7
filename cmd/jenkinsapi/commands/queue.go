package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nineflags-io/jenkinsapi/internal/constants"
	"github.com/nineflags-io/jenkinsapi/pkg/jenkins"
)

// NewQueueCommand creates the queue command group.
func NewQueueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage the build queue",
		Long:  "List, inspect, and cancel pending queue items",
	}

	cmd.AddCommand(newQueueListCommand())
	cmd.AddCommand(newQueueGetCommand())
	cmd.AddCommand(newQueueCancelCommand())

	return cmd
}

func parseQueueItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", arg, constants.ErrInvalidQueueItemID)
	}

	return id, nil
}

func newQueueListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queue items",
		Long:  "List the items currently waiting in the build queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			queue, err := client.Queue().List(cmd.Context())
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(queue)
			case constants.FormatYAML:
				return outputYAML(queue)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Job", "Since", "Why")

				for _, item := range queue.Items {
					task := constants.NotAvailable
					if item.Task != nil {
						task = item.Task.Name
					}

					why := constants.NotAvailable
					if item.Why != nil {
						why = *item.Why
					}

					_ = table.Append(strconv.FormatInt(item.ID, 10), task,
						formatTimestamp(item.InQueueSince), why)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newQueueGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get queue item details",
		Long:  "Fetch a queue item, including its executable build once one starts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseQueueItemID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			item, err := client.Queue().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(item)
			case constants.FormatYAML:
				return outputYAML(item)
			default:
				return displayQueueItemTable(item)
			}
		},
	}
}

func displayQueueItemTable(item *jenkins.QueueItem) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("ID", strconv.FormatInt(item.ID, 10))

	if item.Task != nil {
		_ = table.Append("Job", item.Task.Name)
	}

	_ = table.Append("Blocked", strconv.FormatBool(item.Blocked))
	_ = table.Append("Buildable", strconv.FormatBool(item.Buildable))
	_ = table.Append("Stuck", strconv.FormatBool(item.Stuck))
	_ = table.Append("In Queue Since", formatTimestamp(item.InQueueSince))

	if item.Why != nil {
		_ = table.Append("Why", *item.Why)
	}

	if item.Executable != nil {
		_ = table.Append("Build", formatInt64Ptr(item.Executable.Number))
		_ = table.Append("Build URL", item.Executable.URL)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newQueueCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel ID",
		Short: "Cancel a queue item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseQueueItemID(args[0])
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.Queue().Cancel(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("Cancelled queue item %d\n", id)

			return nil
		},
	}
}
