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

// NewNodesCommand creates the nodes command group.
func NewNodesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nodes",
		Aliases: []string{"node"},
		Short:   "Inspect executor nodes",
		Long:    "List the server's executor nodes and inspect individual ones",
	}

	cmd.AddCommand(newNodesListCommand())
	cmd.AddCommand(newNodesGetCommand())

	return cmd
}

func newNodesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			set, err := client.Nodes().List(cmd.Context())
			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(set)
			case constants.FormatYAML:
				return outputYAML(set)
			default:
				fmt.Printf("Executors: %s busy of %s total\n",
					formatInt64Ptr(set.BusyExecutors), formatInt64Ptr(set.TotalExecutors))

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Name", "Class", "Idle", "Offline")

				for _, computer := range set.Computers {
					common := computerCommon(computer)
					if common == nil {
						continue
					}

					_ = table.Append(computer.ComputerName(), formatValue(computer.ComputerClass()),
						strconv.FormatBool(common.Idle), strconv.FormatBool(common.Offline))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}
}

func newNodesGetCommand() *cobra.Command {
	var master bool

	cmd := &cobra.Command{
		Use:   "get [NAME]",
		Short: "Get node details",
		Long:  "Fetch a node by name, or the built-in node with --master",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			var computer jenkins.Computer

			switch {
			case master:
				computer, err = client.Nodes().GetMaster(cmd.Context())
			case len(args) == 1:
				computer, err = client.Nodes().Get(cmd.Context(), args[0])
			default:
				return fmt.Errorf("node name or --master is required")
			}

			if err != nil {
				return err
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return outputJSON(computer)
			case constants.FormatYAML:
				return outputYAML(computer)
			default:
				return displayComputerTable(computer)
			}
		},
	}

	cmd.Flags().BoolVar(&master, "master", false, "fetch the built-in node")

	return cmd
}

func displayComputerTable(computer jenkins.Computer) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("Name", computer.ComputerName())
	_ = table.Append("Class", formatValue(computer.ComputerClass()))

	if common := computerCommon(computer); common != nil {
		_ = table.Append("Executors", formatInt64Ptr(common.NumExecutors))
		_ = table.Append("Idle", strconv.FormatBool(common.Idle))
		_ = table.Append("Offline", strconv.FormatBool(common.Offline))
		_ = table.Append("Temporarily Offline", strconv.FormatBool(common.TemporarilyOffline))
	}

	if agent, ok := computer.(*jenkins.SlaveComputer); ok && agent.AbsoluteRemotePath != nil {
		_ = table.Append("Remote Path", *agent.AbsoluteRemotePath)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// computerCommon extracts the shared node fields from any computer variant.
func computerCommon(computer jenkins.Computer) *jenkins.ComputerCommon {
	switch c := computer.(type) {
	case *jenkins.MasterComputer:
		return &c.ComputerCommon
	case *jenkins.SlaveComputer:
		return &c.ComputerCommon
	case *jenkins.GenericComputer:
		return &c.ComputerCommon
	default:
		return nil
	}
}
