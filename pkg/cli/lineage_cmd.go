package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mesh-demo/internal/domain"
)

func newLineageCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lineage",
		Short: "Trace lineage through the mesh",
	}
	cmd.AddCommand(newLineagePortCmd(client))
	cmd.AddCommand(newLineageNodeCmd(client))
	cmd.AddCommand(newLineageColumnCmd(client))
	return cmd
}

func newLineagePortCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "port <port-id>",
		Short: "Show everything upstream and downstream of a port",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := client.PortLineage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, res)
			}

			printSet(os.Stdout, "Nodes", res.NodeIDs)
			printSet(os.Stdout, "Edges", res.EdgeIDs)
			printSet(os.Stdout, "Ports", res.PortIDs)
			printSet(os.Stdout, "Upstream nodes", res.Upstream.NodeIDs)
			printSet(os.Stdout, "Downstream nodes", res.Downstream.NodeIDs)
			return nil
		},
	}
}

func newLineageNodeCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "node <node-id>",
		Short: "Show nodes connected through direct relationships",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := client.NodeLineage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, res)
			}

			printSet(os.Stdout, "Nodes", res.NodeIDs)
			printSet(os.Stdout, "Edges", res.EdgeIDs)
			return nil
		},
	}
}

func newLineageColumnCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "column <column-id>",
		Short: "Show column-level lineage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := client.ColumnLineage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, res)
			}

			printSet(os.Stdout, "Columns", res.ColumnIDs)
			printSet(os.Stdout, "Edges", res.EdgeIDs)
			printSet(os.Stdout, "Ports", res.PortIDs)
			return nil
		},
	}
}

func printSet(w *os.File, title string, set domain.StringSet) {
	values := set.Values()
	if len(values) == 0 {
		fmt.Fprintf(w, "%s: (none)\n", title)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", title, strings.Join(values, ", "))
}
