package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"mesh-demo/internal/api"
)

func newNodeCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage data product nodes",
	}
	cmd.AddCommand(newNodeListCmd(client))
	cmd.AddCommand(newNodeGetCmd(client))
	cmd.AddCommand(newNodeDeleteCmd(client))
	return cmd
}

func newNodeListCmd(client *Client) *cobra.Command {
	var pageToken string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := client.ListNodes(cmd.Context(), pageToken)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, resp)
			}

			rows := make([][]string, 0, len(resp.Data))
			for _, n := range resp.Data {
				rows = append(rows, []string{
					n.ID, n.Label,
					strconv.Itoa(len(n.InputPorts)),
					strconv.Itoa(len(n.OutputPorts)),
				})
			}
			if err := printTable(os.Stdout, []string{"ID", "LABEL", "INPUTS", "OUTPUTS"}, rows); err != nil {
				return err
			}
			if resp.NextPageToken != "" {
				fmt.Fprintf(os.Stdout, "\nNext page: --page-token %s\n", resp.NextPageToken)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pageToken, "page-token", "", "Page token from a previous list call")
	return cmd
}

func newNodeGetCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get <node-id>",
		Short: "Show a node with its ports and columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			node, err := client.GetNode(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, node)
			}

			fmt.Fprintf(os.Stdout, "%s (%s)\n", node.Label, node.ID)
			printPortGroup(os.Stdout, "Input ports", node.InputPorts)
			printPortGroup(os.Stdout, "Output ports", node.OutputPorts)
			return nil
		},
	}
}

func printPortGroup(w *os.File, title string, ports []api.PortPayload) {
	if len(ports) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, p := range ports {
		fmt.Fprintf(w, "  %s", p.ID)
		if len(p.RelatedPortIDs) > 0 {
			fmt.Fprintf(w, " (related: %v)", p.RelatedPortIDs)
		}
		fmt.Fprintln(w)
		for _, c := range p.Columns {
			fmt.Fprintf(w, "    %s %s\n", c.Name, c.DataType)
		}
	}
}

func newNodeDeleteCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <node-id>",
		Short: "Delete a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.DeleteNode(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Deleted node %s\n", args[0])
			return nil
		},
	}
}

func newRelationshipCmd(client *Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "relationship",
		Aliases: []string{"rel"},
		Short:   "Manage relationships between nodes and ports",
	}

	var pageToken string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List relationships",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := client.ListRelationships(cmd.Context(), pageToken)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, resp)
			}

			rows := make([][]string, 0, len(resp.Data))
			for _, rel := range resp.Data {
				src, dst := rel.SourceNodeID, rel.TargetNodeID
				if rel.Kind == "port" {
					src, dst = rel.SourcePortID, rel.TargetPortID
				}
				rows = append(rows, []string{rel.ID, rel.Kind, src, dst})
			}
			return printTable(os.Stdout, []string{"ID", "KIND", "SOURCE", "TARGET"}, rows)
		},
	}
	listCmd.Flags().StringVar(&pageToken, "page-token", "", "Page token from a previous list call")

	deleteCmd := &cobra.Command{
		Use:   "delete <relationship-id>",
		Short: "Delete a relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.DeleteRelationship(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Deleted relationship %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(listCmd, deleteCmd)
	return cmd
}
