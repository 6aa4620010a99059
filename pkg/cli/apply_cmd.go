package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mesh-demo/internal/api"
)

// Manifest is the YAML document consumed by `mesh apply`.
type Manifest struct {
	Nodes               []ManifestNode               `yaml:"nodes"`
	Relationships       []ManifestRelationship       `yaml:"relationships"`
	ColumnRelationships []ManifestColumnRelationship `yaml:"columnRelationships"`
}

// ManifestNode declares a node with its ports.
type ManifestNode struct {
	ID          string         `yaml:"id"`
	Label       string         `yaml:"label"`
	InputPorts  []ManifestPort `yaml:"inputPorts"`
	OutputPorts []ManifestPort `yaml:"outputPorts"`
}

// ManifestPort declares a port with its columns and intra-node links.
type ManifestPort struct {
	ID             string           `yaml:"id"`
	Label          string           `yaml:"label"`
	RelatedPortIDs []string         `yaml:"relatedPortIds"`
	Columns        []ManifestColumn `yaml:"columns"`
}

// ManifestColumn declares a column on a port.
type ManifestColumn struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	DataType    string `yaml:"dataType"`
	Nullable    bool   `yaml:"nullable"`
	PrimaryKey  bool   `yaml:"primaryKey"`
	Description string `yaml:"description"`
}

// ManifestRelationship declares an edge.
type ManifestRelationship struct {
	ID           string `yaml:"id"`
	Kind         string `yaml:"kind"`
	SourceNodeID string `yaml:"sourceNodeId"`
	TargetNodeID string `yaml:"targetNodeId"`
	SourcePortID string `yaml:"sourcePortId"`
	TargetPortID string `yaml:"targetPortId"`
}

// ManifestColumnRelationship declares a column-level edge.
type ManifestColumnRelationship struct {
	SourceColumnID string `yaml:"sourceColumnId"`
	TargetColumnID string `yaml:"targetColumnId"`
}

func newApplyCmd(client *Client) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a mesh manifest to the server",
		Long:  "Reads a YAML manifest and creates its nodes, relationships, and column relationships. Resources that already exist are skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read manifest: %w", err)
			}
			var m Manifest
			if err := yaml.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("parse manifest: %w", err)
			}

			var created, skipped, failed int
			for _, node := range m.Nodes {
				_, err := client.CreateNode(cmd.Context(), manifestNodeToAPI(node))
				switch {
				case err == nil:
					fmt.Fprintf(os.Stdout, "  node %q created\n", node.ID)
					created++
				case isConflict(err):
					fmt.Fprintf(os.Stdout, "  node %q exists, skipped\n", node.ID)
					skipped++
				default:
					fmt.Fprintf(os.Stdout, "  node %q failed: %v\n", node.ID, err)
					failed++
				}
			}

			for _, rel := range m.Relationships {
				_, err := client.CreateRelationship(cmd.Context(), api.RelationshipPayload{
					ID:           rel.ID,
					Kind:         rel.Kind,
					SourceNodeID: rel.SourceNodeID,
					TargetNodeID: rel.TargetNodeID,
					SourcePortID: rel.SourcePortID,
					TargetPortID: rel.TargetPortID,
				})
				switch {
				case err == nil:
					fmt.Fprintf(os.Stdout, "  relationship %q created\n", rel.ID)
					created++
				case isConflict(err):
					fmt.Fprintf(os.Stdout, "  relationship %q exists, skipped\n", rel.ID)
					skipped++
				default:
					fmt.Fprintf(os.Stdout, "  relationship %q failed: %v\n", rel.ID, err)
					failed++
				}
			}

			if len(m.ColumnRelationships) > 0 {
				rels := make([]api.ColumnRelationshipPayload, 0, len(m.ColumnRelationships))
				for _, rel := range m.ColumnRelationships {
					rels = append(rels, api.ColumnRelationshipPayload{
						SourceColumnID: rel.SourceColumnID,
						TargetColumnID: rel.TargetColumnID,
					})
				}
				if err := client.ReplaceColumnRelationships(cmd.Context(), rels); err != nil {
					fmt.Fprintf(os.Stdout, "  column relationships failed: %v\n", err)
					failed++
				} else {
					fmt.Fprintf(os.Stdout, "  column relationships replaced (%d)\n", len(rels))
					created++
				}
			}

			fmt.Fprintf(os.Stdout, "\nApply complete: %d created, %d skipped, %d failed.\n", created, skipped, failed)
			if failed > 0 {
				return fmt.Errorf("%d resource(s) failed to apply", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "mesh.yaml", "Path to the manifest file")
	return cmd
}

func manifestNodeToAPI(n ManifestNode) api.NodePayload {
	out := api.NodePayload{ID: n.ID, Label: n.Label}
	for _, p := range n.InputPorts {
		out.InputPorts = append(out.InputPorts, manifestPortToAPI(p))
	}
	for _, p := range n.OutputPorts {
		out.OutputPorts = append(out.OutputPorts, manifestPortToAPI(p))
	}
	return out
}

func manifestPortToAPI(p ManifestPort) api.PortPayload {
	out := api.PortPayload{ID: p.ID, Label: p.Label, RelatedPortIDs: p.RelatedPortIDs}
	for _, c := range p.Columns {
		out.Columns = append(out.Columns, api.ColumnPayload{
			ID:          c.ID,
			Name:        c.Name,
			DataType:    c.DataType,
			Nullable:    c.Nullable,
			PrimaryKey:  c.PrimaryKey,
			Description: c.Description,
		})
	}
	return out
}

func isConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusConflict
}
