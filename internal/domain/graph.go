package domain

// PortDirection tells whether a port receives data into its node or emits
// data out of it. Direction is fixed by which of the node's two port lists
// the port is declared in.
type PortDirection string

const (
	// PortInput marks a port declared in a node's input list.
	PortInput PortDirection = "input"
	// PortOutput marks a port declared in a node's output list.
	PortOutput PortDirection = "output"
)

// Column is a named field belonging to exactly one port.
type Column struct {
	ID          string
	Name        string
	DataType    string
	Nullable    bool
	PrimaryKey  bool
	Description string
}

// Port is a named connection point on a data product. RelatedPortIDs lists
// the other ports on the same node this port internally transforms into or
// from (an input that feeds an output through the product's own logic).
// Related-port declarations are taken as-is: the two ends are not required
// to declare each other symmetrically.
type Port struct {
	ID             string
	Label          string
	RelatedPortIDs []string
	Columns        []Column
}

// Node is a data product with ordered input and output port lists.
type Node struct {
	ID          string
	Label       string
	InputPorts  []Port
	OutputPorts []Port
}

// Port returns the port with the given ID together with its direction, or
// false if the node does not declare it.
func (n *Node) Port(portID string) (Port, PortDirection, bool) {
	for _, p := range n.InputPorts {
		if p.ID == portID {
			return p, PortInput, true
		}
	}
	for _, p := range n.OutputPorts {
		if p.ID == portID {
			return p, PortOutput, true
		}
	}
	return Port{}, "", false
}
