package model

// NodeKind is the type of a drawing node.
type NodeKind string

const (
	NodeVector           NodeKind = "VECTOR"
	NodeRectangle        NodeKind = "RECTANGLE"
	NodeEllipse          NodeKind = "ELLIPSE"
	NodeLine             NodeKind = "LINE"
	NodePolygon          NodeKind = "POLYGON"
	NodeStar             NodeKind = "STAR"
	NodeText             NodeKind = "TEXT"
	NodeBooleanOperation NodeKind = "BOOLEAN_OPERATION"
	NodeGroup            NodeKind = "GROUP"
	NodeComponent        NodeKind = "COMPONENT"
	NodeInstance         NodeKind = "INSTANCE"
	NodeFrame            NodeKind = "FRAME"
)

// IsPathLeaf reports whether nodes of this kind carry geometry that can be
// cut.
func (k NodeKind) IsPathLeaf() bool {
	switch k {
	case NodeVector, NodeRectangle, NodeEllipse, NodeLine, NodePolygon,
		NodeStar, NodeText, NodeBooleanOperation:
		return true
	}
	return false
}

// IsGroupLike reports whether nodes of this kind only hold other nodes.
func (k NodeKind) IsGroupLike() bool {
	switch k {
	case NodeGroup, NodeComponent, NodeInstance:
		return true
	}
	return false
}

// Node is one element of an imported drawing.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     NodeKind `json:"kind"`
	Outline  Outline  `json:"outline,omitempty"`
	Closed   bool     `json:"closed"`
	Data     PathData `json:"data"`
	Children []*Node  `json:"children,omitempty"`
}

// PathSelection splits a set of nodes into cuttable paths and nodes that
// cannot be cut. Data[i] is the path data of Nodes[i] with the data of
// enclosing components and instances filled in.
type PathSelection struct {
	Nodes   []*Node    `json:"nodes"`
	Data    []PathData `json:"data"`
	Invalid []*Node    `json:"invalidNodes"`
}

// SelectPaths walks nodes and collects every path leaf. Groups are
// descended into; a path nested inside another path (such as the operand
// of a boolean operation) and any other node kind is reported as invalid.
// The nodes are not modified.
func SelectPaths(nodes []*Node) PathSelection {
	var sel PathSelection
	for _, n := range nodes {
		sel.collect(n, false, nil)
	}
	return sel
}

func (sel *PathSelection) collect(n *Node, underLeaf bool, component *PathData) {
	switch {
	case underLeaf:
		sel.Invalid = append(sel.Invalid, n)
		for _, c := range n.Children {
			sel.collect(c, true, component)
		}
	case n.Kind.IsPathLeaf():
		data := n.Data
		if component != nil {
			data = data.Inherit(*component)
		}
		sel.Nodes = append(sel.Nodes, n)
		sel.Data = append(sel.Data, data)
		for _, c := range n.Children {
			sel.collect(c, true, component)
		}
	case n.Kind.IsGroupLike():
		if n.Kind == NodeComponent || n.Kind == NodeInstance {
			data := n.Data
			if component != nil {
				data = data.Inherit(*component)
			}
			component = &data
		}
		for _, c := range n.Children {
			sel.collect(c, false, component)
		}
	default:
		sel.Invalid = append(sel.Invalid, n)
	}
}
