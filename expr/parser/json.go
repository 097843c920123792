package parser

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Op       string      `json:"op,omitempty"`
	Value    *int64      `json:"value,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func (n *Leaf) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(n))
}

func (n *Unary) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(n))
}

func (n *Binary) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(n))
}

func toJSON(n Node) *jsonNode {
	switch n := n.(type) {
	case *Leaf:
		v := n.Value
		return &jsonNode{Kind: "Leaf", Value: &v}
	case *Unary:
		return &jsonNode{
			Kind:     "Unary",
			Op:       n.Op.String(),
			Children: []*jsonNode{toJSON(n.Operand)},
		}
	case *Binary:
		return &jsonNode{
			Kind:     "Binary",
			Op:       n.Op.String(),
			Children: []*jsonNode{toJSON(n.Left), toJSON(n.Right)},
		}
	}
	return nil
}
