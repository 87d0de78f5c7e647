package gametree

import (
	"slices"

	"github.com/corentings/chess/v2"
)

// Move is the move that produced a node.
type Move struct {
	From      chess.Square
	To        chess.Square
	Promotion chess.PieceType
	SAN       string
}

// UCI returns the move in coordinate notation.
func (m Move) UCI() string {
	return m.From.String() + m.To.String() + promoSuffix(m.Promotion)
}

// String implements the fmt.Stringer interface.
func (m Move) String() string {
	if m.SAN != "" {
		return m.SAN
	}
	return m.UCI()
}

func (m Move) matches(i Intent) bool {
	return m.From == i.From && m.To == i.To && m.Promotion == i.Promotion
}

// A Node is one position of the game tree. Children are owned by their
// parent; the parent is only referenced by id.
type Node struct {
	id       string
	parentID string
	position string
	move     *Move
	children []*Node
	shapes   []Shape
	score    *Score
}

// ID returns the node's identifier.
func (n *Node) ID() string {
	return n.id
}

// ParentID returns the parent's identifier, empty for the root.
func (n *Node) ParentID() string {
	return n.parentID
}

// Position returns the node's FEN.
func (n *Node) Position() string {
	return n.position
}

// Move returns the move that produced the node. The root has none.
func (n *Node) Move() (Move, bool) {
	if n.move == nil {
		return Move{}, false
	}
	return *n.move, true
}

// Children returns the node's children; the first is the main line.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// IsLeaf reports whether the node ends its line.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Shapes returns the node's annotations.
func (n *Node) Shapes() []Shape {
	return slices.Clone(n.shapes)
}

// Score returns the node's evaluation, if one was set.
func (n *Node) Score() (Score, bool) {
	if n.score == nil {
		return Score{}, false
	}
	return *n.score, true
}

func (n *Node) findChild(i Intent) *Node {
	for _, child := range n.children {
		if child.move != nil && child.move.matches(i) {
			return child
		}
	}
	return nil
}
