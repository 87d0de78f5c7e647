package gametree

import "github.com/corentings/chess/v2"

// Default brushes understood by the render collaborators.
const (
	BrushGreen  = "green"
	BrushRed    = "red"
	BrushBlue   = "blue"
	BrushYellow = "yellow"
)

// Shape is a freeform annotation drawn on the board. A shape whose Orig and
// Dest are equal highlights a square; any other shape is an arrow.
type Shape struct {
	Orig  chess.Square
	Dest  chess.Square
	Brush string
}

// IsArrow reports whether s is drawn as an arrow.
func (s Shape) IsArrow() bool {
	return s.Orig != s.Dest
}

// Score is an engine evaluation attached to a node, from white's point of view.
type Score struct {
	Centipawns int
	Mate       int // moves to mate, 0 when not a mate score; negative favours black
	Depth      int
}
