package gametree

import "github.com/corentings/chess/v2"

// PromotionPrompt is the pending promotion a view asks the player about.
type PromotionPrompt struct {
	Move    PendingMove
	Choices []chess.PieceType
}

// View is the read-only snapshot handed to renderers. It is rebuilt on
// every call and never written back.
type View struct {
	NodeID       string
	Position     string
	Turn         chess.Color
	Destinations map[chess.Square][]chess.Square
	// FreeMove is set in edit mode, where any piece may go anywhere.
	FreeMove  bool
	Check     bool
	LastMove  *[2]chess.Square
	Shapes    []Shape
	Material  MaterialDiff
	Headers   Headers
	Promotion *PromotionPrompt
	Line      []string // SAN from the root to the current node
	EditMode  bool
	Err       error
}

// Board returns the piece placement of the view's position, or nil when it
// cannot be parsed.
func (v View) Board(rules RuleEngine) map[chess.Square]chess.Piece {
	pos, err := rules.Parse(v.Position)
	if err != nil {
		return nil
	}
	return pos.Board().SquareMap()
}

// CheckSquare returns the king square of the side in check, or chess.NoSquare.
func (v View) CheckSquare(rules RuleEngine) chess.Square {
	if !v.Check {
		return chess.NoSquare
	}
	for sq, p := range v.Board(rules) {
		if p.Type() == chess.King && p.Color() == v.Turn {
			return sq
		}
	}
	return chess.NoSquare
}
