package gametree

import (
	"fmt"

	"github.com/corentings/chess/v2"
)

// PromotionState is the state of a Promoter.
type PromotionState uint8

const (
	// Idle means no promotion is pending.
	Idle PromotionState = iota
	// AwaitingSelection means a pawn move waits for its promotion piece.
	AwaitingSelection
)

// Modifiers are the keys held during a board interaction.
type Modifiers struct {
	// ForceDialog asks for the promotion dialog even with auto-promote on.
	ForceDialog bool
}

// PendingMove is a pawn move waiting for its promotion piece.
type PendingMove struct {
	From  chess.Square
	To    chess.Square
	Color chess.Color
}

// Promoter defers committing a promotion-ambiguous pawn move until a piece
// is chosen. The zero value is Idle and ready to use.
type Promoter struct {
	state   PromotionState
	pending PendingMove
}

// State returns the current state.
func (p *Promoter) State() PromotionState {
	return p.state
}

// Pending returns the move awaiting selection, if any.
func (p *Promoter) Pending() (PendingMove, bool) {
	return p.pending, p.state == AwaitingSelection
}

// Drop handles a piece dropped from one square to another. It returns the
// intent to commit and true, or false when the move now awaits a promotion
// piece. A drop while a selection is pending abandons the pending move.
func (p *Promoter) Drop(rules RuleEngine, fen string, from, to chess.Square, mods Modifiers, cfg Config) (Intent, bool) {
	p.Cancel()

	piece := rules.PieceAt(fen, from)
	if !isPromotionSquare(piece, to) {
		return Intent{From: from, To: to}, true
	}
	if cfg.AutoPromote && !mods.ForceDialog {
		return Intent{From: from, To: to, Promotion: chess.Queen}, true
	}
	p.state = AwaitingSelection
	p.pending = PendingMove{From: from, To: to, Color: piece.Color()}
	return Intent{}, false
}

// Choices returns the promotable pieces in display order: queen first for
// white, last for black, since the dialog opens from opposite board edges.
func (p *Promoter) Choices() []chess.PieceType {
	if p.state != AwaitingSelection {
		return nil
	}
	if p.pending.Color == chess.Black {
		return []chess.PieceType{chess.Bishop, chess.Rook, chess.Knight, chess.Queen}
	}
	return []chess.PieceType{chess.Queen, chess.Knight, chess.Rook, chess.Bishop}
}

// Select commits the pending move with the chosen piece and returns to Idle.
func (p *Promoter) Select(piece chess.PieceType) (Intent, error) {
	if p.state != AwaitingSelection {
		return Intent{}, ErrNoPendingPromotion
	}
	switch piece {
	case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
	default:
		return Intent{}, fmt.Errorf("%w: %v", ErrInvalidPromotion, piece)
	}
	intent := Intent{From: p.pending.From, To: p.pending.To, Promotion: piece}
	p.reset()
	return intent, nil
}

// Cancel abandons the pending move. It reports whether one was pending.
func (p *Promoter) Cancel() bool {
	if p.state != AwaitingSelection {
		return false
	}
	p.reset()
	return true
}

func (p *Promoter) reset() {
	p.state = Idle
	p.pending = PendingMove{}
}

// isPromotionSquare reports whether piece is a pawn landing on its last rank.
func isPromotionSquare(piece chess.Piece, to chess.Square) bool {
	if piece == chess.NoPiece || piece.Type() != chess.Pawn || to == chess.NoSquare {
		return false
	}
	if piece.Color() == chess.White {
		return to.Rank() == chess.Rank8
	}
	return to.Rank() == chess.Rank1
}
