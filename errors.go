package gametree

import "errors"

// Every error returned by this package wraps one of these values and is
// recoverable: the tree is left in its last valid state.
var (
	// ErrInvalidPosition reports a position string the rule engine rejects.
	ErrInvalidPosition = errors.New("gametree: invalid position")
	// ErrIllegalMove reports a move the rule engine does not allow.
	ErrIllegalMove = errors.New("gametree: illegal move")
	// ErrAmbiguousInput reports move text matching zero or several legal moves.
	ErrAmbiguousInput = errors.New("gametree: ambiguous move input")
	// ErrVariationRejected reports a move from a node with a continuation while variations are disabled.
	ErrVariationRejected = errors.New("gametree: variations are disabled")
	// ErrNoPendingPromotion reports a promotion choice made with no dialog open.
	ErrNoPendingPromotion = errors.New("gametree: no promotion pending")
	// ErrInvalidPromotion reports a promotion to a king, a pawn or no piece.
	ErrInvalidPromotion = errors.New("gametree: invalid promotion piece")
	// ErrUnknownNode reports a node id the tree does not hold.
	ErrUnknownNode = errors.New("gametree: unknown node")
	// ErrSessionClosed reports an edit started after the session was closed.
	ErrSessionClosed = errors.New("gametree: session closed")
)
