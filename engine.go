/*
Package gametree models an interactive chess analysis board as a navigable,
branching tree of positions.

The package reconciles raw board interactions (drag and drop, typed move
text, UCI codes) with the rules of chess and the shape of the tree. Rules are
never implemented here: every legality question is delegated to a RuleEngine,
by default one backed by github.com/corentings/chess/v2.

Example usage:

	tree := gametree.NewTree(gametree.Rules{})
	intent, err := gametree.ParseText(gametree.Rules{}, "e4", tree.Current().Position())
	if err != nil {
		return err
	}
	if _, err := tree.ApplyMove(intent, gametree.DefaultConfig()); err != nil {
		return err
	}
*/
package gametree

import (
	"fmt"

	"github.com/corentings/chess/v2"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// TerminalKind classifies a position that ends the game.
type TerminalKind uint8

const (
	// NotTerminal means play can continue.
	NotTerminal TerminalKind = iota
	// Checkmated means the side to move has been mated.
	Checkmated
	// Drawn means the game is drawn by rule (stalemate, insufficient material, ...).
	Drawn
)

// Terminal describes whether a position ends the game.
type Terminal struct {
	Kind   TerminalKind
	Winner chess.Color  // set for Checkmated only
	Method chess.Method // the rule engine's reason
}

// Result maps a terminal state to a header result.
func (t Terminal) Result() Result {
	switch t.Kind {
	case Checkmated:
		if t.Winner == chess.White {
			return WhiteWon
		}
		return BlackWon
	case Drawn:
		return Draw
	default:
		return NoResult
	}
}

// Candidate is one legal move in a position.
type Candidate struct {
	From      chess.Square
	To        chess.Square
	Promotion chess.PieceType
	SAN       string
	EnPassant bool
}

// RuleEngine is the boundary to the chess rules. Implementations are pure:
// every method is a function of its arguments only.
type RuleEngine interface {
	Parse(fen string) (*chess.Position, error)
	Normalize(fen string) (string, error)
	LegalMoves(fen string) []Candidate
	LegalDestinations(fen string, from chess.Square) []chess.Square
	Terminal(fen string) Terminal
	PieceAt(fen string, sq chess.Square) chess.Piece
	SideToMove(fen string) chess.Color
	InCheck(fen string) bool
	EnPassantSquare(fen string) chess.Square
	Play(fen string, from, to chess.Square, promo chess.PieceType) (string, Candidate, error)
}

// Rules is the RuleEngine backed by github.com/corentings/chess/v2.
type Rules struct{}

var _ RuleEngine = Rules{}

func (Rules) game(fen string) (*chess.Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPosition, fen, err)
	}
	return chess.NewGame(opt), nil
}

// Parse decodes a FEN string.
func (r Rules) Parse(fen string) (*chess.Position, error) {
	g, err := r.game(fen)
	if err != nil {
		return nil, err
	}
	return g.Position(), nil
}

// Normalize returns the rule engine's serialization of fen.
func (r Rules) Normalize(fen string) (string, error) {
	pos, err := r.Parse(fen)
	if err != nil {
		return "", err
	}
	return pos.String(), nil
}

// LegalMoves returns every legal move with its SAN, or nil for an invalid position.
func (r Rules) LegalMoves(fen string) []Candidate {
	pos, err := r.Parse(fen)
	if err != nil {
		return nil
	}
	valid := pos.ValidMoves()
	out := make([]Candidate, 0, len(valid))
	for i := range valid {
		out = append(out, candidateOf(pos, &valid[i]))
	}
	return out
}

func candidateOf(pos *chess.Position, m *chess.Move) Candidate {
	return Candidate{
		From:      m.S1(),
		To:        m.S2(),
		Promotion: m.Promo(),
		SAN:       chess.AlgebraicNotation{}.Encode(pos, m),
		EnPassant: m.HasTag(chess.EnPassant),
	}
}

// LegalDestinations returns the squares the piece on from may move to.
// Promotion moves appear once per destination.
func (r Rules) LegalDestinations(fen string, from chess.Square) []chess.Square {
	pos, err := r.Parse(fen)
	if err != nil {
		return nil
	}
	var dests []chess.Square
	seen := make(map[chess.Square]bool)
	for _, m := range pos.ValidMoves() {
		if m.S1() != from || seen[m.S2()] {
			continue
		}
		seen[m.S2()] = true
		dests = append(dests, m.S2())
	}
	return dests
}

// Terminal reports whether fen ends the game.
func (r Rules) Terminal(fen string) Terminal {
	g, err := r.game(fen)
	if err != nil {
		return Terminal{}
	}
	switch g.Outcome() {
	case chess.WhiteWon, chess.BlackWon:
		if g.Method() == chess.Checkmate {
			winner := chess.White
			if g.Outcome() == chess.BlackWon {
				winner = chess.Black
			}
			return Terminal{Kind: Checkmated, Winner: winner, Method: g.Method()}
		}
	case chess.Draw:
		return Terminal{Kind: Drawn, Method: g.Method()}
	}
	return Terminal{}
}

// PieceAt returns the piece on sq, or chess.NoPiece.
func (r Rules) PieceAt(fen string, sq chess.Square) chess.Piece {
	pos, err := r.Parse(fen)
	if err != nil {
		return chess.NoPiece
	}
	return pos.Board().Piece(sq)
}

// SideToMove returns the color to move, or chess.NoColor for an invalid position.
func (r Rules) SideToMove(fen string) chess.Color {
	pos, err := r.Parse(fen)
	if err != nil {
		return chess.NoColor
	}
	return pos.Turn()
}

// InCheck reports whether the king of the side to move is attacked.
func (r Rules) InCheck(fen string) bool {
	pos, err := r.Parse(fen)
	if err != nil {
		return false
	}
	squares := pos.Board().SquareMap()
	turn := pos.Turn()
	for sq, p := range squares {
		if p.Type() == chess.King && p.Color() == turn {
			return attacked(squares, sq, turn.Other())
		}
	}
	return false
}

// EnPassantSquare returns the en-passant target square, or chess.NoSquare.
func (r Rules) EnPassantSquare(fen string) chess.Square {
	pos, err := r.Parse(fen)
	if err != nil {
		return chess.NoSquare
	}
	return pos.EnPassantSquare()
}

// Play applies a legal move and returns the resulting position. A promotion
// move requires promo to name the piece.
func (r Rules) Play(fen string, from, to chess.Square, promo chess.PieceType) (string, Candidate, error) {
	pos, err := r.Parse(fen)
	if err != nil {
		return "", Candidate{}, err
	}
	valid := pos.ValidMoves()
	for i := range valid {
		m := &valid[i]
		if m.S1() != from || m.S2() != to || m.Promo() != promo {
			continue
		}
		c := candidateOf(pos, m)
		next := pos.Update(m)
		if next == nil {
			break
		}
		return next.String(), c, nil
	}
	return "", Candidate{}, fmt.Errorf("%w: %s%s%s", ErrIllegalMove, from, to, promoSuffix(promo))
}

func promoSuffix(p chess.PieceType) string {
	if p == chess.NoPieceType {
		return ""
	}
	return p.String()
}

var (
	knightJumps = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	diagonals   = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonals = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// attacked reports whether any piece of color by attacks sq.
func attacked(squares map[chess.Square]chess.Piece, sq chess.Square, by chess.Color) bool {
	f, r := int(sq.File()), int(sq.Rank())
	at := func(df, dr int) (chess.Piece, bool) {
		nf, nr := f+df, r+dr
		if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
			return chess.NoPiece, false
		}
		return squares[chess.NewSquare(chess.File(nf), chess.Rank(nr))], true
	}
	is := func(p chess.Piece, types ...chess.PieceType) bool {
		if p == chess.NoPiece || p.Color() != by {
			return false
		}
		for _, t := range types {
			if p.Type() == t {
				return true
			}
		}
		return false
	}

	for _, d := range knightJumps {
		if p, ok := at(d[0], d[1]); ok && is(p, chess.Knight) {
			return true
		}
	}
	for _, d := range kingSteps {
		if p, ok := at(d[0], d[1]); ok && is(p, chess.King) {
			return true
		}
	}
	// White pawns attack upwards, so they sit one rank below their target.
	pawnRank := -1
	if by == chess.Black {
		pawnRank = 1
	}
	for _, df := range []int{-1, 1} {
		if p, ok := at(df, pawnRank); ok && is(p, chess.Pawn) {
			return true
		}
	}
	slide := func(dirs [][2]int, types ...chess.PieceType) bool {
		for _, d := range dirs {
			for step := 1; step < 8; step++ {
				p, ok := at(d[0]*step, d[1]*step)
				if !ok {
					break
				}
				if p == chess.NoPiece {
					continue
				}
				if is(p, types...) {
					return true
				}
				break
			}
		}
		return false
	}
	return slide(diagonals, chess.Bishop, chess.Queen) || slide(orthogonals, chess.Rook, chess.Queen)
}
