package gametree

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/corentings/chess/v2"
)

// Editor is the native position-editor service used in free-edit mode.
// Calls may block; a session runs them off the interaction path.
type Editor interface {
	MakeMove(ctx context.Context, fen string, from, to chess.Square) (string, error)
}

// EditResult is the outcome of one editor call.
type EditResult struct {
	From     chess.Square
	To       chess.Square
	Position string
	Err      error
}

// FreeEditor is an in-process Editor. It moves whatever stands on the
// origin square to the destination, ignoring legality. Castling rights
// touched by the move are dropped, the en-passant square is cleared, and the
// side to move is kept.
type FreeEditor struct {
	Rules RuleEngine
}

var _ Editor = FreeEditor{}

// MakeMove implements Editor.
func (e FreeEditor) MakeMove(ctx context.Context, fen string, from, to chess.Square) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rules := e.Rules
	if rules == nil {
		rules = Rules{}
	}
	pos, err := rules.Parse(fen)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(pos.String())
	if len(fields) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPosition, fen)
	}

	squares := pos.Board().SquareMap()
	piece, ok := squares[from]
	if !ok || piece == chess.NoPiece {
		return "", fmt.Errorf("%w: no piece on %s", ErrIllegalMove, from)
	}
	if from == to {
		return pos.String(), nil
	}
	delete(squares, from)
	squares[to] = piece

	fields[0] = placement(squares)
	fields[2] = dropCastling(fields[2], from, to)
	fields[3] = "-"
	return strings.Join(fields, " "), nil
}

// placement renders the board field of a FEN.
func placement(squares map[chess.Square]chess.Piece) string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p, ok := squares[chess.NewSquare(chess.File(f), chess.Rank(r))]
			if !ok || p == chess.NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(fenRune(p))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func fenRune(p chess.Piece) rune {
	r := rune(p.Type().String()[0])
	if p.Color() == chess.White {
		return unicode.ToUpper(r)
	}
	return r
}

// castlingSquares names the squares whose pieces carry each castling right.
var castlingSquares = map[byte][]chess.Square{
	'K': {chess.E1, chess.H1},
	'Q': {chess.E1, chess.A1},
	'k': {chess.E8, chess.H8},
	'q': {chess.E8, chess.A8},
}

func dropCastling(rights string, from, to chess.Square) string {
	if rights == "-" {
		return rights
	}
	var kept strings.Builder
	for i := 0; i < len(rights); i++ {
		squares := castlingSquares[rights[i]]
		touched := false
		for _, sq := range squares {
			if sq == from || sq == to {
				touched = true
			}
		}
		if !touched {
			kept.WriteByte(rights[i])
		}
	}
	if kept.Len() == 0 {
		return "-"
	}
	return kept.String()
}
