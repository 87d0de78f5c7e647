package gametree

import "github.com/corentings/chess/v2"

// Destinations maps every origin square of the side to move to its legal
// destination squares. With forcedEnPassant set, and at least one en-passant
// capture available, only en-passant captures are exposed. An invalid or
// finished position yields an empty map.
func Destinations(rules RuleEngine, fen string, forcedEnPassant bool) map[chess.Square][]chess.Square {
	dests := make(map[chess.Square][]chess.Square)
	pos, err := rules.Parse(fen)
	if err != nil {
		return dests
	}
	turn := pos.Turn()
	for sq, p := range pos.Board().SquareMap() {
		if p == chess.NoPiece || p.Color() != turn {
			continue
		}
		if to := rules.LegalDestinations(fen, sq); len(to) > 0 {
			dests[sq] = to
		}
	}
	if forcedEnPassant {
		if ep := enPassantOnly(rules, fen, dests); len(ep) > 0 {
			return ep
		}
	}
	return dests
}

// enPassantOnly keeps the pawn moves that land diagonally on the en-passant
// target square.
func enPassantOnly(rules RuleEngine, fen string, dests map[chess.Square][]chess.Square) map[chess.Square][]chess.Square {
	target := rules.EnPassantSquare(fen)
	if target == chess.NoSquare {
		return nil
	}
	out := make(map[chess.Square][]chess.Square)
	for from, tos := range dests {
		if rules.PieceAt(fen, from).Type() != chess.Pawn || from.File() == target.File() {
			continue
		}
		for _, to := range tos {
			if to == target {
				out[from] = []chess.Square{to}
			}
		}
	}
	return out
}
