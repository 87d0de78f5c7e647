package gametree

import "github.com/corentings/chess/v2"

// MaterialTypes lists the counted piece types in display order.
var MaterialTypes = [5]chess.PieceType{chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen}

var materialValues = [5]int{1, 3, 3, 5, 9}

// MaterialDiff is the material balance of a position. Positive numbers
// favour white.
type MaterialDiff struct {
	// Counts holds white's count minus black's count, indexed like MaterialTypes.
	Counts [5]int
	// Total weighs Counts by 1, 3, 3, 5, 9.
	Total int
}

// Material counts the pieces of fen. Malformed input returns the zero value.
func Material(rules RuleEngine, fen string) MaterialDiff {
	var diff MaterialDiff
	pos, err := rules.Parse(fen)
	if err != nil {
		return diff
	}
	for _, p := range pos.Board().SquareMap() {
		i := materialIndex(p.Type())
		if i < 0 {
			continue
		}
		switch p.Color() {
		case chess.White:
			diff.Counts[i]++
		case chess.Black:
			diff.Counts[i]--
		}
	}
	for i, n := range diff.Counts {
		diff.Total += n * materialValues[i]
	}
	return diff
}

func materialIndex(t chess.PieceType) int {
	for i, mt := range MaterialTypes {
		if mt == t {
			return i
		}
	}
	return -1
}

// Glyphs lists the pieces c has in surplus, one entry per extra piece, in
// display order.
func (d MaterialDiff) Glyphs(c chess.Color) []chess.Piece {
	sign := 1
	if c == chess.Black {
		sign = -1
	}
	var out []chess.Piece
	for i, n := range d.Counts {
		for k := 0; k < n*sign; k++ {
			out = append(out, chess.NewPiece(MaterialTypes[i], c))
		}
	}
	return out
}

// Advantage returns the points c is ahead by, or 0.
func (d MaterialDiff) Advantage(c chess.Color) int {
	lead := d.Total
	if c == chess.Black {
		lead = -lead
	}
	if lead < 0 {
		return 0
	}
	return lead
}
