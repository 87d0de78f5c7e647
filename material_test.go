package gametree

import (
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
)

func TestMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want MaterialDiff
	}{
		{name: "starting position", fen: StartingFEN, want: MaterialDiff{}},
		{name: "extra white queen", fen: "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", want: MaterialDiff{Counts: [5]int{0, 0, 0, 0, 1}, Total: 9}},
		{name: "black up a rook for a knight", fen: "r3k3/8/8/8/8/8/8/1N2K3 w - - 0 1", want: MaterialDiff{Counts: [5]int{0, 1, 0, -1, 0}, Total: -2}},
		{name: "kings are not counted", fen: bareKingsFEN, want: MaterialDiff{}},
		{name: "malformed", fen: "not a position", want: MaterialDiff{}},
		{name: "empty", fen: "", want: MaterialDiff{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Material(Rules{}, tt.fen))
		})
	}
}

func TestMaterialGlyphs(t *testing.T) {
	d := MaterialDiff{Counts: [5]int{2, 0, -1, 0, 1}, Total: 8}
	assert.Equal(t, []chess.Piece{chess.WhitePawn, chess.WhitePawn, chess.WhiteQueen}, d.Glyphs(chess.White))
	assert.Equal(t, []chess.Piece{chess.BlackBishop}, d.Glyphs(chess.Black))
	assert.Equal(t, 8, d.Advantage(chess.White))
	assert.Equal(t, 0, d.Advantage(chess.Black))
	assert.Empty(t, MaterialDiff{}.Glyphs(chess.White))
}
