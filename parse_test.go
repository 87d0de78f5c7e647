package gametree

import (
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pawnOrBishopFEN = "4k3/8/8/8/8/2n5/1P1B4/4K3 w - - 0 1"
	twoKnightsFEN   = "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1"
	// A knight promoting on e8 attacks the king on g7.
	knightCheckFEN  = "8/4P1k1/8/8/8/8/8/4K3 w - - 0 1"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		fen   string
		want  Intent
		noSAN bool
	}{
		{name: "san pawn", text: "e4", fen: StartingFEN, want: Intent{From: chess.E2, To: chess.E4, SAN: "e4"}},
		{name: "san knight lowercase", text: "nf3", fen: StartingFEN, want: Intent{From: chess.G1, To: chess.F3, SAN: "Nf3"}},
		{name: "coordinate", text: "e2e4", fen: StartingFEN, want: Intent{From: chess.E2, To: chess.E4, SAN: "e4"}},
		{name: "coordinate upper with dash", text: " E2-E4 ", fen: StartingFEN, want: Intent{From: chess.E2, To: chess.E4, SAN: "e4"}},
		{name: "long algebraic", text: "Ng1f3", fen: StartingFEN, want: Intent{From: chess.G1, To: chess.F3, SAN: "Nf3"}},
		{name: "castle letters", text: "O-O", fen: castlingFEN, want: Intent{From: chess.E1, To: chess.G1, SAN: "O-O"}},
		{name: "castle zeros", text: "0-0-0", fen: castlingFEN, want: Intent{From: chess.E1, To: chess.C1, SAN: "O-O-O"}},
		{name: "pawn capture", text: "bxc3", fen: pawnOrBishopFEN, want: Intent{From: chess.B2, To: chess.C3, SAN: "bxc3"}},
		{name: "bishop capture", text: "Bxc3", fen: pawnOrBishopFEN, want: Intent{From: chess.D2, To: chess.C3, SAN: "Bxc3"}},
		{name: "lowercase breaks tie to pawn", text: "bc3", fen: pawnOrBishopFEN, want: Intent{From: chess.B2, To: chess.C3, SAN: "bxc3"}},
		{name: "san promotion with check", text: "e8=N", fen: knightCheckFEN, want: Intent{From: chess.E7, To: chess.E8, Promotion: chess.Knight, SAN: "e8=N+"}},
		{name: "san promotion with check mark", text: "e8=n+", fen: knightCheckFEN, want: Intent{From: chess.E7, To: chess.E8, Promotion: chess.Knight, SAN: "e8=N+"}},
		{name: "coordinate promotion", text: "e7e8q", fen: promotionFEN, want: Intent{From: chess.E7, To: chess.E8, Promotion: chess.Queen}, noSAN: true},
		{name: "coordinate without piece", text: "e7e8", fen: promotionFEN, want: Intent{From: chess.E7, To: chess.E8, NeedsPromotion: true}},
		{name: "san without piece", text: "e8", fen: promotionFEN, want: Intent{From: chess.E7, To: chess.E8, NeedsPromotion: true}},
		{name: "disambiguated knight", text: "Nbd2", fen: twoKnightsFEN, want: Intent{From: chess.B1, To: chess.D2, SAN: "Nbd2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseText(Rules{}, tt.text, tt.fen)
			require.NoError(t, err)
			if tt.noSAN {
				got.SAN = ""
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTextRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
		fen  string
	}{
		{name: "off board", text: "z9z9", fen: StartingFEN},
		{name: "empty", text: "  ", fen: StartingFEN},
		{name: "illegal coordinate", text: "e2e5", fen: StartingFEN},
		{name: "illegal san", text: "Qh5", fen: StartingFEN},
		{name: "ambiguous knight", text: "Nd2", fen: twoKnightsFEN},
		{name: "ambiguous case", text: "BC3", fen: pawnOrBishopFEN},
		{name: "wrong side", text: "e7e8q", fen: "7k/4P3/8/8/8/8/8/4K3 b - - 0 1"},
		{name: "checkmated", text: "Ke7", fen: scholarsMateFEN},
		{name: "invalid position", text: "e4", fen: "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseText(Rules{}, tt.text, tt.fen)
			assert.ErrorIs(t, err, ErrAmbiguousInput)
			assert.Equal(t, Intent{}, got)
		})
	}
}

func TestParseCompact(t *testing.T) {
	got, err := ParseCompact("g1f3")
	require.NoError(t, err)
	assert.Equal(t, Intent{From: chess.G1, To: chess.F3}, got)

	// Legality is not checked.
	got, err = ParseCompact("A7A8Q")
	require.NoError(t, err)
	assert.Equal(t, Intent{From: chess.A7, To: chess.A8, Promotion: chess.Queen}, got)
	assert.Equal(t, "a7a8q", got.UCI())

	for _, code := range []string{"", "e2", "e2e9", "i1a1", "e7e8k", "e2e4e5"} {
		_, err := ParseCompact(code)
		assert.ErrorIs(t, err, ErrAmbiguousInput, code)
	}
}

func TestArrowFromCompact(t *testing.T) {
	arrow, err := ArrowFromCompact("e2e4", BrushBlue)
	require.NoError(t, err)
	assert.Equal(t, Shape{Orig: chess.E2, Dest: chess.E4, Brush: BrushBlue}, arrow)
	assert.True(t, arrow.IsArrow())

	_, err = ArrowFromCompact("nope", BrushBlue)
	assert.ErrorIs(t, err, ErrAmbiguousInput)
}

func TestParseSquare(t *testing.T) {
	assert.Equal(t, chess.E4, ParseSquare("e4"))
	assert.Equal(t, chess.H8, ParseSquare(" H8"))
	assert.Equal(t, chess.NoSquare, ParseSquare("j1"))
	assert.Equal(t, chess.NoSquare, ParseSquare("e"))
	assert.True(t, IsMoveCode("E2E4"))
	assert.False(t, IsMoveCode("green"))
}
