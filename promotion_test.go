package gametree

import (
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blackPromotionFEN = "4k3/8/8/8/8/8/3p4/7K b - - 0 1"

func TestPromoterNonPromotionCommitsDirectly(t *testing.T) {
	var p Promoter
	intent, ok := p.Drop(Rules{}, StartingFEN, chess.E2, chess.E4, Modifiers{}, Config{})
	require.True(t, ok)
	assert.Equal(t, Intent{From: chess.E2, To: chess.E4}, intent)
	assert.Equal(t, Idle, p.State())
}

func TestPromoterAwaitsSelection(t *testing.T) {
	var p Promoter
	_, ok := p.Drop(Rules{}, promotionFEN, chess.E7, chess.E8, Modifiers{}, Config{})
	require.False(t, ok)
	assert.Equal(t, AwaitingSelection, p.State())

	pending, ok := p.Pending()
	require.True(t, ok)
	assert.Equal(t, PendingMove{From: chess.E7, To: chess.E8, Color: chess.White}, pending)
	assert.Equal(t, []chess.PieceType{chess.Queen, chess.Knight, chess.Rook, chess.Bishop}, p.Choices())

	intent, err := p.Select(chess.Knight)
	require.NoError(t, err)
	assert.Equal(t, Intent{From: chess.E7, To: chess.E8, Promotion: chess.Knight}, intent)
	assert.Equal(t, Idle, p.State())
	assert.Nil(t, p.Choices())
}

func TestPromoterBlackChoicesReversed(t *testing.T) {
	var p Promoter
	_, ok := p.Drop(Rules{}, blackPromotionFEN, chess.D2, chess.D1, Modifiers{}, Config{})
	require.False(t, ok)
	assert.Equal(t, []chess.PieceType{chess.Bishop, chess.Rook, chess.Knight, chess.Queen}, p.Choices())
}

func TestPromoterAutoPromote(t *testing.T) {
	var p Promoter
	cfg := Config{AutoPromote: true}
	intent, ok := p.Drop(Rules{}, promotionFEN, chess.E7, chess.E8, Modifiers{}, cfg)
	require.True(t, ok)
	assert.Equal(t, Intent{From: chess.E7, To: chess.E8, Promotion: chess.Queen}, intent)
	assert.Equal(t, Idle, p.State())

	// The modifier forces the dialog anyway.
	_, ok = p.Drop(Rules{}, promotionFEN, chess.E7, chess.E8, Modifiers{ForceDialog: true}, cfg)
	assert.False(t, ok)
	assert.Equal(t, AwaitingSelection, p.State())
}

func TestPromoterCancel(t *testing.T) {
	var p Promoter
	assert.False(t, p.Cancel())

	p.Drop(Rules{}, promotionFEN, chess.E7, chess.E8, Modifiers{}, Config{})
	assert.True(t, p.Cancel())
	assert.Equal(t, Idle, p.State())
	_, ok := p.Pending()
	assert.False(t, ok)

	_, err := p.Select(chess.Queen)
	assert.ErrorIs(t, err, ErrNoPendingPromotion)
}

func TestPromoterRejectsInvalidPiece(t *testing.T) {
	var p Promoter
	p.Drop(Rules{}, promotionFEN, chess.E7, chess.E8, Modifiers{}, Config{})
	for _, pt := range []chess.PieceType{chess.King, chess.Pawn, chess.NoPieceType} {
		_, err := p.Select(pt)
		assert.ErrorIs(t, err, ErrInvalidPromotion)
		assert.Equal(t, AwaitingSelection, p.State(), "an invalid choice keeps the dialog open")
	}
}

func TestPromoterNewDropAbandonsPending(t *testing.T) {
	var p Promoter
	p.Drop(Rules{}, promotionFEN, chess.E7, chess.E8, Modifiers{}, Config{})
	intent, ok := p.Drop(Rules{}, promotionFEN, chess.E1, chess.D1, Modifiers{}, Config{})
	require.True(t, ok)
	assert.Equal(t, Intent{From: chess.E1, To: chess.D1}, intent)
	assert.Equal(t, Idle, p.State())
}

// Every pawn move to the last rank ends in a commit with a promotable piece
// or a cancel.
func TestPromoterTotality(t *testing.T) {
	pieces := []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}
	for _, auto := range []bool{false, true} {
		for _, force := range []bool{false, true} {
			for _, choice := range append(pieces, chess.NoPieceType) {
				var p Promoter
				intent, ok := p.Drop(Rules{}, promotionFEN, chess.E7, chess.E8,
					Modifiers{ForceDialog: force}, Config{AutoPromote: auto})
				if !ok {
					if choice == chess.NoPieceType {
						assert.True(t, p.Cancel())
						assert.Equal(t, Idle, p.State())
						continue
					}
					var err error
					intent, err = p.Select(choice)
					require.NoError(t, err)
				}
				assert.Contains(t, pieces, intent.Promotion)
				assert.Equal(t, Idle, p.State())
			}
		}
	}
}
