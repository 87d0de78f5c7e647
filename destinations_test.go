package gametree

import (
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
)

func countDestinations(dests map[chess.Square][]chess.Square) int {
	n := 0
	for _, to := range dests {
		n += len(to)
	}
	return n
}

func TestDestinationsStartingPosition(t *testing.T) {
	dests := Destinations(Rules{}, StartingFEN, false)
	assert.Len(t, dests, 10) // eight pawns and two knights
	assert.Equal(t, 20, countDestinations(dests))
	assert.ElementsMatch(t, []chess.Square{chess.A3, chess.C3}, dests[chess.B1])
	_, ok := dests[chess.E7]
	assert.False(t, ok, "black pieces must not be movable")
}

func TestDestinationsEmpty(t *testing.T) {
	for _, fen := range []string{scholarsMateFEN, stalemateFEN, "garbage"} {
		dests := Destinations(Rules{}, fen, false)
		assert.NotNil(t, dests, fen)
		assert.Empty(t, dests, fen)
	}
}

func TestDestinationsForcedEnPassant(t *testing.T) {
	free := Destinations(Rules{}, enPassantFEN, false)
	assert.Contains(t, free[chess.E5], chess.D6)
	assert.Greater(t, len(free), 1)

	forced := Destinations(Rules{}, enPassantFEN, true)
	assert.Equal(t, map[chess.Square][]chess.Square{chess.E5: {chess.D6}}, forced)
}

func TestDestinationsForcedEnPassantWithoutCapture(t *testing.T) {
	// The flag changes nothing when no en-passant capture is available.
	assert.Equal(t,
		countDestinations(Destinations(Rules{}, StartingFEN, false)),
		countDestinations(Destinations(Rules{}, StartingFEN, true)))
}
