package gametree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadersPairs(t *testing.T) {
	h := Headers{
		Result: WhiteWon,
		White:  "Tal",
		Black:  "Botvinnik",
		Event:  "World Championship",
		FEN:    castlingFEN,
		Extra:  map[string]string{"Annotator": "me", "ECO": "B18", "Empty": ""},
	}
	var keys []string
	for _, p := range h.Pairs() {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, []string{"Event", "White", "Black", "Result", "Annotator", "ECO", "FEN"}, keys)
}

func TestHeadersClone(t *testing.T) {
	h := Headers{Extra: map[string]string{"ECO": "C20"}}
	c := h.Clone()
	c.Extra["ECO"] = "C50"
	assert.Equal(t, "C20", h.Extra["ECO"])
	assert.Nil(t, Headers{}.Clone().Extra)
}

func TestResultValid(t *testing.T) {
	for _, r := range []Result{NoResult, WhiteWon, BlackWon, Draw} {
		assert.True(t, r.Valid(), r)
	}
	for _, r := range []Result{"", "1-1", "draw"} {
		assert.False(t, r.Valid(), r)
	}
	assert.Equal(t, "1/2-1/2", Draw.String())
}
