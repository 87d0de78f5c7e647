package gametree

import (
	"slices"

	"github.com/corentings/chess/v2"
	"golang.org/x/exp/maps"
)

// A Result is the result of a game as written in its headers.
type Result string

const (
	// NoResult indicates that a game is in progress or ended without a result.
	NoResult Result = "*"
	// WhiteWon indicates that white won the game.
	WhiteWon Result = "1-0"
	// BlackWon indicates that black won the game.
	BlackWon Result = "0-1"
	// Draw indicates that game was a draw.
	Draw Result = "1/2-1/2"
)

// String implements the fmt.Stringer interface.
func (r Result) String() string {
	return string(r)
}

// Valid reports whether r is one of the four header results.
func (r Result) Valid() bool {
	switch r {
	case NoResult, WhiteWon, BlackWon, Draw:
		return true
	}
	return false
}

// Headers is the game metadata. A tree holds exactly one value and replaces
// it wholesale on every change.
type Headers struct {
	Result      Result
	Orientation chess.Color // board orientation, white or black
	Event       string
	Site        string
	Date        string
	Round       string
	White       string
	Black       string
	FEN         string            // starting position when not the standard one
	Extra       map[string]string // any other tag pairs
}

// DefaultHeaders returns headers for a fresh game viewed from white.
func DefaultHeaders() Headers {
	return Headers{Result: NoResult, Orientation: chess.White}
}

// Clone returns a copy of h that shares no mutable state with it.
func (h Headers) Clone() Headers {
	if h.Extra != nil {
		h.Extra = maps.Clone(h.Extra)
	}
	return h
}

// TagPair is one key/value header entry.
type TagPair struct {
	Key   string
	Value string
}

// Pairs returns the non-empty headers as tag pairs, with the standard seven
// tags first and the rest sorted by key.
func (h Headers) Pairs() []TagPair {
	pairs := make([]TagPair, 0, len(h.Extra)+8)
	add := func(k, v string) {
		if v != "" {
			pairs = append(pairs, TagPair{Key: k, Value: v})
		}
	}
	add("Event", h.Event)
	add("Site", h.Site)
	add("Date", h.Date)
	add("Round", h.Round)
	add("White", h.White)
	add("Black", h.Black)
	add("Result", h.Result.String())
	add("FEN", h.FEN)
	for k, v := range h.Extra {
		add(k, v)
	}
	slices.SortFunc(pairs, cmpTags)
	return pairs
}

var standardTags = []string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// Compares two tags to determine in which order they should be brought up
func cmpTags(a, b TagPair) int {
	if a.Key == b.Key {
		return 0
	}

	for _, req := range standardTags {
		if a.Key == req {
			return -1
		}
		if b.Key == req {
			return +1
		}
	}

	if a.Key < b.Key {
		return -1
	} else if b.Key < a.Key {
		return +1
	}
	return 0
}
