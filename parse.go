package gametree

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
)

// Intent is a parsed request to move a piece. It carries no guarantee of
// legality until the tree accepts it.
type Intent struct {
	From      chess.Square
	To        chess.Square
	Promotion chess.PieceType
	// NeedsPromotion is set when the squares name a promotion but the input
	// did not say which piece.
	NeedsPromotion bool
	SAN            string
}

// UCI returns the intent in coordinate notation, e.g. "e7e8q".
func (i Intent) UCI() string {
	return i.From.String() + i.To.String() + promoSuffix(i.Promotion)
}

// ParseText resolves free-form move text against the legal moves of fen.
// Coordinate ("e2e4", "E2-E4", "e7e8q"), long algebraic ("Ng1f3") and SAN
// ("Nf3", "exd5", "e8=Q+", "O-O", "0-0-0") are accepted without regard to
// case; case only breaks ties such as "bc3" (pawn) versus "Bc3" (bishop).
// Text that matches no legal move, or several, returns ErrAmbiguousInput.
func ParseText(rules RuleEngine, text, fen string) (Intent, error) {
	raw := strings.Trim(strings.TrimSpace(text), ",;")
	if raw == "" {
		return Intent{}, fmt.Errorf("%w: empty input", ErrAmbiguousInput)
	}
	legal := rules.LegalMoves(fen)
	if len(legal) == 0 {
		return Intent{}, fmt.Errorf("%w: %q: no legal moves", ErrAmbiguousInput, raw)
	}
	if tok, ok := coordinateForm(raw); ok {
		return matchCoordinate(tok, raw, legal)
	}
	return matchSAN(raw, legal)
}

// ParseCompact decodes a 4 or 5 character origin/destination code such as
// "g1f3" or "a7a8q". Legality is not checked: annotation arrows may show
// illustrative moves.
func ParseCompact(code string) (Intent, error) {
	tok := strings.ToLower(strings.TrimSpace(code))
	if !isCoordinateMoveToken(tok) {
		return Intent{}, fmt.Errorf("%w: malformed move code %q", ErrAmbiguousInput, code)
	}
	intent := Intent{From: parseSquare(tok[0:2]), To: parseSquare(tok[2:4])}
	if len(tok) == 5 {
		intent.Promotion = parsePieceType(tok[4])
	}
	return intent, nil
}

// IsMoveCode reports whether s has the shape ParseCompact accepts.
func IsMoveCode(s string) bool {
	return isCoordinateMoveToken(strings.ToLower(strings.TrimSpace(s)))
}

// ArrowFromCompact builds an arrow annotation from a move code.
func ArrowFromCompact(code, brush string) (Shape, error) {
	intent, err := ParseCompact(code)
	if err != nil {
		return Shape{}, err
	}
	return Shape{Orig: intent.From, Dest: intent.To, Brush: brush}, nil
}

// coordinateForm lowercases raw and strips separators; it reports whether
// the result is a coordinate token.
func coordinateForm(raw string) (string, bool) {
	tok := strings.ToLower(raw)
	tok = strings.NewReplacer("-", "", "=", "", "x", "").Replace(tok)
	if isCoordinateMoveToken(tok) {
		return tok, true
	}
	// Long algebraic with a leading piece letter.
	if len(tok) >= 5 && strings.IndexByte("pnbrqk", tok[0]) >= 0 && isCoordinateMoveToken(tok[1:]) {
		return tok[1:], true
	}
	return "", false
}

func matchCoordinate(tok, raw string, legal []Candidate) (Intent, error) {
	from, to := parseSquare(tok[0:2]), parseSquare(tok[2:4])
	promo := chess.NoPieceType
	if len(tok) == 5 {
		promo = parsePieceType(tok[4])
	}

	var found *Candidate
	promotion := false
	for i := range legal {
		c := &legal[i]
		if c.From != from || c.To != to {
			continue
		}
		if c.Promotion != chess.NoPieceType {
			promotion = true
		}
		if c.Promotion == promo {
			found = c
		}
	}
	switch {
	case found != nil:
		return Intent{From: found.From, To: found.To, Promotion: found.Promotion, SAN: found.SAN}, nil
	case promotion && promo == chess.NoPieceType:
		return Intent{From: from, To: to, NeedsPromotion: true}, nil
	default:
		return Intent{}, fmt.Errorf("%w: %q matches no legal move", ErrAmbiguousInput, raw)
	}
}

func matchSAN(raw string, legal []Candidate) (Intent, error) {
	want := normalizeSAN(raw)

	var matches []Candidate
	for _, c := range legal {
		if normalizeSAN(c.SAN) == want {
			matches = append(matches, c)
		}
	}
	if len(matches) > 1 {
		exact := stripSAN(raw)
		var narrowed []Candidate
		for _, c := range matches {
			if stripSAN(c.SAN) == exact {
				narrowed = append(narrowed, c)
			}
		}
		matches = narrowed
	}
	switch len(matches) {
	case 1:
		c := matches[0]
		return Intent{From: c.From, To: c.To, Promotion: c.Promotion, SAN: c.SAN}, nil
	case 0:
		if intent, ok := matchBarePromotion(want, legal); ok {
			return intent, nil
		}
		return Intent{}, fmt.Errorf("%w: %q matches no legal move", ErrAmbiguousInput, raw)
	default:
		return Intent{}, fmt.Errorf("%w: %q matches %d legal moves", ErrAmbiguousInput, raw, len(matches))
	}
}

// matchBarePromotion handles SAN such as "e8" or "dxe8" that leaves the
// promotion piece out.
func matchBarePromotion(want string, legal []Candidate) (Intent, bool) {
	var intent Intent
	found := false
	for _, c := range legal {
		if c.Promotion == chess.NoPieceType {
			continue
		}
		san := normalizeSAN(c.SAN)
		if strings.TrimSuffix(san, c.Promotion.String()) != want {
			continue
		}
		if found && (intent.From != c.From || intent.To != c.To) {
			return Intent{}, false
		}
		intent = Intent{From: c.From, To: c.To, NeedsPromotion: true}
		found = true
	}
	return intent, found
}

// stripSAN removes annotation and capture marks but keeps case.
func stripSAN(s string) string {
	return strings.NewReplacer("+", "", "#", "", "!", "", "?", "", "x", "", "=", "").Replace(strings.TrimSpace(s))
}

func normalizeSAN(s string) string {
	s = strings.ToLower(stripSAN(s))
	switch strings.ReplaceAll(s, "0", "o") {
	case "o-o", "oo":
		return "o-o"
	case "o-o-o", "ooo":
		return "o-o-o"
	}
	return strings.ReplaceAll(s, "-", "")
}

func isFile(c byte) bool { return c >= 'a' && c <= 'h' }
func isRank(c byte) bool { return c >= '1' && c <= '8' }

func isCoordinateMoveToken(t string) bool {
	if len(t) != 4 && len(t) != 5 {
		return false
	}
	if !isFile(t[0]) || !isRank(t[1]) || !isFile(t[2]) || !isRank(t[3]) {
		return false
	}
	if len(t) == 5 {
		switch t[4] {
		case 'q', 'r', 'b', 'n':
			return true
		default:
			return false
		}
	}
	return true
}

// parseSquare converts a square name (e.g., "e4") into a Square.
func parseSquare(s string) chess.Square {
	const squareLen = 2
	if len(s) != squareLen || !isFile(s[0]) || !isRank(s[1]) {
		return chess.NoSquare
	}
	return chess.NewSquare(chess.File(s[0]-'a'), chess.Rank(s[1]-'1'))
}

// ParseSquare converts a square name such as "e4" (any case) into a Square,
// or chess.NoSquare.
func ParseSquare(s string) chess.Square {
	return parseSquare(strings.ToLower(strings.TrimSpace(s)))
}

// parsePieceType converts a lowercase piece letter into a PieceType.
func parsePieceType(c byte) chess.PieceType {
	switch c {
	case 'p':
		return chess.Pawn
	case 'n':
		return chess.Knight
	case 'b':
		return chess.Bishop
	case 'r':
		return chess.Rook
	case 'q':
		return chess.Queen
	case 'k':
		return chess.King
	default:
		return chess.NoPieceType
	}
}
