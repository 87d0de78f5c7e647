package gametree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/corentings/chess/v2"
	"github.com/google/uuid"
)

// A Tree is a single game: a tree of positions, a current node and the game
// headers. It is not safe for concurrent use; one session owns it.
type Tree struct {
	rules   RuleEngine
	root    *Node
	current *Node
	index   map[string]*Node
	headers Headers
}

// NewTree returns a tree holding the standard starting position.
// Optional functions can be provided to configure the initial state.
//
// Example:
//
//	tree := NewTree(Rules{}, WithHeaders(Headers{White: "Carlsen", Result: NoResult}))
func NewTree(rules RuleEngine, options ...func(*Tree)) *Tree {
	root := &Node{id: uuid.NewString(), position: StartingFEN}
	t := &Tree{
		rules:   rules,
		root:    root,
		current: root,
		index:   map[string]*Node{root.id: root},
		headers: DefaultHeaders(),
	}
	for _, f := range options {
		if f != nil {
			f(t)
		}
	}
	return t
}

// NewTreeFromFEN returns a tree whose root holds fen.
func NewTreeFromFEN(rules RuleEngine, fen string, options ...func(*Tree)) (*Tree, error) {
	t := NewTree(rules, options...)
	if err := t.SetPosition(fen); err != nil {
		return nil, err
	}
	t.updateResult()
	return t, nil
}

// WithHeaders returns a tree option replacing the default headers.
func WithHeaders(h Headers) func(*Tree) {
	return func(t *Tree) {
		t.SetHeaders(h)
	}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Current returns the displayed node.
func (t *Tree) Current() *Node {
	return t.current
}

// Node returns the node with the given id.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.index[id]
	return n, ok
}

// Parent returns the parent of n, or nil for the root.
func (t *Tree) Parent(n *Node) *Node {
	if n == nil || n.parentID == "" {
		return nil
	}
	return t.index[n.parentID]
}

// Headers returns a snapshot of the headers.
func (t *Tree) Headers() Headers {
	return t.headers.Clone()
}

// ApplyMove plays intent from the current node. If the current node already
// has a child for the same move it becomes current instead of a duplicate
// being added. With cfg.NoVariations, any move from a node that already has
// a child is rejected with ErrVariationRejected; only leaves can be extended. When the resulting position ends
// the game and no result is recorded yet, the headers' result is set.
// On error the tree is unchanged.
func (t *Tree) ApplyMove(intent Intent, cfg Config) (*Node, error) {
	if intent.NeedsPromotion {
		return nil, fmt.Errorf("%w: %s needs a promotion piece", ErrIllegalMove, intent.UCI())
	}
	next, played, err := t.rules.Play(t.current.position, intent.From, intent.To, intent.Promotion)
	if err != nil {
		return nil, err
	}

	if cfg.NoVariations && len(t.current.children) > 0 {
		return nil, fmt.Errorf("%w: %s played from %s, which already has a continuation",
			ErrVariationRejected, intent.UCI(), t.current.id)
	}
	if existing := t.current.findChild(intent); existing != nil {
		t.current = existing
		t.updateResult()
		return existing, nil
	}

	node := &Node{
		id:       uuid.NewString(),
		parentID: t.current.id,
		position: next,
		move: &Move{
			From:      played.From,
			To:        played.To,
			Promotion: played.Promotion,
			SAN:       played.SAN,
		},
	}
	t.current.children = append(t.current.children, node)
	t.index[node.id] = node
	t.current = node
	t.updateResult()
	return node, nil
}

// updateResult records the outcome of a terminal current position unless a
// result is already set.
func (t *Tree) updateResult() {
	if t.headers.Result != NoResult {
		return
	}
	term := t.rules.Terminal(t.current.position)
	if term.Kind == NotTerminal {
		return
	}
	h := t.headers.Clone()
	h.Result = term.Result()
	t.headers = h
}

// SetPosition overwrites the current node's position in place; no node is
// created. At the root the headers' FEN follows the new position.
func (t *Tree) SetPosition(fen string) error {
	norm, err := t.rules.Normalize(fen)
	if err != nil {
		if !errors.Is(err, ErrInvalidPosition) {
			err = fmt.Errorf("%w: %v", ErrInvalidPosition, err)
		}
		return err
	}
	t.current.position = norm
	if t.current == t.root {
		h := t.headers.Clone()
		h.FEN = norm
		if norm == StartingFEN {
			h.FEN = ""
		}
		t.headers = h
	}
	return nil
}

// SetHeaders replaces the headers. An empty result is read as NoResult and
// an unset orientation as white.
func (t *Tree) SetHeaders(h Headers) {
	h = h.Clone()
	if h.Result == "" {
		h.Result = NoResult
	}
	if h.Orientation != chess.White && h.Orientation != chess.Black {
		h.Orientation = chess.White
	}
	t.headers = h
}

// SetShapes replaces the current node's annotations.
func (t *Tree) SetShapes(shapes []Shape) {
	t.current.shapes = slices.Clone(shapes)
}

// SetScore attaches an evaluation to the current node; nil clears it.
func (t *Tree) SetScore(score *Score) {
	if score == nil {
		t.current.score = nil
		return
	}
	s := *score
	t.current.score = &s
}

// ToggleOrientation flips the board orientation.
func (t *Tree) ToggleOrientation() {
	h := t.headers.Clone()
	h.Orientation = h.Orientation.Other()
	t.headers = h
}

// GoBack navigates to the parent of the current node.
// Returns false at the root.
func (t *Tree) GoBack() bool {
	if parent := t.Parent(t.current); parent != nil {
		t.current = parent
		return true
	}
	return false
}

// GoForward navigates to the main-line child of the current node.
// Returns false at the end of a line.
func (t *Tree) GoForward() bool {
	if len(t.current.children) > 0 {
		t.current = t.current.children[0]
		return true
	}
	return false
}

// GoTo makes the node with the given id current.
func (t *Tree) GoTo(id string) error {
	n, ok := t.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	t.current = n
	return nil
}

// NavigateToMainLine walks up from the current node until it stands on the
// main line (the first child at every level).
func (t *Tree) NavigateToMainLine() {
	for !t.isMainLine(t.current) {
		t.current = t.Parent(t.current)
	}
}

func (t *Tree) isMainLine(n *Node) bool {
	for parent := t.Parent(n); parent != nil; n, parent = parent, t.Parent(parent) {
		if parent.children[0] != n {
			return false
		}
	}
	return true
}

// IsAtStart returns true if the current node is the root.
func (t *Tree) IsAtStart() bool {
	return t.current == t.root
}

// IsAtEnd returns true if the current node has no children.
func (t *Tree) IsAtEnd() bool {
	return t.current.IsLeaf()
}

// MainLine returns the nodes of the main line, root excluded.
func (t *Tree) MainLine() []*Node {
	var line []*Node
	for n := t.root; len(n.children) > 0; n = n.children[0] {
		line = append(line, n.children[0])
	}
	return line
}

// Variations returns the alternatives to the main-line child of n.
func (t *Tree) Variations(n *Node) []*Node {
	if n == nil || len(n.children) <= 1 {
		return nil
	}
	return slices.Clone(n.children[1:])
}

// Path returns the nodes from the root to the current node, root included.
func (t *Tree) Path() []*Node {
	var path []*Node
	for n := t.current; n != nil; n = t.Parent(n) {
		path = append(path, n)
	}
	slices.Reverse(path)
	return path
}

// LastMove returns the move that led to the current node.
func (t *Tree) LastMove() (Move, bool) {
	return t.current.Move()
}

// PromoteVariation moves the node with the given id to the front of its
// siblings, making it the main line from its parent.
func (t *Tree) PromoteVariation(id string) error {
	n, ok := t.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	parent := t.Parent(n)
	if parent == nil {
		return nil
	}
	children := parent.children
	for i, child := range children {
		if child == n {
			copy(children[1:i+1], children[:i])
			children[0] = n
			break
		}
	}
	return nil
}
