package gametree

import (
	"context"
	"fmt"
	"sync"

	"github.com/corentings/chess/v2"
	"go.uber.org/zap"
)

const editQueueSize = 8

// Session is one analysis board: a tree, the promotion dialog, the board
// toggles and free-edit mode. It consumes discrete interaction events and
// produces Views. Methods must be called from a single goroutine; editor
// results come back through Edits and are applied with ResolveEdit on that
// same goroutine. Callers either keep draining Edits or call Close, which
// cancels the editor calls still in flight.
type Session struct {
	rules    RuleEngine
	tree     *Tree
	promoter Promoter
	cfg      Config
	editor   Editor
	editMode bool
	edits    chan EditResult
	err      error
	log      *zap.Logger

	closed   context.Context
	shutdown context.CancelFunc
	inflight sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger rejected interactions are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithEditor replaces the free-edit service.
func WithEditor(e Editor) Option {
	return func(s *Session) { s.editor = e }
}

// WithConfig sets the initial board toggles.
func WithConfig(c Config) Option {
	return func(s *Session) { s.cfg = c }
}

// WithRules replaces the rule engine.
func WithRules(r RuleEngine) Option {
	return func(s *Session) { s.rules = r }
}

// WithTree makes the session operate on an existing tree.
func WithTree(t *Tree) Option {
	return func(s *Session) { s.tree = t }
}

// NewSession returns a session on a fresh game unless WithTree is given.
func NewSession(opts ...Option) *Session {
	s := &Session{
		rules: Rules{},
		cfg:   DefaultConfig(),
		edits: make(chan EditResult, editQueueSize),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tree == nil {
		s.tree = NewTree(s.rules)
	}
	if s.editor == nil {
		s.editor = FreeEditor{Rules: s.rules}
	}
	s.closed, s.shutdown = context.WithCancel(context.Background())
	return s
}

// Close cancels pending editor calls and waits for them to return. Results
// not yet delivered on Edits are discarded. Close is idempotent.
func (s *Session) Close() {
	s.shutdown()
	s.inflight.Wait()
}

// Tree returns the session's game tree.
func (s *Session) Tree() *Tree {
	return s.tree
}

// Config returns the current toggles.
func (s *Session) Config() Config {
	return s.cfg
}

// SetConfig replaces the toggles used by subsequent events.
func (s *Session) SetConfig(c Config) {
	s.cfg = c
}

// EditMode reports whether free-edit mode is on.
func (s *Session) EditMode() bool {
	return s.editMode
}

// Err returns the last display-level error, nil after a successful event.
func (s *Session) Err() error {
	return s.err
}

// Edits delivers the results of editor calls started in free-edit mode.
func (s *Session) Edits() <-chan EditResult {
	return s.edits
}

// Drop handles a piece dragged from one square to another. In free-edit
// mode the editor is called asynchronously and the result arrives on Edits.
// A promotion-ambiguous pawn move opens the promotion dialog instead of
// moving.
func (s *Session) Drop(ctx context.Context, from, to chess.Square, mods Modifiers) error {
	if s.editMode {
		s.promoter.Cancel()
		return s.startEdit(ctx, from, to)
	}
	intent, ok := s.promoter.Drop(s.rules, s.tree.Current().Position(), from, to, mods, s.cfg)
	if !ok {
		s.log.Debug("awaiting promotion piece",
			zap.Stringer("from", from), zap.Stringer("to", to))
		s.err = nil
		return nil
	}
	return s.commit(intent)
}

// SubmitText handles a move typed by the player.
func (s *Session) SubmitText(ctx context.Context, text string) error {
	fen := s.tree.Current().Position()
	if s.editMode {
		// Free moves need not be legal, so coordinates are taken as typed.
		intent, err := ParseCompact(text)
		if err != nil {
			if intent, err = ParseText(s.rules, text, fen); err != nil {
				return s.fail(err)
			}
		}
		return s.startEdit(ctx, intent.From, intent.To)
	}
	intent, err := ParseText(s.rules, text, fen)
	if err != nil {
		return s.fail(err)
	}
	if intent.NeedsPromotion {
		return s.Drop(ctx, intent.From, intent.To, Modifiers{})
	}
	s.promoter.Cancel()
	return s.commit(intent)
}

// SelectPromotion completes a pending promotion with the chosen piece.
func (s *Session) SelectPromotion(piece chess.PieceType) error {
	intent, err := s.promoter.Select(piece)
	if err != nil {
		return s.fail(err)
	}
	return s.commit(intent)
}

// CancelPromotion abandons a pending promotion, e.g. after a click outside
// the dialog. Nothing is played.
func (s *Session) CancelPromotion() bool {
	return s.promoter.Cancel()
}

// SetShapes replaces the current node's annotations.
func (s *Session) SetShapes(shapes []Shape) {
	s.tree.SetShapes(shapes)
}

// SetScore attaches an evaluation to the current node.
func (s *Session) SetScore(score *Score) {
	s.tree.SetScore(score)
}

// ToggleOrientation flips the board.
func (s *Session) ToggleOrientation() {
	s.tree.ToggleOrientation()
}

// ToggleEditMode switches free-edit mode and returns the new state.
func (s *Session) ToggleEditMode() bool {
	s.promoter.Cancel()
	s.editMode = !s.editMode
	return s.editMode
}

// SetPosition overwrites the current position.
func (s *Session) SetPosition(fen string) error {
	if err := s.tree.SetPosition(fen); err != nil {
		return s.fail(err)
	}
	s.err = nil
	return nil
}

// SetHeaders replaces the game headers.
func (s *Session) SetHeaders(h Headers) {
	s.tree.SetHeaders(h)
}

// GoBack navigates to the previous node.
func (s *Session) GoBack() bool {
	s.promoter.Cancel()
	return s.tree.GoBack()
}

// GoForward navigates along the main line.
func (s *Session) GoForward() bool {
	s.promoter.Cancel()
	return s.tree.GoForward()
}

// GoTo makes the node with the given id current.
func (s *Session) GoTo(id string) error {
	s.promoter.Cancel()
	if err := s.tree.GoTo(id); err != nil {
		return s.fail(err)
	}
	return nil
}

// ResolveEdit applies an editor result to whatever node is current now.
// Callers that need strict ordering must drop stale results themselves.
func (s *Session) ResolveEdit(res EditResult) error {
	if res.Err != nil {
		return s.fail(fmt.Errorf("edit %s%s: %w", res.From, res.To, res.Err))
	}
	return s.SetPosition(res.Position)
}

// startEdit runs the editor off the caller's goroutine. The call and the
// delivery both stop when ctx is done or the session is closed.
func (s *Session) startEdit(ctx context.Context, from, to chess.Square) error {
	if s.closed.Err() != nil {
		return s.fail(ErrSessionClosed)
	}
	fen := s.tree.Current().Position()
	editor, edits, log := s.editor, s.edits, s.log
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.closed, cancel)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer stop()
		defer cancel()
		pos, err := editor.MakeMove(ctx, fen, from, to)
		select {
		case edits <- EditResult{From: from, To: to, Position: pos, Err: err}:
		case <-ctx.Done():
			log.Debug("edit result dropped",
				zap.Stringer("from", from), zap.Stringer("to", to), zap.Error(ctx.Err()))
		}
	}()
	s.err = nil
	return nil
}

func (s *Session) commit(intent Intent) error {
	if _, err := s.tree.ApplyMove(intent, s.cfg); err != nil {
		return s.fail(err)
	}
	s.err = nil
	return nil
}

func (s *Session) fail(err error) error {
	s.err = err
	s.log.Info("interaction rejected", zap.Error(err))
	return err
}

// View builds the render snapshot of the current node.
func (s *Session) View() View {
	cur := s.tree.Current()
	fen := cur.Position()
	v := View{
		NodeID:   cur.ID(),
		Position: fen,
		Turn:     s.rules.SideToMove(fen),
		Check:    s.rules.InCheck(fen),
		Material: Material(s.rules, fen),
		Headers:  s.tree.Headers(),
		EditMode: s.editMode,
		FreeMove: s.editMode,
		Err:      s.err,
	}
	if !s.editMode {
		v.Destinations = Destinations(s.rules, fen, s.cfg.ForcedEnPassant)
	}
	if m, ok := cur.Move(); ok {
		v.LastMove = &[2]chess.Square{m.From, m.To}
	}
	for _, shape := range cur.Shapes() {
		if shape.IsArrow() && !s.cfg.ShowArrows {
			continue
		}
		v.Shapes = append(v.Shapes, shape)
	}
	if pending, ok := s.promoter.Pending(); ok {
		v.Promotion = &PromotionPrompt{Move: pending, Choices: s.promoter.Choices()}
	}
	for _, n := range s.tree.Path() {
		if m, ok := n.Move(); ok {
			v.Line = append(v.Line, m.String())
		}
	}
	return v
}
