package app

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaminalder/codex-bridgit/internal/ai"
	"github.com/jaminalder/codex-bridgit/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound     = errors.New("game not found")
	ErrUnknownMode  = errors.New("unknown mode")
	ErrAIThinking   = errors.New("ai is thinking")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrOutsideBoard = errors.New("no dot at that position")
	ErrStalemate    = errors.New("no legal move left")
)

// AISide is the colour the computer plays in AI modes.
const AISide = domain.Red

// GameState is a snapshot of one session.
type GameState struct {
	ID        string    `json:"id"`
	Mode      Mode      `json:"mode"`
	View      View      `json:"view"`
	Thinking  bool      `json:"thinking"`
	Stalemate bool      `json:"stalemate"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// Over reports whether no further input is accepted.
func (gs GameState) Over() bool { return gs.View.Winner != "" || gs.Stalemate }

type session struct {
	mu        sync.Mutex
	id        string
	mode      Mode
	game      *domain.Game
	ai        *ai.Player
	thinking  bool
	stalemate bool
	gen       uint64
	created   time.Time
	updated   time.Time
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers.
type Service struct {
	mu      sync.Mutex
	games   map[string]*session
	subs    map[string]map[*subscriber]struct{}
	render  func(GameState) []byte
	layout  domain.GridLayout
	aiDelay time.Duration
	aiOpts  []ai.Option
	seeded  bool
	seed    int64
	logger  *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRenderer sets the broadcast payload encoder.
func WithRenderer(renderer func(GameState) []byte) Option {
	return func(s *Service) { s.render = renderer }
}

// WithLayout sets the board geometry for new games.
func WithLayout(l domain.GridLayout) Option {
	return func(s *Service) { s.layout = l }
}

// WithAIDelay sets the pause before the AI answers.
func WithAIDelay(d time.Duration) Option {
	return func(s *Service) { s.aiDelay = d }
}

// WithAIOptions passes options to every AI player created.
func WithAIOptions(opts ...ai.Option) Option {
	return func(s *Service) { s.aiOpts = append(s.aiOpts, opts...) }
}

// WithAISeed gives every AI player its own random source, seeded from seed
// and incremented per player. A *rand.Rand is not safe for concurrent use,
// so a source passed through WithAIOptions must not be shared by sessions.
func WithAISeed(seed int64) Option {
	return func(s *Service) {
		s.seeded = true
		s.seed = seed
	}
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a service with no AI delay and a renderer that encodes nothing.
func NewService(opts ...Option) *Service {
	s := &Service{
		games:  make(map[string]*session),
		subs:   make(map[string]map[*subscriber]struct{}),
		layout: domain.DefaultLayout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.render == nil {
		s.render = func(GameState) []byte { return nil }
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateGame creates and registers a new game in mode.
func (s *Service) CreateGame(mode Mode) (*GameState, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	now := time.Now()
	sess := &session{id: uuid.NewString(), created: now}
	sess.start(mode, s.layout, s.playerOptions(), now)

	s.mu.Lock()
	s.games[sess.id] = sess
	s.mu.Unlock()

	s.logger.Printf("[app] game %s created mode=%s", sess.id, mode)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	gs := s.snapshotLocked(sess)
	return &gs, nil
}

func (sess *session) start(mode Mode, layout domain.GridLayout, aiOpts []ai.Option, now time.Time) {
	sess.mode = mode
	sess.game = domain.New(layout)
	sess.ai = nil
	if d, ok := mode.Difficulty(); ok {
		sess.ai = ai.New(AISide, d, aiOpts...)
	}
	sess.thinking = false
	sess.stalemate = false
	sess.gen++
	sess.updated = now
}

// playerOptions returns the options for one new AI player.
func (s *Service) playerOptions() []ai.Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	opts := append([]ai.Option(nil), s.aiOpts...)
	if s.seeded {
		opts = append(opts, ai.WithRand(rand.New(rand.NewSource(s.seed))))
		s.seed++
	}
	return opts
}

func (s *Service) lookup(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.games[id]
	return sess, ok
}

// Get returns a snapshot of the game if present.
func (s *Service) Get(id string) (*GameState, bool) {
	sess, ok := s.lookup(id)
	if !ok {
		return nil, false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	gs := s.snapshotLocked(sess)
	return &gs, true
}

// Reset starts a fresh game in the same session. A pending AI turn is discarded.
func (s *Service) Reset(id string, mode Mode) (*GameState, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	sess, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	opts := s.playerOptions()
	sess.mu.Lock()
	sess.start(mode, s.layout, opts, time.Now())
	gs := s.snapshotLocked(sess)
	sess.mu.Unlock()

	s.logger.Printf("[app] game %s reset mode=%s", id, mode)
	s.broadcast(id, gs)
	return &gs, nil
}

// Click handles a press on the dot at row, col of the side to move: the
// first press selects, pressing the selection again clears it, and a press
// on another dot attempts a link from the selection. Pressing where the
// side to move has no dot clears the selection.
func (s *Service) Click(id string, row, col int) (*GameState, error) {
	sess, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess.mu.Lock()
	if err := sess.acceptInput(); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	g := sess.game
	dot := g.Dot(g.CurrentPlayer(), row, col)
	sel := g.Selected()

	var err error
	moved := false
	switch {
	case dot == nil:
		g.ClearSelection()
		err = ErrOutsideBoard
	case sel == nil:
		g.Select(dot)
	case sel == dot:
		g.ClearSelection()
	default:
		g.ClearSelection()
		err = g.Play(sel, dot)
		moved = err == nil
	}
	if moved {
		s.afterMoveLocked(sess)
	}
	sess.updated = time.Now()
	gs := s.snapshotLocked(sess)
	sess.mu.Unlock()

	s.broadcast(id, gs)
	return &gs, err
}

// Move links two dots of the side to move in one call.
func (s *Service) Move(id string, fromRow, fromCol, toRow, toCol int) (*GameState, error) {
	sess, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	sess.mu.Lock()
	if err := sess.acceptInput(); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	g := sess.game
	p := g.CurrentPlayer()
	from, to := g.Dot(p, fromRow, fromCol), g.Dot(p, toRow, toCol)
	if from == nil || to == nil {
		sess.mu.Unlock()
		return nil, ErrOutsideBoard
	}
	if from == to {
		sess.mu.Unlock()
		return nil, domain.ErrNotAdjacent
	}
	g.ClearSelection()
	if err := g.Play(from, to); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	s.afterMoveLocked(sess)
	sess.updated = time.Now()
	gs := s.snapshotLocked(sess)
	sess.mu.Unlock()

	s.broadcast(id, gs)
	return &gs, nil
}

func (sess *session) acceptInput() error {
	switch {
	case sess.thinking:
		return ErrAIThinking
	case sess.game.Over():
		return domain.ErrGameOver
	case sess.stalemate:
		return ErrStalemate
	case sess.ai != nil && sess.game.CurrentPlayer() == sess.ai.Side():
		return ErrNotYourTurn
	}
	return nil
}

// afterMoveLocked marks a stalemate when the side to move is stuck and
// otherwise hands the turn to the AI when it is the AI's move.
func (s *Service) afterMoveLocked(sess *session) {
	g := sess.game
	if g.Over() {
		s.logger.Printf("[app] game %s won by %s", sess.id, g.Winner())
		return
	}
	if len(ai.LegalMoves(g, g.CurrentPlayer())) == 0 {
		sess.stalemate = true
		s.logger.Printf("[app] game %s stalemate: %s has no legal move", sess.id, g.CurrentPlayer())
		return
	}
	if sess.ai != nil && g.CurrentPlayer() == sess.ai.Side() {
		sess.thinking = true
		gen := sess.gen
		time.AfterFunc(s.aiDelay, func() { s.playAI(sess, gen) })
	}
}

func (s *Service) playAI(sess *session, gen uint64) {
	sess.mu.Lock()
	if sess.gen != gen || !sess.thinking {
		sess.mu.Unlock()
		return
	}
	m, ok := sess.ai.FindBestMove(sess.game)
	sess.thinking = false
	if ok && sess.game.TryMakeLink(m.From, m.To) {
		s.logger.Printf("[app] game %s ai %s linked (%d,%d)-(%d,%d)",
			sess.id, sess.ai.Difficulty(), m.From.Row, m.From.Col, m.To.Row, m.To.Col)
		s.afterMoveLocked(sess)
	} else {
		sess.stalemate = true
		s.logger.Printf("[app] game %s stalemate: ai has no legal move", sess.id)
	}
	sess.updated = time.Now()
	gs := s.snapshotLocked(sess)
	id := sess.id
	sess.mu.Unlock()

	s.broadcast(id, gs)
}

func (s *Service) snapshotLocked(sess *session) GameState {
	return GameState{
		ID:        sess.id,
		Mode:      sess.mode,
		View:      newView(sess.game, s.layout.Width(), s.layout.Height()),
		Thinking:  sess.thinking,
		Stalemate: sess.stalemate,
		Created:   sess.created,
		Updated:   sess.updated,
	}
}

func (s *Service) broadcast(id string, gs GameState) {
	var toDrop []*subscriber

	s.mu.Lock()
	subs := s.copySubsLocked(id)
	render := s.render
	s.mu.Unlock()
	if len(subs) == 0 {
		return
	}
	payload := render(gs)

	// Fan-out; drop slow subscribers by closing and marking for deletion
	for sub := range subs {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	if len(toDrop) > 0 {
		s.mu.Lock()
		for _, sub := range toDrop {
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
		}
		s.mu.Unlock()
	}
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 4)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}

func (s *Service) copySubsLocked(id string) map[*subscriber]struct{} {
	out := make(map[*subscriber]struct{})
	if set, ok := s.subs[id]; ok {
		for k := range set {
			out[k] = struct{}{}
		}
	}
	return out
}
