package study

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/events"
	"github.com/phrazzld/scry-study/internal/platform/logger"
	"github.com/phrazzld/scry-study/internal/progress"
	"github.com/phrazzld/scry-study/internal/schedule"
)

// Operation names reported in InvalidTransitionError.
const (
	OpStartSession = "start_session"
	OpReveal       = "reveal"
	OpMarkOutcome  = "mark_outcome"
	OpNext         = "next"
	OpPrev         = "prev"
	OpStats        = "stats"
	OpState        = "state"
	OpCurrent      = "current"
	OpViewing      = "viewing"
	OpProgress     = "progress"
	OpRecords      = "records"
	OpEndSession   = "end_session"
)

// DeckSource supplies decks by name. *deck.Store satisfies it.
type DeckSource interface {
	GetDeck(name string) (*domain.Deck, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy selects the scheduling variant used for new sessions.
func WithPolicy(kind schedule.Kind) Option {
	return func(e *Engine) { e.kind = kind }
}

// WithPolicyOptions passes variant-specific settings to schedule.New.
func WithPolicyOptions(opts schedule.Options) Option {
	return func(e *Engine) { e.policyOpts = opts }
}

// WithLogger sets the engine's fallback logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEmitter publishes session events to emitter.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(e *Engine) {
		if emitter != nil {
			e.emitter = emitter
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine runs study sessions over decks from a DeckSource. Every method is
// one atomic transition; concurrent calls are serialised.
type Engine struct {
	mu         sync.Mutex
	decks      DeckSource
	kind       schedule.Kind
	policyOpts schedule.Options
	logger     *slog.Logger
	emitter    events.EventEmitter
	now        func() time.Time

	session *session
	history []domain.Summary
}

// session is the state of the active study session.
type session struct {
	deck    *domain.Deck
	state   domain.SessionState
	tracker *progress.Tracker
	policy  schedule.Policy
	seen    map[uuid.UUID]struct{}
	view    int
	closed  bool // summary already appended to history
}

// New creates an Engine. Without options it schedules sequentially, logs
// to slog.Default() and publishes no events.
func New(decks DeckSource, opts ...Option) *Engine {
	if decks == nil {
		panic("decks cannot be nil")
	}

	e := &Engine{
		decks:   decks,
		kind:    schedule.KindSequential,
		logger:  slog.Default(),
		emitter: events.NopEmitter{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(slog.String("component", "study_engine"))
	return e
}

// StartSession begins studying the named deck, discarding any session in
// progress. The first card is presented question side up.
func (e *Engine) StartSession(ctx context.Context, deckName string) (domain.SessionState, error) {
	e.mu.Lock()
	state, evts, err := e.startSession(ctx, deckName)
	e.mu.Unlock()

	e.publish(ctx, evts)
	return state, err
}

func (e *Engine) startSession(ctx context.Context, deckName string) (domain.SessionState, []*events.SessionEvent, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	d, err := e.decks.GetDeck(deckName)
	if err != nil {
		log.Warn("cannot start session", slog.String("deck", deckName), slog.String("error", err.Error()))
		return domain.SessionState{}, nil, err
	}
	if d.IsEmpty() {
		log.Warn("cannot start session on empty deck", slog.String("deck", d.Name()))
		return domain.SessionState{}, nil, &domain.EmptyDeckError{Name: d.Name()}
	}

	policy, err := schedule.New(e.kind, e.policyOpts)
	if err != nil {
		return domain.SessionState{}, nil, fmt.Errorf("failed to create scheduling policy: %w", err)
	}

	s := &session{
		deck: d,
		state: domain.SessionState{
			SessionID:     uuid.New(),
			DeckName:      d.Name(),
			Policy:        policy.Name(),
			CursorHistory: []uuid.UUID{},
			StartedAt:     e.now().UTC(),
		},
		tracker: progress.NewTracker(e.now),
		policy:  policy,
		seen:    make(map[uuid.UUID]struct{}),
	}

	card, ok := policy.NextCard(d, &s.state, nil)
	if !ok {
		return domain.SessionState{}, nil, &domain.EmptyDeckError{Name: d.Name()}
	}
	s.present(card)

	if e.session != nil {
		log.Info("discarding previous session",
			slog.String("session_id", e.session.state.SessionID.String()),
			slog.String("deck", e.session.state.DeckName))
	}
	e.session = s

	log.Info("study session started",
		slog.String("session_id", s.state.SessionID.String()),
		slog.String("deck", d.Name()),
		slog.String("policy", policy.Name()),
		slog.Int("cards", d.Len()))

	evt := e.newEvent(ctx, events.TypeSessionStarted, s, map[string]interface{}{
		"policy":      policy.Name(),
		"total_cards": d.Len(),
	})
	return s.state.Clone(), evt, nil
}

// Reveal turns the current card answer side up. Revealing an already
// revealed card is a no-op.
func (e *Engine) Reveal(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.active(OpReveal)
	if err != nil {
		return err
	}

	switch s.state.Phase {
	case domain.PhaseAnswerRevealed:
		return nil
	case domain.PhaseQuestionShown:
		s.state.Phase = domain.PhaseAnswerRevealed
		s.state.Revealed = true
		logger.FromContextOrDefault(ctx, e.logger).Debug("answer revealed",
			slog.String("session_id", s.state.SessionID.String()),
			slog.String("card_id", s.state.CurrentCardID.String()))
		return nil
	}
	return &domain.InvalidTransitionError{Operation: OpReveal, Phase: s.state.Phase}
}

// MarkOutcome records the user's verdict on the revealed card and advances
// to the next card, or completes the session when the policy has none left.
// It is rejected unless the answer has been revealed.
func (e *Engine) MarkOutcome(ctx context.Context, outcome domain.Outcome) (domain.SessionState, error) {
	e.mu.Lock()
	state, evts, err := e.markOutcome(ctx, outcome)
	e.mu.Unlock()

	e.publish(ctx, evts)
	return state, err
}

func (e *Engine) markOutcome(ctx context.Context, outcome domain.Outcome) (domain.SessionState, []*events.SessionEvent, error) {
	s, err := e.active(OpMarkOutcome)
	if err != nil {
		return domain.SessionState{}, nil, err
	}
	if s.state.Phase != domain.PhaseAnswerRevealed {
		return domain.SessionState{}, nil, &domain.InvalidTransitionError{Operation: OpMarkOutcome, Phase: s.state.Phase}
	}

	log := logger.FromContextOrDefault(ctx, e.logger).With(
		slog.String("session_id", s.state.SessionID.String()))

	cardID := s.state.CurrentCardID
	rec, err := s.tracker.Record(cardID, outcome)
	if err != nil {
		log.Warn("rejected review outcome", slog.String("outcome", string(outcome)))
		return domain.SessionState{}, nil, err
	}
	s.state.CursorHistory = append(s.state.CursorHistory, cardID)

	log.Debug("review recorded",
		slog.String("card_id", cardID.String()),
		slog.String("outcome", string(outcome)),
		slog.Int("sequence_number", rec.SequenceNumber))

	evts := e.newEvent(ctx, events.TypeReviewRecorded, s, rec)

	next, ok := s.policy.NextCard(s.deck, &s.state, &schedule.Feedback{CardID: cardID, Outcome: outcome})
	if ok {
		s.present(next)
		return s.state.Clone(), evts, nil
	}

	s.state.Phase = domain.PhaseSessionComplete
	s.state.CurrentCardID = uuid.Nil
	s.view = len(s.state.CursorHistory) - 1

	summary := e.summarize(s)
	s.closed = true
	e.history = append(e.history, summary)

	stats := s.tracker.Stats()
	log.Info("study session complete",
		slog.String("deck", s.state.DeckName),
		slog.Int("studied", stats.StudiedCount),
		slog.Float64("accuracy", stats.Accuracy))

	evts = append(evts, e.newEvent(ctx, events.TypeSessionCompleted, s, summary)...)
	return s.state.Clone(), evts, nil
}

// Next moves the viewing pointer one card forward and returns the card now
// viewed. At the live card it is a no-op.
func (e *Engine) Next(ctx context.Context) (domain.Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.active(OpNext)
	if err != nil {
		return domain.Card{}, err
	}
	if s.view < s.lastView() {
		s.view++
	}
	return e.viewed(ctx, s)
}

// Prev moves the viewing pointer one card back and returns the card now
// viewed. At the first card it is a no-op.
func (e *Engine) Prev(ctx context.Context) (domain.Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.active(OpPrev)
	if err != nil {
		return domain.Card{}, err
	}
	if s.view > 0 {
		s.view--
	}
	return e.viewed(ctx, s)
}

// Reset discards the active session and its review records, returning the
// engine to its pre-session condition. Resetting an idle engine is a no-op.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	s := e.session
	var evts []*events.SessionEvent
	if s != nil {
		evts = e.newEvent(ctx, events.TypeSessionReset, s, s.tracker.Stats())
		s.tracker.Reset()
		e.session = nil
		logger.FromContextOrDefault(ctx, e.logger).Info("study session reset",
			slog.String("session_id", s.state.SessionID.String()),
			slog.String("deck", s.state.DeckName))
	}
	e.mu.Unlock()

	e.publish(ctx, evts)
	return nil
}

// EndSession closes the active session, complete or not, and returns its
// summary. The summary is kept in History.
func (e *Engine) EndSession(ctx context.Context) (domain.Summary, error) {
	e.mu.Lock()
	s, err := e.active(OpEndSession)
	if err != nil {
		e.mu.Unlock()
		return domain.Summary{}, err
	}

	summary := e.summarize(s)
	if s.closed {
		// Completed sessions were summarised when they completed.
		summary = e.history[len(e.history)-1]
	} else {
		e.history = append(e.history, summary)
	}
	e.session = nil
	evts := e.newEvent(ctx, events.TypeSessionEnded, s, summary)

	logger.FromContextOrDefault(ctx, e.logger).Info("study session ended",
		slog.String("session_id", s.state.SessionID.String()),
		slog.String("deck", s.state.DeckName),
		slog.Bool("completed", summary.Completed),
		slog.Duration("duration", summary.Duration))
	e.mu.Unlock()

	e.publish(ctx, evts)
	return summary, nil
}

// Stats returns the running statistics of the active session.
func (e *Engine) Stats() (domain.Stats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.active(OpStats)
	if err != nil {
		return domain.Stats{}, err
	}
	return s.tracker.Stats(), nil
}

// State returns a snapshot of the active session's state.
func (e *Engine) State() (domain.SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.active(OpState)
	if err != nil {
		return domain.SessionState{}, err
	}
	return s.state.Clone(), nil
}

// Current returns the live card awaiting an outcome. It fails once the
// session is complete.
func (e *Engine) Current() (domain.Card, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.active(OpCurrent)
	if err != nil {
		return domain.Card{}, err
	}
	if s.state.Phase == domain.PhaseSessionComplete {
		return domain.Card{}, &domain.InvalidTransitionError{Operation: OpCurrent, Phase: s.state.Phase}
	}
	card, _ := s.deck.CardByID(s.state.CurrentCardID)
	return card, nil
}

// Viewing returns the card under the viewing pointer and its 0-based index
// in presentation order.
func (e *Engine) Viewing() (domain.Card, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.active(OpViewing)
	if err != nil {
		return domain.Card{}, 0, err
	}
	card, err := e.viewed(context.Background(), s)
	return card, s.view, err
}

// Progress reports how much of the deck the active session has covered.
func (e *Engine) Progress() (domain.Progress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.active(OpProgress)
	if err != nil {
		return domain.Progress{}, err
	}

	p := domain.Progress{
		Seen:     len(s.seen),
		Total:    s.deck.Len(),
		Position: s.view + 1,
	}
	if p.Total > 0 {
		p.Percent = float64(p.Seen) / float64(p.Total) * 100
	}
	return p, nil
}

// Records returns the review log of the active session.
func (e *Engine) Records() ([]domain.ReviewRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.active(OpRecords)
	if err != nil {
		return nil, err
	}
	return s.tracker.Records(), nil
}

// History returns summaries of sessions that completed or were ended.
func (e *Engine) History() []domain.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Summary, len(e.history))
	copy(out, e.history)
	return out
}

// Active reports whether a session is in progress or awaiting EndSession.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session != nil
}

func (e *Engine) active(op string) (*session, error) {
	if e.session == nil {
		return nil, &domain.InvalidTransitionError{Operation: op}
	}
	return e.session, nil
}

// viewed resolves the card under the viewing pointer.
func (e *Engine) viewed(ctx context.Context, s *session) (domain.Card, error) {
	id := s.state.CurrentCardID
	if s.view < len(s.state.CursorHistory) {
		id = s.state.CursorHistory[s.view]
	}
	card, ok := s.deck.CardByID(id)
	if !ok {
		logger.FromContextOrDefault(ctx, e.logger).Error("viewing pointer out of range",
			slog.String("session_id", s.state.SessionID.String()),
			slog.Int("view", s.view))
		return domain.Card{}, &domain.InvalidTransitionError{Operation: OpViewing, Phase: s.state.Phase}
	}
	return card, nil
}

func (e *Engine) summarize(s *session) domain.Summary {
	ended := e.now().UTC()
	return domain.Summary{
		SessionID:  s.state.SessionID,
		DeckName:   s.state.DeckName,
		Policy:     s.state.Policy,
		TotalCards: s.deck.Len(),
		Stats:      s.tracker.Stats(),
		Completed:  s.state.Phase == domain.PhaseSessionComplete,
		StartedAt:  s.state.StartedAt,
		EndedAt:    ended,
		Duration:   ended.Sub(s.state.StartedAt),
	}
}

// newEvent builds an event for s. Failures are logged and yield no event.
func (e *Engine) newEvent(ctx context.Context, eventType string, s *session, payload interface{}) []*events.SessionEvent {
	evt, err := events.NewSessionEvent(eventType, s.state.SessionID, s.state.DeckName, payload)
	if err != nil {
		logger.FromContextOrDefault(ctx, e.logger).Error("failed to build session event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return nil
	}
	return []*events.SessionEvent{evt}
}

// publish emits events outside the engine lock so handlers may call back
// into the engine. Handler failures never undo a transition.
func (e *Engine) publish(ctx context.Context, evts []*events.SessionEvent) {
	for _, evt := range evts {
		if err := e.emitter.EmitEvent(ctx, evt); err != nil {
			logger.FromContextOrDefault(ctx, e.logger).Warn("session event handler failed",
				slog.String("event_type", evt.Type),
				slog.String("error", err.Error()))
		}
	}
}

// present makes card the live card, question side up.
func (s *session) present(card domain.Card) {
	s.state.CurrentCardID = card.ID
	s.state.Phase = domain.PhaseQuestionShown
	s.state.Revealed = false
	s.seen[card.ID] = struct{}{}
	s.view = len(s.state.CursorHistory)
}

// lastView is the highest viewing index: the live card while one exists,
// otherwise the last card presented.
func (s *session) lastView() int {
	if s.state.Phase == domain.PhaseSessionComplete {
		return len(s.state.CursorHistory) - 1
	}
	return len(s.state.CursorHistory)
}
