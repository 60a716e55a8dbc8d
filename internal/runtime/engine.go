package runtime

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/infobot/internal/resolver"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/ports"
)

// Engine is the query router: it classifies one utterance against the session state
// and dispatches to a resolver. It is the only component that mutates a Session.
type Engine struct {
	store  ports.RecordStore
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates a router reading from store.
func NewEngine(store ports.RecordStore, opts ...EngineOption) *Engine {
	e := &Engine{
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve processes one turn. It mutates session in place, appends the exchange to the
// transcript and returns the response. It never fails: every path yields a sentence.
func (e *Engine) Resolve(ctx context.Context, session *domain.Session, utterance string) domain.Turn {
	start := time.Now()
	turn := e.route(ctx, session, utterance)
	session.Append(utterance, turn.Response)

	e.logger.Debug("turn resolved",
		"session_id", session.ID,
		"intent", turn.Intent,
		"focused_entity", session.FocusedEntity,
		"pending_mode", session.PendingMode.String(),
	)
	e.emitTurn(ctx, session, turn.Intent, time.Since(start))
	return turn
}

// route evaluates the rules in priority order; the first match wins.
func (e *Engine) route(ctx context.Context, session *domain.Session, utterance string) domain.Turn {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return domain.Turn{Response: MsgUnknown, Intent: domain.IntentUnknown}
	}
	lower := strings.ToLower(text)

	// 1. Greeting
	if isGreeting(lower) {
		return domain.Turn{Response: MsgGreeting, Intent: domain.IntentGreeting}
	}

	// 2. Focused entity
	if session.HasFocus() {
		if strings.Contains(lower, PhraseChangeCollege) {
			session.FocusedEntity = ""
			session.PendingMode = domain.ModeNormal
			return domain.Turn{Response: MsgAskNewCollege, Intent: domain.IntentResetFocus}
		}

		record, ok := e.findByName(ctx, session, session.FocusedEntity)
		if ok {
			return domain.Turn{Response: resolver.Answer(record, text), Intent: domain.IntentAttribute}
		}
		// The catalog is immutable, so this only happens when a session outlives a catalog swap.
		e.logger.Warn("focused entity no longer in catalog", "session_id", session.ID, "entity", session.FocusedEntity)
		session.FocusedEntity = ""
	}

	// 3. Entity identification
	if record, ok := e.findByName(ctx, session, text); ok {
		session.FocusedEntity = record.Name
		session.PendingMode = domain.ModeNormal
		return domain.Turn{Response: resolver.Describe(record), Intent: domain.IntentIdentify}
	}

	// 4. List trigger
	if strings.Contains(lower, PhraseListColleges) {
		session.PendingMode = domain.ModeAwaitingLocation
		return domain.Turn{Response: MsgAskLocation, Intent: domain.IntentListPrompt}
	}

	// 5. Location answer
	if session.PendingMode == domain.ModeAwaitingLocation {
		session.PendingMode = domain.ModeNormal
		return domain.Turn{Response: e.listByLocation(ctx, session, text), Intent: domain.IntentListAnswer}
	}

	// 6. Compare trigger
	if strings.Contains(lower, PhraseCompare) {
		session.PendingMode = domain.ModeAwaitingComparisonPair
		return domain.Turn{Response: MsgAskComparisonPair, Intent: domain.IntentComparePrompt}
	}

	// 7. Compare answer
	if session.PendingMode == domain.ModeAwaitingComparisonPair {
		session.PendingMode = domain.ModeNormal
		nameA, nameB, ok := splitPair(text)
		if !ok {
			return domain.Turn{Response: MsgNeedTwoColleges, Intent: domain.IntentCompareAnswer}
		}
		return domain.Turn{Response: e.compare(ctx, session, nameA, nameB), Intent: domain.IntentCompareAnswer}
	}

	// 8. Default
	return domain.Turn{Response: MsgUnknown, Intent: domain.IntentUnknown}
}

func (e *Engine) findByName(ctx context.Context, session *domain.Session, query string) (domain.Record, bool) {
	record, ok := resolver.FindByName(e.store, query)
	matches := 0
	if ok {
		matches = 1
	}
	e.emitLookup(ctx, session, "name", matches)
	return record, ok
}

func (e *Engine) listByLocation(ctx context.Context, session *domain.Session, location string) string {
	records := e.store.FindByLocation(location)
	e.emitLookup(ctx, session, "location", len(records))
	return formatLocationList(location, records)
}

func (e *Engine) compare(ctx context.Context, session *domain.Session, nameA, nameB string) string {
	_, okA := e.findByName(ctx, session, nameA)
	_, okB := e.findByName(ctx, session, nameB)
	if !okA || !okB {
		return resolver.UnknownComparison
	}
	return resolver.Compare(e.store, nameA, nameB)
}
