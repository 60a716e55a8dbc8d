package infobot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/infobot/internal/logging"
	"github.com/aretw0/infobot/internal/resolver"
	"github.com/aretw0/infobot/internal/runtime"
	"github.com/aretw0/infobot/pkg/adapters/dataset"
	"github.com/aretw0/infobot/pkg/adapters/memory"
	"github.com/aretw0/infobot/pkg/catalog"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/ports"
	"github.com/aretw0/infobot/pkg/session"
	"github.com/google/uuid"
)

// Bot is the high-level entry point for the infobot library.
// It wires the catalog, the query router and the session manager together.
type Bot struct {
	catalog  *catalog.Store
	router   *runtime.Engine
	sessions *session.Manager

	store   ports.SessionStore
	locker  ports.DistributedLocker
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	lockTTL time.Duration
}

// Option defines a functional option for configuring the Bot.
type Option func(*Bot)

// WithSessionStore replaces the default in-memory session store.
func WithSessionStore(store ports.SessionStore) Option {
	return func(b *Bot) {
		b.store = store
	}
}

// WithLocker enables distributed session locking for multi-replica deployments.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(b *Bot) {
		b.locker = locker
		b.lockTTL = ttl
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bot) {
		b.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// Reply is the outcome of one Ask.
type Reply struct {
	SessionID string              `json:"session_id"`
	Response  string              `json:"response"`
	Intent    domain.Intent       `json:"intent"`
	Session   *domain.Session     `json:"session"`
	Diff      *domain.SessionDiff `json:"diff,omitempty"`
}

// New initializes a Bot over an already built catalog.
func New(store *catalog.Store, opts ...Option) (*Bot, error) {
	if store == nil {
		return nil, domain.ErrEmptyCatalog
	}

	b := &Bot{catalog: store}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.store == nil {
		b.store = memory.NewStore()
	}

	managerOpts := []session.Option{session.WithLogger(b.logger)}
	if b.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(b.locker), session.WithLockTTL(b.lockTTL))
	}
	b.sessions = session.NewManager(b.store, managerOpts...)

	b.router = runtime.NewEngine(store,
		runtime.WithLogger(b.logger),
		runtime.WithLifecycleHooks(b.hooks),
	)
	return b, nil
}

// Open loads the catalog at path and initializes a Bot over it.
func Open(ctx context.Context, path string, opts ...Option) (*Bot, error) {
	records, err := dataset.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	store, err := catalog.New(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(store, opts...)
}

// Ask resolves one utterance against the session, starting it if needed.
// The turn runs under the session lock, so concurrent asks on one session are serialized.
func (b *Bot) Ask(ctx context.Context, sessionID, utterance string) (*Reply, error) {
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}

	var (
		turn   domain.Turn
		before *domain.Session
	)
	s, err := b.sessions.Turn(ctx, sessionID, func(s *domain.Session) {
		before = s.Snapshot()
		turn = b.router.Resolve(ctx, s, utterance)
	})
	if err != nil {
		return nil, fmt.Errorf("ask %s: %w", sessionID, err)
	}

	return &Reply{
		SessionID: sessionID,
		Response:  turn.Response,
		Intent:    turn.Intent,
		Session:   s,
		Diff:      domain.Diff(before, s),
	}, nil
}

// Start loads the session or creates it. An empty ID generates a new one.
func (b *Bot) Start(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s, existed, err := b.sessions.LoadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !existed {
		b.logger.Debug("session started", "session_id", sessionID)
	}
	return s, nil
}

// Session returns the stored state of one conversation.
func (b *Bot) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return b.sessions.Load(ctx, sessionID)
}

// Sessions lists the stored session IDs.
func (b *Bot) Sessions(ctx context.Context) ([]string, error) {
	return b.sessions.List(ctx)
}

// Reset forgets a conversation. The next Ask on the same ID starts clean.
func (b *Bot) Reset(ctx context.Context, sessionID string) error {
	return b.sessions.Delete(ctx, sessionID)
}

// Catalog returns the record store the bot answers from.
func (b *Bot) Catalog() *catalog.Store {
	return b.catalog
}

// Describe returns the narrative for the first record whose name contains query.
// A blank query matches nothing.
func (b *Bot) Describe(query string) (domain.Record, string, bool) {
	if strings.TrimSpace(query) == "" {
		return domain.Record{}, "", false
	}
	record, ok := resolver.FindByName(b.catalog, query)
	if !ok {
		return domain.Record{}, "", false
	}
	return record, resolver.Describe(record), true
}

// ListByLocation returns the records whose location contains query.
func (b *Bot) ListByLocation(query string) []domain.Record {
	return b.catalog.FindByLocation(query)
}

// Compare contrasts two records by tuition fee.
func (b *Bot) Compare(nameA, nameB string) string {
	return resolver.Compare(b.catalog, nameA, nameB)
}

// Topics lists the attribute keywords the bot understands once a college is in focus.
func (b *Bot) Topics() []string {
	return resolver.Keywords()
}
