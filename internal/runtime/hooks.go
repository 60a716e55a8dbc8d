package runtime

import (
	"context"
	"time"

	"github.com/aretw0/infobot/pkg/domain"
)

func (e *Engine) emitTurn(ctx context.Context, session *domain.Session, intent domain.Intent, d time.Duration) {
	if e.hooks.OnTurn == nil {
		return
	}
	e.hooks.OnTurn(ctx, &domain.TurnEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventTurn,
			SessionID: session.ID,
		},
		Intent:      intent,
		PendingMode: session.PendingMode,
		Focused:     session.HasFocus(),
		Duration:    d,
	})
}

func (e *Engine) emitLookup(ctx context.Context, session *domain.Session, kind string, matches int) {
	if e.hooks.OnLookup == nil {
		return
	}
	outcome := domain.OutcomeResolved
	if matches == 0 {
		outcome = domain.OutcomeNotFound
	}
	e.hooks.OnLookup(ctx, &domain.LookupEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventLookup,
			SessionID: session.ID,
		},
		Kind:    kind,
		Outcome: outcome,
		Matches: matches,
	})
}
