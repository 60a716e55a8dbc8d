package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/infobot/pkg/domain"
)

// Chain merges several hook sets; each callback runs in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var turns []func(context.Context, *domain.TurnEvent)
	var lookups []func(context.Context, *domain.LookupEvent)
	for _, s := range sets {
		if s.OnTurn != nil {
			turns = append(turns, s.OnTurn)
		}
		if s.OnLookup != nil {
			lookups = append(lookups, s.OnLookup)
		}
	}

	var out domain.LifecycleHooks
	if len(turns) > 0 {
		out.OnTurn = func(ctx context.Context, e *domain.TurnEvent) {
			for _, fn := range turns {
				fn(ctx, e)
			}
		}
	}
	if len(lookups) > 0 {
		out.OnLookup = func(ctx context.Context, e *domain.LookupEvent) {
			for _, fn := range lookups {
				fn(ctx, e)
			}
		}
	}
	return out
}

// LogHooks writes one structured line per event at Info level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			logger.InfoContext(ctx, "turn",
				"session_id", e.SessionID,
				"intent", e.Intent,
				"pending_mode", e.PendingMode.String(),
				"focused", e.Focused,
				"duration", e.Duration,
			)
		},
		OnLookup: func(ctx context.Context, e *domain.LookupEvent) {
			logger.InfoContext(ctx, "lookup",
				"session_id", e.SessionID,
				"kind", e.Kind,
				"outcome", e.Outcome,
				"matches", e.Matches,
			)
		},
	}
}
