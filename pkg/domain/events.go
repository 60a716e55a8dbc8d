package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurn   EventType = "turn"
	EventLookup EventType = "lookup"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TurnEvent is emitted once per resolved utterance.
type TurnEvent struct {
	EventBase
	Intent      Intent        `json:"intent"`
	PendingMode PendingMode   `json:"pending_mode"`
	Focused     bool          `json:"focused"`
	Duration    time.Duration `json:"duration"`
}

// LookupOutcome describes the result of a catalog lookup.
type LookupOutcome string

const (
	OutcomeResolved LookupOutcome = "resolved"
	OutcomeNotFound LookupOutcome = "not_found"
)

// LookupEvent is emitted for every name or location lookup the router performs.
type LookupEvent struct {
	EventBase
	Kind    string        `json:"kind"` // "name" or "location"
	Outcome LookupOutcome `json:"outcome"`
	Matches int           `json:"matches"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTurn   func(context.Context, *TurnEvent)
	OnLookup func(context.Context, *LookupEvent)
}
