package domain

import "time"

// Exchange is one utterance/response pair of the transcript.
type Exchange struct {
	Utterance string    `json:"utterance"`
	Response  string    `json:"response"`
	At        time.Time `json:"at"`
}

// Session represents the dialogue state of one conversation.
type Session struct {
	// ID identifies the conversation in the session store.
	ID string `json:"id"`

	// FocusedEntity is the Name of the record in context. Empty means none.
	FocusedEntity string `json:"focused_entity,omitempty"`

	// PendingMode tells the router how to read the next utterance.
	PendingMode PendingMode `json:"pending_mode"`

	// Transcript is append-only and only used for display.
	Transcript []Exchange `json:"transcript"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Sealed carries the encrypted session when a store encrypts at rest.
	// It is empty on every session the router sees.
	Sealed string `json:"sealed,omitempty"`
}

// NewSession creates a clean session with no focus and no pending mode.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          id,
		PendingMode: ModeNormal,
		Transcript:  []Exchange{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// HasFocus reports whether an entity is in context.
func (s *Session) HasFocus() bool {
	return s.FocusedEntity != ""
}

// Append records one exchange at the end of the transcript.
func (s *Session) Append(utterance, response string) {
	now := time.Now().UTC()
	s.Transcript = append(s.Transcript, Exchange{
		Utterance: utterance,
		Response:  response,
		At:        now,
	})
	s.UpdatedAt = now
}

// Snapshot creates a deep copy of the session.
func (s *Session) Snapshot() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Transcript = make([]Exchange, len(s.Transcript))
	copy(c.Transcript, s.Transcript)
	return &c
}
