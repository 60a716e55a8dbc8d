package domain

// SessionDiff represents the changes between two snapshots of a session.
// It is designed to be serialized to JSON for partial updates on the client.
type SessionDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// FocusedEntity is set when the focus changed. An empty string means it was cleared.
	FocusedEntity *string `json:"focused_entity,omitempty"`

	// PendingMode is set when the mode changed.
	PendingMode *PendingMode `json:"pending_mode,omitempty"`

	// Appended holds the exchanges added to the transcript.
	Appended []Exchange `json:"appended,omitempty"`
}

// Diff calculates the difference between oldSession and newSession.
// If oldSession is nil, it returns a diff representing the entire newSession (initial load).
// It returns nil when nothing changed.
func Diff(oldSession, newSession *Session) *SessionDiff {
	if newSession == nil {
		return nil
	}

	diff := &SessionDiff{
		SessionID: newSession.ID,
	}

	if oldSession == nil || oldSession.FocusedEntity != newSession.FocusedEntity {
		focus := newSession.FocusedEntity
		diff.FocusedEntity = &focus
	}
	if oldSession == nil || oldSession.PendingMode != newSession.PendingMode {
		mode := newSession.PendingMode
		diff.PendingMode = &mode
	}

	// Transcript is append-only.
	oldLen := 0
	if oldSession != nil {
		oldLen = len(oldSession.Transcript)
	}
	if len(newSession.Transcript) > oldLen {
		diff.Appended = newSession.Transcript[oldLen:]
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SessionDiff) IsEmpty() bool {
	return d.FocusedEntity == nil &&
		d.PendingMode == nil &&
		len(d.Appended) == 0
}
