package domain

import (
	"encoding/json"
	"fmt"
)

// PendingMode governs how the next utterance of a session is interpreted.
// Each non-normal mode is consumed by exactly one turn.
type PendingMode int

const (
	ModeNormal PendingMode = iota
	ModeAwaitingLocation
	ModeAwaitingComparisonPair
)

var modeNames = map[PendingMode]string{
	ModeNormal:                 "normal",
	ModeAwaitingLocation:       "awaiting_location",
	ModeAwaitingComparisonPair: "awaiting_comparison_pair",
}

func (m PendingMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PendingMode(%d)", int(m))
}

// ParsePendingMode is the inverse of String.
func ParsePendingMode(s string) (PendingMode, error) {
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeNormal, fmt.Errorf("%w: %q", ErrInvalidPendingMode, s)
}

func (m PendingMode) MarshalJSON() ([]byte, error) {
	name, ok := modeNames[m]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPendingMode, int(m))
	}
	return json.Marshal(name)
}

func (m *PendingMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePendingMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
