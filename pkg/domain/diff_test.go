package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	old := NewSession("s1")
	old.Append("hello", "hi there")

	t.Run("Nil old is a full diff", func(t *testing.T) {
		d := Diff(nil, old)
		require.NotNil(t, d)
		assert.Equal(t, "s1", d.SessionID)
		assert.NotNil(t, d.FocusedEntity)
		assert.NotNil(t, d.PendingMode)
		assert.Len(t, d.Appended, 1)
	})

	t.Run("No change", func(t *testing.T) {
		assert.Nil(t, Diff(old, old.Snapshot()))
	})

	t.Run("Focus and transcript", func(t *testing.T) {
		next := old.Snapshot()
		next.FocusedEntity = "Alpha College"
		next.Append("alpha", "Alpha College, located in ...")

		d := Diff(old, next)
		require.NotNil(t, d)
		require.NotNil(t, d.FocusedEntity)
		assert.Equal(t, "Alpha College", *d.FocusedEntity)
		assert.Nil(t, d.PendingMode)
		require.Len(t, d.Appended, 1)
		assert.Equal(t, "alpha", d.Appended[0].Utterance)
	})

	t.Run("Mode serializes by name", func(t *testing.T) {
		next := old.Snapshot()
		next.PendingMode = ModeAwaitingLocation
		d := Diff(old, next)
		require.NotNil(t, d)

		data, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"pending_mode":"awaiting_location"`)
	})
}
