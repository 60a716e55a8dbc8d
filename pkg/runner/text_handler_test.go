package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/infobot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Output_UsesRenderer(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader(""), out, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	require.NoError(t, h.Output(context.Background(), &infobot.Reply{Response: "**Comparison**"}))
	assert.Equal(t, "Rendered: **Comparison**\n", out.String())
}

func TestTextHandler_Input_SkipsBlankAndRejected(t *testing.T) {
	SetMaxInputSize(8)
	t.Cleanup(func() { SetMaxInputSize(0) })

	out := &bytes.Buffer{}
	h := NewTextHandler(strings.NewReader("   \nway too long line\n  Alpha  \n"), out, WithPrompt("? "))

	val, err := h.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alpha", val)
	assert.Contains(t, out.String(), "input exceeds maximum allowed size")
	assert.True(t, strings.HasPrefix(out.String(), "? "))

	_, err = h.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextHandler_Input_HonoursContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	h := NewTextHandler(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Input(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
