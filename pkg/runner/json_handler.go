package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/infobot"
	"github.com/aretw0/infobot/pkg/domain"
)

// JSONMessage is one line of JSONHandler output.
type JSONMessage struct {
	Type          string              `json:"type"` // "reply" or "system"
	SessionID     string              `json:"session_id,omitempty"`
	Response      string              `json:"response,omitempty"`
	Intent        domain.Intent       `json:"intent,omitempty"`
	FocusedEntity string              `json:"focused_entity,omitempty"`
	PendingMode   *domain.PendingMode `json:"pending_mode,omitempty"`
	Message       string              `json:"message,omitempty"`
}

// JSONRequest is the object form accepted on input.
type JSONRequest struct {
	Utterance string `json:"utterance"`
}

// JSONHandler implements IOHandler with newline-delimited JSON.
// Input lines may be a JSON string, a JSONRequest object, or plain text.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, reply *infobot.Reply) error {
	msg := JSONMessage{
		Type:      "reply",
		SessionID: reply.SessionID,
		Response:  reply.Response,
		Intent:    reply.Intent,
	}
	if reply.Session != nil {
		mode := reply.Session.PendingMode
		msg.FocusedEntity = reply.Session.FocusedEntity
		msg.PendingMode = &mode
	}
	return h.Encoder.Encode(msg)
}

func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		line, err := h.Reader.ReadString('\n')
		text := strings.TrimSpace(line)
		if text == "" {
			if err != nil {
				return "", err
			}
			continue
		}

		clean, sErr := SanitizeInput(decodeUtterance(text))
		if sErr != nil {
			if encErr := h.SystemOutput(ctx, sErr.Error()); encErr != nil {
				return "", encErr
			}
			if err != nil {
				return "", err
			}
			continue
		}
		if strings.TrimSpace(clean) == "" {
			if err != nil {
				return "", err
			}
			continue
		}
		return clean, nil
	}
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(JSONMessage{Type: "system", Message: msg})
}

func decodeUtterance(text string) string {
	var s string
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		return s
	}
	var req JSONRequest
	if err := json.Unmarshal([]byte(text), &req); err == nil && req.Utterance != "" {
		return req.Utterance
	}
	return text
}
