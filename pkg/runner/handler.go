package runner

import (
	"context"

	"github.com/aretw0/infobot"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents one bot reply.
	Output(ctx context.Context, reply *infobot.Reply) error

	// Input reads the next utterance. It returns io.EOF when the stream ends.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (banner, errors) distinct from bot replies.
	SystemOutput(ctx context.Context, msg string) error
}

// Bot is the part of infobot.Bot the runner needs.
type Bot interface {
	Ask(ctx context.Context, sessionID, utterance string) (*infobot.Reply, error)
}

// ContentRenderer transforms a response before it is written, e.g. markdown to ANSI.
type ContentRenderer func(string) (string, error)
