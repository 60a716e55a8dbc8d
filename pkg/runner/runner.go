package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// DefaultBanner is shown before the first prompt in interactive mode.
const DefaultBanner = "Welcome! Type a college name, 'list colleges' or 'compare'. Type 'exit' to quit."

// Runner handles the chat loop using an IOHandler strategy.
type Runner struct {
	Handler   IOHandler
	Logger    *slog.Logger
	SessionID string
	Headless  bool
	Banner    string

	// InterruptSource stops the loop when it receives or is closed.
	InterruptSource <-chan struct{}
}

// NewRunner creates a Runner reading from Stdin and writing to Stdout by default.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Banner: DefaultBanner,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	}
	return r
}

// Run loops until the user quits, input ends, or ctx is cancelled.
// A clean end of conversation returns nil.
func (r *Runner) Run(ctx context.Context, bot Bot) error {
	signals := NewSignalManager(ctx)
	defer signals.Stop()

	if r.InterruptSource != nil {
		go func() {
			select {
			case <-r.InterruptSource:
				signals.Stop()
			case <-signals.Context().Done():
			}
		}()
	}

	loopCtx := signals.Context()
	if !r.Headless && r.Banner != "" {
		if err := r.Handler.SystemOutput(loopCtx, r.Banner); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}

	for {
		utterance, err := r.Handler.Input(loopCtx)
		if err != nil {
			signals.CheckRace()
			if loopCtx.Err() != nil {
				r.Logger.Debug("runner interrupted", "session_id", r.SessionID, "err", loopCtx.Err())
				return nil
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		if isQuit(utterance) {
			if !r.Headless {
				_ = r.Handler.SystemOutput(loopCtx, "Goodbye!")
			}
			return nil
		}

		reply, err := bot.Ask(loopCtx, r.SessionID, utterance)
		if err != nil {
			if loopCtx.Err() != nil {
				return nil
			}
			return fmt.Errorf("ask error: %w", err)
		}
		r.Logger.Debug("turn", "session_id", r.SessionID, "intent", reply.Intent)

		if err := r.Handler.Output(loopCtx, reply); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}

func isQuit(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exit", "quit":
		return true
	}
	return false
}
