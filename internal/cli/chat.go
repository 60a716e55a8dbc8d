package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/infobot"
	"github.com/aretw0/infobot/internal/presentation/tui"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/runner"
)

// ChatOptions contains the configuration for an interactive conversation.
type ChatOptions struct {
	SessionID string
	Headless  bool
	JSON      bool

	// In and Out default to Stdin and Stdout.
	In  io.Reader
	Out io.Writer
}

// RunChat drives one conversation over the terminal until the user quits.
func RunChat(ctx context.Context, bot *infobot.Bot, logger *slog.Logger, opts ChatOptions) error {
	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	quiet := opts.JSON || opts.Headless

	if opts.SessionID != "" {
		s, err := bot.Session(ctx, opts.SessionID)
		switch {
		case err == nil:
			logSessionStatus(logger, out, s, true, quiet)
		case errors.Is(err, domain.ErrSessionNotFound):
			logSessionStatus(logger, out, domain.NewSession(opts.SessionID), false, quiet)
		default:
			return fmt.Errorf("failed to load session: %w", err)
		}
	}

	if !quiet {
		tui.PrintBanner(out, infobot.Version)
	}

	r := runner.NewRunner(createRunnerOptions(logger, in, out, opts)...)
	return r.Run(ctx, bot)
}

func createRunnerOptions(logger *slog.Logger, in io.Reader, out io.Writer, opts ChatOptions) []runner.Option {
	ro := []runner.Option{
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless || opts.JSON),
		runner.WithSessionID(opts.SessionID),
	}

	switch {
	case opts.JSON:
		ro = append(ro, runner.WithInputHandler(runner.NewJSONHandler(in, out)))
	case opts.Headless:
		ro = append(ro, runner.WithInputHandler(runner.NewTextHandler(in, out, runner.WithPrompt(""))))
	default:
		var renderer runner.ContentRenderer = tui.Plain
		if f, ok := out.(*os.File); ok {
			renderer = tui.NewRenderer(f)
		}
		ro = append(ro, runner.WithInputHandler(runner.NewTextHandler(in, out, runner.WithTextHandlerRenderer(renderer))))
	}
	return ro
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func logSessionStatus(logger *slog.Logger, w io.Writer, s *domain.Session, loaded, quiet bool) {
	if loaded {
		logger.Info("session resumed", "session_id", s.ID, "focus", s.FocusedEntity, "mode", s.PendingMode)
		if quiet {
			return
		}
		if s.HasFocus() {
			printSystemMessage(w, "Resuming session '%s' about %s.", s.ID, s.FocusedEntity)
		} else {
			printSystemMessage(w, "Resuming session '%s'.", s.ID)
		}
		return
	}
	logger.Info("session created", "session_id", s.ID)
	if !quiet {
		printSystemMessage(w, "Session '%s' active.", s.ID)
	}
}
