/*
Package runner implements the interactive chat loop for an infobot.

It reads one utterance at a time through a pluggable IOHandler, asks the bot, and
presents the reply. Handlers decouple the loop from the interaction mode.

# Key Components

  - Runner: reads, asks and presents until the user quits or input ends.
  - TextHandler: human-facing prompt with optional markdown rendering.
  - JSONHandler: newline-delimited JSON for scripts and other programs.
  - SanitizeInput: the input policy shared by every transport.

# Usage

	r := runner.NewRunner(
		runner.WithSessionID("user-1"),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx, bot); err != nil {
		log.Fatal(err)
	}
*/
package runner
