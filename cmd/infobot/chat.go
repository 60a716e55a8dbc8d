package main

import (
	"github.com/aretw0/infobot/internal/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Starts a conversation on the terminal. Type "exit" or press Ctrl+C to leave.

With --session the conversation is named, so a persistent session backend
(file or redis) can resume it later.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	addChatFlags(chatCmd)
}

func addChatFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("session", "s", "", "Session ID to start or resume (default: random)")
	cmd.Flags().Bool("headless", false, "Run in headless mode (no banner, no prompt)")
	cmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cli.NewLogger(cfg.Log)

	rt, err := cli.Build(cmd.Context(), cfg, logger, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	sessionID, _ := cmd.Flags().GetString("session")
	headless, _ := cmd.Flags().GetBool("headless")
	jsonMode, _ := cmd.Flags().GetBool("json")

	return cli.RunChat(cmd.Context(), rt.Bot, logger, cli.ChatOptions{
		SessionID: sessionID,
		Headless:  headless,
		JSON:      jsonMode,
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
	})
}
