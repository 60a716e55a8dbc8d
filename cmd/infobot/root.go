package main

import (
	"fmt"
	"os"

	"github.com/aretw0/infobot/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// v holds the layered configuration: flags over INFOBOT_* env over infobot.yaml over defaults.
var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "infobot",
	Short: "infobot answers questions about colleges",
	Long: `infobot is a conversational assistant over a college catalog.
Name a college to focus it, then ask about its fees, programs or placements.
Say "list colleges" to search by location or "compare" to weigh two colleges by tuition.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (default: ./infobot.yaml or ./configs/infobot.yaml)")
	pf.String("catalog", "colleges.csv", "Catalog dataset (.csv, .xlsx, .yaml, .json, .db)")
	pf.String("session-backend", config.BackendMemory, "Session store: memory, file or redis")
	pf.Bool("debug", false, "Enable debug logging to Stderr")
	pf.Bool("log-json", false, "Write logs as JSON")

	mustBind("catalog.path", pf.Lookup("catalog"))
	mustBind("session.backend", pf.Lookup("session-backend"))
	mustBind("log.debug", pf.Lookup("debug"))
	mustBind("log.json", pf.Lookup("log-json"))

	// A bare "infobot" starts a chat.
	rootCmd.RunE = runChat
	addChatFlags(rootCmd)
}

func mustBind(key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind %s: %v", key, err))
	}
}

// loadConfig resolves the configuration for the running command.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFile(v, path)
	}
	return config.Load(v)
}
