package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/infobot"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of infobot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "infobot version %s\n", strings.TrimSpace(infobot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
