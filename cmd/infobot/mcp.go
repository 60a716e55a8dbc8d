package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/infobot/internal/cli"
	"github.com/aretw0/infobot/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts infobot as an MCP server so AI agents can query the college catalog
and hold conversations through tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		srv := mcp.NewServer(rt.Bot, mcp.WithLogger(logger))

		switch cfg.MCP.Transport {
		case "sse":
			logger.Info("starting infobot MCP server (SSE)", "port", cfg.MCP.Port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, cfg.MCP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			// Stdout carries JSON-RPC.
			log.SetOutput(os.Stderr)
			logger.Info("starting infobot MCP server (stdio)")
			return srv.ServeStdio()
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
	mustBind("mcp.transport", mcpCmd.Flags().Lookup("transport"))
	mustBind("mcp.port", mcpCmd.Flags().Lookup("port"))
}
