package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/infobot"
	"github.com/aretw0/infobot/pkg/catalog"
	"github.com/aretw0/infobot/pkg/domain"
	"github.com/aretw0/infobot/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CatalogURI is the resource exposing the loaded catalog.
const CatalogURI = "infobot://colleges"

// AskResponse mirrors the HTTP turn response so both adapters agree on shape.
type AskResponse struct {
	SessionID     string             `json:"session_id" jsonschema_description:"The session the turn was applied to"`
	Response      string             `json:"response" jsonschema_description:"The bot reply"`
	Intent        domain.Intent      `json:"intent" jsonschema_description:"The rule that produced the reply"`
	FocusedEntity string             `json:"focused_entity" jsonschema_description:"The college currently in focus, if any"`
	PendingMode   domain.PendingMode `json:"pending_mode" jsonschema_description:"What the next utterance will be read as"`
}

// CollegeResponse is returned by describe_college.
type CollegeResponse struct {
	Record      domain.Record `json:"record" jsonschema_description:"The matched catalog record"`
	Description string        `json:"description" jsonschema_description:"Human readable summary"`
}

// ListResponse is returned by list_colleges.
type ListResponse struct {
	Colleges []domain.Record `json:"colleges" jsonschema_description:"Matching catalog records"`
}

// Bot is the part of infobot.Bot the MCP adapter needs.
type Bot interface {
	Ask(ctx context.Context, sessionID, utterance string) (*infobot.Reply, error)
	Reset(ctx context.Context, sessionID string) error
	Describe(query string) (domain.Record, string, bool)
	ListByLocation(query string) []domain.Record
	Compare(nameA, nameB string) string
	Catalog() *catalog.Store
}

// Server exposes a Bot as an MCP server.
type Server struct {
	bot       Bot
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the adapter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(bot Bot, opts ...Option) *Server {
	s := &Server{
		bot:       bot,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcpServer: server.NewMCPServer("infobot-mcp", strings.TrimSpace(infobot.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	askTool := mcp.NewTool("ask",
		mcp.WithDescription("Send one utterance to a conversation session and get the bot reply."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation session ID")),
		mcp.WithString("utterance", mcp.Required(), mcp.Description("What the user said")),
		mcp.WithOutputSchema[AskResponse](),
	)
	s.mcpServer.AddTool(askTool, mcp.NewStructuredToolHandler(s.handleAsk))

	describeTool := mcp.NewTool("describe_college",
		mcp.WithDescription("Look up the first college whose name contains the given text, ignoring case."),
		mcp.WithString("name", mcp.Required(), mcp.Description("College name")),
		mcp.WithOutputSchema[CollegeResponse](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribe))

	listTool := mcp.NewTool("list_colleges",
		mcp.WithDescription("List colleges whose location contains the given text. Omit location to list all."),
		mcp.WithString("location", mcp.Description("Location fragment (optional)")),
		mcp.WithOutputSchema[ListResponse](),
	)
	s.mcpServer.AddTool(listTool, mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("compare_colleges",
		mcp.WithDescription("Compare the tuition of two colleges."),
		mcp.WithString("a", mcp.Required(), mcp.Description("First college name")),
		mcp.WithString("b", mcp.Required(), mcp.Description("Second college name")),
	), s.handleCompare)

	s.mcpServer.AddTool(mcp.NewTool("reset_session",
		mcp.WithDescription("Forget a conversation session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Conversation session ID")),
	), s.handleReset)
}

func (s *Server) handleAsk(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (AskResponse, error) {
	sessionID, _ := args["session_id"].(string)
	utterance, _ := args["utterance"].(string)

	clean, err := runner.SanitizeInput(utterance)
	if err != nil {
		s.logger.Warn("MCP ask: input rejected", "error", err, "size", len(utterance))
		return AskResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	reply, err := s.bot.Ask(ctx, sessionID, clean)
	if err != nil {
		return AskResponse{}, fmt.Errorf("ask failed: %w", err)
	}

	return AskResponse{
		SessionID:     reply.SessionID,
		Response:      reply.Response,
		Intent:        reply.Intent,
		FocusedEntity: reply.Session.FocusedEntity,
		PendingMode:   reply.Session.PendingMode,
	}, nil
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CollegeResponse, error) {
	name, _ := args["name"].(string)
	rec, desc, ok := s.bot.Describe(name)
	if !ok {
		return CollegeResponse{}, fmt.Errorf("%w: %q", domain.ErrRecordNotFound, name)
	}
	return CollegeResponse{Record: rec, Description: desc}, nil
}

func (s *Server) handleList(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ListResponse, error) {
	location, _ := args["location"].(string)
	var records []domain.Record
	if strings.TrimSpace(location) == "" {
		records = s.bot.Catalog().All()
	} else {
		records = s.bot.ListByLocation(location)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return ListResponse{Colleges: records}, nil
}

func (s *Server) handleCompare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := request.GetString("a", "")
	b := request.GetString("b", "")
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return mcp.NewToolResultError("both a and b are required"), nil
	}
	return mcp.NewToolResultText(s.bot.Compare(a, b)), nil
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := request.GetString("session_id", "")
	if err := s.bot.Reset(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reset failed: %v", err)), nil
	}
	return mcp.NewToolResultText("session reset"), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "College Catalog",
		mcp.WithMIMEType("application/json"),
	), s.readCatalog)
}

func (s *Server) readCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.bot.Catalog().All())
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
