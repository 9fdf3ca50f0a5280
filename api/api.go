package api

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/threadmapco/threadmap/api/mcp"
	"github.com/threadmapco/threadmap/pkg/cache"
	"github.com/threadmapco/threadmap/pkg/session"
)

// Server is the API server for managing and querying analysis sessions.
type Server struct {
	config   Config
	registry *session.Registry
	store    *cache.Store
	logger   *zap.Logger
	app      *fiber.App
}

// NewServer creates a new API server. The registry and store are injected
// to allow sharing with other components (the dataset watcher clears the
// same store the sessions memoize into).
func NewServer(config Config, registry *session.Registry, store *cache.Store, logger *zap.Logger) (*Server, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		registry: registry,
		store:    store,
		logger:   logger,
		app:      app,
	}

	app.Get("/ping", s.handlePing)
	app.Post("/sessions", s.handleCreateSession)
	app.Get("/sessions/:id", s.handleGetSession)
	app.Delete("/sessions/:id", s.handleDeleteSession)
	app.Post("/sessions/:id/query", s.handleQuery)
	app.Get("/sessions/:id/summary", s.handleSummary)
	app.Get("/cache/stats", s.handleCacheStats)
	app.Post("/cache/clear", s.handleCacheClear)

	mcpServer, err := mcp.NewServer(mcp.Config{
		Registry: registry,
		Logger:   logger,
		Noop:     !config.EnableMCP,
	})
	if err != nil {
		return nil, err
	}
	if config.EnableMCP {
		app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))
	}

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
		zap.Bool("mcp", s.config.EnableMCP),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
