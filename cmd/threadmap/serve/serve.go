// Package servecmder provides the serve command for running the API server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/threadmapco/threadmap/api"
	"github.com/threadmapco/threadmap/pkg/cache"
	"github.com/threadmapco/threadmap/pkg/config"
	"github.com/threadmapco/threadmap/pkg/forum"
	"github.com/threadmapco/threadmap/pkg/logger"
	"github.com/threadmapco/threadmap/pkg/session"
)

type ServeCommander struct {
	listen   string
	dataPath string
	keyword  string
	watch    bool
	mcp      bool
	debug    bool

	cfg    config.Config
	logger *zap.Logger
}

const serveLongDesc string = `Run the Threadmap API server.

Sessions are created by POSTing a scraped forum dataset to /sessions and
queried through /sessions/:id/query. With --data, a session over the given
dataset file is created at startup; with --watch, changes to that file on
disk clear the whole cache so the next analysis rebuilds from fresh data.

Examples:
  threadmap serve
  threadmap serve --data gardening_scraped_data.json --watch`

const serveShortDesc string = "Run the Threadmap API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfg, err := config.Load(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cmder.cfg = cfg

			if !cmd.Flags().Changed("listen") {
				cmder.listen = cfg.API.Listen
			}
			if !cmd.Flags().Changed("mcp") {
				cmder.mcp = cfg.MCP.Enabled
			}
			if !cmd.Flags().Changed("watch") {
				cmder.watch = cfg.Cache.WatchDataset
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	defaults := config.NewDefaultConfig()
	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", defaults.API.Listen, "Address for API server to listen on")
	cmd.Flags().StringVar(&cmder.dataPath, "data", "", "Dataset file to analyze at startup")
	cmd.Flags().StringVarP(&cmder.keyword, "keyword", "k", "", "Keyword labeling the dataset (default: derived from filename)")
	cmd.Flags().BoolVarP(&cmder.watch, "watch", "w", defaults.Cache.WatchDataset, "Clear the cache when the dataset file changes")
	cmd.Flags().BoolVar(&cmder.mcp, "mcp", defaults.MCP.Enabled, "Expose the analysis tools over MCP at /mcp")

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	store := cache.NewStore()
	registry := session.NewRegistry(session.Config{
		Memoizer: cache.NewMemoizer(store),
		Logger:   c.logger,
		MapTTL:   parseTTL(c.cfg.Cache.MapTTL),
		QueryTTL: parseTTL(c.cfg.Cache.QueryTTL),
	})

	if c.dataPath != "" {
		if err := c.seedSession(registry); err != nil {
			return err
		}
	}

	if c.watch && c.dataPath != "" {
		watcher, err := cache.NewWatcher(store, c.dataPath, c.logger)
		if err != nil {
			return fmt.Errorf("watching dataset: %w", err)
		}
		defer watcher.Close()
	}

	server, err := api.NewServer(api.Config{
		ListenAddr: c.listen,
		EnableMCP:  c.mcp,
	}, registry, store, c.logger)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		if err := server.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return server.Shutdown()
	}
}

// seedSession ingests the --data file into a fresh session so the server
// starts ready to answer queries.
func (c *ServeCommander) seedSession(registry *session.Registry) error {
	content, err := os.ReadFile(c.dataPath)
	if err != nil {
		return fmt.Errorf("reading dataset: %w", err)
	}

	keyword := c.keyword
	if keyword == "" {
		if derived, ok := forum.DetectKeyword(c.dataPath); ok {
			keyword = derived
		} else {
			keyword = c.cfg.Analysis.DefaultKeyword
		}
	}

	sess := registry.Create()
	if err := sess.Initialize(content, keyword); err != nil {
		return fmt.Errorf("analyzing %s: %w", c.dataPath, err)
	}

	c.logger.Info("startup session ready",
		zap.String("session", sess.ID()),
		zap.String("keyword", keyword),
		zap.String("data", c.dataPath),
	)
	return nil
}

// parseTTL maps config duration strings onto time.Duration. Bad or empty
// values fall back to no expiry rather than failing startup.
func parseTTL(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
