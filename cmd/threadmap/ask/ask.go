// Package askcmder provides the ask command for interactively querying a
// forum dataset.
package askcmder

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/threadmapco/threadmap/pkg/cache"
	"github.com/threadmapco/threadmap/pkg/cliui"
	"github.com/threadmapco/threadmap/pkg/config"
	"github.com/threadmapco/threadmap/pkg/forum"
	"github.com/threadmapco/threadmap/pkg/logger"
	"github.com/threadmapco/threadmap/pkg/session"
)

var (
	userPrompt      = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true).Render("you> ")
	assistantPrompt = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("threadmap> ")
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type askCommander struct {
	dataPath string
	keyword  string
	debug    bool

	cfg     config.Config
	logger  *zap.Logger
	pretty  *charmlog.Logger
	session *session.Session
}

const askLongDesc string = `Start an interactive question-and-answer session over a forum dataset.

The dataset is analyzed once up front; questions mentioning time, sentiment,
users, or topics are answered from the resulting mental map. Repeated
questions are served from cache.

Commands inside the session:
  :status    show the analysis state
  :cache     show cache statistics
  :clear     clear the cache
  /exit      quit (Ctrl+D also works)

Examples:
  threadmap ask --data gardening_scraped_data.json
  threadmap ask --data posts.json --keyword gardening`

const askShortDesc string = "Interactively query a forum dataset"

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask",
		Short: askShortDesc,
		Long:  askLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfg, err := config.Load(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cmder.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			return cmder.run()
		},
	}

	cmd.Flags().StringVar(&cmder.dataPath, "data", "", "Dataset file to analyze (required)")
	cmd.Flags().StringVarP(&cmder.keyword, "keyword", "k", "", "Keyword labeling the dataset (default: derived from filename)")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (c *askCommander) run() error {
	// Structured logs go to zap; user-facing warnings go through the pretty
	// logger so they read like part of the conversation.
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()
	c.pretty = logger.NewPretty(c.debug, os.Stderr)

	fmt.Println()
	if err := c.analyze(); err != nil {
		return err
	}

	summary, err := c.session.Summarize()
	if err != nil {
		return fmt.Errorf("summarizing analysis: %w", err)
	}
	c.printMarkdown(cliui.FormatSummary(summary))

	fmt.Printf("  %s\n\n", dimStyle.Render("Type a question and press Enter. /exit or Ctrl+D to quit."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(userPrompt)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" {
			break
		}
		if strings.HasPrefix(input, ":") {
			c.runCommand(input)
			continue
		}

		result, err := c.session.Query(input)
		if err != nil {
			c.pretty.Error("query failed", "err", err)
			continue
		}

		fmt.Println(assistantPrompt)
		c.printMarkdown(cliui.FormatResult(result))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}

// analyze ingests the dataset file behind a progress spinner.
func (c *askCommander) analyze() error {
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

	// Session logs would interleave with the REPL prompt, so they stay
	// silent unless debugging.
	sessionLogger := logger.Nop()
	if c.debug {
		sessionLogger = c.logger
	}
	c.session = session.New(session.Config{
		Memoizer: cache.NewMemoizer(cache.NewStore()),
		Logger:   sessionLogger,
	})

	return cliui.Step(os.Stdout, fmt.Sprintf("Analyzing %s", c.dataPath), func() error {
		return c.session.Initialize(content, keyword)
	})
}

// runCommand handles the colon commands inside the REPL.
func (c *askCommander) runCommand(input string) {
	switch input {
	case ":status":
		fmt.Printf("  %s\n\n", c.session.Status())
	case ":cache":
		c.printMarkdown(cliui.FormatCacheStats(c.session.CacheStats()))
	case ":clear":
		c.session.ClearCache()
		fmt.Printf("  %s cache cleared\n\n", cliui.SuccessMark)
	default:
		fmt.Printf("  %s\n\n", dimStyle.Render("unknown command, try :status, :cache, or :clear"))
	}
}

func (c *askCommander) printMarkdown(content string) {
	rendered, err := cliui.RenderMarkdown(content)
	if err != nil {
		fmt.Println(content)
		return
	}
	fmt.Print(rendered)
}
