// Package cachecmder provides the cache command for inspecting and clearing
// a running server's cache.
package cachecmder

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/threadmapco/threadmap/pkg/cache"
	"github.com/threadmapco/threadmap/pkg/cliui"
	"github.com/threadmapco/threadmap/pkg/config"
)

type cacheCommander struct {
	apiTarget string
}

const cacheLongDesc string = `Inspect or clear the cache of a running Threadmap API server.

Examples:
  threadmap cache stats
  threadmap cache clear
  threadmap cache stats --api-target http://localhost:8081`

const cacheShortDesc string = "Inspect or clear the server cache"

func NewCacheCmd() *cobra.Command {
	cmder := &cacheCommander{}

	cmd := &cobra.Command{
		Use:   "cache",
		Short: cacheShortDesc,
		Long:  cacheLongDesc,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfg, err := config.Load(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if !cmd.Flags().Changed("api-target") {
				cmder.apiTarget = cfg.Client.APITarget
			}
			return nil
		},
	}

	defaults := config.NewDefaultConfig()
	cmd.PersistentFlags().StringVarP(&cmder.apiTarget, "api-target", "a", defaults.Client.APITarget, "Threadmap API server URL")

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.stats()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear every cached entry",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.clear()
		},
	})

	return cmd
}

func (c *cacheCommander) stats() error {
	body, err := c.do(http.MethodGet, "/cache/stats")
	if err != nil {
		return err
	}

	var stats cache.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return fmt.Errorf("decoding stats: %w", err)
	}

	rendered, err := cliui.RenderMarkdown(cliui.FormatCacheStats(stats))
	if err != nil {
		fmt.Println(cliui.FormatCacheStats(stats))
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func (c *cacheCommander) clear() error {
	if _, err := c.do(http.MethodPost, "/cache/clear"); err != nil {
		return err
	}
	fmt.Printf("  %s cache cleared\n", cliui.SuccessMark)
	return nil
}

func (c *cacheCommander) do(method, path string) ([]byte, error) {
	req, err := http.NewRequest(method, c.apiTarget+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  %s is the server running at %s?\n", cliui.FailMark, c.apiTarget)
		return nil, fmt.Errorf("reaching API server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API server returned %s", resp.Status)
	}
	return body, nil
}
