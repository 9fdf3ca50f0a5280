// Package threadmapcmder
package threadmapcmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/threadmapco/threadmap/cmd/threadmap/ask"
	cachecmder "github.com/threadmapco/threadmap/cmd/threadmap/cache"
	servecmder "github.com/threadmapco/threadmap/cmd/threadmap/serve"
	versioncmder "github.com/threadmapco/threadmap/cmd/version"
)

const threadmapLongDesc string = `Threadmap builds mental maps of forum discussions.

Point it at a scraped forum dataset and ask questions:
  threadmap ask --data gardening_scraped_data.json
  threadmap serve --data gardening_scraped_data.json
  threadmap cache stats`

const threadmapShortDesc string = "Threadmap - Forum Discussion Analysis"

func NewThreadmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threadmap",
		Short: threadmapShortDesc,
		Long:  threadmapLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Config directory (default: ./.threadmap or ~/.threadmap)")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(cachecmder.NewCacheCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
