package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/threadmapco/threadmap/pkg/config"
)

var _ = Describe("Load", func() {
	var tmpDir string

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
	})

	Context("with no config file", func() {
		It("returns the defaults", func() {
			cfg, err := config.Load(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			d := config.NewDefaultConfig()
			Expect(cfg.API.Listen).To(Equal(d.API.Listen))
			Expect(cfg.MCP.Enabled).To(Equal(d.MCP.Enabled))
			Expect(cfg.Cache.MapTTL).To(Equal(d.Cache.MapTTL))
			Expect(cfg.Client.APITarget).To(Equal(d.Client.APITarget))
		})
	})

	Context("with a config.toml present", func() {
		BeforeEach(func() {
			content := `
version = 0

[api]
listen = ":9999"

[cache]
map_ttl = "30m"
watch_dataset = false
`
			path := filepath.Join(tmpDir, "config.toml")
			Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		})

		It("overrides defaults with file values", func() {
			cfg, err := config.Load(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.API.Listen).To(Equal(":9999"))
			Expect(cfg.Cache.MapTTL).To(Equal("30m"))
			Expect(cfg.Cache.WatchDataset).To(BeFalse())
		})

		It("keeps defaults for keys the file omits", func() {
			cfg, err := config.Load(tmpDir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Cache.QueryTTL).To(Equal(config.NewDefaultConfig().Cache.QueryTTL))
		})
	})

	Context("with an environment override", func() {
		BeforeEach(func() {
			GinkgoT().Setenv("THREADMAP_API_LISTEN", ":7070")
		})

		It("prefers the environment over defaults", func() {
			cfg, err := config.Load(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.API.Listen).To(Equal(":7070"))
		})
	})
})
