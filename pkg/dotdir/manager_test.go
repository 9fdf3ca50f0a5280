package dotdir_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/threadmapco/threadmap/pkg/dotdir"
)

var _ = Describe("dotdir.Manager", func() {
	var tmpDir string
	var m *dotdir.Manager

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		m = dotdir.NewManager()
	})

	Context("with an override directory", func() {
		It("resolves to the override", func() {
			target, err := m.Target(tmpDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(target).To(Equal(tmpDir))
		})

		It("creates the override directory when missing", func() {
			override := filepath.Join(tmpDir, "nested", "dir")
			target, err := m.Target(override)
			Expect(err).NotTo(HaveOccurred())

			info, err := os.Stat(target)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())
		})
	})
})
