package cache_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/threadmapco/threadmap/pkg/cache"
)

var _ = Describe("Watcher", func() {
	var (
		store   *cache.Store
		dataset string
		watcher *cache.Watcher
	)

	BeforeEach(func() {
		store = cache.NewStore()
		dataset = filepath.Join(GinkgoT().TempDir(), "forum_scraped_data.json")
		Expect(os.WriteFile(dataset, []byte("[]"), 0o644)).To(Succeed())

		var err error
		watcher, err = cache.NewWatcher(store, dataset, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(watcher.Close()).To(Succeed())
	})

	It("clears the store when the watched file is rewritten", func() {
		store.Put("mentalmap", "stale", 0)
		Expect(store.Len()).To(Equal(1))

		Expect(os.WriteFile(dataset, []byte(`[{"posts":[]}]`), 0o644)).To(Succeed())

		Eventually(store.Len, 2*time.Second, 10*time.Millisecond).Should(Equal(0))
	})

	It("ignores changes to sibling files", func() {
		store.Put("mentalmap", "fresh", 0)

		sibling := filepath.Join(filepath.Dir(dataset), "other.json")
		Expect(os.WriteFile(sibling, []byte("{}"), 0o644)).To(Succeed())

		Consistently(store.Len, 300*time.Millisecond, 25*time.Millisecond).Should(Equal(1))
	})
})
