package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/threadmapco/threadmap/pkg/cache"
)

var _ = Describe("Key", func() {
	It("is deterministic for identical inputs", func() {
		a := cache.Key("build", []any{"fingerprint-1", 42}, map[string]any{"depth": 3})
		b := cache.Key("build", []any{"fingerprint-1", 42}, map[string]any{"depth": 3})
		Expect(a).To(Equal(b))
	})

	It("returns a 256-bit hex digest", func() {
		Expect(cache.Key("id", nil, nil)).To(HaveLen(64))
		Expect(cache.Key("id", nil, nil)).To(MatchRegexp(`^[0-9a-f]{64}$`))
	})

	It("differs across identifiers", func() {
		Expect(cache.Key("build", []any{"x"}, nil)).NotTo(Equal(cache.Key("query", []any{"x"}, nil)))
	})

	It("differs across positional arguments", func() {
		Expect(cache.Key("build", []any{"x"}, nil)).NotTo(Equal(cache.Key("build", []any{"y"}, nil)))
	})

	It("differs when arguments move between positions", func() {
		Expect(cache.Key("build", []any{"a", "b"}, nil)).NotTo(Equal(cache.Key("build", []any{"b", "a"}, nil)))
	})

	It("ignores the call-site ordering of named arguments", func() {
		// Maps carry no order; equality across runs is what the sorted
		// serialization guarantees.
		a := cache.Key("build", nil, map[string]any{"alpha": 1, "beta": 2, "gamma": 3})
		b := cache.Key("build", nil, map[string]any{"gamma": 3, "alpha": 1, "beta": 2})
		Expect(a).To(Equal(b))
	})

	It("produces no collisions across a representative corpus", func() {
		seen := map[string]bool{}
		inputs := [][]any{
			{"a"}, {"b"}, {"a", "b"}, {"ab"}, {"a|b"}, {1}, {2}, {1.5},
			{true}, {false}, {""},
		}
		for _, args := range inputs {
			k := cache.Key("corpus", args, nil)
			Expect(seen[k]).To(BeFalse(), "collision for %v", args)
			seen[k] = true
		}
	})
})
