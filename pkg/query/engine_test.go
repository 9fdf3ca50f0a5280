package query_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/threadmapco/threadmap/pkg/forum"
	"github.com/threadmapco/threadmap/pkg/mentalmap"
	"github.com/threadmapco/threadmap/pkg/query"
)

func mapFromSentiments(sentiments ...float64) *mentalmap.Map {
	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]forum.Post, 0, len(sentiments))
	for i, s := range sentiments {
		posts = append(posts, forum.Post{
			Author:    fmt.Sprintf("user%d", i),
			Time:      t0.Add(time.Duration(i) * time.Hour),
			Content:   "post",
			Sentiment: s,
		})
	}
	return mentalmap.Build([]forum.Thread{{Posts: posts}})
}

var _ = Describe("Engine", func() {
	var engine *query.Engine

	BeforeEach(func() {
		engine = query.NewEngine()
	})

	Context("dispatch", func() {
		m := mapFromSentiments(0.1, 0.2)

		It("is case-insensitive", func() {
			result := engine.Query(m, "WHEN did this happen?")
			Expect(result).To(HaveKey(query.CategoryTemporal))
		})

		It("matches trigger substrings inside words", func() {
			result := engine.Query(m, "show me the timeline")
			Expect(result).To(HaveKey(query.CategoryTemporal))
		})

		It("fires multiple categories from one question", func() {
			result := engine.Query(m, "who posted and what was the sentiment over time?")
			Expect(result).To(HaveKey(query.CategoryTemporal))
			Expect(result).To(HaveKey(query.CategorySentiment))
			Expect(result).To(HaveKey(query.CategoryUsers))
		})

		It("returns an empty result for an unrecognized question", func() {
			result := engine.Query(m, "tell me a joke")
			Expect(result.Empty()).To(BeTrue())
		})
	})

	Context("temporal analysis", func() {
		It("reports first, last, and elapsed time", func() {
			t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
			m := mentalmap.Build([]forum.Thread{{Posts: []forum.Post{
				{Author: "a", Time: t0, Content: "x"},
				{Author: "b", Time: t0.Add(49 * time.Hour), Content: "y"},
			}}})

			result := engine.Query(m, "when was this active?")

			summary := result[query.CategoryTemporal].(query.TemporalSummary)
			Expect(summary.FirstPost).To(Equal(t0))
			Expect(summary.LastPost).To(Equal(t0.Add(49 * time.Hour)))
			Expect(summary.ElapsedDays).To(Equal(2))
			Expect(summary.ElapsedHours).To(Equal(1))
		})

		It("reports no data for an empty map", func() {
			m := mentalmap.Build(nil)
			result := engine.Query(m, "when?")
			Expect(result[query.CategoryTemporal]).To(BeAssignableToTypeOf(query.NoData{}))
		})
	})

	Context("sentiment analysis", func() {
		It("computes average, extremes, and trend", func() {
			m := mapFromSentiments(0.2, 0.5, -0.1, 0.8)

			result := engine.Query(m, "what is the sentiment?")

			summary := result[query.CategorySentiment].(query.SentimentSummary)
			Expect(summary.Average).To(BeNumerically("~", 0.35, 1e-9))
			Expect(summary.Min).To(Equal(-0.1))
			Expect(summary.Max).To(Equal(0.8))
			Expect(summary.Trend).To(Equal(query.TrendPositive))
		})

		It("reports a negative trend when the series ends lower", func() {
			m := mapFromSentiments(0.8, 0.1)
			result := engine.Query(m, "overall feeling?")
			summary := result[query.CategorySentiment].(query.SentimentSummary)
			Expect(summary.Trend).To(Equal(query.TrendNegative))
		})

		It("counts a flat series as negative, not positive", func() {
			m := mapFromSentiments(0.5, 0.5)
			result := engine.Query(m, "sentiment")
			summary := result[query.CategorySentiment].(query.SentimentSummary)
			Expect(summary.Trend).To(Equal(query.TrendNegative))
		})

		It("reports no data on an empty timeline", func() {
			m := mentalmap.Build(nil)
			result := engine.Query(m, "sentiment?")
			Expect(result[query.CategorySentiment]).To(BeAssignableToTypeOf(query.NoData{}))
		})
	})

	Context("user analysis", func() {
		quotes := func(author string, times int, at time.Time) []forum.Post {
			posts := make([]forum.Post, 0, times)
			for i := 0; i < times; i++ {
				posts = append(posts, forum.Post{
					Author: author, Time: at, Content: "q", QuotedUser: "someone",
				})
			}
			return posts
		}

		It("ranks authors by interaction count and keeps cutoff ties", func() {
			t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
			var posts []forum.Post
			posts = append(posts, quotes("a", 5, t0)...)
			posts = append(posts, quotes("b", 5, t0)...)
			posts = append(posts, quotes("c", 2, t0)...)
			m := mentalmap.Build([]forum.Thread{{Posts: posts}})

			result := engine.Query(m, "who are the most active users?")

			summary := result[query.CategoryUsers].(query.UsersSummary)
			Expect(summary.MostActive).To(Equal([]query.UserActivity{
				{Author: "a", Interactions: 5},
				{Author: "b", Interactions: 5},
				{Author: "c", Interactions: 2},
			}))
		})

		It("retains authors tied with the fifth rank", func() {
			t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
			var posts []forum.Post
			posts = append(posts, quotes("a", 9, t0)...)
			for _, author := range []string{"b", "c", "d", "e", "f", "g"} {
				posts = append(posts, quotes(author, 3, t0)...)
			}
			m := mentalmap.Build([]forum.Thread{{Posts: posts}})

			result := engine.Query(m, "who is active?")

			summary := result[query.CategoryUsers].(query.UsersSummary)
			Expect(summary.MostActive).To(HaveLen(7))
		})

		It("caps key users at five, in insertion order", func() {
			t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
			var posts []forum.Post
			for _, author := range []string{"f", "e", "d", "c", "b", "a"} {
				posts = append(posts, forum.Post{Author: author, Time: t0, Content: "x"})
			}
			m := mentalmap.Build([]forum.Thread{{Posts: posts}})

			result := engine.Query(m, "which users matter?")

			summary := result[query.CategoryUsers].(query.UsersSummary)
			Expect(summary.KeyUsers).To(Equal([]string{"f", "e", "d", "c", "b"}))
		})
	})

	Context("keyword analysis", func() {
		It("ranks keywords by frequency with first-encounter tie-breaking", func() {
			t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
			m := mentalmap.Build([]forum.Thread{{Posts: []forum.Post{
				{Author: "a", Time: t0, Content: "x", Keywords: []string{"beta", "alpha"}},
				{Author: "b", Time: t0, Content: "y", Keywords: []string{"alpha", "gamma"}},
				{Author: "c", Time: t0, Content: "z", Keywords: []string{"gamma"}},
			}}})

			result := engine.Query(m, "what are the main topics?")

			summary := result[query.CategoryKeywords].(query.KeywordsSummary)
			Expect(summary.TopKeywords).To(Equal([]query.KeywordFrequency{
				{Keyword: "alpha", Count: 2},
				{Keyword: "gamma", Count: 2},
				{Keyword: "beta", Count: 1},
			}))
		})

		It("caps the ranking at ten keywords", func() {
			t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
			keywords := make([]string, 15)
			for i := range keywords {
				keywords[i] = fmt.Sprintf("kw%02d", i)
			}
			m := mentalmap.Build([]forum.Thread{{Posts: []forum.Post{
				{Author: "a", Time: t0, Content: "x", Keywords: keywords},
			}}})

			result := engine.Query(m, "keyword breakdown")

			summary := result[query.CategoryKeywords].(query.KeywordsSummary)
			Expect(summary.TopKeywords).To(HaveLen(10))
		})
	})
})
