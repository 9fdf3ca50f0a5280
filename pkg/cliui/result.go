package cliui

import (
	"fmt"
	"strings"
	"time"

	"github.com/threadmapco/threadmap/pkg/cache"
	"github.com/threadmapco/threadmap/pkg/query"
	"github.com/threadmapco/threadmap/pkg/session"
)

// FormatResult renders a query result as markdown for glamour. Categories
// appear in engine table order so repeated questions render identically.
func FormatResult(r query.Result) string {
	if r.Empty() {
		return "I could not match that question to an analysis. Try asking " +
			"about **time**, **sentiment**, **users**, or **topics**."
	}

	var b strings.Builder
	for _, category := range []query.Category{
		query.CategoryTemporal, query.CategorySentiment,
		query.CategoryUsers, query.CategoryKeywords,
	} {
		sub, ok := r[category]
		if !ok {
			continue
		}
		switch v := sub.(type) {
		case query.TemporalSummary:
			fmt.Fprintf(&b, "## Timeline\n\n")
			fmt.Fprintf(&b, "- First post: %s\n", v.FirstPost.Format(time.RFC1123))
			fmt.Fprintf(&b, "- Last post: %s\n", v.LastPost.Format(time.RFC1123))
			fmt.Fprintf(&b, "- Span: %d days, %d hours\n\n", v.ElapsedDays, v.ElapsedHours)
		case query.SentimentSummary:
			fmt.Fprintf(&b, "## Sentiment\n\n")
			fmt.Fprintf(&b, "- Average: %.2f (min %.2f, max %.2f)\n", v.Average, v.Min, v.Max)
			fmt.Fprintf(&b, "- Trend: %s\n\n", v.Trend)
		case query.UsersSummary:
			fmt.Fprintf(&b, "## Users\n\n")
			for _, a := range v.MostActive {
				fmt.Fprintf(&b, "- **%s**: %d interactions\n", a.Author, a.Interactions)
			}
			if len(v.KeyUsers) > 0 {
				fmt.Fprintf(&b, "\nFirst seen: %s\n\n", strings.Join(v.KeyUsers, ", "))
			}
		case query.KeywordsSummary:
			fmt.Fprintf(&b, "## Topics\n\n")
			for _, k := range v.TopKeywords {
				fmt.Fprintf(&b, "- **%s** (%d)\n", k.Keyword, k.Count)
			}
			b.WriteString("\n")
		case query.NoData:
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", categoryTitle(category), v.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormatSummary renders the initial-analysis digest shown after a dataset
// loads in the ask REPL.
func FormatSummary(s session.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis ready: %s\n\n", s.Keyword)
	fmt.Fprintf(&b, "- %d threads, %d posts, %d authors\n", s.Threads, s.Posts, s.Authors)
	if !s.FirstPost.IsZero() {
		fmt.Fprintf(&b, "- Activity from %s to %s\n",
			s.FirstPost.Format("2006-01-02"), s.LastPost.Format("2006-01-02"))
	}
	if len(s.SuggestedQueries) > 0 {
		b.WriteString("\nTry asking:\n\n")
		for _, q := range s.SuggestedQueries {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	return b.String()
}

// FormatCacheStats renders store counters for the cache CLI and the REPL's
// :cache command.
func FormatCacheStats(stats cache.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Cache\n\n")
	fmt.Fprintf(&b, "- Entries: %d\n", stats.Entries)
	fmt.Fprintf(&b, "- Hits: %d, misses: %d (ratio %.0f%%)\n",
		stats.Hits, stats.Misses, stats.HitRatio()*100)
	fmt.Fprintf(&b, "- Total cached since start: %d\n", stats.TotalCached)
	if !stats.LastModified.IsZero() {
		fmt.Fprintf(&b, "- Last modified: %s\n", stats.LastModified.Format(time.RFC3339))
	}
	if !stats.LastClear.IsZero() {
		fmt.Fprintf(&b, "- Last cleared: %s\n", stats.LastClear.Format(time.RFC3339))
	}
	return b.String()
}

func categoryTitle(c query.Category) string {
	switch c {
	case query.CategoryTemporal:
		return "Timeline"
	case query.CategorySentiment:
		return "Sentiment"
	case query.CategoryUsers:
		return "Users"
	default:
		return "Topics"
	}
}
