package query

import (
	"sort"
	"time"

	"github.com/threadmapco/threadmap/pkg/mentalmap"
)

const (
	maxActiveUsers = 5
	maxKeyUsers    = 5
	maxKeywords    = 10

	// TrendPositive means the last encountered sentiment exceeds the first.
	TrendPositive = "positive"
	TrendNegative = "negative"
)

type analyzerFunc func(m *mentalmap.Map) any

// NoData is the sub-result for a category whose inputs are empty. It is a
// valid answer, distinct from the question not being recognized at all.
type NoData struct {
	Message string `json:"message"`
}

// TemporalSummary spans the chronology from first to last post.
type TemporalSummary struct {
	FirstPost    time.Time `json:"first_post"`
	LastPost     time.Time `json:"last_post"`
	ElapsedDays  int       `json:"elapsed_days"`
	ElapsedHours int       `json:"elapsed_hours"`
}

// SentimentSummary aggregates the sentiment timeline. Trend compares the
// last encountered point against the first, not the chronologically
// earliest, because the timeline keeps encounter order.
type SentimentSummary struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Trend   string  `json:"trend"`
}

// UserActivity pairs an author with their outgoing quote count.
type UserActivity struct {
	Author       string `json:"author"`
	Interactions int    `json:"interactions"`
}

// UsersSummary carries two intentionally different orderings: MostActive is
// ranked by interaction count, KeyUsers is the raw first-seen order.
type UsersSummary struct {
	MostActive []UserActivity `json:"most_active"`
	KeyUsers   []string       `json:"key_users"`
}

// KeywordFrequency pairs a keyword with its occurrence count.
type KeywordFrequency struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// KeywordsSummary ranks keywords by frequency.
type KeywordsSummary struct {
	TopKeywords []KeywordFrequency `json:"top_keywords"`
}

func analyzeTemporal(m *mentalmap.Map) any {
	if len(m.ChronologicalOrder) == 0 {
		return NoData{Message: "no posts in dataset"}
	}

	first := m.ChronologicalOrder[0].Time
	last := m.ChronologicalOrder[len(m.ChronologicalOrder)-1].Time
	elapsed := last.Sub(first)

	return TemporalSummary{
		FirstPost:    first,
		LastPost:     last,
		ElapsedDays:  int(elapsed.Hours()) / 24,
		ElapsedHours: int(elapsed.Hours()) % 24,
	}
}

func analyzeSentiment(m *mentalmap.Map) any {
	timeline := m.SentimentTimeline
	if len(timeline) == 0 {
		return NoData{Message: "no sentiment data"}
	}

	sum := timeline[0].Sentiment
	min := timeline[0].Sentiment
	max := timeline[0].Sentiment
	for _, point := range timeline[1:] {
		sum += point.Sentiment
		if point.Sentiment < min {
			min = point.Sentiment
		}
		if point.Sentiment > max {
			max = point.Sentiment
		}
	}

	trend := TrendNegative
	if timeline[len(timeline)-1].Sentiment > timeline[0].Sentiment {
		trend = TrendPositive
	}

	return SentimentSummary{
		Average: sum / float64(len(timeline)),
		Min:     min,
		Max:     max,
		Trend:   trend,
	}
}

func analyzeUsers(m *mentalmap.Map) any {
	// Iterate authors in KeyUsers insertion order so the stable sort has a
	// deterministic base ordering for equal counts.
	active := make([]UserActivity, 0, len(m.UserInteractions))
	for _, author := range m.KeyUsers {
		if n := m.Interactions(author); n > 0 {
			active = append(active, UserActivity{Author: author, Interactions: n})
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Interactions > active[j].Interactions
	})

	// Keep everything tied with the cutoff rank rather than slicing blind.
	if len(active) > maxActiveUsers {
		cutoff := active[maxActiveUsers-1].Interactions
		end := maxActiveUsers
		for end < len(active) && active[end].Interactions == cutoff {
			end++
		}
		active = active[:end]
	}

	keyUsers := m.KeyUsers
	if len(keyUsers) > maxKeyUsers {
		keyUsers = keyUsers[:maxKeyUsers]
	}

	return UsersSummary{MostActive: active, KeyUsers: keyUsers}
}

func analyzeKeywords(m *mentalmap.Map) any {
	ranked := make([]KeywordFrequency, 0, len(m.KeywordOrder))
	for _, keyword := range m.KeywordOrder {
		ranked = append(ranked, KeywordFrequency{Keyword: keyword, Count: m.KeywordClusters[keyword]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > maxKeywords {
		ranked = ranked[:maxKeywords]
	}

	return KeywordsSummary{TopKeywords: ranked}
}
