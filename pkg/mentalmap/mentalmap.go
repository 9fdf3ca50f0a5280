// Package mentalmap builds the denormalized indices derived from a scraped
// forum dataset: a time-sorted chronology, a per-author interaction graph,
// a keyword histogram, a sentiment series, and the set of observed authors.
//
// A Map is built once per distinct dataset fingerprint and only read after
// that. Re-analysis of changed data builds a new Map under a new
// fingerprint; nothing updates a live Map in place.
package mentalmap

import "time"

// PreviewLength caps chronological content previews. The preview is a
// display optimization only; full post content stays in the raw dataset.
const PreviewLength = 100

// ChronologicalEntry is one post in the time-sorted chronology.
type ChronologicalEntry struct {
	Time           time.Time `json:"time"`
	Author         string    `json:"author"`
	ContentPreview string    `json:"content_preview"`
	Sentiment      float64   `json:"sentiment"`
}

// SentimentPoint is one post's sentiment in encounter order.
type SentimentPoint struct {
	Time      time.Time `json:"time"`
	Sentiment float64   `json:"sentiment"`
}

// Map is the derived index set. All fields are populated by Build and
// treated as immutable afterwards.
type Map struct {
	// ChronologicalOrder is sorted ascending by post time.
	ChronologicalOrder []ChronologicalEntry `json:"chronological_order"`

	// UserInteractions maps an author to the users they quoted, in
	// encounter order. Duplicates are kept: each occurrence is a distinct
	// interaction event.
	UserInteractions map[string][]string `json:"user_interactions"`

	// SentimentTimeline is in post-encounter order (thread-major, then post
	// order within the thread), not time order. The sentiment trend is
	// defined over encounter order; time-sorting this series would silently
	// change what the trend means.
	SentimentTimeline []SentimentPoint `json:"sentiment_timeline"`

	// KeywordClusters counts keyword occurrences across all posts.
	KeywordClusters map[string]int `json:"keyword_clusters"`

	// KeywordOrder records each keyword at its first encounter, for stable
	// frequency tie-breaking.
	KeywordOrder []string `json:"keyword_order"`

	// KeyUsers holds every distinct author, in insertion order.
	KeyUsers []string `json:"key_users"`
}

// Posts returns the number of posts the map was built from.
func (m *Map) Posts() int {
	return len(m.ChronologicalOrder)
}

// Interactions returns the total outgoing quote count for an author.
func (m *Map) Interactions(author string) int {
	return len(m.UserInteractions[author])
}
