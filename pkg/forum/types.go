// Package forum defines the raw dataset model, scraped threads and the
// posts inside them, plus the strict ingestion boundary that validates a
// dataset before any analysis touches it. Validation happens here, at
// decode time, so downstream aggregation can assume every post is
// well-formed.
package forum

import "time"

// Post is a single validated forum post.
type Post struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Time    time.Time `json:"time"`
	Content string    `json:"content"`
	// Sentiment is a signed score attached by the scraper. Every post must
	// carry one; numeric aggregation downstream assumes it is a valid real.
	Sentiment float64  `json:"sentiment"`
	Keywords  []string `json:"keywords,omitempty"`
	// QuotedUser names the author this post quotes, when it quotes one.
	// Each occurrence is a distinct interaction event.
	QuotedUser string `json:"quoted_user,omitempty"`
}

// Thread is an ordered collection of posts scraped from one forum page.
type Thread struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	ScrapeTime string `json:"scrape_time,omitempty"`
	Posts      []Post `json:"posts"`
}
