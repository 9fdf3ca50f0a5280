package forum

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MalformedInputError describes a dataset that failed validation at the
// ingestion boundary. It names the offending record when one is known.
// Malformed input is not retryable; the dataset has to be fixed.
type MalformedInputError struct {
	Record string // e.g. "thread 2 (\"Some title\"), post 5"
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input at %s: %s", e.Record, e.Reason)
}

// postRecord is the wire shape of a post. Required fields are pointers or
// checked strings so absence is distinguishable from a zero value.
type postRecord struct {
	ID         string   `json:"id"`
	Author     string   `json:"author"`
	Time       string   `json:"time"`
	Content    string   `json:"content"`
	Sentiment  *float64 `json:"sentiment"`
	Keywords   []string `json:"keywords"`
	QuotedUser string   `json:"quoted_user"`
}

// threadRecord is the wire shape of a thread.
type threadRecord struct {
	URL        string       `json:"url"`
	Title      string       `json:"title"`
	ScrapeTime string       `json:"scrape_time"`
	Posts      []postRecord `json:"posts"`
}

// timeLayouts are the accepted post timestamp formats: RFC 3339 and the
// zone-less variant some scrapers emit.
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

// DecodeThreads parses a raw dataset into validated threads. Every failure
// is a *MalformedInputError: the content is not a JSON array of threads, or
// a post is missing a required field (author, time, sentiment), or a
// timestamp does not parse. A post missing sentiment fails the whole decode
// rather than being defaulted, since a silently-injected zero would skew
// every downstream aggregate.
func DecodeThreads(content []byte) ([]Thread, error) {
	var records []threadRecord
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, &MalformedInputError{
			Reason: fmt.Sprintf("dataset is not a JSON array of threads: %v", err),
		}
	}

	threads := make([]Thread, 0, len(records))
	for ti, tr := range records {
		thread := Thread{
			URL:        tr.URL,
			Title:      tr.Title,
			ScrapeTime: tr.ScrapeTime,
			Posts:      make([]Post, 0, len(tr.Posts)),
		}

		for pi, pr := range tr.Posts {
			record := recordRef(ti, tr.Title, pi)

			if pr.Author == "" {
				return nil, &MalformedInputError{Record: record, Reason: "missing author"}
			}
			if pr.Sentiment == nil {
				return nil, &MalformedInputError{Record: record, Reason: "missing sentiment"}
			}
			if pr.Time == "" {
				return nil, &MalformedInputError{Record: record, Reason: "missing time"}
			}

			t, err := parseTime(pr.Time)
			if err != nil {
				return nil, &MalformedInputError{
					Record: record,
					Reason: fmt.Sprintf("unparsable time %q", pr.Time),
				}
			}

			thread.Posts = append(thread.Posts, Post{
				ID:         pr.ID,
				Author:     pr.Author,
				Time:       t,
				Content:    pr.Content,
				Sentiment:  *pr.Sentiment,
				Keywords:   pr.Keywords,
				QuotedUser: pr.QuotedUser,
			})
		}

		threads = append(threads, thread)
	}

	return threads, nil
}

func recordRef(threadIdx int, title string, postIdx int) string {
	if title == "" {
		return fmt.Sprintf("thread %d, post %d", threadIdx, postIdx)
	}
	return fmt.Sprintf("thread %d (%q), post %d", threadIdx, title, postIdx)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("time %q matches no accepted layout", s)
}

// DetectKeyword derives the dataset's display keyword from its filename.
// Scraper output follows the <keyword>_scraped_data.json convention; the
// boolean is false when the name does not match it.
func DetectKeyword(filename string) (string, bool) {
	const suffix = "_scraped_data.json"
	base := filepath.Base(filename)
	if !strings.HasSuffix(base, suffix) {
		return "", false
	}
	keyword := strings.TrimSuffix(base, suffix)
	if keyword == "" {
		return "", false
	}
	return keyword, true
}
