package session

import (
	"time"
)

// Summary is the initial-analysis digest shown right after a session arms:
// headline counts, the dataset's time span, and questions the engine can
// actually answer given which indices have data.
type Summary struct {
	Keyword          string    `json:"keyword"`
	Threads          int       `json:"threads"`
	Posts            int       `json:"posts"`
	Authors          int       `json:"authors"`
	FirstPost        time.Time `json:"first_post,omitempty"`
	LastPost         time.Time `json:"last_post,omitempty"`
	SuggestedQueries []string  `json:"suggested_queries"`
}

// Summarize builds the digest. Returns ErrNotReady before initialization.
func (s *Session) Summarize() (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != StateReady {
		return Summary{}, ErrNotReady
	}

	summary := Summary{
		Keyword: s.keyword,
		Threads: len(s.threads),
		Posts:   s.mentalMap.Posts(),
		Authors: len(s.mentalMap.KeyUsers),
	}

	if chronology := s.mentalMap.ChronologicalOrder; len(chronology) > 0 {
		summary.FirstPost = chronology[0].Time
		summary.LastPost = chronology[len(chronology)-1].Time
		summary.SuggestedQueries = append(summary.SuggestedQueries,
			"When was this discussion active?")
	}
	if len(s.mentalMap.SentimentTimeline) > 0 {
		summary.SuggestedQueries = append(summary.SuggestedQueries,
			"What is the overall sentiment?")
	}
	if len(s.mentalMap.KeyUsers) > 0 {
		summary.SuggestedQueries = append(summary.SuggestedQueries,
			"Who are the most active users?")
	}
	if len(s.mentalMap.KeywordOrder) > 0 {
		summary.SuggestedQueries = append(summary.SuggestedQueries,
			"Which topics come up the most?")
	}

	return summary, nil
}
