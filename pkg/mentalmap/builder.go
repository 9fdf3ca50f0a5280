package mentalmap

import (
	"sort"

	"github.com/threadmapco/threadmap/pkg/forum"
	"github.com/threadmapco/threadmap/pkg/utils"
)

// Build derives a Map from validated threads in a single linear pass, then
// time-sorts the chronology. The sort is the dominant cost, O(n log n) over
// all posts, which is why builds are memoized on the dataset fingerprint.
//
// Threads with no posts contribute nothing. Validation already happened at
// the ingestion boundary (forum.DecodeThreads), so every post here carries
// a sentiment and a parsed timestamp.
func Build(threads []forum.Thread) *Map {
	m := &Map{
		UserInteractions: make(map[string][]string),
		KeywordClusters:  make(map[string]int),
	}

	seenUsers := make(map[string]bool)

	for _, thread := range threads {
		for _, post := range thread.Posts {
			m.ChronologicalOrder = append(m.ChronologicalOrder, ChronologicalEntry{
				Time:           post.Time,
				Author:         post.Author,
				ContentPreview: utils.Preview(post.Content, PreviewLength),
				Sentiment:      post.Sentiment,
			})

			if post.QuotedUser != "" {
				m.UserInteractions[post.Author] = append(m.UserInteractions[post.Author], post.QuotedUser)
			}

			m.SentimentTimeline = append(m.SentimentTimeline, SentimentPoint{
				Time:      post.Time,
				Sentiment: post.Sentiment,
			})

			for _, keyword := range post.Keywords {
				if m.KeywordClusters[keyword] == 0 {
					m.KeywordOrder = append(m.KeywordOrder, keyword)
				}
				m.KeywordClusters[keyword]++
			}

			if !seenUsers[post.Author] {
				seenUsers[post.Author] = true
				m.KeyUsers = append(m.KeyUsers, post.Author)
			}
		}
	}

	sort.SliceStable(m.ChronologicalOrder, func(i, j int) bool {
		return m.ChronologicalOrder[i].Time.Before(m.ChronologicalOrder[j].Time)
	})

	return m
}
