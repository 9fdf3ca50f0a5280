// Package query answers natural-language questions against a built mental
// map. Dispatch is a declarative trigger table: each category fires when
// the lowercased question contains one of its trigger substrings, and every
// category is evaluated independently, so one question can produce several
// sub-results. A question matching nothing yields an empty Result, which is
// a recognized outcome rather than an error.
package query

import (
	"strings"

	"github.com/threadmapco/threadmap/pkg/mentalmap"
)

// Category names one analysis dimension of a mental map.
type Category string

const (
	CategoryTemporal  Category = "temporal_analysis"
	CategorySentiment Category = "sentiment_analysis"
	CategoryUsers     Category = "user_analysis"
	CategoryKeywords  Category = "keyword_analysis"
)

// Result maps each fired category to its sub-result.
type Result map[Category]any

// Empty reports whether no category recognized the question.
func (r Result) Empty() bool {
	return len(r) == 0
}

type trigger struct {
	category Category
	terms    []string
	analyze  analyzerFunc
}

// Engine dispatches questions over the trigger table. The zero-cost
// construction exists so callers hold one engine per session and the table
// stays an implementation detail.
type Engine struct {
	triggers []trigger
}

func NewEngine() *Engine {
	return &Engine{
		triggers: []trigger{
			{CategoryTemporal, []string{"time", "when"}, analyzeTemporal},
			{CategorySentiment, []string{"sentiment", "feeling"}, analyzeSentiment},
			{CategoryUsers, []string{"user", "who"}, analyzeUsers},
			{CategoryKeywords, []string{"topic", "keyword"}, analyzeKeywords},
		},
	}
}

// Query evaluates every trigger against the question and collects the
// sub-results of each category that fires. Matching is a case-insensitive
// substring test, so "When did this start?" and "timeline" both reach the
// temporal analyzer.
func (e *Engine) Query(m *mentalmap.Map, text string) Result {
	lowered := strings.ToLower(text)

	result := make(Result)
	for _, t := range e.triggers {
		for _, term := range t.terms {
			if strings.Contains(lowered, term) {
				result[t.category] = t.analyze(m)
				break
			}
		}
	}
	return result
}

// Categories lists every category the engine can answer, in table order.
func (e *Engine) Categories() []Category {
	out := make([]Category, 0, len(e.triggers))
	for _, t := range e.triggers {
		out = append(out, t.category)
	}
	return out
}
