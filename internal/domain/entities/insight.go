package entities

import "strings"

// InsightCategory classifies an AI insight for display
type InsightCategory string

const (
	InsightSuggestion InsightCategory = "suggestion"
	InsightWarning    InsightCategory = "warning"
	InsightInfo       InsightCategory = "info"
)

var (
	suggestionKeywords = []string{"suggest", "recommend", "should"}
	warningKeywords    = []string{"warning", "concern", "issue"}
)

// CategorizeInsight is total: every string maps to exactly one category.
func CategorizeInsight(text string) InsightCategory {
	lower := strings.ToLower(text)
	if containsAny(lower, suggestionKeywords) {
		return InsightSuggestion
	}
	if containsAny(lower, warningKeywords) {
		return InsightWarning
	}
	return InsightInfo
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
