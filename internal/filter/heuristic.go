package filter

import (
	"context"
	"strings"
	"unicode/utf8"

	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/listing"
)

// DefaultTitleThreshold is the mean line length (in characters) under which
// a paste is treated as a list of titles. It is a rough guess, not a
// classifier; tune it in config.
const DefaultTitleThreshold = 100

const (
	NoMatchesMessage  = "No job listings match your preferences. Try adjusting your criteria."
	TitlesLabel       = "Filtered Job Titles:"
	DescriptionsLabel = "Filtered Job Descriptions:"
)

// Heuristic filters lines locally by substring match. It makes no network
// calls and ignores the credential.
type Heuristic struct {
	TitleThreshold int
}

func (h Heuristic) Filter(_ context.Context, rawText string, prefs domain.PreferenceSet, _ string) (Result, error) {
	return Result{Text: h.Apply(rawText, prefs)}, nil
}

// Apply is the pure form of Filter.
func (h Heuristic) Apply(rawText string, prefs domain.PreferenceSet) string {
	lines := listing.Lines(rawText)

	var kept []string
	for _, line := range lines {
		if KeepLine(line, prefs) {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return NoMatchesMessage
	}

	label := DescriptionsLabel
	if h.looksLikeTitles(lines) {
		label = TitlesLabel
	}
	return label + "\n\n" + strings.Join(kept, "\n\n")
}

func (h Heuristic) looksLikeTitles(lines []string) bool {
	threshold := h.TitleThreshold
	if threshold <= 0 {
		threshold = DefaultTitleThreshold
	}
	if len(lines) == 0 {
		return false
	}
	total := 0
	for _, l := range lines {
		total += utf8.RuneCountInString(l)
	}
	return float64(total)/float64(len(lines)) < float64(threshold)
}

// KeepLine applies the precedence rule: any dislike match drops the line,
// even if an interest also matches. An empty interest list keeps
// everything not disliked.
func KeepLine(line string, prefs domain.PreferenceSet) bool {
	low := strings.ToLower(line)

	if containsAny(low, prefs.NotInterested) {
		return false
	}
	if !hasTerms(prefs.Interested) {
		return true
	}
	return containsAny(low, prefs.Interested)
}

func containsAny(lowText string, terms []string) bool {
	for _, t := range terms {
		n := strings.ToLower(strings.TrimSpace(t))
		if n == "" {
			continue
		}
		if strings.Contains(lowText, n) {
			return true
		}
	}
	return false
}

func hasTerms(terms []string) bool {
	for _, t := range terms {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}
