// Package filter turns pasted job listings plus the user's preference lists
// into a filtered, annotated text block, either through a hosted model or
// a local substring heuristic.
package filter

import (
	"context"
	"strings"

	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/listing"
)

type Result struct {
	Text string `json:"text"`
}

// Filterer is implemented by both paths.
type Filterer interface {
	Filter(ctx context.Context, rawText string, prefs domain.PreferenceSet, credential string) (Result, error)
}

const (
	ModeAuto      = "auto"
	ModeHeuristic = "heuristic"
)

// Service is the entry point the API and CLI call. It reads prefs and the
// credential but never changes them, and holds no per-call state, so
// concurrent calls are independent.
type Service struct {
	Remote    Filterer
	Heuristic Filterer
	// FallbackHeuristic routes calls without a credential to the heuristic
	// instead of failing with a ConfigurationError.
	FallbackHeuristic bool
	Mode              string
}

func (s *Service) Filter(ctx context.Context, rawText string, prefs domain.PreferenceSet, credential string) (Result, error) {
	text := listing.Normalize(rawText)

	if s.useHeuristic(credential) {
		return s.Heuristic.Filter(ctx, text, prefs, credential)
	}
	return s.Remote.Filter(ctx, text, prefs, credential)
}

// Path names the path a call with this credential would take.
func (s *Service) Path(credential string) string {
	if s.useHeuristic(credential) {
		return "heuristic"
	}
	return "remote"
}

func (s *Service) useHeuristic(credential string) bool {
	if s.Heuristic == nil {
		return false
	}
	if strings.EqualFold(s.Mode, ModeHeuristic) || s.Remote == nil {
		return true
	}
	return s.FallbackHeuristic && strings.TrimSpace(credential) == ""
}
