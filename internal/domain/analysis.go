package domain

import "time"

// AnalysisSession is what the results view needs after a filter run.
// It lives only as long as the engine process.
type AnalysisSession struct {
	OriginalInput   string `json:"originalInput"`
	FilteredResults string `json:"filteredResults"`
	Timestamp       int64  `json:"timestamp"` // unix millis
}

func NewAnalysisSession(input, results string, at time.Time) AnalysisSession {
	return AnalysisSession{
		OriginalInput:   input,
		FilteredResults: results,
		Timestamp:       at.UnixMilli(),
	}
}
