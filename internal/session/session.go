// Package session keeps the last analysis per client so the results view
// can be rendered after the analyze call returns. Nothing here survives a
// restart.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"jobfilter-engine/internal/domain"
)

// Key mirrors the browser build's sessionStorage key.
const Key = "analysisResults"

type Store struct {
	mu   sync.RWMutex
	byID map[string]domain.AnalysisSession
}

func NewStore() *Store {
	return &Store{byID: make(map[string]domain.AnalysisSession)}
}

func NewID() string {
	return uuid.NewString()
}

// Put replaces the session's stored analysis.
func (s *Store) Put(id string, a domain.AnalysisSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = a
}

func (s *Store) Get(id string) (domain.AnalysisSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	return a, ok
}

func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Prune drops analyses stamped before cutoff and reports how many went.
func (s *Store) Prune(cutoff time.Time) int {
	limit := cutoff.UnixMilli()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, a := range s.byID {
		if a.Timestamp < limit {
			delete(s.byID, id)
			n++
		}
	}
	return n
}
