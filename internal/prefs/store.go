// Package prefs holds the user's interested / not-interested term lists and
// persists them as one JSON value after every change.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"jobfilter-engine/internal/domain"
	"jobfilter-engine/internal/store"
)

var ErrIndexOutOfRange = errors.New("preference index out of range")

// PersistenceParseError describes a stored value that could not be decoded.
// It is logged and never returned to callers of Get.
type PersistenceParseError struct {
	Key string
	Err error
}

func (e *PersistenceParseError) Error() string {
	return fmt.Sprintf("parse persisted %s: %v", e.Key, e.Err)
}

func (e *PersistenceParseError) Unwrap() error { return e.Err }

type Store struct {
	mu  sync.Mutex
	kv  store.KV
	cur domain.PreferenceSet
}

// Open loads the persisted set once. Read and parse failures fall back to
// the empty set; Open itself never fails.
func Open(ctx context.Context, kv store.KV) *Store {
	s := &Store{kv: kv, cur: domain.EmptyPreferences()}

	raw, ok, err := kv.Get(ctx, store.KeyPreferences)
	if err != nil {
		log.Warnf("[prefs] read failed, starting empty: %v", err)
		return s
	}
	if !ok {
		return s
	}

	p, err := decode(raw)
	if err != nil {
		log.Warnf("[prefs] %v", &PersistenceParseError{Key: store.KeyPreferences, Err: err})
		return s
	}
	s.cur = p
	return s
}

func decode(raw string) (domain.PreferenceSet, error) {
	var p domain.PreferenceSet
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return domain.PreferenceSet{}, err
	}
	return p.Clone(), nil
}

func (s *Store) Get() domain.PreferenceSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Clone()
}

func (s *Store) HasAnyPreferences() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.HasAny()
}

// Replace swaps the whole set and persists both lists together. If the
// write fails the new set is still in effect in memory; the error is
// returned so callers can warn.
func (s *Store) Replace(ctx context.Context, next domain.PreferenceSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(ctx, next)
}

func (s *Store) replaceLocked(ctx context.Context, next domain.PreferenceSet) error {
	s.cur = next.Clone()

	b, err := json.Marshal(s.cur)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyPreferences, string(b)); err != nil {
		log.Warnf("[prefs] persist failed, keeping in-memory state: %v", err)
		return fmt.Errorf("persist preferences: %w", err)
	}
	return nil
}

func (s *Store) AddInterest(ctx context.Context, term string) error {
	return s.mutate(ctx, func(p *domain.PreferenceSet) error {
		p.Interested = append(p.Interested, term)
		return nil
	})
}

func (s *Store) RemoveInterest(ctx context.Context, index int) error {
	return s.mutate(ctx, func(p *domain.PreferenceSet) error {
		out, err := removeAt(p.Interested, index)
		p.Interested = out
		return err
	})
}

func (s *Store) AddExclusion(ctx context.Context, term string) error {
	return s.mutate(ctx, func(p *domain.PreferenceSet) error {
		p.NotInterested = append(p.NotInterested, term)
		return nil
	})
}

func (s *Store) RemoveExclusion(ctx context.Context, index int) error {
	return s.mutate(ctx, func(p *domain.PreferenceSet) error {
		out, err := removeAt(p.NotInterested, index)
		p.NotInterested = out
		return err
	})
}

// ImportTagged applies a bulk paste in a single write. With replace set the
// parsed entries become the whole set; otherwise they are appended.
func (s *Store) ImportTagged(ctx context.Context, text string, replace bool) (added int, err error) {
	entries := ParseTagged(text)
	err = s.mutate(ctx, func(p *domain.PreferenceSet) error {
		if replace {
			*p = domain.EmptyPreferences()
		}
		for _, e := range entries {
			switch e.Kind {
			case KindExclusion:
				p.NotInterested = append(p.NotInterested, e.Term)
			default:
				p.Interested = append(p.Interested, e.Term)
			}
		}
		return nil
	})
	return len(entries), err
}

func (s *Store) mutate(ctx context.Context, fn func(p *domain.PreferenceSet) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	return s.replaceLocked(ctx, next)
}

func removeAt(xs []string, i int) ([]string, error) {
	if i < 0 || i >= len(xs) {
		return xs, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(xs))
	}
	out := make([]string, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...), nil
}
