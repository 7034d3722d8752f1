// Package memory implements the repository interfaces on in-process slices.
package memory

import (
	"fmt"
	"sync"

	"github.com/amirasaad/recordkeeper/pkg/repository"
	"golang.org/x/text/cases"
)

// store keeps values in insertion order with a key index for lookups.
type store[T any] struct {
	mu     sync.RWMutex
	items  []T
	index  map[string]int
	keyFor func(string) string
}

func newStore[T any](keyFor func(string) string) *store[T] {
	return &store[T]{
		index:  make(map[string]int),
		keyFor: keyFor,
	}
}

func exactKey(k string) string { return k }

// foldKey applies Unicode case folding, so "ΟΔΥΣΣΕΥΣ" and "οδυσσευς" share a key.
func foldKey(k string) string { return cases.Fold().String(k) }

func (s *store[T]) insert(key string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.keyFor(key)
	if _, ok := s.index[k]; ok {
		return fmt.Errorf("%w: %q", repository.ErrDuplicateKey, key)
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, v)
	return nil
}

func (s *store[T]) get(key string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[s.keyFor(key)]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", repository.ErrNotFound, key)
	}
	return s.items[i], nil
}

func (s *store[T]) list() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
