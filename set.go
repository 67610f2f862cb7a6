package linearmap

import (
	"errors"
	"iter"
)

// Set is a Map without values.
type Set[K any] struct {
	m Map[K, struct{}]
}

// Returns a new set with capacity buckets, using DefaultBehavior.
func NewSet[K comparable](capacity int, opts ...Option) (*Set[K], error) {
	return NewSetWithBehavior(capacity, DefaultBehavior[K](), opts...)
}

// Returns a new set with capacity buckets, bound to b.
func NewSetWithBehavior[K any](capacity int, b Behavior[K], opts ...Option) (*Set[K], error) {
	m, err := NewWithBehavior[K, struct{}](capacity, b, opts...)
	if err != nil {
		return nil, err
	}

	return &Set[K]{m: *m}, nil
}

// Puts a key in the set.
// Returns whether the key is new.
func (s *Set[K]) Add(key K) (bool, error) {
	err := s.m.Insert(key, struct{}{})
	if errors.Is(err, ErrDuplicateKey) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// Checks whether a key is in the set.
func (s *Set[K]) Has(key K) bool {
	return s.m.Exists(key)
}

// Removes a key from the set.
func (s *Set[K]) Remove(key K) bool {
	return s.m.Erase(key)
}

func (s *Set[K]) Clear() {
	s.m.Clear()
}

func (s *Set[K]) Len() int {
	return s.m.Len()
}

func (s *Set[K]) All() iter.Seq[K] {
	return s.m.Keys()
}
