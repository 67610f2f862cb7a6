package linearmap

import "iter"

// Map is a Table bound to a fixed key behavior, hashing keys itself.
//
// Inserting a key which is already present fails with ErrDuplicateKey;
// replacing a value takes an Erase followed by an Insert. Map is not safe
// for concurrent use.
type Map[K, V any] struct {
	table    Table[K, V]
	behavior Behavior[K]
}

// Returns a new map with capacity buckets, using DefaultBehavior.
func New[K comparable, V any](capacity int, opts ...Option) (*Map[K, V], error) {
	return NewWithBehavior[K, V](capacity, DefaultBehavior[K](), opts...)
}

// Returns a new map with capacity buckets, bound to b.
// b must provide Hash and Equal.
func NewWithBehavior[K, V any](capacity int, b Behavior[K], opts ...Option) (*Map[K, V], error) {
	b, err := b.validate()
	if err != nil {
		return nil, err
	}

	m := &Map[K, V]{behavior: b}
	if err := m.table.init(capacity, newConfig(opts)); err != nil {
		return nil, err
	}

	return m, nil
}

// MustNew is New, handing any error to the configured panic handler.
// If the handler returns, the map is left unallocated.
func MustNew[K comparable, V any](capacity int, opts ...Option) *Map[K, V] {
	cfg := newConfig(opts)

	m := &Map[K, V]{behavior: DefaultBehavior[K]()}
	if err := m.table.init(capacity, cfg); err != nil {
		cfg.panicHandler(err)
	}

	return m
}

// Insert stores value under key.
func (m *Map[K, V]) Insert(key K, value V) error {
	return m.table.Insert(key, m.behavior.Hash(key), value, m.behavior.Equal, m.behavior.Copy)
}

// MustInsert is Insert, handing any error to the map's panic handler.
func (m *Map[K, V]) MustInsert(key K, value V) {
	m.table.MustInsert(key, m.behavior.Hash(key), value, m.behavior.Equal, m.behavior.Copy)
}

// Find returns a pointer to the value stored under key, valid until the next
// Insert or Erase.
func (m *Map[K, V]) Find(key K) (*V, bool) {
	return m.table.Find(key, m.behavior.Hash(key), m.behavior.Equal)
}

// Get returns a copy of the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.Find(key)
	if !ok {
		var zero V
		return zero, false
	}

	return *v, true
}

func (m *Map[K, V]) Exists(key K) bool {
	return m.table.Exists(key, m.behavior.Hash(key), m.behavior.Equal)
}

// Erase removes key, reporting whether it was present.
func (m *Map[K, V]) Erase(key K) bool {
	return m.table.Erase(key, m.behavior.Hash(key), m.behavior.Equal, m.behavior.Destroy)
}

// Clear removes every entry and keeps the buckets.
func (m *Map[K, V]) Clear() {
	m.table.Clear(m.behavior.Destroy)
}

// Destroy removes every entry and releases the buckets.
func (m *Map[K, V]) Destroy() {
	m.table.Destroy(m.behavior.Destroy)
}

func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.table.All()
}

func (m *Map[K, V]) Keys() iter.Seq[K] {
	return m.table.Keys()
}

func (m *Map[K, V]) Values() iter.Seq[V] {
	return m.table.Values()
}

func (m *Map[K, V]) Len() int {
	return m.table.Len()
}

func (m *Map[K, V]) Cap() int {
	return m.table.Cap()
}

func (m *Map[K, V]) Stats() Stats {
	return m.table.Stats()
}
