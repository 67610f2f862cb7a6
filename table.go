package linearmap

import (
	"fmt"
	"iter"
	"log/slog"
)

const (
	// A table grows before an insert that would make it this percent full.
	loadFactorPercent = 70
	growthFactor      = 2

	// Bucket count used by the first growth of an unallocated table.
	minGrowCapacity = 8
)

// Table is the type-agnostic probing engine behind Map. It's an open
// addressing hash table with linear probing and backward-shift deletion, so
// an empty bucket always terminates a probe sequence.
//
// Callers supply the hash of every key along with the behaviors used to
// compare, copy and destroy keys. Hashes must be nonzero.
//
// The zero value is an empty table ready to use. A Table is not safe for
// concurrent use.
type Table[K, V any] struct {
	buckets []bucket[K, V]
	size    int

	maxCapacity  int
	logger       *slog.Logger
	panicHandler func(error)
}

// Returns a new table with capacity buckets. A capacity of 0 defers the
// allocation to the first insert.
func NewTable[K, V any](capacity int, opts ...Option) (*Table[K, V], error) {
	var t Table[K, V]
	if err := t.init(capacity, newConfig(opts)); err != nil {
		return nil, err
	}

	return &t, nil
}

// MustNewTable is NewTable, handing any error to the configured panic
// handler. If the handler returns, the table is left unallocated.
func MustNewTable[K, V any](capacity int, opts ...Option) *Table[K, V] {
	cfg := newConfig(opts)

	var t Table[K, V]
	if err := t.init(capacity, cfg); err != nil {
		cfg.panicHandler(err)
	}

	return &t
}

func (t *Table[K, V]) init(capacity int, cfg config) error {
	t.maxCapacity = cfg.maxCapacity
	t.logger = cfg.logger
	t.panicHandler = cfg.panicHandler

	buckets, err := allocBuckets[K, V](capacity, t.limit())
	if err != nil {
		t.log().Warn("initial allocation failed", "capacity", capacity, "error", err)
		return err
	}

	t.buckets = buckets
	t.size = 0

	return nil
}

func (t *Table[K, V]) limit() int {
	upper := maxBuckets[K, V]()
	if t.maxCapacity <= 0 || t.maxCapacity > upper {
		return upper
	}

	return t.maxCapacity
}

func (t *Table[K, V]) log() *slog.Logger {
	if t.logger == nil {
		return discardLogger
	}

	return t.logger
}

func (t *Table[K, V]) handle(err error) {
	if t.panicHandler == nil {
		defaultPanicHandler(err)
		return
	}

	t.panicHandler(err)
}

// Len returns the number of live entries.
func (t *Table[K, V]) Len() int {
	return t.size
}

// Cap returns the number of buckets.
func (t *Table[K, V]) Cap() int {
	return len(t.buckets)
}

// Insert stores value under key, copying the key with cp. A nil cp stores the
// key as is.
//
// It fails with ErrInvalidHash for a zero hash, ErrDuplicateKey if an equal
// key is already stored, ErrAllocation if the table had to grow and could
// not, and ErrCopyFailure if cp failed. None of these modify the stored
// entries.
func (t *Table[K, V]) Insert(key K, hash uint64, value V, eq EqualFunc[K], cp CopyFunc[K]) error {
	if hash == 0 {
		return ErrInvalidHash
	}

	if t.needsGrowth() {
		// A duplicate must not make the table grow.
		if _, ok := t.lookup(key, hash, eq); ok {
			return ErrDuplicateKey
		}

		if err := t.grow(); err != nil {
			return err
		}
	}

	n := uint64(len(t.buckets))
	start := hash % n

	for i := start; ; {
		b := &t.buckets[i]

		if b.hash == 0 {
			k := key
			if cp != nil {
				var err error
				if k, err = cp(key); err != nil {
					return fmt.Errorf("%w: %w", ErrCopyFailure, err)
				}
			}

			b.key = k
			b.value = value
			b.hash = hash
			t.size++

			return nil
		}

		if b.hash == hash && eq(b.key, key) {
			return ErrDuplicateKey
		}

		if i++; i == n {
			i = 0
		}

		if i == start {
			panic("linearmap: insert probed a full table")
		}
	}
}

// MustInsert is Insert, handing any error to the table's panic handler.
func (t *Table[K, V]) MustInsert(key K, hash uint64, value V, eq EqualFunc[K], cp CopyFunc[K]) {
	if err := t.Insert(key, hash, value, eq, cp); err != nil {
		t.handle(err)
	}
}

// Find returns a pointer to the value stored under key. The pointer is valid
// until the next insert or erase.
func (t *Table[K, V]) Find(key K, hash uint64, eq EqualFunc[K]) (*V, bool) {
	i, ok := t.lookup(key, hash, eq)
	if !ok {
		return nil, false
	}

	return &t.buckets[i].value, true
}

// Exists reports whether key is stored in the table.
func (t *Table[K, V]) Exists(key K, hash uint64, eq EqualFunc[K]) bool {
	_, ok := t.lookup(key, hash, eq)
	return ok
}

// Erase removes key from the table, calling destroy on the stored key if
// it's not nil. It reports whether the key was present.
func (t *Table[K, V]) Erase(key K, hash uint64, eq EqualFunc[K], destroy DestroyFunc[K]) bool {
	if t.size == 0 {
		return false
	}

	i, ok := t.lookup(key, hash, eq)
	if !ok {
		return false
	}

	if destroy != nil {
		destroy(t.buckets[i].key)
	}

	t.buckets[i] = bucket[K, V]{}
	t.shiftBack(i)
	t.size--

	return true
}

// Clear removes every entry, calling destroy on each stored key if it's not
// nil. The buckets are kept.
func (t *Table[K, V]) Clear(destroy DestroyFunc[K]) {
	t.destroyKeys(destroy)
	clear(t.buckets)
	t.size = 0
}

// Destroy removes every entry like Clear and releases the buckets. The table
// can be reused afterwards and allocates again on the next insert.
func (t *Table[K, V]) Destroy(destroy DestroyFunc[K]) {
	t.destroyKeys(destroy)
	t.log().Debug("table destroyed", "capacity", len(t.buckets), "size", t.size)

	t.buckets = nil
	t.size = 0
}

func (t *Table[K, V]) destroyKeys(destroy DestroyFunc[K]) {
	if destroy == nil || t.size == 0 {
		return
	}

	for i := range t.buckets {
		if t.buckets[i].hash != 0 {
			destroy(t.buckets[i].key)
		}
	}
}

// All returns an iterator over the live entries in bucket order. The order
// is unrelated to insertion order and changes when the table grows.
// Modifying the table during iteration is not supported.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		buckets, size := t.buckets, t.size

		for i, seen := 0, 0; seen < size && i < len(buckets); i++ {
			b := &buckets[i]
			if b.hash == 0 {
				continue
			}

			seen++
			if !yield(b.key, b.value) {
				return
			}
		}
	}
}

// Keys returns an iterator over the live keys, in the order of All.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the live values, in the order of All.
func (t *Table[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.All() {
			if !yield(v) {
				return
			}
		}
	}
}

func (t *Table[K, V]) lookup(key K, hash uint64, eq EqualFunc[K]) (uint64, bool) {
	n := uint64(len(t.buckets))
	if n == 0 || hash == 0 {
		return 0, false
	}

	start := hash % n
	for i := start; ; {
		b := &t.buckets[i]

		if b.hash == 0 {
			return 0, false
		}

		if b.hash == hash && eq(b.key, key) {
			return i, true
		}

		if i++; i == n {
			i = 0
		}

		if i == start {
			return 0, false
		}
	}
}

// needsGrowth reports whether one more entry would bring the table to the
// load factor.
func (t *Table[K, V]) needsGrowth() bool {
	n := len(t.buckets)
	return n == 0 || 100*(t.size+1)/n >= loadFactorPercent
}

func (t *Table[K, V]) grow() error {
	oldCapacity := len(t.buckets)

	newCapacity := minGrowCapacity
	if oldCapacity > 0 {
		newCapacity = oldCapacity * growthFactor
	}

	buckets, err := allocBuckets[K, V](newCapacity, t.limit())
	if err != nil {
		t.log().Warn("growth failed",
			"old_capacity", oldCapacity, "new_capacity", newCapacity, "size", t.size, "error", err)
		return err
	}

	t.rehash(buckets)
	t.log().Debug("table grown",
		"old_capacity", oldCapacity, "new_capacity", newCapacity, "size", t.size)

	return nil
}

// rehash moves every live entry into dst by its cached hash and makes dst
// the table's bucket array. dst must be empty and larger than the live count.
func (t *Table[K, V]) rehash(dst []bucket[K, V]) {
	n := uint64(len(dst))

	for i, moved := 0, 0; moved < t.size; i++ {
		b := &t.buckets[i]
		if b.hash == 0 {
			continue
		}

		start := b.hash % n
		for j := start; ; {
			if dst[j].hash == 0 {
				dst[j] = *b
				break
			}

			if j++; j == n {
				j = 0
			}

			if j == start {
				panic("linearmap: rehash probed a full table")
			}
		}

		moved++
	}

	t.buckets = dst
}

// shiftBack fills the hole left at index hole by walking the run of occupied
// buckets that follows it. An entry moves into the hole unless its ideal
// index lies cyclically in (hole, j], in which case moving it would place it
// before the start of its own probe sequence.
func (t *Table[K, V]) shiftBack(hole uint64) {
	n := uint64(len(t.buckets))

	j := hole
	for {
		if j++; j == n {
			j = 0
		}

		b := &t.buckets[j]
		if b.hash == 0 {
			return
		}

		if ringBetween(hole, b.hash%n, j) {
			continue
		}

		t.buckets[hole] = *b
		*b = bucket[K, V]{}
		hole = j
	}
}

// ringBetween reports whether x lies in the ring interval (lo, hi].
func ringBetween(lo, x, hi uint64) bool {
	if lo <= hi {
		return lo < x && x <= hi
	}

	return lo < x || x <= hi
}
