package linearmap

import (
	"bytes"
	"strings"

	"golang.org/x/exp/constraints"
)

// EqualFunc reports whether two keys are equal. Keys which are equal must
// have the same hash.
type EqualFunc[K any] func(a, b K) bool

// CopyFunc returns the copy of src the table keeps. Keys referencing memory
// the caller may reuse, such as byte slices, should be duplicated here.
type CopyFunc[K any] func(src K) (K, error)

// DestroyFunc releases whatever a CopyFunc acquired for a stored key. It's
// called when the key leaves the table by erase, clear or destroy.
type DestroyFunc[K any] func(key K)

// Behavior is the set of key operations a Map is bound to. Destroy is
// optional, Copy defaults to storing the key as is.
type Behavior[K any] struct {
	Hash    HashFunc[K]
	Equal   EqualFunc[K]
	Copy    CopyFunc[K]
	Destroy DestroyFunc[K]
}

// Equal compares keys with ==.
func Equal[K comparable](a, b K) bool {
	return a == b
}

// Copy stores keys as is.
func Copy[K any](src K) (K, error) {
	return src, nil
}

// DefaultBehavior hashes keys with DefaultHashFunc and compares them with ==.
func DefaultBehavior[K comparable]() Behavior[K] {
	return Behavior[K]{
		Hash:  DefaultHashFunc[K](),
		Equal: Equal[K],
		Copy:  Copy[K],
	}
}

// StringBehavior clones every inserted string, so that stored keys don't
// retain larger buffers they were sliced from.
func StringBehavior() Behavior[string] {
	return Behavior[string]{
		Hash:  StringHash,
		Equal: Equal[string],
		Copy: func(src string) (string, error) {
			return strings.Clone(src), nil
		},
	}
}

// BytesBehavior is the behavior for variable-width byte slice keys. Inserted
// keys are duplicated, so callers may reuse their buffers.
func BytesBehavior() Behavior[[]byte] {
	return Behavior[[]byte]{
		Hash:  Hash,
		Equal: bytes.Equal,
		Copy: func(src []byte) ([]byte, error) {
			return append(make([]byte, 0, len(src)), src...), nil
		},
	}
}

// IntegerBehavior hashes integer keys with IntegerHash.
func IntegerBehavior[K constraints.Integer]() Behavior[K] {
	return Behavior[K]{
		Hash:  IntegerHash[K],
		Equal: Equal[K],
		Copy:  Copy[K],
	}
}

// WithHash returns a copy of b hashing keys with h.
func (b Behavior[K]) WithHash(h HashFunc[K]) Behavior[K] {
	b.Hash = h
	return b
}

// WithDestroy returns a copy of b releasing keys with d.
func (b Behavior[K]) WithDestroy(d DestroyFunc[K]) Behavior[K] {
	b.Destroy = d
	return b
}

func (b Behavior[K]) validate() (Behavior[K], error) {
	if b.Hash == nil || b.Equal == nil {
		return b, ErrInvalidBehavior
	}

	if b.Copy == nil {
		b.Copy = Copy[K]
	}

	return b, nil
}
