package linearmap

import "errors"

var (
	// ErrAllocation is returned when the bucket array could not be allocated,
	// either initially or while growing. The table keeps its previous state.
	ErrAllocation = errors.New("linearmap: bucket allocation failed")

	// ErrInvalidHash is returned when inserting with a hash of 0, which is
	// reserved to mark empty buckets.
	ErrInvalidHash = errors.New("linearmap: hash 0 is reserved")

	// ErrDuplicateKey is returned when inserting a key which is already
	// present. The stored value is left untouched.
	ErrDuplicateKey = errors.New("linearmap: duplicate key")

	// ErrCopyFailure wraps the error returned by a key copy function.
	ErrCopyFailure = errors.New("linearmap: key copy failed")

	// ErrInvalidBehavior is returned when a behavior set lacks a hash or
	// equality function and no default exists for the key type.
	ErrInvalidBehavior = errors.New("linearmap: incomplete behavior")
)
