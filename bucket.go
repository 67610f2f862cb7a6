package linearmap

import (
	"fmt"
	"math"
	"unsafe"
)

type bucket[K, V any] struct {
	key   K
	value V

	// Full hash of key, or 0 if the bucket is empty.
	hash uint64
}

// maxBuckets is the largest bucket count whose size in bytes fits an int.
func maxBuckets[K, V any]() int {
	return int(uintptr(math.MaxInt) / unsafe.Sizeof(bucket[K, V]{}))
}

// allocBuckets allocates n empty buckets, reporting ErrAllocation instead of
// panicking when n is out of range or the runtime refuses the allocation.
func allocBuckets[K, V any](n, limit int) (buckets []bucket[K, V], err error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("%w: negative capacity %d", ErrAllocation, n)
	case n > limit:
		return nil, fmt.Errorf("%w: capacity %d exceeds limit %d", ErrAllocation, n, limit)
	case n == 0:
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			buckets, err = nil, fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()

	return make([]bucket[K, V], n), nil
}
