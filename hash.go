package linearmap

import (
	"encoding/binary"
	"hash/maphash"
	"math/bits"
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// HashFunc computes the hash code of a key. A table stores the hash next to
// the key, and a hash of 0 marks an empty bucket, so a HashFunc returning 0
// makes the key impossible to insert.
type HashFunc[K any] func(K) uint64

const (
	offset32 = 2166136261
	prime32  = 16777619

	offset64 = 14695981039346656037
	prime64  = 1099511628211
)

// Hash is the default byte hash: FNV-1a, 64-bit on 64-bit platforms and
// 32-bit elsewhere.
func Hash(b []byte) uint64 {
	if bits.UintSize == 32 {
		h := uint32(offset32)
		for _, c := range b {
			h ^= uint32(c)
			h *= prime32
		}

		return uint64(h)
	}

	h := uint64(offset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= prime64
	}

	return h
}

// StringHash is Hash for strings, without converting them to a byte slice.
func StringHash(s string) uint64 {
	if bits.UintSize == 32 {
		h := uint32(offset32)
		for i := 0; i < len(s); i++ {
			h ^= uint32(s[i])
			h *= prime32
		}

		return uint64(h)
	}

	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}

	return h
}

// XXHash hashes b with xxHash64. It's a faster alternative to Hash for long
// keys.
func XXHash(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// XXStringHash is XXHash for strings.
func XXStringHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// IntegerHash hashes the little-endian 8 byte representation of k with Hash.
func IntegerHash[K constraints.Integer](k K) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))

	return Hash(buf[:])
}

// MemoryHash hashes the raw in-memory representation of k with Hash.
// It's only consistent with == for types without padding, floats, strings or
// interfaces, such as integers, pointers and arrays of them.
func MemoryHash[K any](k K) uint64 {
	return Hash(bytesOf(&k))
}

// MakeSeededHashFunc returns a hash function built on hash/maphash, which is
// consistent with == for every comparable type.
func MakeSeededHashFunc[K comparable](seed maphash.Seed) HashFunc[K] {
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// DefaultHashFunc picks the hash function used by DefaultBehavior:
// StringHash for string kinds, MemoryHash for types whose memory fully
// determines equality, and a seeded maphash function for the rest.
func DefaultHashFunc[K comparable]() HashFunc[K] {
	typ := reflect.TypeFor[K]()

	switch {
	case typ.Kind() == reflect.String:
		return func(k K) uint64 {
			return StringHash(*(*string)(unsafe.Pointer(&k)))
		}
	case hashableMemory(typ):
		return MemoryHash[K]
	}

	return MakeSeededHashFunc[K](maphash.MakeSeed())
}

func hashableMemory(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return true
	case reflect.Array:
		return hashableMemory(typ.Elem())
	}

	return false
}
