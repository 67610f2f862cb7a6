package linearmap

import "unsafe"

// Estimates capacity (number of buckets) from the given memory size in bytes.
func CapacityFromSize[K, V any](size uintptr) int {
	return int(size / unsafe.Sizeof(bucket[K, V]{}))
}

//go:nocheckptr
func bytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
