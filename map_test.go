package linearmap

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Basic(t *testing.T) {
	m, err := New[string, int](16)
	require.NoError(t, err)

	// Insert and Get
	err = m.Insert("foo", 42)
	require.NoError(t, err)

	v, ok := m.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	// Insert existing key
	err = m.Insert("foo", 100)
	require.ErrorIs(t, err, ErrDuplicateKey)

	v, ok = m.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	// Get non-existent key
	_, ok = m.Get("bar")
	assert.False(t, ok)
	assert.False(t, m.Exists("bar"))

	// Erase
	erased := m.Erase("foo")
	assert.True(t, erased)

	_, ok = m.Get("foo")
	assert.False(t, ok)

	// Erase non-existent key
	erased = m.Erase("foo")
	assert.False(t, erased)
}

func TestMap_Overwrite(t *testing.T) {
	m, err := New[string, int](0)
	require.NoError(t, err)

	require.NoError(t, m.Insert("foo", 1))

	// Replacing a value takes an erase first.
	require.True(t, m.Erase("foo"))
	require.NoError(t, m.Insert("foo", 2))

	v, ok := m.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, m.Len())
}

func TestMap_Find(t *testing.T) {
	m, err := New[int, []string](0)
	require.NoError(t, err)

	require.NoError(t, m.Insert(1, nil))

	v, ok := m.Find(1)
	require.True(t, ok)
	*v = append(*v, "foo")

	got, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, []string{"foo"}, got)
}

func TestMap_DistinctKeys(t *testing.T) {
	m, err := New[string, int](0)
	require.NoError(t, err)

	const n = 2000
	for i := range n {
		require.NoError(t, m.Insert(fmt.Sprintf("key-%d", i), i))
	}

	assert.Equal(t, n, m.Len())
	assert.LessOrEqual(t, float64(m.Len())/float64(m.Cap()), 0.70)

	for i := range n {
		v, ok := m.Get(fmt.Sprintf("key-%d", i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestMap_All(t *testing.T) {
	m, err := New[int, string](0)
	require.NoError(t, err)

	want := map[int]string{
		1:   "one",
		8:   "eight",
		1e6: "million",
	}

	for k, v := range want {
		require.NoError(t, m.Insert(k, v))
	}

	got := maps.Collect(m.All())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Map.All() mismatch (-want +got):\n%s", diff)
	}

	assert.ElementsMatch(t, []int{1, 8, 1e6}, slices.Collect(m.Keys()))
	assert.ElementsMatch(t, []string{"one", "eight", "million"}, slices.Collect(m.Values()))
}

func TestMap_ClearAndDestroy(t *testing.T) {
	m, err := New[int, int](16)
	require.NoError(t, err)

	for i := range 5 {
		m.MustInsert(i, i)
	}

	assert.Equal(t, 5, m.Len())

	m.Clear()

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 16, m.Cap())

	_, ok := m.Get(0)
	assert.False(t, ok)

	m.MustInsert(0, 0)
	m.Destroy()

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Cap())
}

func TestMap_WithHash(t *testing.T) {
	customHash := func(k int) uint64 {
		return uint64(k*31) + 1
	}

	m, err := NewWithBehavior[int, int](16, IntegerBehavior[int]().WithHash(customHash))
	require.NoError(t, err)

	require.NoError(t, m.Insert(1, 100))

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 100, v)
}

func TestMap_CollidingHash(t *testing.T) {
	constantHash := func(string) uint64 {
		return 5
	}

	m, err := NewWithBehavior[string, string](16, StringBehavior().WithHash(constantHash))
	require.NoError(t, err)

	require.NoError(t, m.Insert("A", "foo"))
	require.NoError(t, m.Insert("B", "bar"))
	require.NoError(t, m.Insert("C", "lol"))

	require.True(t, m.Erase("A"))

	v, ok := m.Get("B")
	require.True(t, ok)
	assert.Equal(t, "bar", v)

	v, ok = m.Get("C")
	require.True(t, ok)
	assert.Equal(t, "lol", v)
}

func TestMap_ZeroHash(t *testing.T) {
	zeroHash := func(int) uint64 {
		return 0
	}

	m, err := NewWithBehavior[int, int](16, IntegerBehavior[int]().WithHash(zeroHash))
	require.NoError(t, err)

	require.ErrorIs(t, m.Insert(1, 1), ErrInvalidHash)
	assert.Equal(t, 0, m.Len())
}

func TestMap_BytesKeys(t *testing.T) {
	var destroyed [][]byte

	b := BytesBehavior().WithDestroy(func(k []byte) {
		destroyed = append(destroyed, k)
	})

	m, err := NewWithBehavior[[]byte, int](0, b)
	require.NoError(t, err)

	// The buffer is reused for every key.
	buf := make([]byte, 0, 16)
	for i := range 10 {
		buf = fmt.Appendf(buf[:0], "key-%d", i)
		require.NoError(t, m.Insert(buf, i))
	}

	for i := range 10 {
		v, ok := m.Get([]byte(fmt.Sprintf("key-%d", i)))
		require.True(t, ok)
		require.Equal(t, i, v)
	}

	require.True(t, m.Erase([]byte("key-3")))
	require.Len(t, destroyed, 1)
	assert.Equal(t, []byte("key-3"), destroyed[0])

	m.Destroy()
	assert.Len(t, destroyed, 10)
}

func TestMap_StringKeysAreCloned(t *testing.T) {
	m, err := NewWithBehavior[string, int](0, StringBehavior())
	require.NoError(t, err)

	large := strings.Repeat("x", 1024)
	require.NoError(t, m.Insert(large[:3], 1))

	for k := range m.Keys() {
		assert.Equal(t, "xxx", k)
		assert.NotSame(t, unsafe.StringData(large), unsafe.StringData(k))
	}
}

func TestMap_CopyFailure(t *testing.T) {
	errTooLong := errors.New("key too long")

	b := BytesBehavior()
	b.Copy = func(src []byte) ([]byte, error) {
		if len(src) > 4 {
			return nil, errTooLong
		}

		return bytes.Clone(src), nil
	}

	m, err := NewWithBehavior[[]byte, int](0, b)
	require.NoError(t, err)

	require.NoError(t, m.Insert([]byte("foo"), 1))

	err = m.Insert([]byte("foobar"), 2)
	require.ErrorIs(t, err, ErrCopyFailure)
	require.ErrorIs(t, err, errTooLong)

	assert.Equal(t, 1, m.Len())
	assert.False(t, m.Exists([]byte("foobar")))
}

func TestMap_InvalidBehavior(t *testing.T) {
	_, err := NewWithBehavior[[]byte, int](0, Behavior[[]byte]{Hash: Hash})
	require.ErrorIs(t, err, ErrInvalidBehavior)

	_, err = NewWithBehavior[[]byte, int](0, Behavior[[]byte]{Equal: bytes.Equal})
	require.ErrorIs(t, err, ErrInvalidBehavior)

	// Copy falls back to storing keys as is.
	m, err := NewWithBehavior[[]byte, int](0, Behavior[[]byte]{Hash: Hash, Equal: bytes.Equal})
	require.NoError(t, err)
	require.NoError(t, m.Insert([]byte("foo"), 1))
}

func TestMap_AllocationError(t *testing.T) {
	_, err := New[int, int](1024, WithMaxCapacity(512))
	require.ErrorIs(t, err, ErrAllocation)

	m, err := New[int, int](0, WithMaxCapacity(8))
	require.NoError(t, err)

	for i := range 5 {
		require.NoError(t, m.Insert(i, i))
	}

	require.ErrorIs(t, m.Insert(5, 5), ErrAllocation)
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, 8, m.Cap())
}

func TestMap_MustInsert(t *testing.T) {
	var handled []error

	m := MustNew[string, int](0, WithPanicHandler(func(err error) {
		handled = append(handled, err)
	}))

	m.MustInsert("foo", 1)
	m.MustInsert("foo", 2)

	require.Len(t, handled, 1)
	assert.ErrorIs(t, handled[0], ErrDuplicateKey)

	v, ok := m.Get("foo")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMap_MustInsert_DefaultPanics(t *testing.T) {
	m := MustNew[string, int](0)
	m.MustInsert("foo", 1)

	assert.PanicsWithError(t, ErrDuplicateKey.Error(), func() {
		m.MustInsert("foo", 2)
	})
}

func TestMustNew(t *testing.T) {
	assert.Panics(t, func() {
		MustNew[int, int](-1)
	})

	var handled error
	m := MustNew[int, int](-1, WithPanicHandler(func(err error) { handled = err }))
	require.ErrorIs(t, handled, ErrAllocation)

	// Still usable, allocating on the first insert.
	require.NoError(t, m.Insert(1, 1))
	assert.Equal(t, minGrowCapacity, m.Cap())
}

func TestMap_StructKeys(t *testing.T) {
	type point struct {
		X, Y int32
		Name string
	}

	m, err := New[point, int](0)
	require.NoError(t, err)

	// Equal keys built from distinct string buffers.
	name := strings.Repeat("a", 3)
	require.NoError(t, m.Insert(point{1, 2, name}, 12))

	v, ok := m.Get(point{1, 2, "aaa"})
	require.True(t, ok)
	assert.Equal(t, 12, v)

	require.ErrorIs(t, m.Insert(point{1, 2, "aaa"}, 0), ErrDuplicateKey)
}
