package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/untagged/internal/leakcheck"
)

func TestSetGet(t *testing.T) {
	s := New[uint16](10, nil)
	require.Equal(t, 10, s.Len())
	require.Zero(t, s.Count())

	_, ok := s.Get(3)
	require.False(t, ok)
	require.Nil(t, s.Ref(3))

	_, replaced := s.Set(3, 300)
	require.False(t, replaced)
	v, ok := s.Get(3)
	require.True(t, ok)
	require.Equal(t, uint16(300), v)

	*s.Ref(3) = 301
	prev, replaced := s.Set(3, 302)
	require.True(t, replaced)
	require.Equal(t, uint16(301), prev)
	require.Equal(t, 1, s.Count())

	v, ok = s.Take(3)
	require.True(t, ok)
	require.Equal(t, uint16(302), v)
	require.False(t, s.Has(3))
	_, ok = s.Take(3)
	require.False(t, ok)
}

func TestEmptyStoredZeroIsPresent(t *testing.T) {
	s := New[int32](4, nil)
	s.Set(1, 0)
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(0))
	v, ok := s.Get(1)
	assert.True(t, ok)
	assert.Zero(t, v)
}

func TestIndexPanics(t *testing.T) {
	s := New[uint8](2, nil)
	require.Panics(t, func() { s.Has(2) })
	require.Panics(t, func() { s.Set(-1, 1) })
	require.PanicsWithError(t, "index 5, len 2: slot index out of range", func() { s.Get(5) })
	require.Panics(t, func() { New[uint8](-1, nil) })
}

func TestAll(t *testing.T) {
	s := New[uint64](100, nil)
	for _, i := range []int{0, 9, 63, 64, 99} {
		s.Set(i, uint64(i*i))
	}
	var idx []int
	for i, v := range s.All() {
		require.Equal(t, uint64(i*i), *v)
		idx = append(idx, i)
	}
	require.Equal(t, []int{0, 9, 63, 64, 99}, idx)

	idx = idx[:0]
	for i := range s.All() {
		if i > 10 {
			break
		}
		idx = append(idx, i)
	}
	require.Equal(t, []int{0, 9}, idx)
}

func newTracked(n int) (*Slots[leakcheck.Resource], *leakcheck.Tracker) {
	tr := &leakcheck.Tracker{}
	return New(n, func(r *leakcheck.Resource) { r.Release() }), tr
}

func TestReleaseOnOverwrite(t *testing.T) {
	s, tr := newTracked(4)
	s.Set(0, tr.Acquire(1))
	_, replaced := s.Set(0, tr.Acquire(2))
	require.True(t, replaced)
	require.EqualValues(t, 1, tr.Live())
	require.EqualValues(t, 1, tr.Released())

	require.True(t, s.Clear(0))
	require.False(t, s.Clear(0))
	require.NoError(t, tr.Check())
}

func TestTakeDoesNotRelease(t *testing.T) {
	s, tr := newTracked(2)
	s.Set(1, tr.Acquire(1))
	r, ok := s.Take(1)
	require.True(t, ok)
	require.EqualValues(t, 1, tr.Live())
	r.Release()
	require.NoError(t, tr.Check())
}

func TestCloseReleasesEverything(t *testing.T) {
	s, tr := newTracked(50)
	func() {
		defer s.Close()
		for i := 0; i < 50; i += 3 {
			s.Set(i, tr.Acquire(i))
		}
		require.EqualValues(t, 17, tr.Live())
	}()
	require.NoError(t, tr.Check())
	require.Zero(t, s.Count())
	require.NoError(t, s.Close())
	require.EqualValues(t, 17, tr.Released())
}

func TestNoHookOverwriteReturnsPrev(t *testing.T) {
	tr := &leakcheck.Tracker{}
	s := New[leakcheck.Resource](1, nil)
	s.Set(0, tr.Acquire(1))
	prev, replaced := s.Set(0, tr.Acquire(2))
	require.True(t, replaced)
	require.Equal(t, 1, prev.ID)
	require.Error(t, tr.Check(), "old value not yet released")
	prev.Release()
	r, _ := s.Take(0)
	r.Release()
	require.NoError(t, tr.Check())
}

func TestFootprint(t *testing.T) {
	require.EqualValues(t, 1024+128, Footprint[uint8](1024))
	require.EqualValues(t, 2048, TaggedFootprint[uint8](1024))
	require.EqualValues(t, 8*1000+125, Footprint[uint64](1000))
	require.EqualValues(t, 16*1000, TaggedFootprint[uint64](1000))
	require.EqualValues(t, 2, TaggedSize[uint8]())
	require.EqualValues(t, 1, TaggedAlign[uint8]())

	for _, n := range []int{64, 1000, 1 << 16} {
		assert.Less(t, Footprint[bool](n), TaggedFootprint[bool](n))
		assert.Less(t, Footprint[uint16](n), TaggedFootprint[uint16](n))
		assert.Less(t, Footprint[uint32](n), TaggedFootprint[uint32](n))
		assert.Less(t, Footprint[float64](n), TaggedFootprint[float64](n))
	}
	s := New[uint32](33, nil)
	require.EqualValues(t, 33*4+5, s.Footprint())
}

func BenchmarkSetTake(b *testing.B) {
	s := New[uint32](1024, nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		j := i & 1023
		s.Set(j, uint32(i))
		s.Take(j)
	}
}
