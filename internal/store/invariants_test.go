package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkInvariants はストア内部の整合性を確認する。
func checkInvariants[K comparable, V any](t testing.TB, s *Store[K, V]) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	require.Equal(t, len(s.data), s.heap.Len(), "data and heap must hold the same keys")
	require.Equal(t, len(s.data), len(s.heap.pos), "heap index size")

	var total int64
	for k, e := range s.data {
		i, ok := s.heap.pos[k]
		require.True(t, ok, "key %v missing from heap", k)
		require.Equal(t, k, s.heap.items[i].key, "heap index out of sync for %v", k)
		require.Equal(t, s.cfg.Sizer(e.val), e.size, "stored size for %v", k)
		total += e.size
	}
	require.Equal(t, total, s.nbytes, "byte usage must equal the sum of value sizes")

	for i := 1; i < len(s.heap.items); i++ {
		p := (i - 1) / 2
		require.False(t, s.heap.less(i, p), "heap order violated at %d", i)
	}
}
