package store

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreHeap_PopOrder(t *testing.T) {
	h := newScoreHeap[string]()
	h.push("c", 3)
	h.push("a", 1)
	h.push("b", 2)
	h.push("a2", 1)

	k, scr, ok := h.peek()
	require.True(t, ok)
	assert.Equal(t, "a", k)
	assert.Equal(t, 1.0, scr)

	var order []string
	for h.Len() > 0 {
		k, _, _ := h.pop()
		order = append(order, k)
	}
	assert.Equal(t, []string{"a", "a2", "b", "c"}, order)

	_, _, ok = h.pop()
	assert.False(t, ok)
	_, _, ok = h.peek()
	assert.False(t, ok)
}

func TestScoreHeap_AddAndRemove(t *testing.T) {
	h := newScoreHeap[string]()
	h.push("a", 1)
	h.push("b", 2)
	h.push("c", 3)

	require.True(t, h.add("a", 5))
	assert.False(t, h.add("zz", 1))
	k, _, _ := h.peek()
	assert.Equal(t, "b", k)

	scr, ok := h.remove("b")
	require.True(t, ok)
	assert.Equal(t, 2.0, scr)
	_, ok = h.remove("b")
	assert.False(t, ok)

	k, _, _ = h.peek()
	assert.Equal(t, "c", k)
	got, ok := h.get("a")
	require.True(t, ok)
	assert.Equal(t, 6.0, got)
}

func TestScoreHeap_RandomAgainstSort(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	h := newScoreHeap[int]()
	want := map[int]float64{}
	for i := range 500 {
		switch r.Intn(4) {
		case 0, 1:
			s := r.Float64() * 100
			h.push(i, s)
			want[i] = s
		case 2:
			for k := range want {
				d := r.Float64() * 10
				h.add(k, d)
				want[k] += d
				break
			}
		case 3:
			for k := range want {
				h.remove(k)
				delete(want, k)
				break
			}
		}
	}

	type kv struct {
		k int
		s float64
	}
	var exp []kv
	for k, s := range want {
		exp = append(exp, kv{k, s})
	}
	sort.Slice(exp, func(i, j int) bool { return exp[i].s < exp[j].s })

	require.Equal(t, len(exp), h.Len())
	for _, e := range exp {
		k, s, ok := h.pop()
		require.True(t, ok)
		assert.Equal(t, e.s, s)
		assert.Equal(t, e.k, k)
	}
}

func TestScoreHeap_ScaleKeepsOrder(t *testing.T) {
	h := newScoreHeap[string]()
	h.push("a", 1e200)
	h.push("b", 2e200)
	h.push("c", 3e200)
	h.scale(1e-200)

	k, scr, _ := h.pop()
	assert.Equal(t, "a", k)
	assert.InDelta(t, 1.0, scr, 1e-9)
	k, _, _ = h.pop()
	assert.Equal(t, "b", k)
}
