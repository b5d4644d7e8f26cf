package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_Unbounded(t *testing.T) {
	l := newLedger[string](0)
	assert.Zero(t, l.get("a"))

	l.add("a", 1.5)
	l.add("a", 1)
	l.set("b", 4)
	l.set("b", 3)

	assert.Equal(t, 2.5, l.get("a"))
	assert.Equal(t, 3.0, l.get("b"))
	assert.Equal(t, 2, l.Len())

	assert.Equal(t, 2.5, l.take("a"))
	assert.Zero(t, l.take("a"))
	assert.Equal(t, 1, l.Len())
}

func TestLedger_LimitForgetsLeastRecentlyWritten(t *testing.T) {
	l := newLedger[string](2)
	l.set("a", 1)
	l.set("b", 2)
	l.add("a", 1) // a を最新にする
	l.set("c", 3)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 2.0, l.get("a"))
	assert.Zero(t, l.get("b"))
	assert.Equal(t, 3.0, l.get("c"))
}

func TestLedger_Scale(t *testing.T) {
	l := newLedger[int](0)
	l.set(1, 10)
	l.set(2, 20)
	l.scale(0.5)
	assert.Equal(t, 5.0, l.get(1))
	assert.Equal(t, 10.0, l.get(2))
}
