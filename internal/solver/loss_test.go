package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLossWindow(t *testing.T) {
	w := newLossWindow(2)
	assert.InDelta(t, 1.0, w.add(1), 1e-6)
	assert.InDelta(t, 1.5, w.add(2), 1e-6)
	// Full: 3 replaces 1, then 4 replaces 2.
	assert.InDelta(t, 2.5, w.add(3), 1e-6)
	assert.InDelta(t, 3.5, w.add(4), 1e-6)
	assert.InDelta(t, 4.5, w.add(5), 1e-6)

	w.reset()
	assert.Zero(t, w.value())
	assert.InDelta(t, 7.0, w.add(7), 1e-6)
}

func TestLossWindowSizeOne(t *testing.T) {
	w := newLossWindow(1)
	for _, v := range []float32{3, 1, 4, 1, 5} {
		assert.InDelta(t, v, w.add(v), 1e-6)
	}
}
