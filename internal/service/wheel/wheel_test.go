package wheel

import (
	"math/rand/v2"
	"testing"

	"roulette_casino/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutCoversEverySlotOnce(t *testing.T) {
	seen := make(map[model.Slot]bool)
	for _, s := range Layout {
		require.True(t, s.Valid())
		require.False(t, seen[s], "slot %d twice", s)
		seen[s] = true
	}
	assert.Len(t, seen, model.SlotCount)

	assert.Equal(t, 0, PocketIndex(0))
	assert.Equal(t, 8, PocketIndex(17))
	assert.Equal(t, 36, PocketIndex(26))
	assert.Equal(t, -1, PocketIndex(37))
}

func TestSpinStaysInRange(t *testing.T) {
	w := NewRandom()
	for i := 0; i < 5000; i++ {
		s := w.Spin()
		require.True(t, s.Valid(), "got %d", s)
	}
}

func TestSeededWheelIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Spin(), b.Spin())
	}
}

// Хи-квадрат по 37 ячейкам, 36 степеней свободы.
// Критическое значение для p=0.001 около 67.98.
func TestSpinDistributionIsUniform(t *testing.T) {
	const spins = 37000
	w := New(rand.NewPCG(1, 2))

	counts := make([]int, model.SlotCount)
	for i := 0; i < spins; i++ {
		counts[w.Spin()]++
	}

	expected := float64(spins) / float64(model.SlotCount)
	var chi2 float64
	for _, c := range counts {
		require.NotZero(t, c)
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	assert.Less(t, chi2, 67.98)
}

func TestThousandSpinsHitEverySlotReasonably(t *testing.T) {
	w := New(rand.NewPCG(7, 7))
	counts := make([]int, model.SlotCount)
	for i := 0; i < 1000; i++ {
		counts[w.Spin()]++
	}
	// ожидание ~27 на ячейку; допуск широкий
	for slot, c := range counts {
		assert.Greater(t, c, 5, "slot %d", slot)
		assert.Less(t, c, 60, "slot %d", slot)
	}
}

func TestFixedWheelCycles(t *testing.T) {
	f := Fixed(17, 0)
	assert.Equal(t, model.Slot(17), f.Spin())
	assert.Equal(t, model.Slot(0), f.Spin())
	assert.Equal(t, model.Slot(17), f.Spin())
	assert.Equal(t, 3, f.Draws())
}
