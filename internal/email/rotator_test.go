package email

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickNext_NeverRepeatsPrevious(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	counts := make(map[int]int)
	for i := 0; i < 10000; i++ {
		counts[PickNext(rng, 2, 5)]++
	}

	assert.Zero(t, counts[2])
	for _, idx := range []int{0, 1, 3, 4} {
		assert.InDelta(t, 2500, counts[idx], 200, "index %d", idx)
	}
}

func TestPickNext_EveryPreviousExcluded(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	for n := 2; n <= 8; n++ {
		for prev := 0; prev < n; prev++ {
			for i := 0; i < 200; i++ {
				got := PickNext(rng, prev, n)
				assert.NotEqual(t, prev, got)
				assert.GreaterOrEqual(t, got, 0)
				assert.Less(t, got, n)
			}
		}
	}
}

func TestPickNext_TwoTemplatesAlternate(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	prev := -1
	for i := 0; i < 20; i++ {
		next := PickNext(rng, prev, 2)
		if prev >= 0 {
			assert.Equal(t, 1-prev, next)
		}
		prev = next
	}
}

func TestPickNext_DegeneratePool(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))

	for _, n := range []int{-1, 0, 1} {
		for _, prev := range []int{-1, 0, 3} {
			assert.Equal(t, 0, PickNext(rng, prev, n))
		}
	}
}

func TestPickNext_NoPreviousCoversWholePool(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		seen[PickNext(rng, -1, 4)] = true
	}

	assert.Len(t, seen, 4)
}
