package balsa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balsaforest/balsa"
)

func TestWeightedCoinPicksExactlyK(t *testing.T) {
	coin := balsa.NewWeightedCoin(42)
	const m, k = 20, 7
	picked := 0
	remaining := uint(k)
	for i := uint(0); i < m; i++ {
		if coin.Flip(remaining, m-i) {
			picked++
			remaining--
		}
	}
	assert.Equal(t, k, picked)
}

func TestWeightedCoinNoItemsPanics(t *testing.T) {
	coin := balsa.NewWeightedCoin(1)
	assert.Panics(t, func() { coin.Flip(0, 0) })
}

func TestWeightedCoinDeterministicWithSameSeed(t *testing.T) {
	a := balsa.NewWeightedCoin(7)
	b := balsa.NewWeightedCoin(7)
	const m = 10
	for i := uint(0); i < m; i++ {
		assert.Equal(t, a.Flip(3, m-i), b.Flip(3, m-i))
	}
}

func TestMasterSeedSequenceProducesDistinctSeeds(t *testing.T) {
	seq := balsa.NewMasterSeedSequence(123)
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		s := seq.NextSeed()
		assert.False(t, seen[s])
		seen[s] = true
	}
}
