package balsa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balsaforest/balsa"
)

func TestLabelFrequencyTableIncrementDecrement(t *testing.T) {
	tbl := balsa.NewLabelFrequencyTable(3)
	tbl.Increment(0)
	tbl.Increment(0)
	tbl.Increment(2)
	assert.Equal(t, uint64(2), tbl.Count(0))
	assert.Equal(t, uint64(0), tbl.Count(1))
	assert.Equal(t, uint64(1), tbl.Count(2))
	assert.Equal(t, uint64(3), tbl.Total())

	tbl.Decrement(0)
	assert.Equal(t, uint64(1), tbl.Count(0))
	assert.Equal(t, uint64(2), tbl.Total())
}

func TestLabelFrequencyTableDecrementZeroPanics(t *testing.T) {
	tbl := balsa.NewLabelFrequencyTable(2)
	assert.Panics(t, func() { tbl.Decrement(0) })
}

func TestLabelFrequencyTableGrowsToLargestLabel(t *testing.T) {
	tbl := balsa.NewLabelFrequencyTable(0)
	tbl.Increment(5)
	require.Equal(t, 6, tbl.Size())
	assert.Equal(t, uint64(1), tbl.Count(5))
}

func TestMostFrequentLabelLowestOnTie(t *testing.T) {
	tbl := balsa.NewLabelFrequencyTable(3)
	tbl.Increment(0)
	tbl.Increment(1)
	assert.Equal(t, balsa.Label(0), tbl.MostFrequentLabel())

	tbl.Increment(2)
	tbl.Increment(2)
	assert.Equal(t, balsa.Label(2), tbl.MostFrequentLabel())
}

func TestGiniImpurity(t *testing.T) {
	tbl := balsa.NewLabelFrequencyTableFromLabels([]balsa.Label{0, 0, 1, 1})
	g := balsa.GiniImpurity[float64](tbl)
	assert.InDelta(t, 0.5, g, 1e-12)

	pure := balsa.NewLabelFrequencyTableFromLabels([]balsa.Label{0, 0, 0})
	assert.InDelta(t, 0.0, balsa.GiniImpurity[float64](pure), 1e-12)
}

func TestGiniImpurityEmptyPanics(t *testing.T) {
	tbl := balsa.NewLabelFrequencyTable(2)
	assert.Panics(t, func() { balsa.GiniImpurity[float64](tbl) })
}

func TestLabelFrequencyTableClone(t *testing.T) {
	tbl := balsa.NewLabelFrequencyTableFromLabels([]balsa.Label{0, 1, 1})
	clone := tbl.Clone()
	clone.Increment(0)
	assert.Equal(t, uint64(1), tbl.Count(0))
	assert.Equal(t, uint64(2), clone.Count(0))
}
