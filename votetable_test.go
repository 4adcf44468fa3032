package balsa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balsaforest/balsa"
)

func TestVoteTableIncrementAndAt(t *testing.T) {
	vt := balsa.NewVoteTable(2, 3)
	vt.Increment(0, 1)
	vt.Increment(0, 1)
	vt.Increment(1, 2)
	assert.Equal(t, uint32(2), vt.At(0, 1))
	assert.Equal(t, uint32(1), vt.At(1, 2))
	assert.Equal(t, uint32(0), vt.At(1, 0))
}

func TestVoteTableAddIsCommutative(t *testing.T) {
	a := balsa.NewVoteTable(1, 2)
	a.Increment(0, 0)
	b := balsa.NewVoteTable(1, 2)
	b.Increment(0, 1)
	b.Increment(0, 1)

	sum1 := balsa.NewVoteTable(1, 2)
	sum1.Add(a)
	sum1.Add(b)

	sum2 := balsa.NewVoteTable(1, 2)
	sum2.Add(b)
	sum2.Add(a)

	assert.Equal(t, sum1.At(0, 0), sum2.At(0, 0))
	assert.Equal(t, sum1.At(0, 1), sum2.At(0, 1))
	assert.Equal(t, uint32(1), sum1.At(0, 0))
	assert.Equal(t, uint32(2), sum1.At(0, 1))
}

func TestVoteTableAddShapeMismatchPanics(t *testing.T) {
	a := balsa.NewVoteTable(1, 2)
	b := balsa.NewVoteTable(2, 2)
	assert.Panics(t, func() { a.Add(b) })
}

func TestColumnOfRowMaximumLowestOnTie(t *testing.T) {
	vt := balsa.NewVoteTable(1, 3)
	vt.Increment(0, 0)
	vt.Increment(0, 2)
	assert.Equal(t, 0, vt.ColumnOfRowMaximum(0))

	vt.Increment(0, 1)
	vt.Increment(0, 1)
	assert.Equal(t, 1, vt.ColumnOfRowMaximum(0))
}

func TestColumnOfWeightedRowMaximum(t *testing.T) {
	vt := balsa.NewVoteTable(1, 2)
	vt.Increment(0, 0)
	vt.Increment(0, 1)
	assert.Equal(t, 0, vt.ColumnOfWeightedRowMaximum(0, []float64{1, 1}))
	assert.Equal(t, 1, vt.ColumnOfWeightedRowMaximum(0, []float64{0.5, 2}))
}

func TestColumnOfWeightedRowMaximumBadWeightsPanic(t *testing.T) {
	vt := balsa.NewVoteTable(1, 2)
	assert.Panics(t, func() { vt.ColumnOfWeightedRowMaximum(0, []float64{1}) })
	assert.Panics(t, func() { vt.ColumnOfWeightedRowMaximum(0, []float64{1, -1}) })
}
