package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/featureindex"
	"github.com/balsaforest/balsa/tree"
)

func buildSeparableData() ([]float64, []balsa.Label) {
	// single feature; values below 2.5 are class 0, above are class 1.
	data := []float64{0, 1, 2, 3, 4, 5}
	labels := []balsa.Label{0, 0, 0, 1, 1, 1}
	return data, labels
}

func TestTreeGrowsUntilPure(t *testing.T) {
	data, labels := buildSeparableData()
	idx, err := featureindex.Build(data, 6, 1, labels)
	require.NoError(t, err)

	coin := balsa.NewWeightedCoin(1)
	tr, err := tree.New(data, 1, idx, 2, 1, 1<<30, 0.0, coin)
	require.NoError(t, err)
	tr.Grow()

	clf := tr.ToFlatClassifier()
	out := make([]balsa.Label, 6)
	clf.Classify(data, 6, out)
	assert.Equal(t, labels, out)
}

func TestTreeRespectsMaxDepthZero(t *testing.T) {
	data, labels := buildSeparableData()
	idx, err := featureindex.Build(data, 6, 1, labels)
	require.NoError(t, err)

	coin := balsa.NewWeightedCoin(1)
	tr, err := tree.New(data, 1, idx, 2, 1, 0, 0.0, coin)
	require.NoError(t, err)
	tr.Grow()

	clf := tr.ToFlatClassifier()
	assert.Equal(t, 1, clf.NodeCount())
}

func TestTreeRespectsImpurityThreshold(t *testing.T) {
	data, labels := buildSeparableData()
	idx, err := featureindex.Build(data, 6, 1, labels)
	require.NoError(t, err)

	coin := balsa.NewWeightedCoin(1)
	// impurity threshold of 1.0 means the root is never growable.
	tr, err := tree.New(data, 1, idx, 2, 1, 1<<30, 1.0, coin)
	require.NoError(t, err)
	tr.Grow()

	clf := tr.ToFlatClassifier()
	assert.Equal(t, 1, clf.NodeCount())
}

func TestTreeRejectsInvalidFeaturesToConsider(t *testing.T) {
	data, labels := buildSeparableData()
	idx, err := featureindex.Build(data, 6, 1, labels)
	require.NoError(t, err)
	coin := balsa.NewWeightedCoin(1)
	_, err = tree.New(data, 1, idx, 2, 5, 1<<30, 0.0, coin)
	assert.Error(t, err)
}

func TestClassifyAndVoteReusesPointBuffer(t *testing.T) {
	data, labels := buildSeparableData()
	idx, err := featureindex.Build(data, 6, 1, labels)
	require.NoError(t, err)
	coin := balsa.NewWeightedCoin(1)
	tr, err := tree.New(data, 1, idx, 2, 1, 1<<30, 0.0, coin)
	require.NoError(t, err)
	tr.Grow()
	clf := tr.ToFlatClassifier()

	points := []balsa.DataPointID{0, 1, 2, 3, 4, 5}
	votes := balsa.NewVoteTable(6, 2)
	clf.ClassifyAndVote(data, points, votes)
	// call again with the (now permuted) buffer; results must be identical
	// per point ID.
	votes2 := balsa.NewVoteTable(6, 2)
	clf.ClassifyAndVote(data, points, votes2)
	for p := 0; p < 6; p++ {
		assert.Equal(t, votes.ColumnOfRowMaximum(p), votes2.ColumnOfRowMaximum(p))
	}
}
