// Package tree grows single indexed decision trees and converts them to
// the flat, columnar representation used for inference.
package tree

import (
	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/featureindex"
)

type node[F balsa.Float] struct {
	left, right    balsa.NodeID
	split          featureindex.Split[F]
	hasSplit       bool
	indexOffset    int
	pointCount     int
	distanceToRoot int
	labelCounts    *balsa.LabelFrequencyTable
	modeLabel      balsa.Label
}

// IndexedTree grows a single decision tree by repeatedly splitting the
// least-recently-created growable leaf, searching each candidate split
// against a private, mutable copy of a feature index.
type IndexedTree[F balsa.Float] struct {
	data        []F
	featureCount int
	classCount  int
	index       *featureindex.Index[F]
	nodes       []node[F]
	growable    []balsa.NodeID

	coin              *balsa.WeightedCoin
	featuresToConsider int
	maxDepth          int
	impurityThreshold float64
}

// New creates a tree rooted at the full extent of index, ready to Grow.
//
// Pre: 0 <= featuresToConsider <= index.FeatureCount(); impurityThreshold
// in [0, 1].
func New[F balsa.Float](data []F, featureCount int, index *featureindex.Index[F], classCount int, featuresToConsider, maxDepth int, impurityThreshold float64, coin *balsa.WeightedCoin) (*IndexedTree[F], error) {
	if featuresToConsider < 0 || featuresToConsider > index.FeatureCount() {
		return nil, balsa.NewClientErrorf("tree: featuresToConsider %d out of range [0, %d]", featuresToConsider, index.FeatureCount())
	}
	if impurityThreshold < 0 || impurityThreshold > 1 {
		return nil, balsa.NewClientErrorf("tree: impurityThreshold %v out of range [0, 1]", impurityThreshold)
	}

	rootCounts := balsa.NewLabelFrequencyTable(classCount)
	if index.FeatureCount() > 0 {
		for _, e := range index.Slice(0, 0, index.PointCount()) {
			rootCounts.Increment(e.Label)
		}
	}

	t := &IndexedTree[F]{
		data:              data,
		featureCount:      featureCount,
		classCount:        classCount,
		index:             index,
		coin:              coin,
		featuresToConsider: featuresToConsider,
		maxDepth:          maxDepth,
		impurityThreshold: impurityThreshold,
	}
	t.nodes = append(t.nodes, node[F]{
		indexOffset:    0,
		pointCount:     index.PointCount(),
		distanceToRoot: 0,
		labelCounts:    rootCounts,
		modeLabel:      rootCounts.MostFrequentLabel(),
	})
	if t.isGrowable(0) {
		t.growable = append(t.growable, 0)
	}
	return t, nil
}

// ClassCount returns the number of distinct classes the tree was built
// against.
func (t *IndexedTree[F]) ClassCount() int { return t.classCount }

// Grow repeatedly splits growable leaves until none remain.
func (t *IndexedTree[F]) Grow() {
	for len(t.growable) > 0 {
		id := t.growable[0]
		t.growable = t.growable[1:]
		t.growLeaf(id)
	}
}

func (t *IndexedTree[F]) isGrowable(id balsa.NodeID) bool {
	n := &t.nodes[id]
	if n.distanceToRoot >= t.maxDepth {
		return false
	}
	if n.labelCounts.Total() == 0 {
		return false
	}
	return balsa.GiniImpurity[float64](n.labelCounts) > t.impurityThreshold
}

func (t *IndexedTree[F]) growLeaf(id balsa.NodeID) {
	offset := t.nodes[id].indexOffset
	count := t.nodes[id].pointCount
	distance := t.nodes[id].distanceToRoot
	labelCounts := t.nodes[id].labelCounts

	best, ok := featureindex.FindBestSplit(t.index, labelCounts, t.coin, t.featuresToConsider, offset, count)
	if !ok {
		return
	}

	t.index.Partition(t.data, t.featureCount, best.Split.Feature, best.Split.Value, offset, count)

	leftCount := int(best.LeftCounts.Total())
	rightCount := count - leftCount

	leftNode := node[F]{
		indexOffset:    offset,
		pointCount:     leftCount,
		distanceToRoot: distance + 1,
		labelCounts:    best.LeftCounts,
		modeLabel:      best.LeftCounts.MostFrequentLabel(),
	}
	rightNode := node[F]{
		indexOffset:    offset + leftCount,
		pointCount:     rightCount,
		distanceToRoot: distance + 1,
		labelCounts:    best.RightCounts,
		modeLabel:      best.RightCounts.MostFrequentLabel(),
	}

	leftID := balsa.NodeID(len(t.nodes))
	rightID := balsa.NodeID(len(t.nodes) + 1)
	t.nodes = append(t.nodes, leftNode, rightNode)

	t.nodes[id].left = leftID
	t.nodes[id].right = rightID
	t.nodes[id].split = best.Split
	t.nodes[id].hasSplit = true

	if t.isGrowable(leftID) {
		t.growable = append(t.growable, leftID)
	}
	if t.isGrowable(rightID) {
		t.growable = append(t.growable, rightID)
	}
}

// ToFlatClassifier converts the tree into its columnar inference form.
func (t *IndexedTree[F]) ToFlatClassifier() *FlatClassifier[F] {
	c := &FlatClassifier[F]{
		ClassCount:     t.classCount,
		FeatureCount:   t.featureCount,
		LeftChildID:    make([]balsa.NodeID, len(t.nodes)),
		RightChildID:   make([]balsa.NodeID, len(t.nodes)),
		SplitFeatureID: make([]balsa.FeatureID, len(t.nodes)),
		SplitValue:     make([]F, len(t.nodes)),
		LeafLabel:      make([]balsa.Label, len(t.nodes)),
		IsLeaf:         make([]bool, len(t.nodes)),
		PointCount:     make([]int, len(t.nodes)),
	}
	for i, n := range t.nodes {
		c.IsLeaf[i] = !n.hasSplit
		c.LeafLabel[i] = n.modeLabel
		c.PointCount[i] = n.pointCount
		if n.hasSplit {
			c.LeftChildID[i] = n.left
			c.RightChildID[i] = n.right
			c.SplitFeatureID[i] = n.split.Feature
			c.SplitValue[i] = n.split.Value
		}
	}
	return c
}
