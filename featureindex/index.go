// Package featureindex builds and maintains the sorted-by-feature-value
// index that indexed decision trees search for splits. Constructing an
// index is the expensive part of training a tree, which is why a trainer
// builds one prototype index and clones it once per tree rather than
// rebuilding from scratch.
package featureindex

import (
	"math"
	"sort"

	"github.com/balsaforest/balsa"
)

// Entry is one (feature value, originating point, point's label) triple in
// a single feature's sorted column.
type Entry[F balsa.Float] struct {
	Value F
	Point balsa.DataPointID
	Label balsa.Label
}

// Index holds one sorted column of entries per feature, all columns
// referring to the same underlying point set. Trees mutate their own
// Index in place as they partition points across splits; no two trees
// share an Index.
type Index[F balsa.Float] struct {
	columns    [][]Entry[F]
	pointCount int
}

// Build constructs an Index over a pointCount x featureCount row-major
// feature matrix and a parallel label vector, sorting each feature's
// column independently by value with ties broken by point ID so the sort
// is reproducible.
func Build[F balsa.Float](data []F, pointCount, featureCount int, labels []balsa.Label) (*Index[F], error) {
	if pointCount < 0 || featureCount < 0 {
		return nil, balsa.NewClientErrorf("featureindex: negative dimension: points=%d features=%d", pointCount, featureCount)
	}
	if len(data) != pointCount*featureCount {
		return nil, balsa.NewClientErrorf("featureindex: feature matrix has %d entries, want %d x %d = %d", len(data), pointCount, featureCount, pointCount*featureCount)
	}
	if len(labels) != pointCount {
		return nil, balsa.NewClientErrorf("featureindex: label vector has %d entries, want %d", len(labels), pointCount)
	}

	columns := make([][]Entry[F], featureCount)
	for f := 0; f < featureCount; f++ {
		col := make([]Entry[F], pointCount)
		for p := 0; p < pointCount; p++ {
			v := data[p*featureCount+f]
			if math.IsNaN(float64(v)) {
				return nil, balsa.NewClientErrorf("featureindex: feature %d of point %d is NaN", f, p)
			}
			col[p] = Entry[F]{Value: v, Point: balsa.DataPointID(p), Label: labels[p]}
		}
		sort.SliceStable(col, func(i, j int) bool {
			if col[i].Value != col[j].Value {
				return col[i].Value < col[j].Value
			}
			return col[i].Point < col[j].Point
		})
		columns[f] = col
	}
	return &Index[F]{columns: columns, pointCount: pointCount}, nil
}

// FeatureCount returns the number of feature columns.
func (idx *Index[F]) FeatureCount() int { return len(idx.columns) }

// PointCount returns the number of points the index was built over.
func (idx *Index[F]) PointCount() int { return idx.pointCount }

// Slice returns the [offset, offset+count) window of feature's sorted
// column, corresponding to one node's worth of points.
func (idx *Index[F]) Slice(feature balsa.FeatureID, offset, count int) []Entry[F] {
	return idx.columns[feature][offset : offset+count]
}

// Clone returns a deep, independent copy of the index, safe to mutate via
// Partition without affecting the original.
func (idx *Index[F]) Clone() *Index[F] {
	columns := make([][]Entry[F], len(idx.columns))
	for f, col := range idx.columns {
		cloned := make([]Entry[F], len(col))
		copy(cloned, col)
		columns[f] = cloned
	}
	return &Index[F]{columns: columns, pointCount: idx.pointCount}
}

// Partition rearranges every feature column's [offset, offset+count)
// window in place so that points whose splitFeature value is < splitValue
// come first, followed by the rest, preserving each side's relative
// order (a stable partition). Each point's side is read from
// splitFeature's own column window; data and featureCount are not
// consulted.
func (idx *Index[F]) Partition(data []F, featureCount int, splitFeature balsa.FeatureID, splitValue F, offset, count int) {
	goesLeft := make(map[balsa.DataPointID]bool, count)
	for _, e := range idx.Slice(splitFeature, offset, count) {
		goesLeft[e.Point] = e.Value < splitValue
	}

	for f := range idx.columns {
		window := idx.columns[f][offset : offset+count]
		left := make([]Entry[F], 0, count)
		right := make([]Entry[F], 0, count)
		for _, e := range window {
			if goesLeft[e.Point] {
				left = append(left, e)
			} else {
				right = append(right, e)
			}
		}
		copy(window, left)
		copy(window[len(left):], right)
	}
}
