package tree

import "github.com/balsaforest/balsa"

// FlatClassifier is the columnar, cache-friendly representation of a
// grown decision tree: parallel slices indexed by node ID, chosen over a
// pointer-linked tree so that classification touches only a handful of
// contiguous arrays.
type FlatClassifier[F balsa.Float] struct {
	ClassCount   int
	FeatureCount int

	LeftChildID    []balsa.NodeID
	RightChildID   []balsa.NodeID
	SplitFeatureID []balsa.FeatureID
	SplitValue     []F
	LeafLabel      []balsa.Label
	IsLeaf         []bool

	// PointCount is the number of training points that reached each node
	// when the tree was grown. It is informational only, used to label
	// dot renderings, and is not required for classification; classifiers
	// read back from a model file carry it as nil.
	PointCount []int
}

// NodeCount returns the number of nodes in the tree, including leaves.
func (c *FlatClassifier[F]) NodeCount() int { return len(c.IsLeaf) }

type stackFrame struct {
	node   balsa.NodeID
	offset int
	count  int
}

// ClassifyAndVote routes each of points through the tree and records one
// vote per point at the leaf it lands on. data is the row-major feature
// matrix that points indexes into. points is permuted in place as it is
// partitioned at each interior node; voting is keyed by point ID, not by
// list position, so callers may safely reuse the points buffer across
// calls.
func (c *FlatClassifier[F]) ClassifyAndVote(data []F, points []balsa.DataPointID, votes *balsa.VoteTable) {
	if len(points) == 0 {
		return
	}
	stack := []stackFrame{{node: 0, offset: 0, count: len(points)}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		window := points[top.offset : top.offset+top.count]
		if c.IsLeaf[top.node] {
			label := c.LeafLabel[top.node]
			for _, p := range window {
				votes.Increment(int(p), int(label))
			}
			continue
		}

		feature := c.SplitFeatureID[top.node]
		splitValue := c.SplitValue[top.node]
		i, j := 0, len(window)-1
		for i <= j {
			for i <= j && data[int(window[i])*c.FeatureCount+int(feature)] < splitValue {
				i++
			}
			for i <= j && !(data[int(window[j])*c.FeatureCount+int(feature)] < splitValue) {
				j--
			}
			if i < j {
				window[i], window[j] = window[j], window[i]
				i++
				j--
			}
		}
		leftCount := i

		stack = append(stack, stackFrame{node: c.LeftChildID[top.node], offset: top.offset, count: leftCount})
		stack = append(stack, stackFrame{node: c.RightChildID[top.node], offset: top.offset + leftCount, count: top.count - leftCount})
	}
}

// Classify routes each of the pointCount rows encoded in data through the
// tree and returns the plurality label for each, the lowest label index
// winning ties.
func (c *FlatClassifier[F]) Classify(data []F, pointCount int, out []balsa.Label) {
	votes := balsa.NewVoteTable(pointCount, c.ClassCount)
	points := make([]balsa.DataPointID, pointCount)
	for i := range points {
		points[i] = balsa.DataPointID(i)
	}
	c.ClassifyAndVote(data, points, votes)
	for p := 0; p < pointCount; p++ {
		out[p] = balsa.Label(votes.ColumnOfRowMaximum(p))
	}
}
