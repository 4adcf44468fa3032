package dotwriter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/dotwriter"
	"github.com/balsaforest/balsa/tree"
)

func TestWriteEmitsOneEdgePairPerInteriorNode(t *testing.T) {
	clf := &tree.FlatClassifier[float64]{
		ClassCount:     2,
		FeatureCount:   1,
		LeftChildID:    []balsa.NodeID{1, 0},
		RightChildID:   []balsa.NodeID{2, 0},
		SplitFeatureID: []balsa.FeatureID{0, 0},
		SplitValue:     []float64{2.5, 0},
		LeafLabel:      []balsa.Label{0, 0, 1},
		IsLeaf:         []bool{false, true, true},
		PointCount:     []int{6, 3, 3},
	}

	var sb strings.Builder
	require := assert.New(t)
	require.NoError(dotwriter.Write(&sb, clf))

	out := sb.String()
	require.True(strings.HasPrefix(out, "digraph G {"))
	require.Contains(out, "node0 -> node1")
	require.Contains(out, "node0 -> node2")
	require.Contains(out, "F0 < 2.5")

	// every node, leaf or interior, is boxed and carries its mode label
	// and point count.
	require.Contains(out, "node0 [shape=box label=\"N0 = 0 (n=6)\"]")
	require.Contains(out, "node1 [shape=box label=\"N1 = 0 (n=3)\"]")
	require.Contains(out, "node2 [shape=box label=\"N2 = 1 (n=3)\"]")
}
