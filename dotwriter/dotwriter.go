// Package dotwriter renders a flat classifier as Graphviz dot source, for
// visual inspection of a single tree.
package dotwriter

import (
	"fmt"
	"io"

	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/tree"
)

// Write emits clf as a directed graph: one box-shaped node per arena
// row, labeled with its node id, mode label, and point count, plus one
// edge pair per interior node labeled with its split condition.
func Write[F balsa.Float](w io.Writer, clf *tree.FlatClassifier[F]) error {
	if _, err := fmt.Fprintln(w, "digraph G {"); err != nil {
		return err
	}
	for id := 0; id < clf.NodeCount(); id++ {
		label := fmt.Sprintf("N%d = %v", id, clf.LeafLabel[id])
		if clf.PointCount != nil {
			label = fmt.Sprintf("%s (n=%d)", label, clf.PointCount[id])
		}
		if _, err := fmt.Fprintf(w, "  node%d [shape=box label=\"%s\"];\n", id, label); err != nil {
			return err
		}
		if clf.IsLeaf[id] {
			continue
		}
		if _, err := fmt.Fprintf(w, "  node%d -> node%d [label=\"F%d < %v\"];\n", id, clf.LeftChildID[id], clf.SplitFeatureID[id], clf.SplitValue[id]); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  node%d -> node%d;\n", id, clf.RightChildID[id]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
