// Package balsa provides the leaf-level data model shared by every layer of
// the forest: labels, feature/node/point identifiers, the label frequency
// table, the vote table, and the weighted-coin subsampling oracle.
package balsa

// Label identifies a training or prediction class. 0 is a valid class; it
// carries no sentinel meaning for labels (unlike NodeID, where 0 means "no
// child").
type Label = uint8

// FeatureID indexes a column of a feature matrix.
type FeatureID = uint32

// NodeID indexes a row of a flat classifier or a node in a growing tree's
// arena. 0 is always the root; a value of 0 stored in a child-id column
// means "no child" (i.e. the row is a leaf).
type NodeID = uint32

// DataPointID indexes a row of a feature matrix.
type DataPointID = uint32

// Float is the constraint satisfied by the feature types this module
// supports: 32-bit and 64-bit floating point.
type Float interface {
	~float32 | ~float64
}
