// Package modelstore reads and writes forest model files: a small BSON
// header followed by one length-prefixed, snappy-compressed BSON record
// per tree, so a whole forest can be produced or consumed as a stream
// without holding every tree in memory at once.
package modelstore

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/tree"
)

const magic = "BALSA1\x00\x00"

type header struct {
	Magic        string `bson:"magic"`
	Producer     string `bson:"producer"`
	Major        int32  `bson:"major"`
	Minor        int32  `bson:"minor"`
	Patch        int32  `bson:"patch"`
	ClassCount   int32  `bson:"class_count"`
	FeatureCount int32  `bson:"feature_count"`
}

type wireRecord struct {
	NodeCount      int32    `bson:"node_count"`
	LeftChildID    []uint32 `bson:"left_child_id"`
	RightChildID   []uint32 `bson:"right_child_id"`
	SplitFeatureID []uint32 `bson:"split_feature_id"`
	SplitValue     []float64 `bson:"split_value"`
	LeafLabel      []byte   `bson:"leaf_label"`
	IsLeaf         []bool   `bson:"is_leaf"`
}

func writeFrame(w io.Writer, v interface{}) error {
	raw, err := bson.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "modelstore: marshaling record")
	}
	compressed := snappy.Encode(nil, raw)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(compressed)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return errors.Wrap(err, "modelstore: writing frame length")
	}
	if _, err := w.Write(compressed); err != nil {
		return errors.Wrap(err, "modelstore: writing frame body")
	}
	return nil
}

func readFrame(r io.Reader, v interface{}) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return err
	}
	compressed := make([]byte, binary.LittleEndian.Uint32(lenBuf[:]))
	if _, err := io.ReadFull(r, compressed); err != nil {
		return errors.Wrap(err, "modelstore: reading frame body")
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return errors.Wrap(err, "modelstore: decompressing frame")
	}
	return errors.Wrap(bson.Unmarshal(raw, v), "modelstore: unmarshaling record")
}

// Writer appends flat classifiers to a model file, writing the header
// lazily on the first Write so that class and feature counts can be
// inferred from the first tree.
type Writer[F balsa.Float] struct {
	file       *os.File
	buf        *bufio.Writer
	producer   string
	major      int
	minor      int
	patch      int
	wroteHeader bool
	classCount, featureCount int
}

// NewWriter creates (or truncates) a model file at path.
func NewWriter[F balsa.Float](path, producer string, major, minor, patch int) (*Writer[F], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, balsa.NewSupplierError("modelstore: creating model file", err)
	}
	return &Writer[F]{file: f, buf: bufio.NewWriter(f), producer: producer, major: major, minor: minor, patch: patch}, nil
}

// Write appends clf to the model file.
//
// Pre: every call in one Writer's lifetime carries the same ClassCount
// and FeatureCount.
func (w *Writer[F]) Write(clf *tree.FlatClassifier[F]) error {
	if !w.wroteHeader {
		w.classCount = clf.ClassCount
		w.featureCount = clf.FeatureCount
		h := header{
			Magic:        magic,
			Producer:     w.producer,
			Major:        int32(w.major),
			Minor:        int32(w.minor),
			Patch:        int32(w.patch),
			ClassCount:   int32(clf.ClassCount),
			FeatureCount: int32(clf.FeatureCount),
		}
		if err := writeFrame(w.buf, h); err != nil {
			return balsa.NewSupplierError("modelstore: writing header", err)
		}
		w.wroteHeader = true
	} else if clf.ClassCount != w.classCount || clf.FeatureCount != w.featureCount {
		panic("balsa: heterogeneous classifiers written to the same model file")
	}

	splitValue := make([]float64, len(clf.SplitValue))
	for i, v := range clf.SplitValue {
		splitValue[i] = float64(v)
	}
	rec := wireRecord{
		NodeCount:      int32(clf.NodeCount()),
		LeftChildID:    clf.LeftChildID,
		RightChildID:   clf.RightChildID,
		SplitFeatureID: clf.SplitFeatureID,
		SplitValue:     splitValue,
		LeafLabel:      clf.LeafLabel,
		IsLeaf:         clf.IsLeaf,
	}
	if err := writeFrame(w.buf, rec); err != nil {
		return balsa.NewSupplierError("modelstore: writing tree record", err)
	}
	return nil
}

// Close flushes buffered output and closes the underlying file.
func (w *Writer[F]) Close() error {
	if err := w.buf.Flush(); err != nil {
		return balsa.NewSupplierError("modelstore: flushing model file", err)
	}
	if err := w.file.Close(); err != nil {
		return balsa.NewSupplierError("modelstore: closing model file", err)
	}
	return nil
}

// Reader streams flat classifiers back out of a model file in the order
// they were written.
type Reader[F balsa.Float] struct {
	path         string
	file         *os.File
	buf          *bufio.Reader
	classCount   int
	featureCount int
}

// NewReader opens a model file and reads its header.
func NewReader[F balsa.Float](path string) (*Reader[F], error) {
	r := &Reader[F]{path: path}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader[F]) open() error {
	f, err := os.Open(r.path)
	if err != nil {
		return balsa.NewSupplierError("modelstore: opening model file", err)
	}
	buf := bufio.NewReader(f)
	var h header
	if err := readFrame(buf, &h); err != nil {
		f.Close()
		return balsa.NewSupplierError("modelstore: reading header", err)
	}
	if h.Magic != magic {
		f.Close()
		return balsa.NewParseErrorf("modelstore: %s is not a balsa model file", r.path)
	}
	r.file = f
	r.buf = buf
	r.classCount = int(h.ClassCount)
	r.featureCount = int(h.FeatureCount)
	return nil
}

// ClassCount returns the number of classes recorded in the header.
func (r *Reader[F]) ClassCount() int { return r.classCount }

// FeatureCount returns the number of features recorded in the header.
func (r *Reader[F]) FeatureCount() int { return r.featureCount }

// Rewind returns the reader to the first tree.
func (r *Reader[F]) Rewind() error {
	if err := r.file.Close(); err != nil {
		return balsa.NewSupplierError("modelstore: closing model file", err)
	}
	return r.open()
}

// Next returns the next tree, or (nil, nil) once the file is exhausted.
func (r *Reader[F]) Next() (*tree.FlatClassifier[F], error) {
	var rec wireRecord
	err := readFrame(r.buf, &rec)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, balsa.NewSupplierError("modelstore: reading tree record", err)
	}

	splitValue := make([]F, len(rec.SplitValue))
	for i, v := range rec.SplitValue {
		splitValue[i] = F(v)
	}
	return &tree.FlatClassifier[F]{
		ClassCount:     r.classCount,
		FeatureCount:   r.featureCount,
		LeftChildID:    rec.LeftChildID,
		RightChildID:   rec.RightChildID,
		SplitFeatureID: rec.SplitFeatureID,
		SplitValue:     splitValue,
		LeafLabel:      rec.LeafLabel,
		IsLeaf:         rec.IsLeaf,
	}, nil
}

// Close closes the underlying file.
func (r *Reader[F]) Close() error {
	if err := r.file.Close(); err != nil {
		return balsa.NewSupplierError("modelstore: closing model file", err)
	}
	return nil
}
