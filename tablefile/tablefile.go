// Package tablefile reads the plain CSV feature matrices and label
// vectors that the balsa command-line tools accept as input.
package tablefile

import (
	"bufio"
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"github.com/balsaforest/balsa"
)

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, balsa.NewSupplierError("tablefile: opening "+path, err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, balsa.NewParseErrorf("tablefile: reading %s: %v", path, err)
	}
	return rows, nil
}

// ReadFeatureMatrix reads a headerless CSV file of numeric feature values
// into a row-major matrix, returning the matrix along with the point and
// feature counts it implies. Every row must have the same number of
// columns, and NaN cells are rejected.
func ReadFeatureMatrix[F balsa.Float](path string) ([]F, int, int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, 0, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, 0, nil
	}
	featureCount := len(rows[0])
	data := make([]F, 0, len(rows)*featureCount)
	for i, row := range rows {
		if len(row) != featureCount {
			return nil, 0, 0, balsa.NewParseErrorf("tablefile: %s row %d has %d columns, want %d", path, i, len(row), featureCount)
		}
		for _, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, 0, 0, balsa.NewParseErrorf("tablefile: %s row %d: %v", path, i, err)
			}
			if math.IsNaN(v) {
				return nil, 0, 0, balsa.NewParseErrorf("tablefile: %s row %d: NaN feature value", path, i)
			}
			data = append(data, F(v))
		}
	}
	return data, len(rows), featureCount, nil
}

// ReadLabelVector reads a headerless, single-column CSV file of
// non-negative integer class labels.
func ReadLabelVector(path string) ([]balsa.Label, int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, 0, err
	}
	labels := make([]balsa.Label, len(rows))
	for i, row := range rows {
		if len(row) != 1 {
			return nil, 0, balsa.NewParseErrorf("tablefile: %s row %d has %d columns, want 1", path, i, len(row))
		}
		v, err := strconv.ParseUint(row[0], 10, 8)
		if err != nil {
			return nil, 0, balsa.NewParseErrorf("tablefile: %s row %d: %v", path, i, err)
		}
		labels[i] = balsa.Label(v)
	}
	return labels, len(rows), nil
}
