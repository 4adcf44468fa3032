package tablefile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balsaforest/balsa"
	"github.com/balsaforest/balsa/tablefile"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadFeatureMatrix(t *testing.T) {
	path := writeFile(t, "1,2,3\n4,5,6\n")
	data, points, features, err := tablefile.ReadFeatureMatrix[float64](path)
	require.NoError(t, err)
	assert.Equal(t, 2, points)
	assert.Equal(t, 3, features)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, data)
}

func TestReadFeatureMatrixRejectsRaggedRows(t *testing.T) {
	path := writeFile(t, "1,2,3\n4,5\n")
	_, _, _, err := tablefile.ReadFeatureMatrix[float64](path)
	assert.Error(t, err)
}

func TestReadFeatureMatrixRejectsNonNumeric(t *testing.T) {
	path := writeFile(t, "1,x,3\n")
	_, _, _, err := tablefile.ReadFeatureMatrix[float64](path)
	assert.Error(t, err)
}

func TestReadLabelVector(t *testing.T) {
	path := writeFile(t, "0\n1\n1\n")
	labels, count, err := tablefile.ReadLabelVector(path)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []balsa.Label{0, 1, 1}, labels)
}

func TestReadLabelVectorRejectsExtraColumns(t *testing.T) {
	path := writeFile(t, "0,1\n")
	_, _, err := tablefile.ReadLabelVector(path)
	assert.Error(t, err)
}
