package balsa

// VoteTable is a rectangular counter grid indexed by (pointIndex,
// classIndex), used to accumulate one classifier's worth of votes per point
// during ensemble inference.
type VoteTable struct {
	rows, cols int
	data       []uint32
}

// NewVoteTable allocates a zeroed rows x cols vote table.
func NewVoteTable(rows, cols int) *VoteTable {
	return &VoteTable{rows: rows, cols: cols, data: make([]uint32, rows*cols)}
}

// Rows returns the number of points the table covers.
func (v *VoteTable) Rows() int { return v.rows }

// Cols returns the number of classes the table covers.
func (v *VoteTable) Cols() int { return v.cols }

// At returns the vote count for (row, col).
func (v *VoteTable) At(row, col int) uint32 { return v.data[row*v.cols+col] }

// Increment adds one vote to (row, col).
func (v *VoteTable) Increment(row, col int) {
	v.data[row*v.cols+col]++
}

// Add folds other into v elementwise. Add is commutative and associative,
// so the final counts are independent of the order in which worker tables
// are folded in.
//
// Pre: other has the same shape as v.
func (v *VoteTable) Add(other *VoteTable) {
	if v.rows != other.rows || v.cols != other.cols {
		panic("balsa: vote table shape mismatch")
	}
	for i := range v.data {
		v.data[i] += other.data[i]
	}
}

// ColumnOfRowMaximum returns the column with the highest count in row,
// the lowest column index winning ties.
func (v *VoteTable) ColumnOfRowMaximum(row int) int {
	base := row * v.cols
	bestCol := 0
	var bestCount uint32
	for c := 0; c < v.cols; c++ {
		if count := v.data[base+c]; count > bestCount {
			bestCount = count
			bestCol = c
		}
	}
	return bestCol
}

// ColumnOfWeightedRowMaximum returns the column with the highest
// weight-scaled count in row, the lowest column index winning ties.
//
// Pre: len(weights) == Cols(); all weights are non-negative.
func (v *VoteTable) ColumnOfWeightedRowMaximum(row int, weights []float64) int {
	if len(weights) != v.cols {
		panic("balsa: weight vector length does not match class count")
	}
	base := row * v.cols
	bestCol := 0
	bestScore := -1.0
	for c := 0; c < v.cols; c++ {
		if weights[c] < 0 {
			panic("balsa: negative class weight")
		}
		score := float64(v.data[base+c]) * weights[c]
		if score > bestScore {
			bestScore = score
			bestCol = c
		}
	}
	return bestCol
}
