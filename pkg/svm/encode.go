package svm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// OneVersusAll converts integer class labels into a (len(y), m) sign matrix
// with +1 in the true class column and -1 everywhere else. Every label must
// lie in [0, m).
func OneVersusAll(y []int, m int) (*mat.Dense, error) {
	if m <= 0 {
		return nil, fmt.Errorf("number of classes must be > 0, got %d", m)
	}
	out := mat.NewDense(len(y), m, nil)
	for i, label := range y {
		if label < 0 || label >= m {
			return nil, fmt.Errorf("label %d at row %d is outside [0, %d)", label, i, m)
		}
		row := out.RawRowView(i)
		for k := range row {
			row[k] = -1
		}
		row[label] = 1
	}
	return out, nil
}

// DecodeLabels recovers class ids from a one-versus-all sign matrix (or any
// score matrix) by taking the argmax of each row
func DecodeLabels(Y mat.Matrix) []int {
	n, m := Y.Dims()
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		best := 0
		for k := 1; k < m; k++ {
			if Y.At(i, k) > Y.At(i, best) {
				best = k
			}
		}
		labels[i] = best
	}
	return labels
}

// argmaxRow returns the index of the largest value in row.
// Ties go to the lowest index.
func argmaxRow(row []float64) int {
	best := 0
	for k := 1; k < len(row); k++ {
		if row[k] > row[best] {
			best = k
		}
	}
	return best
}

// maxLabel returns the largest label in y, or -1 for an empty slice
func maxLabel(y []int) int {
	max := -1
	for _, label := range y {
		if label > max {
			max = label
		}
	}
	return max
}
