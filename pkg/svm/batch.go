package svm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Batch is one contiguous chunk of rows from a training set. X and Y are
// views into the original matrices, not copies.
type Batch struct {
	X *mat.Dense
	Y *mat.Dense
}

// Batches partitions X and Y into sequential chunks of size rows each; the
// final chunk may be shorter and a size larger than the row count yields a
// single full chunk. Rows keep their original order and are never shuffled,
// so training on the result is reproducible.
func Batches(X, Y *mat.Dense, size int) ([]Batch, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", size)
	}
	n, xc := X.Dims()
	yn, yc := Y.Dims()
	if yn != n {
		return nil, fmt.Errorf("X has %d rows but Y has %d", n, yn)
	}

	batches := make([]Batch, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		batches = append(batches, Batch{
			X: X.Slice(start, end, 0, xc).(*mat.Dense),
			Y: Y.Slice(start, end, 0, yc).(*mat.Dense),
		})
	}
	return batches, nil
}
