package svm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// checkShapes verifies that X and Y agree with the weight matrix
func (m *SVM) checkShapes(op string, X, Y *mat.Dense) error {
	if m.w == nil {
		return fmt.Errorf("%s: model is not fitted", op)
	}
	n, f := X.Dims()
	yn, yc := Y.Dims()
	if f != m.numFeatures {
		return fmt.Errorf("%s: X has %d features, model expects %d", op, f, m.numFeatures)
	}
	if yn != n {
		return fmt.Errorf("%s: X has %d rows but Y has %d", op, n, yn)
	}
	if yc != m.numClasses {
		return fmt.Errorf("%s: Y has %d classes, model expects %d", op, yc, m.numClasses)
	}
	return nil
}

// margins computes 2 - (X·W) ⊙ Y, shape (n, numClasses)
func (m *SVM) margins(X, Y *mat.Dense) *mat.Dense {
	n, _ := X.Dims()
	scores := mat.NewDense(n, m.numClasses, nil)
	scores.Mul(X, m.w)
	scores.Apply(func(i, j int, v float64) float64 {
		return 2 - v*Y.At(i, j)
	}, scores)
	return scores
}

// Loss computes the squared-hinge loss of the current weights on (X, Y)
// plus the L2 penalty:
//
//	mean_i sum_k max(0, 2 - (X·W)_ik * Y_ik)^2  +  C/2 * ||W||_F^2
//
// The mean divides by the number of rows, not by rows*classes, and the
// penalty covers the full weight matrix rather than one term per class.
func (m *SVM) Loss(X, Y *mat.Dense) (float64, error) {
	if err := m.checkShapes("loss", X, Y); err != nil {
		return 0, err
	}

	margins := m.margins(X, Y)
	n, _ := X.Dims()
	var hinge float64
	for i := 0; i < n; i++ {
		for _, v := range margins.RawRowView(i) {
			if v > 0 {
				hinge += v * v
			}
		}
	}
	hinge /= float64(n)

	frob := mat.Norm(m.w, 2)
	return hinge + 0.5*m.cfg.C*frob*frob, nil
}

// Gradient computes the sub-gradient of Loss with respect to the weights,
// shape (numFeatures, numClasses):
//
//	-2/n * Xᵀ·(Y ⊙ max(0, margins))  +  C·W
//
// where the elementwise product keeps only entries with a violated margin.
// The loss is non-smooth at the margin boundary, so this is a sub-gradient;
// descent stays well-defined because the loss is convex per class.
func (m *SVM) Gradient(X, Y *mat.Dense) (*mat.Dense, error) {
	if err := m.checkShapes("gradient", X, Y); err != nil {
		return nil, err
	}

	margins := m.margins(X, Y)
	n, _ := X.Dims()

	// active = Y ⊙ max(0, margins), zero where the margin is satisfied
	margins.Apply(func(i, j int, v float64) float64 {
		if v <= 0 {
			return 0
		}
		return Y.At(i, j) * v
	}, margins)

	grad := mat.NewDense(m.numFeatures, m.numClasses, nil)
	grad.Mul(X.T(), margins)
	grad.Scale(-2/float64(n), grad)

	if m.cfg.C > 0 {
		var reg mat.Dense
		reg.Scale(m.cfg.C, m.w)
		grad.Add(grad, &reg)
	}
	return grad, nil
}
