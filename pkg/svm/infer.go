package svm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Infer predicts a class for each row of X and returns the predictions as a
// one-versus-all sign matrix. The prediction is the argmax over class scores
// X·W; ties go to the lowest class id.
func (m *SVM) Infer(X *mat.Dense) (*mat.Dense, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return nil, err
	}
	return OneVersusAll(pred, m.numClasses)
}

// Predict returns the predicted class id for each row of X
func (m *SVM) Predict(X *mat.Dense) ([]int, error) {
	if m.w == nil {
		return nil, fmt.Errorf("predict: model is not fitted")
	}
	n, f := X.Dims()
	if f != m.numFeatures {
		return nil, fmt.Errorf("predict: X has %d features, model expects %d", f, m.numFeatures)
	}

	scores := mat.NewDense(n, m.numClasses, nil)
	scores.Mul(X, m.w)

	pred := make([]int, n)
	for i := 0; i < n; i++ {
		pred[i] = argmaxRow(scores.RawRowView(i))
	}
	return pred, nil
}

// Accuracy decodes two one-versus-all sign matrices to class ids and returns
// the fraction of rows where they agree
func Accuracy(yPred, yTrue *mat.Dense) (float64, error) {
	pn, pc := yPred.Dims()
	tn, tc := yTrue.Dims()
	if pn != tn || pc != tc {
		return 0, fmt.Errorf("prediction matrix is %dx%d but truth matrix is %dx%d", pn, pc, tn, tc)
	}
	if pn == 0 {
		return 0, fmt.Errorf("empty label matrices")
	}

	pred := DecodeLabels(yPred)
	truth := DecodeLabels(yTrue)
	correct := 0
	for i := range pred {
		if pred[i] == truth[i] {
			correct++
		}
	}
	return float64(correct) / float64(pn), nil
}
