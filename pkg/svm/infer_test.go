package svm

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestInferIdempotent(t *testing.T) {
	X, y := separableToy()
	m, err := New(Config{Eta: 0.01, C: 0.1, Epochs: 20, BatchSize: 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := m.Fit(X, y, X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	first, err := m.Infer(X)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	second, err := m.Infer(X)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if !mat.Equal(first, second) {
		t.Error("two inferences with unchanged weights and input differ")
	}
}

func TestInferReturnsSignMatrix(t *testing.T) {
	X, y := separableToy()
	m, err := New(Config{Eta: 0.01, C: 0.1, Epochs: 20, BatchSize: 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := m.Fit(X, y, X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	inferred, err := m.Infer(X)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	pred, err := m.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	n, classes := inferred.Dims()
	if n != 4 || classes != 2 {
		t.Fatalf("got shape %dx%d, want 4x2", n, classes)
	}
	for i := 0; i < n; i++ {
		for k := 0; k < classes; k++ {
			want := -1.0
			if k == pred[i] {
				want = 1.0
			}
			if inferred.At(i, k) != want {
				t.Errorf("row %d column %d: got %g, want %g", i, k, inferred.At(i, k), want)
			}
		}
	}
}

func TestPredictTieBreaksLowestClass(t *testing.T) {
	// Zero weights score every class identically, so every row must
	// resolve to class 0
	m := newFitted(t, Config{Eta: 0.01, C: 0, Epochs: 1, BatchSize: 1},
		mat.NewDense(2, 3, nil))
	X := mat.NewDense(3, 2, []float64{1, 2, -5, 0, 3, 3})

	pred, err := m.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	for i, p := range pred {
		if p != 0 {
			t.Errorf("row %d predicted class %d, want 0 on tied scores", i, p)
		}
	}
}

func TestPredictRejectsUnfitted(t *testing.T) {
	m, err := New(Config{Eta: 0.01, C: 0, Epochs: 1, BatchSize: 1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := m.Predict(mat.NewDense(1, 1, nil)); err == nil {
		t.Error("expected error for unfitted model")
	}
	if _, err := m.Infer(mat.NewDense(1, 1, nil)); err == nil {
		t.Error("expected error for unfitted model")
	}
}

func TestAccuracy(t *testing.T) {
	yPred, err := OneVersusAll([]int{0, 1, 1}, 2)
	if err != nil {
		t.Fatalf("OneVersusAll failed: %v", err)
	}
	yTrue, err := OneVersusAll([]int{0, 1, 0}, 2)
	if err != nil {
		t.Fatalf("OneVersusAll failed: %v", err)
	}

	acc, err := Accuracy(yPred, yTrue)
	if err != nil {
		t.Fatalf("Accuracy failed: %v", err)
	}
	if want := 2.0 / 3.0; math.Abs(acc-want) > 1e-12 {
		t.Errorf("got accuracy %g, want %g", acc, want)
	}

	if _, err := Accuracy(yPred, mat.NewDense(2, 2, nil)); err == nil {
		t.Error("expected error for mismatched shapes")
	}
}
