package svm

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// separableToy is a two-class set split by the hyperplane x1 + x2 = 0,
// bias column last
func separableToy() (*mat.Dense, []int) {
	X := mat.NewDense(4, 3, []float64{
		1, 0, 1,
		0, 1, 1,
		-1, 0, 1,
		0, -1, 1,
	})
	return X, []int{0, 0, 1, 1}
}

func TestFitSeparableToy(t *testing.T) {
	X, y := separableToy()
	m, err := New(Config{Eta: 0.01, C: 0.1, Epochs: 50, BatchSize: 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	metrics, err := m.Fit(X, y, X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for name, series := range map[string][]float64{
		"train loss": metrics.TrainLoss,
		"train acc":  metrics.TrainAcc,
		"test loss":  metrics.TestLoss,
		"test acc":   metrics.TestAcc,
	} {
		if len(series) != 50 {
			t.Errorf("%s has %d entries, want 50", name, len(series))
		}
	}

	if acc := metrics.TrainAcc[len(metrics.TrainAcc)-1]; acc != 1.0 {
		t.Errorf("final train accuracy %g, want 1.0", acc)
	}
	if m.NumClasses() != 2 {
		t.Errorf("derived %d classes, want 2", m.NumClasses())
	}
}

func TestFitThreeClassClusters(t *testing.T) {
	// Three well-separated clusters, mini-batches smaller than the set so
	// updates within an epoch are sequential
	X := mat.NewDense(9, 3, []float64{
		-1.0, -1.2, 1,
		-0.8, -0.9, 1,
		-1.2, -1.1, 1,
		0.0, 1.0, 1,
		0.2, 0.8, 1,
		-0.1, 1.1, 1,
		2.0, 2.1, 1,
		1.8, 1.9, 1,
		2.2, 2.0, 1,
	})
	y := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}

	m, err := New(Config{Eta: 0.02, C: 0, Epochs: 500, BatchSize: 3})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	metrics, err := m.Fit(X, y, X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if acc := metrics.TrainAcc[len(metrics.TrainAcc)-1]; acc != 1.0 {
		t.Errorf("final train accuracy %g, want 1.0 on separable clusters", acc)
	}
}

func TestFitDeterministic(t *testing.T) {
	X, y := separableToy()
	cfg := Config{Eta: 0.01, C: 0.1, Epochs: 20, BatchSize: 2}

	first, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	second, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	firstMetrics, err := first.Fit(X, y, X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	secondMetrics, err := second.Fit(X, y, X, y)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if !mat.Equal(first.w, second.w) {
		t.Error("two fits with identical inputs produced different weights")
	}
	for i := range firstMetrics.TrainLoss {
		if firstMetrics.TrainLoss[i] != secondMetrics.TrainLoss[i] {
			t.Fatalf("epoch %d: train losses differ", i)
		}
	}
}

func TestFitValidatesInput(t *testing.T) {
	X, y := separableToy()
	m, err := New(Config{Eta: 0.01, C: 0.1, Epochs: 5, BatchSize: 2})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := m.Fit(mat.NewDense(1, 1, nil), []int{0}, X, y); err == nil {
		t.Error("expected error for test features not matching training features")
	}
	if _, err := m.Fit(X, []int{0, 0}, X, y); err == nil {
		t.Error("expected error for label count mismatch")
	}
	if _, err := m.Fit(X, y, X, []int{0}); err == nil {
		t.Error("expected error for test label count mismatch")
	}
	if _, err := m.Fit(X, y, X, []int{0, 0, 1, 5}); err == nil {
		t.Error("expected error for test labels outside the training classes")
	}
}

func TestConfigValidate(t *testing.T) {
	good := Config{Eta: 0.01, C: 0, Epochs: 1, BatchSize: 1}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error for valid config: %v", err)
	}

	bad := []Config{
		{Eta: 0, C: 0, Epochs: 1, BatchSize: 1},
		{Eta: -1, C: 0, Epochs: 1, BatchSize: 1},
		{Eta: 0.01, C: -0.5, Epochs: 1, BatchSize: 1},
		{Eta: 0.01, C: 0, Epochs: 0, BatchSize: 1},
		{Eta: 0.01, C: 0, Epochs: 1, BatchSize: 0},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("config %d: expected validation error", i)
		}
		if _, err := New(cfg); err == nil {
			t.Errorf("config %d: New should reject invalid config", i)
		}
	}
}
