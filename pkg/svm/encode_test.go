package svm

import "testing"

func TestOneVersusAll(t *testing.T) {
	y := []int{0, 2, 1, 2}
	Y, err := OneVersusAll(y, 3)
	if err != nil {
		t.Fatalf("OneVersusAll failed: %v", err)
	}

	n, m := Y.Dims()
	if n != 4 || m != 3 {
		t.Fatalf("got shape %dx%d, want 4x3", n, m)
	}
	for i := 0; i < n; i++ {
		positives := 0
		for k := 0; k < m; k++ {
			switch v := Y.At(i, k); {
			case v == 1:
				positives++
				if k != y[i] {
					t.Errorf("row %d: +1 at column %d, want %d", i, k, y[i])
				}
			case v != -1:
				t.Errorf("row %d column %d: got %g, want +1 or -1", i, k, v)
			}
		}
		if positives != 1 {
			t.Errorf("row %d has %d positive entries, want exactly 1", i, positives)
		}
	}

	decoded := DecodeLabels(Y)
	for i := range y {
		if decoded[i] != y[i] {
			t.Errorf("row %d decodes to %d, want %d", i, decoded[i], y[i])
		}
	}
}

func TestOneVersusAllRejectsBadLabels(t *testing.T) {
	if _, err := OneVersusAll([]int{0, 3}, 3); err == nil {
		t.Error("expected error for label == m")
	}
	if _, err := OneVersusAll([]int{-1}, 3); err == nil {
		t.Error("expected error for negative label")
	}
	if _, err := OneVersusAll([]int{0}, 0); err == nil {
		t.Error("expected error for zero classes")
	}
}
