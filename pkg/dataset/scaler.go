package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Scaler standardizes features to zero mean and unit variance. It is fitted
// on the training split and applied to every split, so train and test data
// go through the exact same transformation.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Transform returns a standardized copy of X
func (s *Scaler) Transform(X *mat.Dense) (*mat.Dense, error) {
	n, f := X.Dims()
	if f != len(s.Mean) {
		return nil, fmt.Errorf("X has %d features, scaler was fitted on %d", f, len(s.Mean))
	}

	out := mat.NewDense(n, f, nil)
	for i := 0; i < n; i++ {
		src := X.RawRowView(i)
		dst := out.RawRowView(i)
		for j := 0; j < f; j++ {
			dst[j] = (src[j] - s.Mean[j]) / s.Std[j]
		}
	}
	return out, nil
}

// Save saves the scaler to a JSON file
func (s *Scaler) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scaler: %v", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadScaler loads a scaler from a JSON file
func LoadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler file: %v", err)
	}

	var s Scaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scaler: %v", err)
	}
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Std) {
		return nil, fmt.Errorf("scaler file has %d means and %d stds", len(s.Mean), len(s.Std))
	}
	return &s, nil
}
