package svm

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// Config holds the hyperparameters for training. It is fixed at construction
// and never mutated afterwards.
type Config struct {
	Eta       float64 `json:"eta"`        // Step size for gradient descent
	C         float64 `json:"c"`          // L2 regularization strength
	Epochs    int     `json:"epochs"`     // Number of passes over the training set
	BatchSize int     `json:"batch_size"` // Rows per mini-batch
	Verbose   bool    `json:"-"`          // Print per-epoch metrics during Fit
}

// Validate checks that the hyperparameters are usable
func (c Config) Validate() error {
	if c.Eta <= 0 {
		return fmt.Errorf("eta must be > 0, got %g", c.Eta)
	}
	if c.C < 0 {
		return fmt.Errorf("regularization C must be >= 0, got %g", c.C)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be > 0, got %d", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be > 0, got %d", c.BatchSize)
	}
	return nil
}

// SVM is a multiclass linear classifier trained as one independent
// one-versus-all squared-hinge classifier per class. The weight matrix has
// shape (numFeatures, numClasses) and is owned exclusively by this value;
// it is mutated in place only inside Fit.
type SVM struct {
	cfg Config

	w           *mat.Dense
	numFeatures int
	numClasses  int
}

// New creates an untrained SVM with the given hyperparameters
func New(cfg Config) (*SVM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %v", err)
	}
	return &SVM{cfg: cfg}, nil
}

// Config returns the hyperparameters the model was built with
func (m *SVM) Config() Config {
	return m.cfg
}

// NumClasses returns the number of classes derived at fit time,
// or 0 if the model has not been fitted
func (m *SVM) NumClasses() int {
	return m.numClasses
}

// NumFeatures returns the number of input features (including the bias
// column) derived at fit time, or 0 if the model has not been fitted
func (m *SVM) NumFeatures() int {
	return m.numFeatures
}

// Weights returns a copy of the weight matrix, or nil before Fit
func (m *SVM) Weights() *mat.Dense {
	if m.w == nil {
		return nil
	}
	return mat.DenseCopyOf(m.w)
}

// modelData is the serializable form of a fitted model
type modelData struct {
	NumFeatures int       `json:"num_features"`
	NumClasses  int       `json:"num_classes"`
	Weights     []float64 `json:"weights"` // Row-major, num_features x num_classes
	Config      Config    `json:"config"`
}

// Save saves the fitted model to a JSON file
func (m *SVM) Save(path string) error {
	if m.w == nil {
		return fmt.Errorf("model is not fitted")
	}
	data, err := json.MarshalIndent(modelData{
		NumFeatures: m.numFeatures,
		NumClasses:  m.numClasses,
		Weights:     m.w.RawMatrix().Data,
		Config:      m.cfg,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model: %v", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load loads a fitted model from a JSON file
func Load(path string) (*SVM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %v", err)
	}

	var md modelData
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %v", err)
	}
	if md.NumFeatures <= 0 || md.NumClasses <= 0 {
		return nil, fmt.Errorf("model file has invalid dimensions %dx%d", md.NumFeatures, md.NumClasses)
	}
	if len(md.Weights) != md.NumFeatures*md.NumClasses {
		return nil, fmt.Errorf("model file has %d weights, expected %d",
			len(md.Weights), md.NumFeatures*md.NumClasses)
	}

	model, err := New(md.Config)
	if err != nil {
		return nil, err
	}
	model.numFeatures = md.NumFeatures
	model.numClasses = md.NumClasses
	model.w = mat.NewDense(md.NumFeatures, md.NumClasses, md.Weights)
	return model, nil
}
