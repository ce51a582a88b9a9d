package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration values
type Config struct {
	// Dataset paths
	TrainPath string // CSV with training features + label column
	TestPath  string // CSV with test features + label column

	// Artifact paths
	ModelPath   string // Where the fitted model is saved
	ScalerPath  string // Where the fitted feature scaler is saved
	MetricsPath string // Where the per-epoch metrics CSV is written

	// Hyperparameters
	Eta       float64 // Gradient descent step size
	C         float64 // L2 regularization strength
	Epochs    int     // Number of training epochs
	BatchSize int     // Rows per mini-batch
	Verbose   bool    // Print per-epoch metrics

	// Serving
	ServeAddr string // Listen address for the inference API
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.TrainPath = getEnv("TRAIN_CSV", "data/train.csv")
	cfg.TestPath = getEnv("TEST_CSV", "data/test.csv")
	cfg.ModelPath = getEnv("MODEL_PATH", "models/svm.json")
	cfg.ScalerPath = getEnv("SCALER_PATH", "models/scaler.json")
	cfg.MetricsPath = getEnv("METRICS_PATH", "models/metrics.csv")
	cfg.ServeAddr = getEnv("SERVE_ADDR", ":8080")

	eta, err := strconv.ParseFloat(getEnv("ETA", "0.0001"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ETA: %v", err)
	}
	cfg.Eta = eta

	c, err := strconv.ParseFloat(getEnv("REG_C", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REG_C: %v", err)
	}
	cfg.C = c

	epochs, err := strconv.Atoi(getEnv("EPOCHS", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid EPOCHS: %v", err)
	}
	cfg.Epochs = epochs

	batchSize, err := strconv.Atoi(getEnv("BATCH_SIZE", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid BATCH_SIZE: %v", err)
	}
	cfg.BatchSize = batchSize

	verboseStr := getEnv("VERBOSE", "true")
	cfg.Verbose = verboseStr == "true" || verboseStr == "1"

	return cfg, nil
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.TrainPath == "" {
		return fmt.Errorf("TRAIN_CSV is required")
	}
	if c.TestPath == "" {
		return fmt.Errorf("TEST_CSV is required")
	}
	if c.Eta <= 0 {
		return fmt.Errorf("ETA must be > 0")
	}
	if c.C < 0 {
		return fmt.Errorf("REG_C must be >= 0")
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("EPOCHS must be > 0")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be > 0")
	}
	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
