package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ova-svm/pkg/config"
	"github.com/ova-svm/pkg/dataset"
	"github.com/ova-svm/pkg/svm"
)

func main() {
	fmt.Println("One-versus-all SVM trainer - Starting...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	fmt.Printf("Train CSV: %s\n", cfg.TrainPath)
	fmt.Printf("Test CSV: %s\n", cfg.TestPath)
	fmt.Printf("Eta: %g, C: %g, Epochs: %d, Batch Size: %d\n", cfg.Eta, cfg.C, cfg.Epochs, cfg.BatchSize)
	fmt.Println()

	// Load and standardize the data, bias column last
	train, test, scaler, err := dataset.Prepare(cfg.TrainPath, cfg.TestPath)
	if err != nil {
		log.Fatalf("Failed to prepare data: %v", err)
	}
	trainRows, features := train.X.Dims()
	testRows, _ := test.X.Dims()
	fmt.Printf("Loaded %d training and %d test samples, %d features\n", trainRows, testRows, features)

	model, err := svm.New(svm.Config{
		Eta:       cfg.Eta,
		C:         cfg.C,
		Epochs:    cfg.Epochs,
		BatchSize: cfg.BatchSize,
		Verbose:   cfg.Verbose,
	})
	if err != nil {
		log.Fatalf("Failed to create model: %v", err)
	}

	metrics, err := model.Fit(train.X, train.Y, test.X, test.Y)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	last := len(metrics.TrainAcc) - 1
	fmt.Println()
	fmt.Printf("Classes: %d\n", model.NumClasses())
	fmt.Printf("Final train loss: %.4f, accuracy: %.4f\n", metrics.TrainLoss[last], metrics.TrainAcc[last])
	fmt.Printf("Final test loss: %.4f, accuracy: %.4f\n", metrics.TestLoss[last], metrics.TestAcc[last])

	// Persist the fitted artifacts
	if err := os.MkdirAll(filepath.Dir(cfg.ModelPath), 0755); err != nil {
		log.Fatalf("Failed to create model directory: %v", err)
	}
	if err := model.Save(cfg.ModelPath); err != nil {
		log.Fatalf("Failed to save model: %v", err)
	}
	if err := scaler.Save(cfg.ScalerPath); err != nil {
		log.Fatalf("Failed to save scaler: %v", err)
	}

	fmt.Printf("Model saved to: %s\n", cfg.ModelPath)
	fmt.Printf("Scaler saved to: %s\n", cfg.ScalerPath)
}
