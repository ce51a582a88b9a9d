package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ova-svm/pkg/config"
	"github.com/ova-svm/pkg/dataset"
	"github.com/ova-svm/pkg/svm"
)

func main() {
	// Environment config supplies the defaults, flags override
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	trainFlag := flag.String("train", cfg.TrainPath, "Training CSV (features + label column)")
	testFlag := flag.String("test", cfg.TestPath, "Test CSV (features + label column)")
	modelFlag := flag.String("model", cfg.ModelPath, "Path to save trained model")
	scalerFlag := flag.String("scaler", cfg.ScalerPath, "Path to save fitted feature scaler")
	metricsFlag := flag.String("metrics", cfg.MetricsPath, "Path to save per-epoch metrics CSV")
	etaFlag := flag.Float64("eta", cfg.Eta, "Learning rate")
	cFlag := flag.Float64("c", cfg.C, "L2 regularization strength")
	epochsFlag := flag.Int("epochs", cfg.Epochs, "Number of training epochs")
	batchFlag := flag.Int("batch", cfg.BatchSize, "Mini-batch size")
	verboseFlag := flag.Bool("verbose", cfg.Verbose, "Print per-epoch metrics")
	sweepFlag := flag.String("sweep", "", "Comma-separated C values; trains one model per value")
	flag.Parse()

	fmt.Println("Training one-versus-all SVM...")
	fmt.Printf("Train: %s, Test: %s\n", *trainFlag, *testFlag)
	fmt.Printf("Epochs: %d, Batch Size: %d, Learning Rate: %g\n", *epochsFlag, *batchFlag, *etaFlag)

	train, test, scaler, err := dataset.Prepare(*trainFlag, *testFlag)
	if err != nil {
		log.Fatalf("Failed to load training data: %v", err)
	}
	trainRows, features := train.X.Dims()
	testRows, _ := test.X.Dims()
	fmt.Printf("Loaded %d training and %d test samples with %d features (bias included)\n",
		trainRows, testRows, features)

	if *sweepFlag != "" {
		cValues, err := parseCValues(*sweepFlag)
		if err != nil {
			log.Fatalf("Invalid -sweep: %v", err)
		}
		for _, c := range cValues {
			fmt.Printf("\n=== C = %g ===\n", c)
			metrics, err := fit(train, test, *etaFlag, c, *epochsFlag, *batchFlag, *verboseFlag)
			if err != nil {
				log.Fatalf("Training failed for C=%g: %v", c, err)
			}
			path := sweepMetricsPath(*metricsFlag, c)
			if err := writeMetricsCSV(path, metrics); err != nil {
				log.Fatalf("Failed to write metrics: %v", err)
			}
			fmt.Printf("Metrics written to: %s\n", path)
		}
		return
	}

	model, err := svm.New(svm.Config{
		Eta:       *etaFlag,
		C:         *cFlag,
		Epochs:    *epochsFlag,
		BatchSize: *batchFlag,
		Verbose:   *verboseFlag,
	})
	if err != nil {
		log.Fatalf("Failed to create model: %v", err)
	}

	metrics, err := model.Fit(train.X, train.Y, test.X, test.Y)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	last := len(metrics.TrainAcc) - 1
	fmt.Printf("Final train accuracy: %.4f, test accuracy: %.4f\n",
		metrics.TrainAcc[last], metrics.TestAcc[last])

	if err := os.MkdirAll(filepath.Dir(*modelFlag), 0755); err != nil {
		log.Fatalf("Failed to create model directory: %v", err)
	}
	if err := model.Save(*modelFlag); err != nil {
		log.Fatalf("Failed to save model: %v", err)
	}
	if err := scaler.Save(*scalerFlag); err != nil {
		log.Fatalf("Failed to save scaler: %v", err)
	}
	if err := writeMetricsCSV(*metricsFlag, metrics); err != nil {
		log.Fatalf("Failed to write metrics: %v", err)
	}

	fmt.Printf("Model saved to: %s\n", *modelFlag)
	fmt.Printf("Scaler saved to: %s\n", *scalerFlag)
	fmt.Printf("Metrics written to: %s\n", *metricsFlag)
}

// fit trains a fresh model with the given hyperparameters
func fit(train, test *dataset.Dataset, eta, c float64, epochs, batchSize int, verbose bool) (*svm.Metrics, error) {
	model, err := svm.New(svm.Config{
		Eta:       eta,
		C:         c,
		Epochs:    epochs,
		BatchSize: batchSize,
		Verbose:   verbose,
	})
	if err != nil {
		return nil, err
	}
	return model.Fit(train.X, train.Y, test.X, test.Y)
}

// parseCValues parses a comma-separated list of regularization strengths
func parseCValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid C value %q: %v", trimmed, err)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no C values given")
	}
	return values, nil
}

// sweepMetricsPath inserts the C value into the metrics file name,
// e.g. metrics.csv -> metrics_c10.csv
func sweepMetricsPath(path string, c float64) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_c%g%s", strings.TrimSuffix(path, ext), c, ext)
}

// writeMetricsCSV writes the four per-epoch metric series to a CSV file
func writeMetricsCSV(path string, metrics *svm.Metrics) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"epoch", "train_loss", "train_acc", "test_loss", "test_acc"}); err != nil {
		return err
	}
	for i := range metrics.TrainLoss {
		record := []string{
			strconv.Itoa(i),
			fmt.Sprintf("%f", metrics.TrainLoss[i]),
			fmt.Sprintf("%f", metrics.TrainAcc[i]),
			fmt.Sprintf("%f", metrics.TestLoss[i]),
			fmt.Sprintf("%f", metrics.TestAcc[i]),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
