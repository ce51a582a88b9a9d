package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ova-svm/pkg/config"
	"github.com/ova-svm/pkg/dataset"
	"github.com/ova-svm/pkg/svm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	modelFlag := flag.String("model", cfg.ModelPath, "Path to trained model")
	scalerFlag := flag.String("scaler", cfg.ScalerPath, "Path to fitted feature scaler")
	dataFlag := flag.String("data", cfg.TestPath, "CSV to score (features + label column)")
	outFlag := flag.String("out", "", "Optional CSV to write per-row predictions")
	flag.Parse()

	model, err := svm.Load(*modelFlag)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	scaler, err := dataset.LoadScaler(*scalerFlag)
	if err != nil {
		log.Fatalf("Failed to load scaler: %v", err)
	}

	data, err := dataset.LoadCSV(*dataFlag)
	if err != nil {
		log.Fatalf("Failed to load data: %v", err)
	}
	X, err := scaler.Transform(data.X)
	if err != nil {
		log.Fatalf("Failed to standardize data: %v", err)
	}
	X = dataset.AppendBias(X)

	pred, err := model.Predict(X)
	if err != nil {
		log.Fatalf("Inference failed: %v", err)
	}

	correct := 0
	for i, label := range data.Y {
		if pred[i] == label {
			correct++
		}
	}
	accuracy := float64(correct) / float64(len(pred))

	labels, err := svm.OneVersusAll(data.Y, model.NumClasses())
	if err != nil {
		log.Fatalf("Failed to encode labels: %v", err)
	}
	loss, err := model.Loss(X, labels)
	if err != nil {
		log.Fatalf("Failed to compute loss: %v", err)
	}

	fmt.Printf("Scored %d samples from %s\n", len(pred), *dataFlag)
	fmt.Printf("Accuracy: %.4f (%d/%d)\n", accuracy, correct, len(pred))
	fmt.Printf("Loss: %.4f\n", loss)

	if *outFlag != "" {
		if err := writePredictionsCSV(*outFlag, data.Y, pred); err != nil {
			log.Fatalf("Failed to write predictions: %v", err)
		}
		fmt.Printf("Predictions written to: %s\n", *outFlag)
	}
}

// writePredictionsCSV writes one row per sample with the true and predicted
// class ids
func writePredictionsCSV(path string, truth, pred []int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"row", "y_true", "y_pred"}); err != nil {
		return err
	}
	for i := range pred {
		record := []string{strconv.Itoa(i), strconv.Itoa(truth[i]), strconv.Itoa(pred[i])}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
