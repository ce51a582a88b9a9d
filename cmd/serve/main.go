package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/ova-svm/pkg/config"
	"github.com/ova-svm/pkg/dataset"
	"github.com/ova-svm/pkg/svm"
)

// TrainRequest carries a training set and optional hyperparameter overrides
type TrainRequest struct {
	X         [][]float64 `json:"x"` // nSamples x nFeatures, raw (unstandardized)
	Y         []int       `json:"y"` // Integer labels 0..m-1
	Eta       float64     `json:"eta"`
	C         float64     `json:"c"`
	Epochs    int         `json:"epochs"`
	BatchSize int         `json:"batch_size"`
}

// PredictRequest carries raw feature rows to classify
type PredictRequest struct {
	X [][]float64 `json:"x"`
}

var (
	model  *svm.SVM
	scaler *dataset.Scaler
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load previously trained artifacts if they exist
	if m, err := svm.Load(cfg.ModelPath); err == nil {
		if s, err := dataset.LoadScaler(cfg.ScalerPath); err == nil {
			model, scaler = m, s
			fmt.Printf("Model loaded from %s\n", cfg.ModelPath)
		}
	}
	if model == nil {
		fmt.Println("No model loaded yet. Train one via POST /train")
	}

	app := fiber.New()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "trained": model != nil})
	})

	app.Post("/train", func(c *fiber.Ctx) error {
		var req TrainRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}
		if len(req.X) == 0 || len(req.Y) == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "x and y are required"})
		}
		if len(req.X) != len(req.Y) {
			return c.Status(400).JSON(fiber.Map{"error": "x and y must have the same number of rows"})
		}

		svmCfg := svm.Config{Eta: req.Eta, C: req.C, Epochs: req.Epochs, BatchSize: req.BatchSize}
		if svmCfg.Eta == 0 {
			svmCfg.Eta = cfg.Eta
		}
		if svmCfg.C == 0 {
			svmCfg.C = cfg.C
		}
		if svmCfg.Epochs == 0 {
			svmCfg.Epochs = cfg.Epochs
		}
		if svmCfg.BatchSize == 0 {
			svmCfg.BatchSize = cfg.BatchSize
		}

		X, err := sliceToDense(req.X)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		s := dataset.FitScaler(X)
		X, err = s.Transform(X)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		X = dataset.AppendBias(X)

		trained, err := svm.New(svmCfg)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		// Without a held-out split the training set doubles as the test set
		metrics, err := trained.Fit(X, req.Y, X, req.Y)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}

		model, scaler = trained, s
		if err := os.MkdirAll(filepath.Dir(cfg.ModelPath), 0755); err == nil {
			if err := model.Save(cfg.ModelPath); err != nil {
				fmt.Printf("Failed to save model: %v\n", err)
			}
			if err := scaler.Save(cfg.ScalerPath); err != nil {
				fmt.Printf("Failed to save scaler: %v\n", err)
			}
		}

		last := len(metrics.TrainAcc) - 1
		return c.JSON(fiber.Map{
			"classes":  model.NumClasses(),
			"accuracy": metrics.TrainAcc[last],
			"loss":     metrics.TrainLoss[last],
		})
	})

	app.Post("/predict", func(c *fiber.Ctx) error {
		var req PredictRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}
		if len(req.X) == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "x is required"})
		}
		if model == nil || scaler == nil {
			return c.Status(400).JSON(fiber.Map{"error": "model not trained. Call POST /train first"})
		}

		X, err := sliceToDense(req.X)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		X, err = scaler.Transform(X)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		X = dataset.AppendBias(X)

		pred, err := model.Predict(X)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"y_pred": pred})
	})

	fmt.Printf("Inference API listening on %s\n", cfg.ServeAddr)
	if err := app.Listen(cfg.ServeAddr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// sliceToDense converts a row-major [][]float64 into a dense matrix
func sliceToDense(x [][]float64) (*mat.Dense, error) {
	nSamples := len(x)
	nFeatures := len(x[0])
	data := make([]float64, 0, nSamples*nFeatures)
	for i := 0; i < nSamples; i++ {
		if len(x[i]) != nFeatures {
			return nil, fmt.Errorf("all rows of x must have the same number of columns")
		}
		data = append(data, x[i]...)
	}
	return mat.NewDense(nSamples, nFeatures, data), nil
}
