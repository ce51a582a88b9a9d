package svm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Metrics records the loss and accuracy on both splits after each completed
// epoch. All four slices have one entry per epoch.
type Metrics struct {
	TrainLoss []float64
	TrainAcc  []float64
	TestLoss  []float64
	TestAcc   []float64
}

// Fit trains the model with mini-batch sub-gradient descent.
//
// The number of classes is derived once from max(yTrain)+1 and the weight
// matrix starts at zero, so a fit with fixed inputs is fully deterministic.
// Each epoch streams the training rows through sequential mini-batches,
// updating the weights in place after every batch; the loss and accuracy of
// both splits are then measured on the post-epoch weights and recorded.
func (m *SVM) Fit(xTrain *mat.Dense, yTrain []int, xTest *mat.Dense, yTest []int) (*Metrics, error) {
	nTrain, numFeatures := xTrain.Dims()
	if nTrain == 0 || numFeatures == 0 {
		return nil, fmt.Errorf("training set is empty")
	}
	if len(yTrain) != nTrain {
		return nil, fmt.Errorf("training set has %d rows but %d labels", nTrain, len(yTrain))
	}
	nTest, testFeatures := xTest.Dims()
	if testFeatures != numFeatures {
		return nil, fmt.Errorf("test set has %d features, training set has %d", testFeatures, numFeatures)
	}
	if len(yTest) != nTest {
		return nil, fmt.Errorf("test set has %d rows but %d labels", nTest, len(yTest))
	}

	numClasses := maxLabel(yTrain) + 1
	labelsTrain, err := OneVersusAll(yTrain, numClasses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode training labels: %v", err)
	}
	labelsTest, err := OneVersusAll(yTest, numClasses)
	if err != nil {
		return nil, fmt.Errorf("failed to encode test labels: %v", err)
	}

	m.numFeatures = numFeatures
	m.numClasses = numClasses
	m.w = mat.NewDense(numFeatures, numClasses, nil)

	batches, err := Batches(xTrain, labelsTrain, m.cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	metrics := &Metrics{
		TrainLoss: make([]float64, 0, m.cfg.Epochs),
		TrainAcc:  make([]float64, 0, m.cfg.Epochs),
		TestLoss:  make([]float64, 0, m.cfg.Epochs),
		TestAcc:   make([]float64, 0, m.cfg.Epochs),
	}

	var step mat.Dense
	for epoch := 0; epoch < m.cfg.Epochs; epoch++ {
		for _, batch := range batches {
			grad, err := m.Gradient(batch.X, batch.Y)
			if err != nil {
				return nil, err
			}
			step.Scale(m.cfg.Eta, grad)
			m.w.Sub(m.w, &step)
		}

		trainLoss, trainAcc, err := m.evaluate(xTrain, labelsTrain)
		if err != nil {
			return nil, err
		}
		testLoss, testAcc, err := m.evaluate(xTest, labelsTest)
		if err != nil {
			return nil, err
		}

		if m.cfg.Verbose {
			fmt.Printf("Epoch %d: train loss %.4f, train acc %.4f, test loss %.4f, test acc %.4f\n",
				epoch, trainLoss, trainAcc, testLoss, testAcc)
		}

		metrics.TrainLoss = append(metrics.TrainLoss, trainLoss)
		metrics.TrainAcc = append(metrics.TrainAcc, trainAcc)
		metrics.TestLoss = append(metrics.TestLoss, testLoss)
		metrics.TestAcc = append(metrics.TestAcc, testAcc)
	}

	return metrics, nil
}

// evaluate measures loss and accuracy of the current weights on a full split
func (m *SVM) evaluate(X, Y *mat.Dense) (loss, acc float64, err error) {
	loss, err = m.Loss(X, Y)
	if err != nil {
		return 0, 0, err
	}
	inferred, err := m.Infer(X)
	if err != nil {
		return 0, 0, err
	}
	acc, err = Accuracy(inferred, Y)
	if err != nil {
		return 0, 0, err
	}
	return loss, acc, nil
}
