// Package dataset loads and prepares the feature matrices consumed by the
// classifier: CSV parsing, per-column standardization and the implicit bias
// column. The core trainer only ever sees the finished matrices.
package dataset

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Dataset is one data split: a dense feature matrix and an integer class
// label per row
type Dataset struct {
	X *mat.Dense
	Y []int
}

// LoadCSV loads a data split from a CSV file. Every column but the last is
// read as a feature; the last column is the integer class label. A leading
// row whose values do not parse as numbers is treated as a header and
// skipped.
func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	if len(records) > 0 && !numericRecord(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}

	numColumns := len(records[0])
	if numColumns < 2 {
		return nil, fmt.Errorf("%s needs at least one feature column and a label column", path)
	}
	numFeatures := numColumns - 1

	X := mat.NewDense(len(records), numFeatures, nil)
	y := make([]int, len(records))
	for i, record := range records {
		if len(record) != numColumns {
			return nil, fmt.Errorf("%s row %d has %d columns, expected %d", path, i, len(record), numColumns)
		}
		row := X.RawRowView(i)
		for j := 0; j < numFeatures; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %d: %v", path, i, j, err)
			}
			row[j] = v
		}
		label, err := strconv.Atoi(record[numFeatures])
		if err != nil {
			return nil, fmt.Errorf("%s row %d label: %v", path, i, err)
		}
		if label < 0 {
			return nil, fmt.Errorf("%s row %d has negative label %d", path, i, label)
		}
		y[i] = label
	}

	return &Dataset{X: X, Y: y}, nil
}

// Prepare loads the training and test splits, standardizes both with
// statistics computed from the training split only, and appends the
// constant-1 bias column to each. The returned scaler is what evaluate and
// serve need to reproduce the same preprocessing later.
func Prepare(trainPath, testPath string) (train, test *Dataset, scaler *Scaler, err error) {
	train, err = LoadCSV(trainPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load training split: %v", err)
	}
	test, err = LoadCSV(testPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load test split: %v", err)
	}
	_, trainFeatures := train.X.Dims()
	_, testFeatures := test.X.Dims()
	if trainFeatures != testFeatures {
		return nil, nil, nil, fmt.Errorf("training split has %d features but test split has %d",
			trainFeatures, testFeatures)
	}

	scaler = FitScaler(train.X)
	train.X, err = scaler.Transform(train.X)
	if err != nil {
		return nil, nil, nil, err
	}
	test.X, err = scaler.Transform(test.X)
	if err != nil {
		return nil, nil, nil, err
	}
	train.X = AppendBias(train.X)
	test.X = AppendBias(test.X)
	return train, test, scaler, nil
}

// numericRecord reports whether every field of a CSV record parses as a float
func numericRecord(record []string) bool {
	for _, field := range record {
		if _, err := strconv.ParseFloat(field, 64); err != nil {
			return false
		}
	}
	return true
}

// AppendBias returns a copy of X with a constant-1 column appended as the
// last feature
func AppendBias(X *mat.Dense) *mat.Dense {
	n, f := X.Dims()
	out := mat.NewDense(n, f+1, nil)
	for i := 0; i < n; i++ {
		row := out.RawRowView(i)
		copy(row, X.RawRowView(i))
		row[f] = 1
	}
	return out
}

// FitScaler computes the per-column mean and standard deviation of X.
// Columns with zero variance get a standard deviation of 1 so constant
// features pass through unchanged.
func FitScaler(X *mat.Dense) *Scaler {
	n, f := X.Dims()
	mean := make([]float64, f)
	std := make([]float64, f)

	for i := 0; i < n; i++ {
		for j, v := range X.RawRowView(i) {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}

	for i := 0; i < n; i++ {
		for j, v := range X.RawRowView(i) {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / float64(n))
		if std[j] == 0 {
			std[j] = 1
		}
	}

	return &Scaler{Mean: mean, Std: std}
}
