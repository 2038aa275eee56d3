// Package services holds the model side of the penguin classifier service:
// the tree-ensemble classifier, the artifact sources it is read from and the
// one-shot loader that produces the process-wide model state.
package services

import (
	"errors"
	"fmt"
)

// Feature columns in the order the prediction row is assembled.
const (
	ColumnBillLength    = "bill_length_mm"
	ColumnBillDepth     = "bill_depth_mm"
	ColumnFlipperLength = "flipper_length_mm"
	ColumnBodyMass      = "body_mass_g"
)

// FeatureColumns is the fixed column order of a prediction frame.
var FeatureColumns = []string{
	ColumnBillLength,
	ColumnBillDepth,
	ColumnFlipperLength,
	ColumnBodyMass,
}

var (
	ErrUnknownModelType = errors.New("unknown model type")
	ErrInvalidArtifact  = errors.New("invalid model artifact")
	ErrMissingFeature   = errors.New("missing feature column")
	ErrInvalidTree      = errors.New("invalid tree state")
)

// Frame is a small column-named table handed to a Classifier.
type Frame struct {
	Columns []string
	Rows    [][]float64
}

// NewFrame builds a frame and checks every row matches the column count.
func NewFrame(columns []string, rows ...[]float64) (Frame, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return Frame{}, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
	}
	return Frame{Columns: columns, Rows: rows}, nil
}

// Classifier predicts one label per frame row.
type Classifier interface {
	Predict(frame Frame) ([]string, error)
}
