package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"penguin-service/logger"
	"penguin-service/metrics"
)

// ModelState is the process-wide model reference. It is filled once by
// LoadModelState and only read afterwards, so handlers share it without locks.
type ModelState struct {
	model   Classifier
	loadErr string
}

// NewLoadedState wraps an already built classifier.
func NewLoadedState(model Classifier) *ModelState {
	return &ModelState{model: model}
}

// NewFailedState records a load failure diagnostic.
func NewFailedState(diagnostic string) *ModelState {
	return &ModelState{loadErr: diagnostic}
}

// Model returns the classifier and whether one is loaded.
func (s *ModelState) Model() (Classifier, bool) {
	return s.model, s.model != nil
}

// Loaded reports whether a classifier is available.
func (s *ModelState) Loaded() bool {
	return s.model != nil
}

// LoadError returns the diagnostic captured when loading failed.
func (s *ModelState) LoadError() string {
	return s.loadErr
}

// LoadModelState loads the artifact once. Failures are never fatal: the
// returned state carries the diagnostic instead of a model.
func LoadModelState(ctx context.Context, source ArtifactSource, timeout time.Duration) *ModelState {
	startTime := time.Now()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	model, err := LoadModel(ctx, source)
	if err != nil {
		logger.Logger.Error("model load failed, serving without a model",
			zap.String("source", source.String()),
			zap.Error(err),
		)
		metrics.ModelLoaded.Set(0)
		return NewFailedState(err.Error())
	}

	logger.Logger.Info("model loaded",
		zap.String("source", source.String()),
		zap.String("type", model.Kind()),
		zap.Strings("classes", model.Classes()),
		zap.Int("trees", model.TreeCount()),
		zap.Float64("duration_ms", float64(time.Since(startTime).Milliseconds())),
	)
	metrics.ModelLoaded.Set(1)
	return NewLoadedState(model)
}

// LoadModel opens, decodes and builds the classifier held by source.
func LoadModel(ctx context.Context, source ArtifactSource) (*Ensemble, error) {
	rc, err := source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer rc.Close()

	artifact, err := DecodeArtifact(rc)
	if err != nil {
		return nil, err
	}

	return BuildClassifier(artifact)
}
