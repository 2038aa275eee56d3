package handlers

import (
	"fmt"
	"net/http"
	"time"

	"penguin-service/logger"
	"penguin-service/metrics"
	"penguin-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// LogFieldKeys for structured logging
	LogFieldEndpoint   = "endpoint"
	LogFieldSpecies    = "predicted_species"
	LogFieldReason     = "reason"
	LogFieldDurationMs = "duration_ms"

	endpointPredict = "predict"
)

// Predict - species prediction handler
// POST /predict
// Request Body: {"bill_length_mm": 39.1, "bill_depth_mm": 18.7, "flipper_length_mm": 181, "body_mass_g": 3750}
func (h *Handler) Predict(c *gin.Context) {
	startTime := time.Now()

	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleValidationError(c, err)
		return
	}

	model, ok := h.state.Model()
	if !ok {
		handleModelUnavailable(c, h.state.LoadError())
		return
	}

	frame, err := services.NewFrame(services.FeatureColumns, req.row())
	if err != nil {
		handlePredictionError(c, err)
		return
	}

	labels, err := model.Predict(frame)
	if err != nil {
		handlePredictionError(c, err)
		return
	}
	if len(labels) == 0 {
		handlePredictionError(c, fmt.Errorf("model returned no prediction"))
		return
	}

	species := labels[0]
	metrics.PredictionsTotal.WithLabelValues(species).Inc()
	logger.Logger.Debug("prediction served",
		zap.String(LogFieldEndpoint, endpointPredict),
		zap.String(LogFieldSpecies, species),
		zap.Float64(LogFieldDurationMs, float64(time.Since(startTime).Microseconds())/1000),
	)

	c.JSON(http.StatusOK, PredictResponse{PredictedSpecies: species})
}

// handleValidationError rejects the request before the model is touched
func handleValidationError(c *gin.Context, err error) {
	details := validationDetails(err)
	for _, d := range details {
		metrics.ValidationFailures.WithLabelValues(d.Loc[len(d.Loc)-1], d.Type).Inc()
	}

	logger.Logger.Info("prediction input rejected",
		zap.String(LogFieldEndpoint, endpointPredict),
		zap.Error(err),
	)
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.JSON(http.StatusUnprocessableEntity, ValidationErrorResponse{Detail: details})
}

// handleModelUnavailable reports that startup never produced a model
func handleModelUnavailable(c *gin.Context, diagnostic string) {
	logger.Logger.Error("prediction requested without a loaded model",
		zap.String(LogFieldEndpoint, endpointPredict),
		zap.String(LogFieldReason, diagnostic),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Detail: fmt.Sprintf("Model not loaded: %s", diagnostic),
	})
}

// handlePredictionError wraps an inference failure
func handlePredictionError(c *gin.Context, err error) {
	logger.Logger.Error("prediction failed",
		zap.String(LogFieldEndpoint, endpointPredict),
		zap.Error(err),
	)
	_ = c.Error(err).SetType(gin.ErrorTypePrivate)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Detail: fmt.Sprintf("Prediction failed: %v", err),
	})
}
