package handlers

// PredictRequest - prediction input. Pointers tell a missing field from a zero one.
type PredictRequest struct {
	BillLengthMM    *float64 `json:"bill_length_mm" binding:"required,gt=0"`
	BillDepthMM     *float64 `json:"bill_depth_mm" binding:"required,gt=0"`
	FlipperLengthMM *float64 `json:"flipper_length_mm" binding:"required,gt=0"`
	BodyMassG       *float64 `json:"body_mass_g" binding:"required,gt=0"`
}

// row returns the measurements in services.FeatureColumns order.
func (r *PredictRequest) row() []float64 {
	return []float64{*r.BillLengthMM, *r.BillDepthMM, *r.FlipperLengthMM, *r.BodyMassG}
}

// PredictResponse - prediction output
type PredictResponse struct {
	PredictedSpecies string `json:"predicted_species"`
}

// HealthResponse - model load status
type HealthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// ErrorResponse - server side failure
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse - 422 body listing every rejected field
type ValidationErrorResponse struct {
	Detail []ValidationDetail `json:"detail"`
}

// ValidationDetail describes one rejected input location.
type ValidationDetail struct {
	Type  string      `json:"type"`
	Loc   []string    `json:"loc"`
	Msg   string      `json:"msg"`
	Input interface{} `json:"input"`
}
