// Package handlers provides HTTP request handlers for the penguin classifier service.
//
// Overview
//
// Handlers are methods on Handler, which wraps the model state loaded once at
// startup. The state is read-only, so one Handler serves all requests
// concurrently:
//   - health.go: load status of the model
//   - predict.go: species prediction from four body measurements
//   - errors.go: request validation detail
//
// Request Flow
//
// The prediction handler follows a fixed pattern:
//   1. Bind and validate the JSON body (missing or non-positive fields are rejected)
//   2. Check a model is loaded
//   3. Assemble a one-row frame with the fixed feature column order
//   4. Run the classifier and return the first label
//
// Error Handling
//
// All errors are returned as JSON bodies with a "detail" member:
//   - 422: Unprocessable Entity (field-level validation errors)
//   - 500: Internal Server Error (model not loaded, prediction failed)
//
// The health check always answers 200 and reports a failed load in its body.
package handlers
