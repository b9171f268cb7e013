// Package domain defines the inference engine contract
package domain

import (
	"context"

	"spedicija/internal/core/features"
	"spedicija/internal/core/model"
)

// Result is one prediction
type Result struct {
	TotalCost  float64
	TravelTime float64
}

// Predictor is a loaded model; implementations must be safe for concurrent reads
type Predictor interface {
	Predict(v features.Vector) (totalCost, travelTime float64, err error)
	Info() model.Info
}

// EnginePort runs a prediction under the pool's bounds
type EnginePort interface {
	Infer(ctx context.Context, v features.Vector) (Result, error)
	Info() model.Info
}
