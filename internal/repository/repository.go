package repository

import (
	"context"
	"errors"

	"nflpicks/internal/models"
)

var (
	// ErrNotFound means the configured data file does not exist. Views
	// surface it as an inline message, not a failure.
	ErrNotFound = errors.New("data file not found")

	// ErrUnsupportedFormat means the configured path does not have the
	// expected extension. This one is a hard failure for the load call.
	ErrUnsupportedFormat = errors.New("unsupported data file format")
)

// Repository loads the two dashboard tables. Implementations read fresh on
// every call; nothing is cached between requests.
type Repository interface {
	LoadPredictions(ctx context.Context) (*models.PredictionTable, error)
	LoadResults(ctx context.Context) (*models.ResultTable, error)
}
