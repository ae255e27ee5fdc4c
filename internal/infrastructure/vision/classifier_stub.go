//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// Classifier stub for builds without the gocv tag. Every prediction reports
// the model unavailable, which the HTTP layer maps to 503.
type Classifier struct {
	logger zerolog.Logger
}

// NewClassifier returns an unloaded classifier.
func NewClassifier(modelPath string, logger zerolog.Logger) *Classifier {
	logger.Warn().Str("path", modelPath).Msg("built without gocv, prediction endpoints disabled")
	return &Classifier{logger: logger}
}

// Loaded always reports false without the gocv build tag.
func (c *Classifier) Loaded() bool {
	return false
}

// Predict always fails with ErrModelUnavailable.
func (c *Classifier) Predict(ctx context.Context, image []byte) (*domain.Prediction, error) {
	_ = image
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, domain.ErrModelUnavailable
}

// Close is a no-op without a loaded network.
func (c *Classifier) Close() {}
