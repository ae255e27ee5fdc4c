package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lungscan/scan-api/internal/api/metrics"
	"github.com/lungscan/scan-api/internal/core/domain"
	"github.com/lungscan/scan-api/internal/core/ports"
)

// PredictionService runs the prediction pipeline and records metrics around
// the classifier invocation. It holds no state of its own; the classifier is
// loaded once at startup and read-only thereafter.
type PredictionService struct {
	classifier ports.Classifier
	logger     zerolog.Logger
}

func NewPredictionService(classifier ports.Classifier, logger zerolog.Logger) *PredictionService {
	return &PredictionService{classifier: classifier, logger: logger}
}

// Predict classifies one uploaded image. Errors pass through untouched so
// the HTTP layer can distinguish invalid input from a missing model.
func (s *PredictionService) Predict(ctx context.Context, image []byte) (*domain.Prediction, error) {
	start := time.Now()

	result, err := s.classifier.Predict(ctx, image)
	if err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		s.logger.Error().Err(err).Int("image_bytes", len(image)).Msg("prediction failed")
		return nil, err
	}

	metrics.PredictionsTotal.WithLabelValues(result.PredictedClass).Inc()
	metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	s.logger.Info().
		Str("class", result.PredictedClass).
		Float64("confidence", result.Confidence).
		Msg("prediction complete")

	return result, nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidImage):
		return "invalid_image"
	case errors.Is(err, domain.ErrModelUnavailable):
		return "model_unavailable"
	default:
		return "inference_error"
	}
}
