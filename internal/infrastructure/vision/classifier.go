//go:build gocv
// +build gocv

package vision

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// Classifier wraps the ONNX export of the trained lung model. A missing or
// unreadable artifact leaves the classifier unloaded; Predict then reports
// the model unavailable instead of failing startup.
type Classifier struct {
	net    gocv.Net
	loaded bool
	logger zerolog.Logger

	// cv::dnn networks are not reentrant; Forward calls are serialized.
	// Weights are never mutated after load.
	mu sync.Mutex
}

// NewClassifier loads the model artifact at modelPath.
func NewClassifier(modelPath string, logger zerolog.Logger) *Classifier {
	if _, err := os.Stat(modelPath); err != nil {
		logger.Warn().Str("path", modelPath).Msg("model artifact not found, prediction endpoints disabled")
		return &Classifier{logger: logger}
	}

	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		logger.Warn().Str("path", modelPath).Msg("failed to load model, prediction endpoints disabled")
		return &Classifier{logger: logger}
	}

	logger.Info().Str("path", modelPath).Msg("classification model loaded")
	return &Classifier{net: net, loaded: true, logger: logger}
}

// Loaded reports whether a model artifact is ready for inference.
func (c *Classifier) Loaded() bool {
	return c.loaded
}

// Predict preprocesses the image and runs one forward pass.
func (c *Classifier) Predict(ctx context.Context, image []byte) (*domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.loaded {
		return nil, domain.ErrModelUnavailable
	}

	blob, err := Preprocess(image)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	c.mu.Lock()
	c.net.SetInput(blob, "")
	out := c.net.Forward("")
	c.mu.Unlock()
	defer out.Close()

	if out.Empty() {
		return nil, domain.ErrInference
	}

	scores := make([]float32, out.Total())
	for i := range scores {
		scores[i] = out.GetFloatAt(0, i)
	}
	return resultFromScores(scores)
}

// Close releases the underlying network.
func (c *Classifier) Close() {
	if c.loaded {
		_ = c.net.Close()
	}
}
