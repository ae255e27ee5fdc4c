//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/lungscan/scan-api/internal/core/domain"
)

const inputSize = 224

// Preprocess turns an uploaded image into the input blob the classifier was
// trained on:
//
//  1. decode to three-channel color (grayscale and alpha sources included);
//     undecodable bytes fail with ErrInvalidImage,
//  2. resize to 224x224,
//  3. scale intensities to [0, 1] by dividing by 255,
//  4. prepend a batch dimension, yielding a 1x3x224x224 blob in RGB order.
//
// The transform is pure; the caller owns the returned Mat and must Close it.
func Preprocess(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.NewMat(), fmt.Errorf("%w: empty payload", domain.ErrInvalidImage)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil || mat.Empty() {
		if !mat.Empty() {
			mat.Close()
		}
		return gocv.NewMat(), domain.ErrInvalidImage
	}
	defer mat.Close()

	// IMDecode yields BGR; swapRB restores the RGB order used in training.
	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(inputSize, inputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	if blob.Empty() {
		blob.Close()
		return gocv.NewMat(), fmt.Errorf("%w: blob conversion produced no data", domain.ErrInvalidImage)
	}
	return blob, nil
}
