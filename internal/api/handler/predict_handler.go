package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lungscan/scan-api/internal/core/ports"
)

// PredictHandler runs the prediction pipeline for an uploaded image without
// persisting anything; saving is a separate, explicit call.
type PredictHandler struct {
	predictions ports.PredictionService
}

func NewPredictHandler(predictions ports.PredictionService) *PredictHandler {
	return &PredictHandler{predictions: predictions}
}

// Predict handles POST /predict.
//
// @Summary      Classify an uploaded chest scan
// @Tags         predict
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Scan image (jpg/png/bmp)"
// @Success      200   {object}  domain.Prediction
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /predict [post]
func (h *PredictHandler) Predict(c echo.Context) error {
	if _, err := ctxDoctor(c); err != nil {
		return err
	}

	data, err := readUpload(c)
	if err != nil {
		return err
	}

	prediction, err := h.predictions.Predict(c.Request().Context(), data)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prediction)
}

// readUpload pulls the "file" multipart part into memory, rejecting missing
// and empty uploads before any pixel work happens.
func readUpload(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}
	if fh.Filename == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "no file selected")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unable to read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unable to read uploaded file")
	}
	if len(data) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "empty file received")
	}
	return data, nil
}
