package handler

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lungscan/scan-api/internal/core/domain"
	"github.com/lungscan/scan-api/internal/core/ports"
	"github.com/lungscan/scan-api/internal/infrastructure/storage"
)

// RecordHandler covers scan persistence, history, and dashboard stats.
type RecordHandler struct {
	records ports.RecordService
}

func NewRecordHandler(records ports.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// Save handles POST /save-record: multipart image + patientId + the
// prediction JSON the client confirmed.
//
// @Summary      Persist a classified scan
// @Tags         records
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file        formData  file    true  "Scan image"
// @Param        patientId   formData  string  true  "Patient id"
// @Param        prediction  formData  string  true  "Prediction JSON"
// @Success      200  {object}  saveRecordResponse
// @Failure      400  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /save-record [post]
func (h *RecordHandler) Save(c echo.Context) error {
	doctor, err := ctxDoctor(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file provided")
	}
	if fh.Filename == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no file selected")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !storage.AllowedExtensions[ext] {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid file type, only JPG, PNG, BMP allowed")
	}

	patientID := c.FormValue("patientId")
	if patientID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no patient id provided")
	}

	rawPrediction := c.FormValue("prediction")
	if rawPrediction == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no prediction data provided")
	}
	var prediction savePrediction
	if err := json.Unmarshal([]byte(rawPrediction), &prediction); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid prediction data format")
	}
	if err := c.Validate(&prediction); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	data, err := readUpload(c)
	if err != nil {
		return err
	}

	recordID, err := h.records.SaveScan(c.Request().Context(), ports.SaveScanInput{
		DoctorID:  doctor.ID,
		PatientID: patientID,
		FileName:  fh.Filename,
		Image:     data,
		Prediction: toPrediction(prediction),
		MedicalHistory: prediction.MedicalHistory,
		DoctorNotes:    prediction.DoctorNotes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, saveRecordResponse{
		Success:  true,
		Message:  "Record saved successfully",
		RecordID: recordID,
	})
}

// History handles GET /history, every scan for the calling doctor.
//
// @Summary      List all scans for the caller
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ScanRecord
// @Failure      401  {object}  errorResponse
// @Router       /history [get]
func (h *RecordHandler) History(c echo.Context) error {
	doctor, err := ctxDoctor(c)
	if err != nil {
		return err
	}

	records, err := h.records.History(c.Request().Context(), doctor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// PatientHistory handles GET /history/:patient_id.
//
// @Summary      List scans for one patient
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id  path  string  true  "Patient id"
// @Success      200  {array}   domain.ScanRecord
// @Failure      404  {object}  errorResponse
// @Router       /history/{patient_id} [get]
func (h *RecordHandler) PatientHistory(c echo.Context) error {
	doctor, err := ctxDoctor(c)
	if err != nil {
		return err
	}

	records, err := h.records.PatientHistory(c.Request().Context(), doctor.ID, c.Param("patient_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Stats handles GET /stats, the dashboard aggregates.
//
// @Summary      Dashboard statistics
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      401  {object}  errorResponse
// @Router       /stats [get]
func (h *RecordHandler) Stats(c echo.Context) error {
	doctor, err := ctxDoctor(c)
	if err != nil {
		return err
	}

	stats, err := h.records.Stats(c.Request().Context(), doctor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func toPrediction(p savePrediction) domain.Prediction {
	return domain.Prediction{
		PredictedClass: p.PredictedClass,
		Confidence:     p.Confidence,
		Probabilities:  p.Probabilities,
	}
}
