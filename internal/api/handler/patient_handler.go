package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lungscan/scan-api/internal/core/ports"
)

// PatientHandler covers the patient CRUD, always scoped to the caller.
type PatientHandler struct {
	records ports.RecordService
}

func NewPatientHandler(records ports.RecordService) *PatientHandler {
	return &PatientHandler{records: records}
}

// List handles GET /patients.
//
// @Summary      List the caller's patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listPatientsResponse
// @Failure      401  {object}  errorResponse
// @Router       /patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	doctor, err := ctxDoctor(c)
	if err != nil {
		return err
	}

	patients, err := h.records.ListPatients(c.Request().Context(), doctor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listPatientsResponse{Success: true, Patients: patients})
}

// Add handles POST /patients.
//
// @Summary      Register a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addPatientRequest  true  "Patient details"
// @Success      200   {object}  addPatientResponse
// @Failure      400   {object}  errorResponse
// @Router       /patients [post]
func (h *PatientHandler) Add(c echo.Context) error {
	doctor, err := ctxDoctor(c)
	if err != nil {
		return err
	}

	var req addPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patient, err := h.records.AddPatient(c.Request().Context(), ports.NewPatientInput{
		DoctorID:       doctor.ID,
		PatientID:      req.PatientID,
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		BloodGroup:     req.BloodGroup,
		MedicalHistory: req.MedicalHistory,
		DoctorNotes:    req.DoctorNotes,
	})
	if err != nil {
		return err
	}

	resp := addPatientResponse{Success: true, Message: "Patient added successfully"}
	resp.Patient.ID = patient.ID
	resp.Patient.Name = patient.Name
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /patients/:patient_id.
//
// @Summary      Get one patient with scan history
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id  path  string  true  "Patient id"
// @Success      200  {object}  getPatientResponse
// @Failure      404  {object}  errorResponse
// @Router       /patients/{patient_id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	doctor, err := ctxDoctor(c)
	if err != nil {
		return err
	}

	patient, err := h.records.GetPatient(c.Request().Context(), doctor.ID, c.Param("patient_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, getPatientResponse{Success: true, Patient: patient})
}
