package handler

import "github.com/lungscan/scan-api/internal/core/ports"

type addPatientRequest struct {
	PatientID      string `json:"patientId"`
	Name           string `json:"name"   validate:"required"`
	Age            int    `json:"age"    validate:"required,gte=0"`
	Gender         string `json:"gender" validate:"required"`
	BloodGroup     string `json:"bloodGroup"`
	MedicalHistory string `json:"medicalHistory"`
	DoctorNotes    string `json:"doctorNotes"`
}

type listPatientsResponse struct {
	Success  bool                   `json:"success"`
	Patients []ports.PatientSummary `json:"patients"`
}

type addPatientResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Patient struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"patient"`
}

type getPatientResponse struct {
	Success bool                 `json:"success"`
	Patient *ports.PatientDetail `json:"patient"`
}
