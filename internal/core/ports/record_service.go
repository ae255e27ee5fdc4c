package ports

import (
	"context"
	"time"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// SaveScanInput carries everything needed to persist one classification
// event: the raw image plus the prediction the client confirmed.
type SaveScanInput struct {
	DoctorID   string
	PatientID  string
	FileName   string
	Image      []byte
	Prediction domain.Prediction
	// Optional context echoed from the prediction payload.
	MedicalHistory string
	DoctorNotes    string
}

// NewPatientInput carries the fields accepted when registering a patient.
type NewPatientInput struct {
	DoctorID       string
	PatientID      string // optional; generated when empty
	Name           string
	Age            int
	Gender         string
	BloodGroup     string
	MedicalHistory string
	DoctorNotes    string
}

// PatientSummary is the list view of a patient, including scan aggregates.
type PatientSummary struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Age            int        `json:"age"`
	Gender         string     `json:"gender"`
	BloodGroup     string     `json:"bloodGroup,omitempty"`
	MedicalHistory string     `json:"medicalHistory"`
	DoctorNotes    string     `json:"doctorNotes"`
	ScanCount      int64      `json:"scanCount"`
	LastScan       *time.Time `json:"lastScan"`
}

// ScanSummary is the compact per-scan view embedded in patient detail.
type ScanSummary struct {
	Diagnosis  string    `json:"diagnosis"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// PatientDetail is the single-patient view with its scan history.
type PatientDetail struct {
	PatientSummary
	Scans []ScanSummary `json:"scans"`
}

// Metric is a dashboard number with its window-over-window trend.
type Metric struct {
	Value int64        `json:"value"`
	Trend domain.Trend `json:"trend"`
}

// DashboardStats aggregates the doctor's dashboard numbers.
type DashboardStats struct {
	TotalScans     Metric `json:"total_scans"`
	DetectedCases  Metric `json:"detected_cases"`
	SuccessRate    struct {
		Value float64 `json:"value"`
	} `json:"success_rate"`
	ActivePatients Metric `json:"active_patients"`
}

// RecordService exposes the doctor-scoped data operations.
type RecordService interface {
	SaveScan(ctx context.Context, input SaveScanInput) (string, error)
	History(ctx context.Context, doctorID string) ([]domain.ScanRecord, error)
	PatientHistory(ctx context.Context, doctorID, patientID string) ([]domain.ScanRecord, error)
	ListPatients(ctx context.Context, doctorID string) ([]PatientSummary, error)
	AddPatient(ctx context.Context, input NewPatientInput) (*domain.Patient, error)
	GetPatient(ctx context.Context, doctorID, patientID string) (*PatientDetail, error)
	Stats(ctx context.Context, doctorID string) (*DashboardStats, error)
}
