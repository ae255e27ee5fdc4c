package domain

import (
	"errors"
	"time"
)

var ErrStoreUnavailable = errors.New("record store unavailable")

// ScanRecord is one classification event: the stored image plus the result.
// Records are immutable once created; the only deletion is the compensating
// image cleanup when the store write fails after the file write succeeded.
type ScanRecord struct {
	ID            string             `json:"recordId,omitempty" bson:"_id,omitempty"`
	PatientID     string             `json:"patientId" bson:"patient_id"`
	PatientName   string             `json:"patientName,omitempty" bson:"-"`
	DoctorID      string             `json:"doctorId" bson:"doctor_id"`
	Timestamp     time.Time          `json:"timestamp" bson:"timestamp"`
	ImagePath     string             `json:"imagePath" bson:"image_path"`
	Diagnosis     string             `json:"diagnosis" bson:"diagnosis"`
	Confidence    float64            `json:"confidence" bson:"confidence"`
	Probabilities map[string]float64 `json:"probabilities" bson:"probabilities"`
	// Optional context captured at scan time.
	MedicalHistory string `json:"medicalHistory,omitempty" bson:"medical_history,omitempty"`
	DoctorNotes    string `json:"doctorNotes,omitempty" bson:"doctor_notes,omitempty"`
}
