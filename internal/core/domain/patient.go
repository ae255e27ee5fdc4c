package domain

import (
	"errors"
	"time"
)

var ErrPatientNotFound = errors.New("patient not found")

// Patient belongs to exactly one doctor.
type Patient struct {
	ID             string    `json:"id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Age            int       `json:"age" bson:"age"`
	Gender         string    `json:"gender" bson:"gender"`
	BloodGroup     string    `json:"bloodGroup,omitempty" bson:"blood_group,omitempty"`
	MedicalHistory string    `json:"medicalHistory" bson:"medical_history"`
	DoctorNotes    string    `json:"doctorNotes" bson:"doctor_notes"`
	DoctorID       string    `json:"-" bson:"doctor_id"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
