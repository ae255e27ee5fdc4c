package ports

import (
	"context"
	"time"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// ScanFilter narrows scan queries. DoctorID is mandatory everywhere the
// filter is consumed; the remaining fields are optional.
type ScanFilter struct {
	DoctorID      string
	PatientID     string
	Diagnosis     string
	MinConfidence float64   // exclusive lower bound when > 0
	From          time.Time // inclusive when non-zero
	To            time.Time // exclusive when non-zero
}

// ScanRepository defines persistence for scan records.
type ScanRepository interface {
	Insert(ctx context.Context, record *domain.ScanRecord) (string, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ScanFilter) ([]domain.ScanRecord, error)
	Count(ctx context.Context, filter ScanFilter) (int64, error)
	DistinctPatients(ctx context.Context, filter ScanFilter) ([]string, error)
	// FindLatest returns (nil, nil) when the patient has no scans.
	FindLatest(ctx context.Context, doctorID, patientID string) (*domain.ScanRecord, error)
}
