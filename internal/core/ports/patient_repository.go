package ports

import (
	"context"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// PatientRepository defines persistence for patients. Every lookup that
// serves a request is scoped by doctor id at the repository level.
type PatientRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.Patient, error)
	Create(ctx context.Context, patient *domain.Patient) error
}
