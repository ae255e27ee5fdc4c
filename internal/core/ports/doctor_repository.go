package ports

import (
	"context"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// DoctorRepository defines persistence for doctor accounts.
type DoctorRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	FindByID(ctx context.Context, id string) (*domain.Doctor, error)
	Create(ctx context.Context, doctor *domain.Doctor) error
}
