package ports

import (
	"context"

	"github.com/lungscan/scan-api/internal/core/domain"
)

// AuthService handles credential issuance, verification, and per-request
// identity resolution.
type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (string, *domain.Doctor, error)
	Login(ctx context.Context, email, password string) (string, *domain.Doctor, error)
	// ResolveToken validates a bearer token and returns the doctor it
	// identifies. Failures map onto domain.ErrTokenExpired / ErrTokenInvalid.
	ResolveToken(ctx context.Context, token string) (*domain.Doctor, error)
}
