package domain

import (
	"errors"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrDoctorNotFound = errors.New("doctor not found")

// Token validation failures, distinguished so the middleware can report
// missing vs expired vs tampered tokens separately.
var ErrTokenMissing = errors.New("authentication token is missing")
var ErrTokenExpired = errors.New("authentication token has expired")
var ErrTokenInvalid = errors.New("invalid authentication token")

// Doctor is the authenticated tenant. Every patient and scan query is
// scoped by Doctor.ID; crossing that boundary is an authorization bug.
type Doctor struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"` // bcrypt hash, or legacy plaintext
	CreatedAt time.Time `json:"created_at"`
}

// DevDoctor is the synthetic identity injected when auth bypass is enabled.
func DevDoctor() *Doctor {
	return &Doctor{
		ID:    "dev-doctor",
		Name:  "Developer",
		Email: "dev@example.com",
	}
}
