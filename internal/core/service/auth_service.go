package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lungscan/scan-api/internal/core/domain"
	"github.com/lungscan/scan-api/internal/core/ports"
)

// AuthService implements signup, login, and token resolution.
type AuthService struct {
	repo      ports.DoctorRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.DoctorRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

type doctorClaims struct {
	DoctorID string `json:"doctor_id"`
	jwt.RegisteredClaims
}

// Signup registers a new doctor and returns a fresh token plus the account.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (string, *domain.Doctor, error) {
	if s.repo == nil {
		return "", nil, domain.ErrStoreUnavailable
	}
	if email == "" || password == "" || name == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrDoctorNotFound) {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	doctor := &domain.Doctor{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(doctor.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("doctor_id", doctor.ID).Msg("doctor registered")
	return token, doctor, nil
}

// Login verifies credentials and returns a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Doctor, error) {
	if s.repo == nil {
		return "", nil, domain.ErrStoreUnavailable
	}
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	doctor, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrDoctorNotFound) {
			s.logger.Warn().Str("email", email).Msg("login attempt for unknown email")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.verifyPassword(doctor.Password, password) {
		s.logger.Warn().Str("doctor_id", doctor.ID).Msg("login with wrong password")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(doctor.ID)
	if err != nil {
		return "", nil, err
	}
	return token, doctor, nil
}

// verifyPassword supports two stored formats. Values carrying the bcrypt
// prefix are verified with bcrypt; a mismatch is final. Only a structural
// bcrypt failure (a legacy value that merely looks hashed) falls back to
// plaintext equality.
func (s *AuthService) verifyPassword(stored, input string) bool {
	if strings.HasPrefix(stored, "$2") {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(input))
		if err == nil {
			return true
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false
		}
		s.logger.Error().Err(err).Msg("bcrypt verification failed, trying legacy comparison")
		return stored == input
	}
	// Legacy plaintext credential.
	return stored == input
}

// ResolveToken parses and validates a signed token, then confirms the
// referenced doctor still exists.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.Doctor, error) {
	claims := &doctorClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.DoctorID == "" {
		return nil, domain.ErrTokenInvalid
	}

	if s.repo == nil {
		return nil, domain.ErrStoreUnavailable
	}
	doctor, err := s.repo.FindByID(ctx, claims.DoctorID)
	if err != nil {
		if errors.Is(err, domain.ErrDoctorNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return doctor, nil
}

func (s *AuthService) generateToken(doctorID string) (string, error) {
	claims := doctorClaims{
		DoctorID: doctorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
