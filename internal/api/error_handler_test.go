package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lungscan/scan-api/internal/core/domain"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.GET("/boom", func(echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid image", domain.ErrInvalidImage, http.StatusBadRequest, "invalid image file"},
		{"missing token", domain.ErrTokenMissing, http.StatusUnauthorized, "authentication token is missing"},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, "authentication token has expired"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"patient not found", domain.ErrPatientNotFound, http.StatusNotFound, "patient not found"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "email already registered"},
		{"model unavailable", domain.ErrModelUnavailable, http.StatusServiceUnavailable, "AI model not available"},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable, "database not available"},
		{"inference", domain.ErrInference, http.StatusInternalServerError, "failed to process image"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := serveError(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body["success"])
			}
			if body["message"] != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, body["message"])
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedError(t *testing.T) {
	rec, _ := serveError(t, errors.Join(errors.New("save image"), domain.ErrStoreUnavailable))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for wrapped store error, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec, body := serveError(t, echo.NewHTTPError(http.StatusBadRequest, "no file uploaded"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["message"] != "no file uploaded" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec, body := serveError(t, errors.New("database exploded at 10.0.0.5"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	// Internal details never reach the client.
	if body["message"] != "internal server error" {
		t.Fatalf("expected generic message, got %v", body["message"])
	}
}
