package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lungscan/scan-api/internal/api/metrics"
	"github.com/lungscan/scan-api/internal/core/domain"
	"github.com/lungscan/scan-api/internal/core/ports"
)

// StatsCache abstracts the dashboard stats cache (Redis). A (nil, nil) Get
// result is a miss.
type StatsCache interface {
	Get(ctx context.Context, doctorID string) (*ports.DashboardStats, error)
	Set(ctx context.Context, doctorID string, stats *ports.DashboardStats) error
	Invalidate(ctx context.Context, doctorID string) error
}

const trendWindow = 30 * 24 * time.Hour

// RecordService implements the doctor-scoped data operations. All reads and
// writes are filtered by doctor id; nothing here ever returns another
// tenant's data. Repositories may be nil when the process was started
// without a database, in which case every operation reports the store
// unavailable instead of crashing.
type RecordService struct {
	scans    ports.ScanRepository
	patients ports.PatientRepository
	files    ports.FileStore
	cache    StatsCache // optional
	logger   zerolog.Logger
}

func NewRecordService(scans ports.ScanRepository, patients ports.PatientRepository, files ports.FileStore, cache StatsCache, logger zerolog.Logger) *RecordService {
	return &RecordService{scans: scans, patients: patients, files: files, cache: cache, logger: logger}
}

func (s *RecordService) available() error {
	if s.scans == nil || s.patients == nil {
		return domain.ErrStoreUnavailable
	}
	return nil
}

// SaveScan stores the uploaded image, then the scan document. When the
// document insert fails after the image write succeeded, the image is
// removed again best-effort so no orphaned files accumulate.
func (s *RecordService) SaveScan(ctx context.Context, input ports.SaveScanInput) (string, error) {
	if err := s.available(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(input.FileName))
	path, err := s.files.Save(ctx, input.PatientID, ext, input.Image)
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	record := &domain.ScanRecord{
		PatientID:      input.PatientID,
		DoctorID:       input.DoctorID,
		Timestamp:      time.Now().UTC(),
		ImagePath:      path,
		Diagnosis:      input.Prediction.PredictedClass,
		Confidence:     input.Prediction.Confidence,
		Probabilities:  input.Prediction.Probabilities,
		MedicalHistory: input.MedicalHistory,
		DoctorNotes:    input.DoctorNotes,
	}

	id, err := s.scans.Insert(ctx, record)
	if err != nil {
		// Compensation: the image write already happened, undo it.
		if rmErr := s.files.Remove(ctx, path); rmErr != nil {
			s.logger.Warn().Err(rmErr).Str("path", path).Msg("failed to remove image after store failure")
		}
		return "", fmt.Errorf("insert scan record: %w", err)
	}

	metrics.RecordsSavedTotal.WithLabelValues(record.Diagnosis).Inc()
	s.invalidateStats(ctx, input.DoctorID)

	s.logger.Info().
		Str("record_id", id).
		Str("patient_id", input.PatientID).
		Str("doctor_id", input.DoctorID).
		Str("diagnosis", record.Diagnosis).
		Msg("scan record saved")

	return id, nil
}

// History returns every scan for the doctor, newest first, with patient
// names resolved.
func (s *RecordService) History(ctx context.Context, doctorID string) ([]domain.ScanRecord, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	records, err := s.scans.List(ctx, ports.ScanFilter{DoctorID: doctorID})
	if err != nil {
		return nil, err
	}
	s.resolvePatientNames(ctx, records)
	return records, nil
}

// PatientHistory returns the scans for one patient, scoped by doctor. A
// patient owned by a different doctor is indistinguishable from a missing
// one.
func (s *RecordService) PatientHistory(ctx context.Context, doctorID, patientID string) ([]domain.ScanRecord, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	patient, err := s.patients.FindByID(ctx, patientID)
	switch {
	case err == nil:
		if patient.DoctorID != doctorID {
			return nil, domain.ErrPatientNotFound
		}
	case errors.Is(err, domain.ErrPatientNotFound):
		// Scans may reference patients that were never registered explicitly.
		n, countErr := s.scans.Count(ctx, ports.ScanFilter{DoctorID: doctorID, PatientID: patientID})
		if countErr != nil {
			return nil, countErr
		}
		if n == 0 {
			return nil, domain.ErrPatientNotFound
		}
	default:
		return nil, err
	}

	records, err := s.scans.List(ctx, ports.ScanFilter{DoctorID: doctorID, PatientID: patientID})
	if err != nil {
		return nil, err
	}
	if patient != nil {
		for i := range records {
			records[i].PatientName = patient.Name
		}
	}
	return records, nil
}

// ListPatients returns the doctor's patients with per-patient scan
// aggregates.
func (s *RecordService) ListPatients(ctx context.Context, doctorID string) ([]ports.PatientSummary, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	patients, err := s.patients.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.PatientSummary, 0, len(patients))
	for _, p := range patients {
		summary, err := s.summarize(ctx, doctorID, p)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// AddPatient registers a patient under the doctor. The id is generated when
// the caller did not supply one.
func (s *RecordService) AddPatient(ctx context.Context, input ports.NewPatientInput) (*domain.Patient, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	id := input.PatientID
	if id == "" {
		id = uuid.NewString()
	}

	patient := &domain.Patient{
		ID:             id,
		Name:           input.Name,
		Age:            input.Age,
		Gender:         input.Gender,
		BloodGroup:     input.BloodGroup,
		MedicalHistory: input.MedicalHistory,
		DoctorNotes:    input.DoctorNotes,
		DoctorID:       input.DoctorID,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}

	s.logger.Info().Str("patient_id", id).Str("doctor_id", input.DoctorID).Msg("patient added")
	return patient, nil
}

// GetPatient returns one patient with scan aggregates and compact history.
func (s *RecordService) GetPatient(ctx context.Context, doctorID, patientID string) (*ports.PatientDetail, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	patient, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient.DoctorID != doctorID {
		return nil, domain.ErrPatientNotFound
	}

	summary, err := s.summarize(ctx, doctorID, *patient)
	if err != nil {
		return nil, err
	}

	records, err := s.scans.List(ctx, ports.ScanFilter{DoctorID: doctorID, PatientID: patientID})
	if err != nil {
		return nil, err
	}
	scans := make([]ports.ScanSummary, 0, len(records))
	for _, r := range records {
		scans = append(scans, ports.ScanSummary{
			Diagnosis:  r.Diagnosis,
			Confidence: r.Confidence,
			Timestamp:  r.Timestamp,
		})
	}

	return &ports.PatientDetail{PatientSummary: summary, Scans: scans}, nil
}

// Stats computes the dashboard aggregates for the doctor. Results are cached
// for a short window when a cache is configured; cache failures only log.
func (s *RecordService) Stats(ctx context.Context, doctorID string) (*ports.DashboardStats, error) {
	if err := s.available(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, doctorID)
		if err != nil {
			s.logger.Warn().Err(err).Msg("stats cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	now := time.Now().UTC()
	windowStart := now.Add(-trendWindow)
	prevStart := now.Add(-2 * trendWindow)

	total, err := s.scans.Count(ctx, ports.ScanFilter{DoctorID: doctorID})
	if err != nil {
		return nil, err
	}
	detected, err := s.scans.Count(ctx, ports.ScanFilter{DoctorID: doctorID, Diagnosis: domain.DiagnosisMalignant})
	if err != nil {
		return nil, err
	}
	highConfidence, err := s.scans.Count(ctx, ports.ScanFilter{DoctorID: doctorID, MinConfidence: 0.9})
	if err != nil {
		return nil, err
	}

	currentScans, err := s.scans.Count(ctx, ports.ScanFilter{DoctorID: doctorID, From: windowStart})
	if err != nil {
		return nil, err
	}
	prevScans, err := s.scans.Count(ctx, ports.ScanFilter{DoctorID: doctorID, From: prevStart, To: windowStart})
	if err != nil {
		return nil, err
	}

	currentCases, err := s.scans.Count(ctx, ports.ScanFilter{DoctorID: doctorID, Diagnosis: domain.DiagnosisMalignant, From: windowStart})
	if err != nil {
		return nil, err
	}
	prevCases, err := s.scans.Count(ctx, ports.ScanFilter{DoctorID: doctorID, Diagnosis: domain.DiagnosisMalignant, From: prevStart, To: windowStart})
	if err != nil {
		return nil, err
	}

	currentActive, err := s.scans.DistinctPatients(ctx, ports.ScanFilter{DoctorID: doctorID, From: windowStart})
	if err != nil {
		return nil, err
	}
	prevActive, err := s.scans.DistinctPatients(ctx, ports.ScanFilter{DoctorID: doctorID, From: prevStart, To: windowStart})
	if err != nil {
		return nil, err
	}

	stats := &ports.DashboardStats{
		TotalScans: ports.Metric{
			Value: total,
			Trend: domain.CalculateTrend(prevScans, currentScans),
		},
		DetectedCases: ports.Metric{
			Value: detected,
			Trend: domain.CalculateTrend(prevCases, currentCases),
		},
		ActivePatients: ports.Metric{
			Value: int64(len(currentActive)),
			Trend: domain.CalculateTrend(int64(len(prevActive)), int64(len(currentActive))),
		},
	}
	if total > 0 {
		stats.SuccessRate.Value = domain.Round1(float64(highConfidence) / float64(total) * 100)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, doctorID, stats); err != nil {
			s.logger.Warn().Err(err).Msg("stats cache write failed")
		}
	}

	return stats, nil
}

func (s *RecordService) summarize(ctx context.Context, doctorID string, p domain.Patient) (ports.PatientSummary, error) {
	count, err := s.scans.Count(ctx, ports.ScanFilter{DoctorID: doctorID, PatientID: p.ID})
	if err != nil {
		return ports.PatientSummary{}, err
	}

	summary := ports.PatientSummary{
		ID:             p.ID,
		Name:           p.Name,
		Age:            p.Age,
		Gender:         p.Gender,
		BloodGroup:     p.BloodGroup,
		MedicalHistory: p.MedicalHistory,
		DoctorNotes:    p.DoctorNotes,
		ScanCount:      count,
	}

	latest, err := s.scans.FindLatest(ctx, doctorID, p.ID)
	if err != nil {
		return ports.PatientSummary{}, err
	}
	if latest != nil {
		ts := latest.Timestamp
		summary.LastScan = &ts
	}
	return summary, nil
}

func (s *RecordService) resolvePatientNames(ctx context.Context, records []domain.ScanRecord) {
	names := make(map[string]string)
	for i := range records {
		id := records[i].PatientID
		name, seen := names[id]
		if !seen {
			name = "Unknown"
			if p, err := s.patients.FindByID(ctx, id); err == nil {
				name = p.Name
			}
			names[id] = name
		}
		records[i].PatientName = name
	}
}

func (s *RecordService) invalidateStats(ctx context.Context, doctorID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, doctorID); err != nil {
		s.logger.Warn().Err(err).Msg("stats cache invalidation failed")
	}
}
