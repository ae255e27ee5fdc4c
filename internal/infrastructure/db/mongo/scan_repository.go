package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lungscan/scan-api/internal/core/domain"
	"github.com/lungscan/scan-api/internal/core/ports"
)

const collectionScans = "scans"

// ScanRepository persists scan records. Record ids are store-generated
// ObjectIDs, surfaced to callers as hex strings.
type ScanRepository struct {
	col *mongo.Collection
}

func NewScanRepository(db *mongo.Database) *ScanRepository {
	return &ScanRepository{col: db.Collection(collectionScans)}
}

type scanDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	PatientID      string             `bson:"patient_id"`
	DoctorID       string             `bson:"doctor_id"`
	Timestamp      time.Time          `bson:"timestamp"`
	ImagePath      string             `bson:"image_path"`
	Diagnosis      string             `bson:"diagnosis"`
	Confidence     float64            `bson:"confidence"`
	Probabilities  map[string]float64 `bson:"probabilities"`
	MedicalHistory string             `bson:"medical_history,omitempty"`
	DoctorNotes    string             `bson:"doctor_notes,omitempty"`
}

func toDomain(d scanDoc) domain.ScanRecord {
	return domain.ScanRecord{
		ID:             d.ID.Hex(),
		PatientID:      d.PatientID,
		DoctorID:       d.DoctorID,
		Timestamp:      d.Timestamp,
		ImagePath:      d.ImagePath,
		Diagnosis:      d.Diagnosis,
		Confidence:     d.Confidence,
		Probabilities:  d.Probabilities,
		MedicalHistory: d.MedicalHistory,
		DoctorNotes:    d.DoctorNotes,
	}
}

// filterQuery translates a ScanFilter into a Mongo filter document.
func filterQuery(f ports.ScanFilter) bson.M {
	q := bson.M{"doctor_id": f.DoctorID}
	if f.PatientID != "" {
		q["patient_id"] = f.PatientID
	}
	if f.Diagnosis != "" {
		q["diagnosis"] = f.Diagnosis
	}
	if f.MinConfidence > 0 {
		q["confidence"] = bson.M{"$gt": f.MinConfidence}
	}
	ts := bson.M{}
	if !f.From.IsZero() {
		ts["$gte"] = f.From
	}
	if !f.To.IsZero() {
		ts["$lt"] = f.To
	}
	if len(ts) > 0 {
		q["timestamp"] = ts
	}
	return q
}

func (r *ScanRepository) Insert(ctx context.Context, record *domain.ScanRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := scanDoc{
		PatientID:      record.PatientID,
		DoctorID:       record.DoctorID,
		Timestamp:      record.Timestamp,
		ImagePath:      record.ImagePath,
		Diagnosis:      record.Diagnosis,
		Confidence:     record.Confidence,
		Probabilities:  record.Probabilities,
		MedicalHistory: record.MedicalHistory,
		DoctorNotes:    record.DoctorNotes,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert scan: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert scan: unexpected id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

func (r *ScanRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("delete scan: %w", err)
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *ScanRepository) List(ctx context.Context, filter ports.ScanFilter) ([]domain.ScanRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filterQuery(filter),
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer cur.Close(ctx)

	var docs []scanDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode scans: %w", err)
	}

	records := make([]domain.ScanRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, toDomain(d))
	}
	return records, nil
}

func (r *ScanRepository) Count(ctx context.Context, filter ports.ScanFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filterQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("count scans: %w", err)
	}
	return n, nil
}

func (r *ScanRepository) DistinctPatients(ctx context.Context, filter ports.ScanFilter) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.col.Distinct(ctx, "patient_id", filterQuery(filter))
	if err != nil {
		return nil, fmt.Errorf("distinct patients: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *ScanRepository) FindLatest(ctx context.Context, doctorID, patientID string) (*domain.ScanRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc scanDoc
	err := r.col.FindOne(ctx,
		bson.M{"doctor_id": doctorID, "patient_id": patientID},
		options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}}),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest scan: %w", err)
	}
	record := toDomain(doc)
	return &record, nil
}

// EnsureIndexes creates the scoping and time-window indexes used by history
// and stats queries.
func (r *ScanRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "patient_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
