package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lungscan/scan-api/internal/core/domain"
)

const collectionDoctors = "doctors"

// DoctorRepository persists doctor accounts. Doctor ids are
// application-generated UUID strings, stored as _id.
type DoctorRepository struct {
	col *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *DoctorRepository {
	return &DoctorRepository{col: db.Collection(collectionDoctors)}
}

type doctorDoc struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Name      string    `bson:"name"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := doctorDoc{
		ID:        doctor.ID,
		Email:     doctor.Email,
		Name:      doctor.Name,
		Password:  doctor.Password,
		CreatedAt: doctor.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *DoctorRepository) FindByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *DoctorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc doctorDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}

	return &domain.Doctor{
		ID:        doc.ID,
		Email:     doc.Email,
		Name:      doc.Name,
		Password:  doc.Password,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// EnsureIndexes creates the unique email index backing duplicate-signup
// rejection.
func (r *DoctorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
