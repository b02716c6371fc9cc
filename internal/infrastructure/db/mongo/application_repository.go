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

	"github.com/mercury-homes/lead-funnel/internal/core/domain"
)

const (
	collectionRenters   = "renter_applications"
	collectionLandlords = "landlord_applications"
)

type mongoRenter struct {
	ID             primitive.ObjectID `bson:"_id"`
	FullName       string             `bson:"full_name"`
	Phone          string             `bson:"phone"`
	Location       string             `bson:"location"`
	BudgetRange    string             `bson:"budget_range"`
	Requirements   *string            `bson:"requirements"`
	CreatedAt      time.Time          `bson:"created_at"`
	IdempotencyKey string             `bson:"idempotency_key,omitempty"`
}

func (d mongoRenter) toDomain() *domain.RenterApplication {
	return &domain.RenterApplication{
		ID:             d.ID.Hex(),
		FullName:       d.FullName,
		Phone:          d.Phone,
		Location:       d.Location,
		BudgetRange:    d.BudgetRange,
		Requirements:   d.Requirements,
		CreatedAt:      d.CreatedAt.UTC(),
		IdempotencyKey: d.IdempotencyKey,
	}
}

type mongoLandlord struct {
	ID             primitive.ObjectID `bson:"_id"`
	FullName       string             `bson:"full_name"`
	Phone          string             `bson:"phone"`
	PropertyType   string             `bson:"property_type"`
	Location       string             `bson:"location"`
	Message        *string            `bson:"message"`
	CreatedAt      time.Time          `bson:"created_at"`
	IdempotencyKey string             `bson:"idempotency_key,omitempty"`
}

func (d mongoLandlord) toDomain() *domain.LandlordApplication {
	return &domain.LandlordApplication{
		ID:             d.ID.Hex(),
		FullName:       d.FullName,
		Phone:          d.Phone,
		PropertyType:   d.PropertyType,
		Location:       d.Location,
		Message:        d.Message,
		CreatedAt:      d.CreatedAt.UTC(),
		IdempotencyKey: d.IdempotencyKey,
	}
}

// RenterRepository implements ports.RenterRepository using MongoDB.
type RenterRepository struct {
	col *mongo.Collection
}

func NewRenterRepository(db *mongo.Database) *RenterRepository {
	return &RenterRepository{col: db.Collection(collectionRenters)}
}

// Create inserts app and fills in its ID and CreatedAt.
func (r *RenterRepository) Create(ctx context.Context, app *domain.RenterApplication) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRenter{
		ID:             primitive.NewObjectID(),
		FullName:       app.FullName,
		Phone:          app.Phone,
		Location:       app.Location,
		BudgetRange:    app.BudgetRange,
		Requirements:   app.Requirements,
		CreatedAt:      now(),
		IdempotencyKey: app.IdempotencyKey,
	}
	if err := insert(ctx, r.col, doc); err != nil {
		return err
	}
	app.ID = doc.ID.Hex()
	app.CreatedAt = doc.CreatedAt
	return nil
}

// List returns every renter application, newest first.
func (r *RenterRepository) List(ctx context.Context) ([]*domain.RenterApplication, error) {
	docs, err := findNewestFirst[mongoRenter](ctx, r.col)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.RenterApplication, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *RenterRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.RenterApplication, error) {
	var d mongoRenter
	if err := findByKey(ctx, r.col, key, &d); err != nil {
		return nil, err
	}
	return d.toDomain(), nil
}

// EnsureIndexes creates the listing and idempotency indexes.
func (r *RenterRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.col)
}

// LandlordRepository implements ports.LandlordRepository using MongoDB.
type LandlordRepository struct {
	col *mongo.Collection
}

func NewLandlordRepository(db *mongo.Database) *LandlordRepository {
	return &LandlordRepository{col: db.Collection(collectionLandlords)}
}

// Create inserts app and fills in its ID and CreatedAt.
func (r *LandlordRepository) Create(ctx context.Context, app *domain.LandlordApplication) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLandlord{
		ID:             primitive.NewObjectID(),
		FullName:       app.FullName,
		Phone:          app.Phone,
		PropertyType:   app.PropertyType,
		Location:       app.Location,
		Message:        app.Message,
		CreatedAt:      now(),
		IdempotencyKey: app.IdempotencyKey,
	}
	if err := insert(ctx, r.col, doc); err != nil {
		return err
	}
	app.ID = doc.ID.Hex()
	app.CreatedAt = doc.CreatedAt
	return nil
}

// List returns every landlord application, newest first.
func (r *LandlordRepository) List(ctx context.Context) ([]*domain.LandlordApplication, error) {
	docs, err := findNewestFirst[mongoLandlord](ctx, r.col)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.LandlordApplication, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *LandlordRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.LandlordApplication, error) {
	var d mongoLandlord
	if err := findByKey(ctx, r.col, key, &d); err != nil {
		return nil, err
	}
	return d.toDomain(), nil
}

// EnsureIndexes creates the listing and idempotency indexes.
func (r *LandlordRepository) EnsureIndexes(ctx context.Context) error {
	return ensureIndexes(ctx, r.col)
}

// now truncates to the millisecond precision BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func insert(ctx context.Context, col *mongo.Collection, doc any) error {
	if _, err := col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateSubmission
		}
		return fmt.Errorf("insert %s: %w", col.Name(), err)
	}
	return nil
}

func findNewestFirst[T any](ctx context.Context, col *mongo.Collection) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	defer cur.Close(ctx)

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return docs, nil
}

func findByKey(ctx context.Context, col *mongo.Collection, key string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := col.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrApplicationNotFound
		}
		return err
	}
	return nil
}

func ensureIndexes(ctx context.Context, col *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := col.Indexes().CreateMany(ctx, indexes)
	return err
}
