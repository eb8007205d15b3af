package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	vendorserrors "planora/internal/vendors/errors"
	"planora/pkg/config"
	mongotx "planora/pkg/db/mongo"
	"planora/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Vendor_profiles"
)

type mongoVendorProfileRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type VendorProfileRepository interface {
	Create(ctx context.Context, profile *model.VendorProfile) error
	FindByVendorID(ctx context.Context, vendorID string) (*model.VendorProfile, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.VendorProfile, error)
	Replace(ctx context.Context, profile *model.VendorProfile) error
	Count(ctx context.Context) (int64, error)

	FindMatching(ctx context.Context, criteria model.MatchCriteria) ([]*model.VendorProfile, error)

	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoVendorProfileRepository(cfg *config.Config) VendorProfileRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoVendorProfileRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context unchanged
// with a no-op cancel function, as we cannot wrap SessionContext without breaking
// transaction semantics.
func (r *mongoVendorProfileRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoVendorProfileRepository) Create(ctx context.Context, profile *model.VendorProfile) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to create vendor profile: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		profile.ID = oid.Hex()
	}

	return nil
}

func (r *mongoVendorProfileRepository) FindByVendorID(ctx context.Context, vendorID string) (*model.VendorProfile, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if vendorID == "" {
		return nil, fmt.Errorf("%w: empty", vendorserrors.ErrInvalidID)
	}

	var profile model.VendorProfile
	err := r.collection.FindOne(ctx, bson.M{"vendor_id": vendorID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", vendorserrors.ErrNotFound, vendorID)
		}
		return nil, fmt.Errorf("failed to find vendor profile: %w", err)
	}
	return &profile, nil
}

func (r *mongoVendorProfileRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.VendorProfile, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(offset).
		SetSort(bson.D{{Key: "business_name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*model.VendorProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode vendor profiles: %w", err)
	}

	return profiles, nil
}

// Replace overwrites the stored profile for profile.VendorID, touching
// updated_at. The caller is expected to have read the current document first,
// inside a transaction when the modification depends on what was read.
func (r *mongoVendorProfileRepository) Replace(ctx context.Context, profile *model.VendorProfile) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if profile.VendorID == "" {
		return fmt.Errorf("%w: empty", vendorserrors.ErrInvalidID)
	}

	profile.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	// _id is immutable; replace by vendor_id and let Mongo keep the
	// existing _id.
	stored := *profile
	stored.ID = ""

	result, err := r.collection.ReplaceOne(ctx, bson.M{"vendor_id": profile.VendorID}, &stored)
	if err != nil {
		return fmt.Errorf("failed to replace vendor profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", vendorserrors.ErrNotFound, profile.VendorID)
	}

	return nil
}

func (r *mongoVendorProfileRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count vendor profiles: %w", err)
	}
	return count, nil
}

// FindMatching returns candidate profiles for the matching engine: the
// requested category, an available slot on the requested calendar date, and
// at least one service within budget. Slot dates are stored at UTC midnight
// but matched over the whole day range to tolerate documents written with a
// time-of-day component.
func (r *mongoVendorProfileRepository) FindMatching(ctx context.Context, criteria model.MatchCriteria) ([]*model.VendorProfile, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	dayStart := model.DateOnly(criteria.Date)
	dayEnd := dayStart.Add(24 * time.Hour)

	filter := bson.M{
		"categories": criteria.Category,
		"availability.schedule": bson.M{
			"$elemMatch": bson.M{
				"date":   bson.M{"$gte": dayStart, "$lt": dayEnd},
				"status": model.SlotAvailable,
			},
		},
		"services.price": bson.M{"$lte": criteria.MaxBudget},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query matching vendors: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*model.VendorProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode matching vendors: %w", err)
	}

	return profiles, nil
}
