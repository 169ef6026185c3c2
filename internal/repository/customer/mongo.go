package customer

import (
	"context"
	"strings"
	"time"

	"applestore-clone/internal/domain"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CollectionName is the mongo collection customers are stored in.
const CollectionName = "customers"

type customerDocument struct {
	ID          string    `bson:"_id"`
	Provider    string    `bson:"provider"`
	Subject     string    `bson:"subject"`
	Email       string    `bson:"email"`
	DisplayName string    `bson:"display_name"`
	CreatedAt   time.Time `bson:"created_at"`
	LastSignIn  time.Time `bson:"last_sign_in"`
}

func (d customerDocument) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:          d.ID,
		Provider:    d.Provider,
		Subject:     d.Subject,
		Email:       d.Email,
		DisplayName: d.DisplayName,
		CreatedAt:   d.CreatedAt,
		LastSignIn:  d.LastSignIn,
	}
}

type mongoRepo struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongo returns a Repository backed by the customers collection of db.
func NewMongo(db *mongo.Database, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &mongoRepo{coll: db.Collection(CollectionName), logger: logger}
}

func (r *mongoRepo) Upsert(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	now := time.Now().UTC()
	filter := bson.D{{Key: "provider", Value: c.Provider}, {Key: "subject", Value: c.Subject}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "email", Value: strings.ToLower(c.Email)},
			{Key: "display_name", Value: c.DisplayName},
			{Key: "last_sign_in", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "_id", Value: uuid.NewString()},
			{Key: "created_at", Value: now},
		}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc customerDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		r.logger.Error("customer repo: mongo upsert", zap.String("provider", c.Provider), zap.Error(err))
		return nil, errors.Wrap(err, "upsert customer")
	}
	r.logger.Info("customer repo: upserted", zap.String("provider", doc.Provider), zap.String("id", doc.ID))
	return doc.toDomain(), nil
}

func (r *mongoRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var doc customerDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrapf(err, "find customer %s", id)
	}
	return doc.toDomain(), nil
}
