package docstore

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type mongoStore struct {
	db     *mongo.Database
	logger *zap.Logger
}

// ConnectMongo dials uri and verifies the primary is reachable.
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	connCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect failed")
	}
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping failed")
	}
	return client, nil
}

// NewMongo returns a Store with one mongo collection per document path.
// "User/42/Item" becomes the collection "User.42.Item"; the document id is stored in _id.
func NewMongo(db *mongo.Database, logger *zap.Logger) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &mongoStore{db: db, logger: logger}
}

func collectionName(path string) string {
	return strings.ReplaceAll(path, "/", ".")
}

func (s *mongoStore) List(ctx context.Context, collection string) ([]Document, error) {
	cursor, err := s.db.Collection(collectionName(collection)).Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		s.logger.Error("docstore: mongo find", zap.String("collection", collection), zap.Error(err))
		return nil, errors.Wrapf(err, "find %s", collection)
	}
	defer closeCursor(ctx, cursor)

	var result []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, errors.Wrapf(err, "decode %s", collection)
		}
		id, _ := raw["_id"].(string)
		delete(raw, "_id")
		result = append(result, Document{ID: id, Fields: map[string]interface{}(raw)})
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate %s", collection)
	}
	return result, nil
}

func (s *mongoStore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	doc["_id"] = id

	_, err := s.db.Collection(collectionName(collection)).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: id}}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		s.logger.Error("docstore: mongo replace", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return errors.Wrapf(err, "replace %s/%s", collection, id)
	}
	return nil
}

func (s *mongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collectionName(collection)).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		s.logger.Error("docstore: mongo delete", zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return errors.Wrapf(err, "delete %s/%s", collection, id)
	}
	return nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func closeCursor(ctx context.Context, cursor *mongo.Cursor) {
	_ = cursor.Close(ctx)
}
