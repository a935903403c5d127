package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"artha-pay/internal/models"
	"artha-pay/internal/storage"
)

type MongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoStorage(ctx context.Context, uri, database, collection string, timeout time.Duration) (*MongoStorage, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(ctxPing, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	coll := client.Database(database).Collection(collection)

	ctxIndex, cancelIndex := context.WithTimeout(ctx, timeout)
	defer cancelIndex()

	if err := ensureIndexes(ctxIndex, coll); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	s := NewMongoStorageFromCollection(coll)
	s.client = client
	return s, nil
}

// NewMongoStorageFromCollection не владеет клиентом: Close ничего не делает.
func NewMongoStorageFromCollection(coll *mongo.Collection) *MongoStorage {
	return &MongoStorage{collection: coll, now: time.Now}
}

func ensureIndexes(ctx context.Context, coll *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "alert_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// SaveAlert treats a duplicate alert_id as success: Kafka may redeliver.
func (s *MongoStorage) SaveAlert(ctx context.Context, alert *models.RiskAlertNotification) error {
	alert.ProcessedAt = s.now().UTC()

	_, err := s.collection.InsertOne(ctx, alert)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to save alert: %w", err)
	}

	return nil
}

func (s *MongoStorage) GetAlertByID(ctx context.Context, alertID string) (*models.RiskAlertNotification, error) {
	var alert models.RiskAlertNotification

	err := s.collection.FindOne(ctx, bson.M{"alert_id": alertID}).Decode(&alert)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	return &alert, nil
}

// ListAlertsByUser returns the newest alerts first.
func (s *MongoStorage) ListAlertsByUser(ctx context.Context, userID string, limit int64) ([]*models.RiskAlertNotification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer cursor.Close(ctx)

	alerts := make([]*models.RiskAlertNotification, 0)
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}

	return alerts, nil
}

func (s *MongoStorage) Close() error {
	if s.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.client.Disconnect(ctx)
}
