package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"artha-pay/internal/models"
	"artha-pay/internal/storage"
)

func newTestStorage(mt *mtest.T) *MongoStorage {
	s := NewMongoStorageFromCollection(mt.Coll)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestMongoStorage_SaveAlert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		s := newTestStorage(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		alert := &models.RiskAlertNotification{AlertID: "a-1", UserID: "u-1", RiskPercent: 88}
		err := s.SaveAlert(context.Background(), alert)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), alert.ProcessedAt)
	})

	mt.Run("duplicate is ignored", func(mt *mtest.T) {
		s := newTestStorage(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: artha.risk_alerts index: alert_id_1",
		}))

		err := s.SaveAlert(context.Background(), &models.RiskAlertNotification{AlertID: "a-1"})

		assert.NoError(t, err)
	})

	mt.Run("other write error", func(mt *mtest.T) {
		s := newTestStorage(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		err := s.SaveAlert(context.Background(), &models.RiskAlertNotification{AlertID: "a-2"})

		assert.Error(t, err)
	})
}

func TestMongoStorage_GetAlertByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		s := newTestStorage(mt)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "alert_id", Value: "a-1"},
			{Key: "user_id", Value: "u-1"},
			{Key: "risk_percent", Value: 91},
			{Key: "level", Value: "HIGH"},
		}))

		alert, err := s.GetAlertByID(context.Background(), "a-1")

		require.NoError(t, err)
		assert.Equal(t, "u-1", alert.UserID)
		assert.Equal(t, 91, alert.RiskPercent)
		assert.Equal(t, "HIGH", alert.Level)
	})

	mt.Run("not found", func(mt *mtest.T) {
		s := newTestStorage(mt)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		alert, err := s.GetAlertByID(context.Background(), "missing")

		assert.Nil(t, alert)
		assert.ErrorIs(t, err, storage.ErrAlertNotFound)
	})
}

func TestMongoStorage_ListAlertsByUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("newest first", func(mt *mtest.T) {
		s := newTestStorage(mt)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "alert_id", Value: "a-2"}, {Key: "user_id", Value: "u-1"}},
				bson.D{{Key: "alert_id", Value: "a-1"}, {Key: "user_id", Value: "u-1"}},
			),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		alerts, err := s.ListAlertsByUser(context.Background(), "u-1", 10)

		require.NoError(t, err)
		require.Len(t, alerts, 2)
		assert.Equal(t, "a-2", alerts[0].AlertID)
	})
}

func TestMongoStorage_CloseWithoutClient(t *testing.T) {
	s := &MongoStorage{}
	assert.NoError(t, s.Close())
}
