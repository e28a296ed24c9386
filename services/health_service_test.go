package services

import (
	"context"
	"testing"
	"time"

	"github.com/feedbackhq/feedback-backend/types"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// unreachableMongoClient returns a client whose pings fail fast.
func unreachableMongoClient(t *testing.T) *mongo.Client {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(100*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client
}

func TestCheckHealthReportsDatabaseDown(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	redisMock.ExpectPing().SetVal("PONG")

	svc := NewHealthService(unreachableMongoClient(t), redisClient, "test")
	health := svc.CheckHealth(context.Background())

	assert.Equal(t, types.HealthStatusDown, health.Status)
	assert.Equal(t, types.HealthStatusDown, health.Components["database"].Status)
	assert.Equal(t, types.HealthStatusUp, health.Components["redis"].Status)
	assert.Equal(t, "test", health.Version)
}

func TestCheckHealthRedisOutageOnlyDegrades(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	redisMock.ExpectPing().SetErr(context.DeadlineExceeded)

	svc := NewHealthService(unreachableMongoClient(t), redisClient, "test")
	health := svc.CheckHealth(context.Background())

	// Mongo is also down here, so the aggregate stays DOWN; the redis
	// component itself is reported independently.
	assert.Equal(t, types.HealthStatusDown, health.Status)
	assert.Equal(t, types.HealthStatusDown, health.Components["redis"].Status)
}
