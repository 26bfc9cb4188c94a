package mongo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yogeshkhant77/Booksy/internal/domain/entity"
	"github.com/yogeshkhant77/Booksy/internal/platform/logger"
	"github.com/yogeshkhant77/Booksy/internal/repository"
)

// startMongo runs a disposable MongoDB container and returns a connected
// database handle.
func startMongo(t *testing.T) *mongodriver.Database {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "6.0",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })

	uri := fmt.Sprintf("mongodb://%s", resource.GetHostPort("27017/tcp"))

	var client *mongodriver.Client
	require.NoError(t, pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var errRetry error
		client, errRetry = mongodriver.Connect(ctx, options.Client().ApplyURI(uri))
		if errRetry != nil {
			return errRetry
		}
		return client.Ping(ctx, nil)
	}))
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return client.Database("booksy_test")
}

func TestShelfRepository_UniqueIndexIsAuthoritative(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := startMongo(t)
	repo := NewShelfRepository(db, logger.NoOp())
	ctx := context.Background()

	userID := primitive.NewObjectID()
	bookID := primitive.NewObjectID()

	require.NoError(t, repo.Add(ctx, &entity.ShelfEntry{UserID: userID, BookID: bookID}))

	// Second insert for the same (user, book) pair must hit the compound
	// unique index, not silently duplicate.
	err := repo.Add(ctx, &entity.ShelfEntry{UserID: userID, BookID: bookID})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	// Same book for another user is a different pair.
	require.NoError(t, repo.Add(ctx, &entity.ShelfEntry{UserID: primitive.NewObjectID(), BookID: bookID}))

	exists, err := repo.Exists(ctx, userID, bookID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Remove(ctx, userID, bookID))
	assert.ErrorIs(t, repo.Remove(ctx, userID, bookID), repository.ErrNotFound)
}

func TestUserRepository_UniqueEmailIndex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := startMongo(t)
	repo := NewUserRepository(db, logger.NoOp())
	ctx := context.Background()

	_, err := repo.Create(ctx, &entity.User{Name: "Alice", Email: "a@x.com", Password: "hash", Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &entity.User{Name: "Imposter", Email: "a@x.com", Password: "hash", Role: entity.RoleUser})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}
