//go:build integration

package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"house31/internal/adapters/store"
	"house31/internal/domain"
)

// setupMongoContainer starts a MongoDB container and returns its URI.
func setupMongoContainer(ctx context.Context, t *testing.T) string {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err, "failed to get host")
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err, "failed to get port")

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func TestMongoStore_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	uri := setupMongoContainer(ctx, t)
	s, err := store.ConnectMongo(ctx, uri, "house31_test", "")
	require.NoError(t, err)
	defer s.Close()

	t.Run("missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "facebook-sync.json")
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("upsert and read", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "facebook-sync.json", []byte(`{"posts":[]}`)))
		require.NoError(t, s.Put(ctx, "facebook-sync.json", []byte(`{"posts":[1]}`)))

		got, err := s.Get(ctx, "facebook-sync.json")

		require.NoError(t, err)
		assert.Equal(t, `{"posts":[1]}`, string(got))
	})
}
