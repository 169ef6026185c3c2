package docstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"applestore-clone/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgres_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()
	pool := startPostgres(ctx, t)

	require.NoError(t, migrate.Apply(ctx, pool))
	_, err := pool.Exec(ctx, `TRUNCATE documents`)
	require.NoError(t, err)

	exerciseStore(ctx, t, NewPostgres(pool, nil))
}

func TestMongo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := ConnectMongo(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), 10*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	exerciseStore(ctx, t, NewMongo(client.Database("storefront_test"), nil))
}

func exerciseStore(ctx context.Context, t *testing.T, s Store) {
	t.Helper()
	require.NoError(t, s.Ping(ctx))

	require.NoError(t, s.Set(ctx, "Item", "i2", map[string]interface{}{"name": "Mac", "price": 2000000}))
	require.NoError(t, s.Set(ctx, "Item", "i1", map[string]interface{}{"name": "iPad", "price": 900000, "isAvailable": false}))
	require.NoError(t, s.Set(ctx, Path("User", "u1", "Item"), "i1", map[string]interface{}{"name": "owned"}))

	docs, err := s.List(ctx, "Item")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "i1", docs[0].ID)
	require.Equal(t, "iPad", docs[0].Fields["name"])
	require.Equal(t, false, docs[0].Fields["isAvailable"])

	require.NoError(t, s.Set(ctx, "Item", "i1", map[string]interface{}{"name": "iPad Pro"}))
	docs, err = s.List(ctx, "Item")
	require.NoError(t, err)
	require.Equal(t, "iPad Pro", docs[0].Fields["name"])
	_, hasPrice := docs[0].Fields["price"]
	require.False(t, hasPrice, "set must replace the whole document")

	require.NoError(t, s.Delete(ctx, Path("User", "u1", "Item"), "i1"))
	require.NoError(t, s.Delete(ctx, Path("User", "u1", "Item"), "i1"))

	docs, err = s.List(ctx, "Item")
	require.NoError(t, err)
	require.Len(t, docs, 2, "owner-scoped delete must not touch the flat collection")

	scoped, err := s.List(ctx, Path("User", "u1", "Item"))
	require.NoError(t, err)
	require.Empty(t, scoped)
}

func startPostgres(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "storefront",
				"POSTGRES_PASSWORD": "storefront",
				"POSTGRES_DB":       "storefront_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://storefront:storefront@%s:%s/storefront_test?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}
