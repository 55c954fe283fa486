package postgres_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/pkg/postgres"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	require.NoError(t, postgres.HealthCheck(context.Background(), pingerFunc(func(context.Context) error { return nil })))

	err := postgres.HealthCheck(context.Background(), pingerFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return errors.New("connection refused")
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: health check")
}

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := postgres.NewPool(context.Background(), postgres.Config{URL: "::not a url::"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: parse config")
}

func TestRunMigrationsFS_Errors(t *testing.T) {
	fsys := fstest.MapFS{"migrations/001_init.up.sql": {Data: []byte("SELECT 1;")}}

	err := postgres.RunMigrationsFS("postgres://localhost/db", fsys, "missing", postgres.Up)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: open migrations")
}
