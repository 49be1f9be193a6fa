// Package storagetest provides throwaway gateways for tests.
package storagetest

import (
	"context"
	"testing"

	"overcooked-restaurant/dish-svc/internal/storage"

	"github.com/stretchr/testify/require"
)

// NewSQLite opens a migrated in-memory SQLite gateway that is closed when
// the test finishes.
func NewSQLite(t testing.TB) *storage.Gateway {
	t.Helper()

	ctx := context.Background()
	gw, err := storage.Open(ctx, storage.Options{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	require.NoError(t, gw.Migrate(ctx))
	return gw
}
