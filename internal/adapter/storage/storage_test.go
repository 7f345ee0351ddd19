package storage_test

import (
	"context"
	"testing"

	"github.com/niksmo/swimstore/internal/adapter/storage"
	"github.com/stretchr/testify/require"
)

func TestNewSQLDB(t *testing.T) {
	t.Run("InvalidDSN", func(t *testing.T) {
		_, err := storage.NewSQLDB(context.Background(), "://not-a-dsn")
		require.Error(t, err)
		require.ErrorContains(t, err, "invalid dsn")
	})
}
