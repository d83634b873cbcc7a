package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tonwallet/internal/repository"
)

// SetupTestStore opens a wallet store over a SQLite file in a temp dir,
// applies the schema and returns the store and a teardown func.
func SetupTestStore(t *testing.T) (*repository.WalletSQLiteRepository, func()) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := repository.Open(filepath.Join(t.TempDir(), "users.db"))
	assert.NoError(t, err)

	repo := repository.NewWalletSQLiteRepository(db, logger, 5*time.Second)
	assert.NoError(t, repo.EnsureSchema(context.Background()))

	return repo, func() {
		db.Close()
	}
}
