package repository_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tonwallet/internal/models"
	"tonwallet/internal/repository"
	"tonwallet/internal/testutil"
)

func newWallet(id string) *models.Wallet {
	return &models.Wallet{
		WalletID:   id,
		PublicKey:  "aa11",
		PrivateKey: "bb22",
		Balance:    decimal.Zero,
	}
}

func TestInsertAndGet(t *testing.T) {
	repo, teardown := testutil.SetupTestStore(t)
	defer teardown()

	err := repo.Insert(context.Background(), newWallet("alice"))
	assert.NoError(t, err)

	got, err := repo.Get(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, "alice", got.WalletID)
	assert.Equal(t, "aa11", got.PublicKey)
	assert.Equal(t, "bb22", got.PrivateKey)
	assert.True(t, got.Balance.Equal(decimal.Zero))
}

func TestInsert_Duplicate(t *testing.T) {
	repo, teardown := testutil.SetupTestStore(t)
	defer teardown()

	first := newWallet("alice")
	assert.NoError(t, repo.Insert(context.Background(), first))

	second := newWallet("alice")
	second.PublicKey = "cc33"
	second.PrivateKey = "dd44"
	err := repo.Insert(context.Background(), second)
	assert.ErrorIs(t, err, repository.ErrWalletAlreadyExist)

	// first row untouched
	got, err := repo.Get(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, "aa11", got.PublicKey)
}

func TestGet_NotFound(t *testing.T) {
	repo, teardown := testutil.SetupTestStore(t)
	defer teardown()

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrWalletNotFound)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	repo, teardown := testutil.SetupTestStore(t)
	defer teardown()

	// testutil already ran it once
	assert.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, repo.EnsureSchema(context.Background()))

	assert.NoError(t, repo.Insert(context.Background(), newWallet("bob")))
	assert.NoError(t, repo.EnsureSchema(context.Background()))

	// existing data survives
	_, err := repo.Get(context.Background(), "bob")
	assert.NoError(t, err)
}

func TestTimeout_BecomesStorageError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := repository.Open(filepath.Join(t.TempDir(), "users.db"))
	assert.NoError(t, err)
	defer db.Close()

	// schema applied with a sane timeout, then operations run against a
	// repo whose per-call deadline always expires
	setup := repository.NewWalletSQLiteRepository(db, logger, 5*time.Second)
	assert.NoError(t, setup.EnsureSchema(context.Background()))
	assert.NoError(t, setup.Insert(context.Background(), newWallet("alice")))

	expired := repository.NewWalletSQLiteRepository(db, logger, time.Nanosecond)

	err = expired.Insert(context.Background(), newWallet("bob"))
	assert.ErrorIs(t, err, repository.ErrStorage)

	_, err = expired.Get(context.Background(), "alice")
	assert.ErrorIs(t, err, repository.ErrStorage)
}

func TestInsert_DistinctIDs(t *testing.T) {
	repo, teardown := testutil.SetupTestStore(t)
	defer teardown()

	assert.NoError(t, repo.Insert(context.Background(), newWallet("alice")))
	assert.NoError(t, repo.Insert(context.Background(), newWallet("bob")))

	a, err := repo.Get(context.Background(), "alice")
	assert.NoError(t, err)
	b, err := repo.Get(context.Background(), "bob")
	assert.NoError(t, err)
	assert.NotEqual(t, a.WalletID, b.WalletID)
}
