package service_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/xssnick/tonutils-go/ton/wallet"

	"tonwallet/internal/backup"
	"tonwallet/internal/keys"
	"tonwallet/internal/repository"
	"tonwallet/internal/service"
	"tonwallet/internal/testutil"
	"tonwallet/internal/tonclient"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// stubExecutor stands in for the chain gateway.
type stubExecutor struct {
	calls  int
	txHash string
	err    error
}

func (s *stubExecutor) SubmitTransfer(ctx context.Context, privateKeyHex, destination string, amount decimal.Decimal) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.txHash, nil
}

func setupService(t *testing.T) (*service.WalletService, *repository.WalletSQLiteRepository, *stubExecutor, string, func()) {
	t.Helper()
	repo, teardown := testutil.SetupTestStore(t)
	walletsDir := filepath.Join(t.TempDir(), "wallets")
	executor := &stubExecutor{txHash: "dGVzdGhhc2g="}
	svc := service.NewWalletService(
		keys.NewGenerator(wallet.V3R1),
		repo,
		backup.NewFileExporter(walletsDir),
		executor,
		testLogger,
	)
	return svc, repo, executor, walletsDir, teardown
}

func TestCreateWallet(t *testing.T) {
	svc, repo, _, walletsDir, teardown := setupService(t)
	defer teardown()

	created, address, err := svc.CreateWallet(context.Background(), "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, address)
	assert.NotEmpty(t, created.PublicKey)
	assert.NotEmpty(t, created.PrivateKey)
	assert.NotEqual(t, created.PublicKey, created.PrivateKey)
	assert.True(t, created.Balance.Equal(decimal.Zero))

	// ledger row persisted with zero balance
	stored, err := repo.Get(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, created.PublicKey, stored.PublicKey)
	assert.True(t, stored.Balance.Equal(decimal.Zero))

	// backup file named after the address holds the same material
	data, err := os.ReadFile(filepath.Join(walletsDir, address+".txt"))
	assert.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Address: "+address)
	assert.Contains(t, content, "Public Key: "+created.PublicKey)
	assert.Contains(t, content, "Private Key: "+created.PrivateKey)
	assert.Contains(t, content, "Mnemonic: ")
	mnemonicLine := content[strings.Index(content, "Mnemonic: ")+len("Mnemonic: "):]
	assert.Len(t, strings.Fields(strings.TrimSpace(mnemonicLine)), 24)
}

func TestCreateWallet_Duplicate(t *testing.T) {
	svc, repo, _, walletsDir, teardown := setupService(t)
	defer teardown()

	first, _, err := svc.CreateWallet(context.Background(), "alice")
	assert.NoError(t, err)

	_, _, err = svc.CreateWallet(context.Background(), "alice")
	assert.ErrorIs(t, err, repository.ErrWalletAlreadyExist)

	// the first row is intact
	stored, err := repo.Get(context.Background(), "alice")
	assert.NoError(t, err)
	assert.Equal(t, first.PublicKey, stored.PublicKey)

	// the second call still wrote its backup file: one per generated
	// address, deliberately not rolled back
	entries, err := os.ReadDir(walletsDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCreateWallet_EmptyID(t *testing.T) {
	svc, _, _, walletsDir, teardown := setupService(t)
	defer teardown()

	_, _, err := svc.CreateWallet(context.Background(), "  ")
	assert.ErrorIs(t, err, service.ErrValidation)

	// fail fast: no keys generated, no backup written
	_, statErr := os.Stat(walletsDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSend(t *testing.T) {
	svc, _, executor, _, teardown := setupService(t)
	defer teardown()

	hash, err := svc.Send(context.Background(), "aa", "EQdest", decimal.NewFromFloat(1.5))
	assert.NoError(t, err)
	assert.Equal(t, "dGVzdGhhc2g=", hash)
	assert.Equal(t, 1, executor.calls)
}

func TestSend_Validation(t *testing.T) {
	svc, _, executor, _, teardown := setupService(t)
	defer teardown()

	_, err := svc.Send(context.Background(), "", "EQdest", decimal.NewFromFloat(1))
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Send(context.Background(), "aa", "", decimal.NewFromFloat(1))
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Send(context.Background(), "aa", "EQdest", decimal.Zero)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Send(context.Background(), "aa", "EQdest", decimal.NewFromFloat(-2))
	assert.ErrorIs(t, err, service.ErrValidation)

	// executor never reached
	assert.Equal(t, 0, executor.calls)
}

func TestSend_ExecutorFailure(t *testing.T) {
	svc, repo, executor, _, teardown := setupService(t)
	defer teardown()
	executor.err = tonclient.ErrNetwork

	_, err := svc.Send(context.Background(), "aa", "EQdest", decimal.NewFromFloat(1.5))
	assert.ErrorIs(t, err, tonclient.ErrNetwork)

	// the store is untouched by send, success or failure
	_, err = repo.Get(context.Background(), "anything")
	assert.ErrorIs(t, err, repository.ErrWalletNotFound)
}

func TestGetWallet(t *testing.T) {
	svc, _, _, _, teardown := setupService(t)
	defer teardown()

	_, err := svc.GetWallet(context.Background(), "nobody")
	assert.ErrorIs(t, err, repository.ErrWalletNotFound)

	created, _, err := svc.CreateWallet(context.Background(), "bob")
	assert.NoError(t, err)

	got, err := svc.GetWallet(context.Background(), "bob")
	assert.NoError(t, err)
	assert.Equal(t, created.PublicKey, got.PublicKey)
}
