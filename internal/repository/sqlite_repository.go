package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"tonwallet/internal/models"
)

var (
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrWalletAlreadyExist = errors.New("wallet already exists")
	ErrStorage            = errors.New("storage failure")
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	wallet_id   TEXT PRIMARY KEY,
	public_key  TEXT NOT NULL,
	private_key TEXT NOT NULL,
	balance     TEXT NOT NULL
)`

// Open opens (creating if absent) the file-backed SQLite database.
func Open(path string) (*sql.DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

type WalletSQLiteRepository struct {
	db      *sql.DB
	logger  *slog.Logger
	timeout time.Duration
}

func NewWalletSQLiteRepository(db *sql.DB, logger *slog.Logger, timeout time.Duration) *WalletSQLiteRepository {
	return &WalletSQLiteRepository{
		db:      db,
		logger:  logger,
		timeout: timeout,
	}
}

func (r *WalletSQLiteRepository) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// EnsureSchema creates the users table if absent. Idempotent, called on
// every process start.
func (r *WalletSQLiteRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		r.logger.Error("Failed to ensure schema", slog.Any("err", err))
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Insert adds a new wallet row. A primary-key collision becomes
// ErrWalletAlreadyExist; the existing row is never overwritten.
func (r *WalletSQLiteRepository) Insert(ctx context.Context, wallet *models.Wallet) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (wallet_id, public_key, private_key, balance) VALUES (?, ?, ?, ?)`,
		wallet.WalletID, wallet.PublicKey, wallet.PrivateKey, wallet.Balance.String(),
	)
	if err != nil {
		var serr *sqlite.Error
		if errors.As(err, &serr) {
			switch serr.Code() {
			case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
				return ErrWalletAlreadyExist
			}
		}
		r.logger.Error("Failed to insert wallet",
			slog.String("wallet_id", wallet.WalletID),
			slog.Any("err", err),
		)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

// Get returns the wallet row or ErrWalletNotFound.
func (r *WalletSQLiteRepository) Get(ctx context.Context, walletID string) (*models.Wallet, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var (
		wallet  models.Wallet
		balance string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT wallet_id, public_key, private_key, balance FROM users WHERE wallet_id = ?`,
		walletID,
	).Scan(&wallet.WalletID, &wallet.PublicKey, &wallet.PrivateKey, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get wallet",
			slog.String("wallet_id", walletID),
			slog.Any("err", err),
		)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	wallet.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		r.logger.Error("Corrupt balance value",
			slog.String("wallet_id", walletID),
			slog.Any("err", err),
		)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &wallet, nil
}
