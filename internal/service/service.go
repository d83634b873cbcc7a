package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"tonwallet/internal/keys"
	"tonwallet/internal/models"
	"tonwallet/internal/repository"
)

//go:generate mockgen -source=service.go -destination=../../test/mock_wallet_deps.go -package=test

var ErrValidation = errors.New("invalid request")

type KeyGenerator interface {
	Generate() (*keys.Account, error)
}

type WalletRepository interface {
	Insert(ctx context.Context, wallet *models.Wallet) error
	Get(ctx context.Context, walletID string) (*models.Wallet, error)
}

type SecretExporter interface {
	Export(account *keys.Account) (string, error)
}

type TransferExecutor interface {
	SubmitTransfer(ctx context.Context, privateKeyHex, destination string, amount decimal.Decimal) (string, error)
}

// WalletService orchestrates wallet creation and transfer submission.
// Stateless across calls; the store is the only shared resource.
type WalletService struct {
	keys     KeyGenerator
	repo     WalletRepository
	backup   SecretExporter
	executor TransferExecutor
	logger   *slog.Logger
}

func NewWalletService(keyGen KeyGenerator, repo WalletRepository, backup SecretExporter, executor TransferExecutor, logger *slog.Logger) *WalletService {
	return &WalletService{
		keys:     keyGen,
		repo:     repo,
		backup:   backup,
		executor: executor,
		logger:   logger,
	}
}

// CreateWallet generates a keypair, writes the secret backup, then inserts
// the ledger row with a zero balance. A failing backup write is fatal: the
// file is the only mnemonic copy. If the insert hits an existing wallet_id
// the already-written backup file is left on disk on purpose; deleting a
// fresh secret backup automatically is riskier than an orphan file.
func (s *WalletService) CreateWallet(ctx context.Context, walletID string) (*models.Wallet, string, error) {
	if strings.TrimSpace(walletID) == "" {
		return nil, "", fmt.Errorf("%w: wallet_id must not be empty", ErrValidation)
	}

	account, err := s.keys.Generate()
	if err != nil {
		s.logger.Error("Create failed: key generation",
			slog.String("wallet_id", walletID),
			slog.Any("err", err),
		)
		return nil, "", err
	}

	path, err := s.backup.Export(account)
	if err != nil {
		s.logger.Error("Create failed: secret backup",
			slog.String("wallet_id", walletID),
			slog.Any("err", err),
		)
		return nil, "", err
	}

	wallet := &models.Wallet{
		WalletID:   walletID,
		PublicKey:  account.PublicKey,
		PrivateKey: account.PrivateKey,
		Balance:    decimal.Zero,
	}
	if err := s.repo.Insert(ctx, wallet); err != nil {
		if errors.Is(err, repository.ErrWalletAlreadyExist) {
			s.logger.Warn("Create failed: wallet already exists",
				slog.String("wallet_id", walletID),
			)
			return nil, "", err
		}
		s.logger.Error("Create failed: store insert",
			slog.String("wallet_id", walletID),
			slog.Any("err", err),
		)
		return nil, "", err
	}

	s.logger.Info("Wallet created",
		slog.String("wallet_id", walletID),
		slog.String("address", account.Address),
		slog.String("backup_file", path),
	)
	return wallet, account.Address, nil
}

// Send validates the request and delegates to the transfer executor. The
// supplied key is ephemeral: passed through, never stored, never logged.
func (s *WalletService) Send(ctx context.Context, privateKey, sendTo string, amount decimal.Decimal) (string, error) {
	if strings.TrimSpace(privateKey) == "" {
		return "", fmt.Errorf("%w: private_key must not be empty", ErrValidation)
	}
	if strings.TrimSpace(sendTo) == "" {
		return "", fmt.Errorf("%w: send_to must not be empty", ErrValidation)
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return "", fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}

	txHash, err := s.executor.SubmitTransfer(ctx, privateKey, sendTo, amount)
	if err != nil {
		s.logger.Error("Send failed",
			slog.String("send_to", sendTo),
			slog.String("amount", amount.String()),
			slog.Any("err", err),
		)
		return "", err
	}

	s.logger.Info("Send accepted",
		slog.String("send_to", sendTo),
		slog.String("amount", amount.String()),
		slog.String("tx_hash", txHash),
	)
	return txHash, nil
}

// GetWallet returns the advisory ledger row.
func (s *WalletService) GetWallet(ctx context.Context, walletID string) (*models.Wallet, error) {
	if strings.TrimSpace(walletID) == "" {
		return nil, fmt.Errorf("%w: wallet_id must not be empty", ErrValidation)
	}
	wallet, err := s.repo.Get(ctx, walletID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			return nil, err
		}
		s.logger.Error("GetWallet failed",
			slog.String("wallet_id", walletID),
			slog.Any("err", err),
		)
		return nil, err
	}
	return wallet, nil
}
