package tonclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/wallet"

	"tonwallet/internal/keys"
)

var (
	ErrInvalidKey        = errors.New("invalid private key")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNetwork           = errors.New("chain network failure")
	ErrRejected          = errors.New("transaction rejected")
)

const transferComment = "Transfer from tonwallet"

// Client submits value transfers through TON lite servers. Each call opens
// its own scoped connection pool and closes it before returning; nothing is
// shared across calls.
type Client struct {
	configURL string
	version   wallet.Version
	timeout   time.Duration
	logger    *slog.Logger
}

func NewClient(configURL string, version wallet.Version, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		configURL: configURL,
		version:   version,
		timeout:   timeout,
		logger:    logger,
	}
}

// SubmitTransfer rebuilds the sender wallet from the supplied private key
// and submits a transfer. It returns once the message is accepted and the
// wallet transaction is visible; on-chain finality is the caller's problem,
// as is retrying (resubmitting a value transfer risks a duplicate spend, so
// nothing here retries).
//
// All input parsing happens before any connection is opened.
func (c *Client) SubmitTransfer(ctx context.Context, privateKeyHex, destination string, amount decimal.Decimal) (string, error) {
	key, err := keys.PrivateKeyFromHex(privateKeyHex)
	if err != nil {
		return "", ErrInvalidKey
	}

	dest, err := address.ParseAddr(destination)
	if err != nil {
		return "", fmt.Errorf("%w: invalid destination address", ErrRejected)
	}

	coins, err := tlb.FromTON(amount.String())
	if err != nil {
		return "", fmt.Errorf("%w: invalid amount", ErrRejected)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, c.configURL); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer pool.Stop()

	api := ton.NewAPIClient(pool)

	w, err := wallet.FromPrivateKey(api, key, c.version)
	if err != nil {
		return "", ErrInvalidKey
	}

	transfer, err := w.BuildTransfer(dest, coins, dest.IsBounceable(), transferComment)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRejected, err)
	}

	tx, _, err := w.SendWaitTransaction(ctx, transfer)
	if err != nil {
		return "", c.translateSendError(err)
	}

	hash := base64.StdEncoding.EncodeToString(tx.Hash)
	c.logger.Info("Transfer accepted",
		slog.String("destination", dest.String()),
		slog.String("amount", amount.String()),
		slog.String("tx_hash", hash),
	)
	return hash, nil
}

func (c *Client) translateSendError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "not enough") || strings.Contains(msg, "insufficient") {
		return fmt.Errorf("%w: %v", ErrInsufficientFunds, err)
	}
	if strings.Contains(msg, "connection") || strings.Contains(msg, "timeout") {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return fmt.Errorf("%w: %v", ErrRejected, err)
}
