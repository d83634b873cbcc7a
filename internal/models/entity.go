package models

import (
	"github.com/shopspring/decimal"
)

// Wallet is a row of the users ledger table. Balance is advisory: the chain
// is authoritative and the row is not reconciled after creation.
// PrivateKey never serializes to JSON.
type Wallet struct {
	WalletID   string          `db:"wallet_id" json:"wallet_id"`
	PublicKey  string          `db:"public_key" json:"public_key"`
	PrivateKey string          `db:"private_key" json:"-"`
	Balance    decimal.Decimal `db:"balance" json:"balance"`
}
