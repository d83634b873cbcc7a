package models

import (
	"github.com/shopspring/decimal"
)

type CreateWalletRequest struct {
	WalletID string `json:"wallet_id" binding:"required"`
}

type SendRequest struct {
	PrivateKey string          `json:"private_key" binding:"required"`
	SendTo     string          `json:"send_to" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}
