package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tonwallet/internal/models"
	"tonwallet/internal/repository"
	"tonwallet/internal/service"
)

//go:generate mockgen -source=http_handlers.go -destination=../../test/mock_wallet_service.go -package=test WalletService

type WalletService interface {
	CreateWallet(ctx context.Context, walletID string) (*models.Wallet, string, error)
	Send(ctx context.Context, privateKey, sendTo string, amount decimal.Decimal) (string, error)
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)
}

type WalletHTTPHandler struct {
	service WalletService
}

func NewWalletHTTPHandler(service WalletService) *WalletHTTPHandler {
	return &WalletHTTPHandler{service: service}
}

func (h *WalletHTTPHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/create-wallet", h.HandleCreateWallet)
	r.POST("/send", h.HandleSend)
	r.GET("/wallets/:wallet_id", h.HandleGetWallet)
}

func (h *WalletHTTPHandler) HandleCreateWallet(c *gin.Context) {
	var req models.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: wallet_id is required"})
		return
	}

	wallet, address, err := h.service.CreateWallet(c.Request.Context(), req.WalletID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "wallet created",
		"wallet_id": wallet.WalletID,
		"address":   address,
	})
}

// HandleSend accepts the sender's raw private key in the request body. That
// is the inherited trust model; a key-reference flow (send by wallet_id) is
// an open redesign question because it moves the custody boundary.
// Binding errors never echo the body back.
func (h *WalletHTTPHandler) HandleSend(c *gin.Context) {
	var req models.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: private_key, send_to and amount are required"})
		return
	}

	txHash, err := h.service.Send(c.Request.Context(), req.PrivateKey, req.SendTo, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "transfer accepted",
		"tx_hash": txHash,
	})
}

func (h *WalletHTTPHandler) HandleGetWallet(c *gin.Context) {
	wallet, err := h.service.GetWallet(c.Request.Context(), c.Param("wallet_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrWalletNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet_id":  wallet.WalletID,
		"public_key": wallet.PublicKey,
		"balance":    wallet.Balance.String(),
	})
}
