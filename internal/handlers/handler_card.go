package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/internal/dto"
	"github.com/cardledger/card_ledger_app/internal/middleware"
)

// cardHandler handles HTTP requests against the card ledger.
type cardHandler struct {
	cardService portssvc.CardSvcFacade
}

// newCardHandler creates a new cardHandler.
func newCardHandler(cs portssvc.CardSvcFacade) *cardHandler {
	return &cardHandler{
		cardService: cs,
	}
}

// registerCardRoutes registers routes related to the card ledger.
func registerCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade) {
	h := newCardHandler(cardService)

	card := rg.Group("/card")
	{
		card.POST("/issue", h.issueCard)
		card.POST("/activate", h.activateCard)
		card.POST("/purchases", h.processPurchase)
		card.POST("/close-bill", h.closeBill)
		card.POST("/payments", h.processPayment)
		card.GET("", h.getCard)
		card.GET("/balance", h.getBalance)
		card.GET("/journal", h.getJournal)
		card.GET("/accounts", h.getAccounts)
	}
}

// issueCard godoc
// @Summary Issue the card
// @Description Issues the card with its permanent credit limit
// @Tags card
// @Accept  json
// @Produce  json
// @Param   card body dto.IssueCardRequest true "Issuance details"
// @Success 201 {object} dto.CardResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Card already issued"
// @Router /card/issue [post]
func (h *cardHandler) issueCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.IssueCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IssueCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	status, err := h.cardService.IssueCard(c.Request.Context(), req.MaxLimit)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	logger.Info("Card issued", slog.String("status", string(status)))
	c.JSON(http.StatusCreated, dto.ToCardResponse(h.cardService.GetCard(c.Request.Context())))
}

// activateCard godoc
// @Summary Activate the card
// @Description Moves an issued card to the Active state
// @Tags card
// @Produce  json
// @Success 200 {object} dto.CardResponse
// @Failure 409 {object} map[string]string "Card not issued"
// @Router /card/activate [post]
func (h *cardHandler) activateCard(c *gin.Context) {
	_, err := h.cardService.ActivateCard(c.Request.Context())
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCardResponse(h.cardService.GetCard(c.Request.Context())))
}

// processPurchase godoc
// @Summary Book a purchase
// @Description Books a purchase against the available limit
// @Tags card
// @Accept  json
// @Produce  json
// @Param   purchase body dto.PurchaseRequest true "Purchase details"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Card not issued, inactive, or doubled transaction"
// @Failure 422 {object} map[string]string "Insufficient limit"
// @Router /card/purchases [post]
func (h *cardHandler) processPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.cardService.ProcessPurchase(c.Request.Context(), req.Merchant, req.Amount); err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: h.cardService.GetBalance(c.Request.Context())})
}

// closeBill godoc
// @Summary Close the current bill
// @Description Moves the settled balance into the receivable account
// @Tags card
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Failure 409 {object} map[string]string "Card not issued"
// @Router /card/close-bill [post]
func (h *cardHandler) closeBill(c *gin.Context) {
	if err := h.cardService.CloseBill(c.Request.Context()); err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: h.cardService.GetBalance(c.Request.Context())})
}

// processPayment godoc
// @Summary Record a payment
// @Description Restores spendable limit and books the bank-side cash movement
// @Tags card
// @Accept  json
// @Produce  json
// @Param   payment body dto.PaymentRequest true "Payment details"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Card not issued"
// @Router /card/payments [post]
func (h *cardHandler) processPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.cardService.ProcessPayment(c.Request.Context(), req.Amount); err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: h.cardService.GetBalance(c.Request.Context())})
}

// getCard godoc
// @Summary Get the card state
// @Produce  json
// @Success 200 {object} dto.CardResponse
// @Router /card [get]
func (h *cardHandler) getCard(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToCardResponse(h.cardService.GetCard(c.Request.Context())))
}

// getBalance godoc
// @Summary Get the available spending room
// @Produce  json
// @Success 200 {object} dto.BalanceResponse
// @Router /card/balance [get]
func (h *cardHandler) getBalance(c *gin.Context) {
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: h.cardService.GetBalance(c.Request.Context())})
}

// getJournal godoc
// @Summary Get the journal
// @Description Returns every applied entry in processing order
// @Produce  json
// @Success 200 {object} dto.JournalResponse
// @Router /card/journal [get]
func (h *cardHandler) getJournal(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToJournalResponse(h.cardService.ListJournal(c.Request.Context())))
}

// getAccounts godoc
// @Summary Get the chart of accounts
// @Description Returns every book account with its running balance and version
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Router /card/accounts [get]
func (h *cardHandler) getAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToAccountsResponse(h.cardService.ListAccounts(c.Request.Context())))
}

// respondLedgerError maps the ledger error taxonomy to HTTP statuses.
func respondLedgerError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientLimit):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrCardAlreadyIssued),
		errors.Is(err, apperrors.ErrCardNotIssued),
		errors.Is(err, apperrors.ErrCardInactive),
		errors.Is(err, apperrors.ErrDoubleTransaction):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Unexpected ledger error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
