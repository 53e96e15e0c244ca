package routes

import (
	"net/http"

	"Corebank/internal/contracts"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Deposit(c *gin.Context) {
	var body contracts.DepositRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	txn, err := h.LedgerService.Deposit(ctx, c.Param("number"), body.Amount, body.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionResponse{
		Message:     "Deposit completed",
		Transaction: txn,
	})
}

func (h *Handler) Withdraw(c *gin.Context) {
	var body contracts.WithdrawRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	txn, err := h.LedgerService.Withdraw(ctx, c.Param("number"), body.Amount, body.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionResponse{
		Message:     "Withdrawal completed",
		Transaction: txn,
	})
}

func (h *Handler) GetTransaction(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	txn, err := h.LedgerService.GetTransaction(ctx, transactionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionSingleResponse{Transaction: txn})
}

func (h *Handler) ListAccountTransactions(c *gin.Context) {
	ctx := c.Request.Context()
	pagination := h.parsePagination(c)

	transactions, total, err := h.LedgerService.GetTransactions(ctx, c.Param("number"), pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(transactions, pagination.Page, pagination.Limit, total))
}
