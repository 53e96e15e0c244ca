package routes

import (
	"net/http"

	"Corebank/internal/contracts"
	"Corebank/internal/domain/account"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) OpenAccount(c *gin.Context) {
	var body contracts.AccountOpenRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	customerID, err := pkg.ParseULID(body.CustomerId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("customerId", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	opened, err := h.AccountService.OpenAccount(ctx, &account.OpenAccountRequest{
		CustomerId:     customerID,
		Type:           account.AccountType(body.Type),
		IfscCode:       body.IfscCode,
		Branch:         body.Branch,
		InitialBalance: body.InitialBalance,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.AccountOpenResponse{
		Message: "Account opened",
		Account: opened,
	})
}

func (h *Handler) GetAccount(c *gin.Context) {
	ctx := c.Request.Context()
	acct, err := h.AccountService.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountSingleResponse{Account: acct})
}

func (h *Handler) GetAccountBalance(c *gin.Context) {
	accountNumber := c.Param("number")

	ctx := c.Request.Context()
	balance, err := h.AccountService.GetBalance(ctx, accountNumber)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountBalanceResponse{
		AccountNumber: accountNumber,
		Balance:       balance,
	})
}

func (h *Handler) UpdateAccountStatus(c *gin.Context) {
	var body contracts.AccountStatusUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	updated, err := h.AccountService.UpdateStatus(ctx, c.Param("number"), account.Status(body.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountSingleResponse{Account: updated})
}

func (h *Handler) ListAccountCards(c *gin.Context) {
	ctx := c.Request.Context()
	cards, err := h.CardService.ListByAccount(ctx, c.Param("number"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards})
}
