package routes

import (
	"net/http"

	"Corebank/internal/contracts"
	"Corebank/internal/domain/card"
	appErrors "Corebank/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) IssueCard(c *gin.Context) {
	var body contracts.CardIssueRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	issued, err := h.CardService.IssueCard(ctx, &card.IssueCardRequest{
		AccountNumber:        body.AccountNumber,
		Type:                 card.CardType(body.Type),
		CreditLimit:          body.CreditLimit,
		DailyWithdrawalLimit: body.DailyWithdrawalLimit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CardIssueResponse{
		Message: "Card issued",
		Card:    issued,
	})
}

func (h *Handler) GetCard(c *gin.Context) {
	ctx := c.Request.Context()
	found, err := h.CardService.GetByNumber(ctx, c.Param("number"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardSingleResponse{Card: found})
}

func (h *Handler) BlockCard(c *gin.Context) {
	ctx := c.Request.Context()
	blocked, err := h.CardService.Block(ctx, c.Param("number"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardSingleResponse{Card: blocked})
}

func (h *Handler) UnblockCard(c *gin.Context) {
	ctx := c.Request.Context()
	unblocked, err := h.CardService.Unblock(ctx, c.Param("number"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardSingleResponse{Card: unblocked})
}

func (h *Handler) UpdateCardLimits(c *gin.Context) {
	var body contracts.CardLimitsUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	updated, err := h.CardService.UpdateLimits(ctx, c.Param("number"), &card.UpdateLimitsRequest{
		CreditLimit:          body.CreditLimit,
		DailyWithdrawalLimit: body.DailyWithdrawalLimit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardSingleResponse{Card: updated})
}

func (h *Handler) UpdateCardBillDay(c *gin.Context) {
	var body contracts.CardBillDayUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	updated, err := h.CardService.ChangeBillGenerationDay(ctx, c.Param("number"), body.BillGenerationDay)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CardSingleResponse{Card: updated})
}

func (h *Handler) ChangeCardPin(c *gin.Context) {
	var body contracts.CardPinChangeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.CardService.ChangePin(ctx, c.Param("number"), body.CurrentPin, body.NewPin); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "PIN updated"})
}

func (h *Handler) CardPurchase(c *gin.Context) {
	var body contracts.CardPurchaseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	txn, err := h.CardService.Purchase(ctx, c.Param("number"), body.Amount, body.Merchant)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CardPurchaseResponse{
		Message:     "Purchase recorded",
		Transaction: txn,
	})
}
