package routes

import (
	"net/http"

	"Corebank/internal/contracts"
	"Corebank/internal/domain/transfer"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Transfer(c *gin.Context) {
	var body contracts.TransferRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	result, err := h.TransferService.Transfer(ctx, &transfer.TransferRequest{
		FromAccount: body.FromAccount,
		ToAccount:   body.ToAccount,
		Amount:      body.Amount,
		Channel:     transfer.Channel(body.Channel),
		Remarks:     body.Remarks,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransferResponse{
		Message: "Transfer accepted",
		Result:  result,
	})
}

func (h *Handler) CreateMoneyRequest(c *gin.Context) {
	var body contracts.MoneyRequestCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	request, err := h.TransferService.RequestMoney(ctx, body.RequesterAccount, body.PayerAccount, body.Amount, body.Description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.MoneyRequestResponse{
		Message: "Money request created",
		Request: request,
	})
}

func (h *Handler) RespondToMoneyRequest(c *gin.Context) {
	requestID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	var body contracts.MoneyRequestRespondRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	request, err := h.TransferService.RespondToRequest(ctx, requestID, *body.Accept)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MoneyRequestResponse{
		Message: "Money request settled",
		Request: request,
	})
}

func (h *Handler) ListMoneyRequests(c *gin.Context) {
	ctx := c.Request.Context()
	pagination := h.parsePagination(c)

	requests, total, err := h.TransferService.ListRequests(ctx, c.Param("number"), pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(requests, pagination.Page, pagination.Limit, total))
}
