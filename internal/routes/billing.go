package routes

import (
	"net/http"
	"time"

	"Corebank/internal/contracts"
	"Corebank/internal/domain/billing"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GenerateBill(c *gin.Context) {
	ctx := c.Request.Context()
	bill, err := h.BillingService.GenerateBill(ctx, c.Param("number"), time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.BillResponse{
		Message: "Bill generated",
		Bill:    bill,
	})
}

func (h *Handler) PayBill(c *gin.Context) {
	var body contracts.BillPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	bill, err := h.BillingService.PayBill(ctx, &billing.PayBillRequest{
		CardNumber: c.Param("number"),
		Option:     billing.PaymentOption(body.Option),
		Amount:     body.Amount,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BillResponse{
		Message: "Payment applied",
		Bill:    bill,
	})
}

func (h *Handler) GetBill(c *gin.Context) {
	billID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	bill, err := h.BillingService.GetBill(ctx, billID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BillSingleResponse{Bill: bill})
}

func (h *Handler) ListBills(c *gin.Context) {
	ctx := c.Request.Context()
	pagination := h.parsePagination(c)

	bills, total, err := h.BillingService.GetBillingHistory(ctx, c.Param("number"), pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(bills, pagination.Page, pagination.Limit, total))
}
