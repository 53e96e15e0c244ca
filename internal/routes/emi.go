package routes

import (
	"net/http"
	"time"

	"Corebank/internal/contracts"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetEmiOffers(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	offers, err := h.EmiService.GetOffers(ctx, transactionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EmiOffersResponse{Offers: offers})
}

func (h *Handler) ConvertToEmi(c *gin.Context) {
	transactionID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	var body contracts.EmiConvertRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	plan, err := h.EmiService.ConvertToEmi(ctx, transactionID, body.TenureMonths)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.EmiPlanResponse{
		Message: "EMI plan created",
		Plan:    plan,
	})
}

func (h *Handler) GetEmiPlan(c *gin.Context) {
	planID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	plan, err := h.EmiService.GetPlan(ctx, planID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EmiPlanSingleResponse{Plan: plan})
}

func (h *Handler) GetEmiSchedule(c *gin.Context) {
	planID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	schedule, err := h.EmiService.GetSchedule(ctx, planID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EmiScheduleResponse{Schedule: schedule})
}

func (h *Handler) ListEmiPlans(c *gin.Context) {
	ctx := c.Request.Context()
	pagination := h.parsePagination(c)

	plans, total, err := h.EmiService.ListPlans(ctx, c.Param("number"), pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(plans, pagination.Page, pagination.Limit, total))
}

// ProcessEmiInstallments runs the due-installment sweep. Exposed as an
// operational endpoint so a scheduler can trigger it daily.
func (h *Handler) ProcessEmiInstallments(c *gin.Context) {
	ctx := c.Request.Context()
	collected, failed, err := h.EmiService.ProcessInstallments(ctx, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.EmiSweepResponse{
		Message:   "Installment sweep finished",
		Collected: collected,
		Failed:    failed,
	})
}
