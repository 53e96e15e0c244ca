package routes

import (
	"net/http"

	"Corebank/internal/contracts"
	"Corebank/internal/domain/customer"
	appErrors "Corebank/internal/errors"
	"Corebank/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCustomer(c *gin.Context) {
	var body contracts.CustomerCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	created, err := h.CustomerService.Create(ctx, &customer.CreateCustomerRequest{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Address: body.Address,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.CustomerCreateResponse{
		Message:  "Customer created",
		Customer: created,
	})
}

func (h *Handler) GetCustomer(c *gin.Context) {
	customerID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	found, err := h.CustomerService.GetByID(ctx, customerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CustomerSingleResponse{Customer: found})
}

func (h *Handler) UpdateCustomerKyc(c *gin.Context) {
	customerID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	var body contracts.CustomerKycUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	ctx := c.Request.Context()
	updated, err := h.CustomerService.UpdateKycStatus(ctx, customerID, customer.KycStatus(body.KycStatus))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.CustomerSingleResponse{Customer: updated})
}

func (h *Handler) ListCustomers(c *gin.Context) {
	ctx := c.Request.Context()
	pagination := h.parsePagination(c)

	customers, total, err := h.CustomerService.List(ctx, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(customers, pagination.Page, pagination.Limit, total))
}

func (h *Handler) ListCustomerAccounts(c *gin.Context) {
	customerID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "invalid format"))
		return
	}

	ctx := c.Request.Context()
	pagination := h.parsePagination(c)

	accounts, total, err := h.AccountService.ListByCustomer(ctx, customerID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(accounts, pagination.Page, pagination.Limit, total))
}
