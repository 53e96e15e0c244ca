package contracts

import "Corebank/internal/domain/account"

type AccountOpenRequest struct {
	CustomerId     string  `json:"customerId" binding:"required"`
	Type           string  `json:"type" binding:"required,oneof=SAVINGS CURRENT SALARY"`
	IfscCode       string  `json:"ifscCode" binding:"required,max=20"`
	Branch         string  `json:"branch" binding:"omitempty,max=100"`
	InitialBalance float64 `json:"initialBalance" binding:"gte=0"`
}

type AccountStatusUpdateRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE FROZEN CLOSED"`
}

type AccountOpenResponse struct {
	Message string           `json:"message"`
	Account *account.Account `json:"account"`
}

type AccountSingleResponse struct {
	Account *account.Account `json:"account"`
}

type AccountBalanceResponse struct {
	AccountNumber string  `json:"accountNumber"`
	Balance       float64 `json:"balance"`
}
