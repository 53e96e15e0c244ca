package contracts

import "Corebank/internal/domain/ledger"

type DepositRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=255"`
}

type WithdrawRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=255"`
}

type TransactionResponse struct {
	Message     string              `json:"message"`
	Transaction *ledger.Transaction `json:"transaction"`
}

type TransactionSingleResponse struct {
	Transaction *ledger.Transaction `json:"transaction"`
}
