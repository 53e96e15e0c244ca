package contracts

import "Corebank/internal/domain/transfer"

type TransferRequest struct {
	FromAccount string  `json:"fromAccount" binding:"required"`
	ToAccount   string  `json:"toAccount" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Channel     string  `json:"channel" binding:"required,oneof=NEFT RTGS IMPS"`
	Remarks     string  `json:"remarks" binding:"omitempty,max=255"`
}

type TransferResponse struct {
	Message string                   `json:"message"`
	Result  *transfer.TransferResult `json:"result"`
}

type MoneyRequestCreateRequest struct {
	RequesterAccount string  `json:"requesterAccount" binding:"required"`
	PayerAccount     string  `json:"payerAccount" binding:"required"`
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	Description      string  `json:"description" binding:"omitempty,max=255"`
}

type MoneyRequestRespondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

type MoneyRequestResponse struct {
	Message string                 `json:"message"`
	Request *transfer.MoneyRequest `json:"request"`
}
