package contracts

import (
	"Corebank/internal/domain/card"
	"Corebank/internal/domain/ledger"
)

type CardIssueRequest struct {
	AccountNumber        string  `json:"accountNumber" binding:"required"`
	Type                 string  `json:"type" binding:"required,oneof=CREDIT DEBIT"`
	CreditLimit          float64 `json:"creditLimit" binding:"gte=0"`
	DailyWithdrawalLimit float64 `json:"dailyWithdrawalLimit" binding:"gte=0"`
}

type CardIssueResponse struct {
	Message string           `json:"message"`
	Card    *card.IssuedCard `json:"card"`
}

type CardSingleResponse struct {
	Card *card.Card `json:"card"`
}

type CardLimitsUpdateRequest struct {
	CreditLimit          *float64 `json:"creditLimit" binding:"omitempty,gte=0"`
	DailyWithdrawalLimit *float64 `json:"dailyWithdrawalLimit" binding:"omitempty,gte=0"`
}

type CardBillDayUpdateRequest struct {
	BillGenerationDay int `json:"billGenerationDay" binding:"required,min=1,max=28"`
}

type CardPinChangeRequest struct {
	CurrentPin string `json:"currentPin" binding:"required,len=4"`
	NewPin     string `json:"newPin" binding:"required,len=4"`
}

type CardPurchaseRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Merchant string  `json:"merchant" binding:"required,max=100"`
}

type CardPurchaseResponse struct {
	Message     string              `json:"message"`
	Transaction *ledger.Transaction `json:"transaction"`
}
