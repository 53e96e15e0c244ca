package contracts

import "Corebank/internal/domain/billing"

type BillPaymentRequest struct {
	Option string  `json:"option" binding:"required,oneof=FULL_AMOUNT MINIMUM_AMOUNT CURRENT_OUTSTANDING OTHER_AMOUNT"`
	Amount float64 `json:"amount" binding:"omitempty,gt=0"`
}

type BillResponse struct {
	Message string                  `json:"message"`
	Bill    *billing.CreditCardBill `json:"bill"`
}

type BillSingleResponse struct {
	Bill *billing.CreditCardBill `json:"bill"`
}
