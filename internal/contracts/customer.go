package contracts

import "Corebank/internal/domain/customer"

type CustomerCreateRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
	Address string `json:"address" binding:"omitempty,max=255"`
}

type CustomerKycUpdateRequest struct {
	KycStatus string `json:"kycStatus" binding:"required,oneof=PENDING VERIFIED REJECTED"`
}

type CustomerCreateResponse struct {
	Message  string             `json:"message"`
	Customer *customer.Customer `json:"customer"`
}

type CustomerSingleResponse struct {
	Customer *customer.Customer `json:"customer"`
}
