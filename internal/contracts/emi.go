package contracts

import "Corebank/internal/domain/emi"

type EmiConvertRequest struct {
	TenureMonths int `json:"tenureMonths" binding:"required,gt=0"`
}

type EmiOffersResponse struct {
	Offers []emi.Offer `json:"offers"`
}

type EmiPlanResponse struct {
	Message string    `json:"message"`
	Plan    *emi.Plan `json:"plan"`
}

type EmiPlanSingleResponse struct {
	Plan *emi.Plan `json:"plan"`
}

type EmiScheduleResponse struct {
	Schedule []*emi.ScheduleEntry `json:"schedule"`
}

type EmiSweepResponse struct {
	Message   string `json:"message"`
	Collected int    `json:"collected"`
	Failed    int    `json:"failed"`
}
