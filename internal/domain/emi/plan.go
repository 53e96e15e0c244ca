package emi

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Plan is a credit card purchase converted into monthly installments.
// PrincipalAmount is the financed principal: the purchase amount plus the
// processing fee.
type Plan struct {
	Id                 ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	TransactionId      ulid.ULID  `gorm:"type:varchar(26);uniqueIndex:idx_emi_plans_transaction;not null" json:"transactionId"`
	CardId             ulid.ULID  `gorm:"type:varchar(26);index:idx_emi_plans_card_id;not null" json:"cardId"`
	AccountId          ulid.ULID  `gorm:"type:varchar(26);index:idx_emi_plans_account_id;not null" json:"accountId"`
	PrincipalAmount    float64    `gorm:"type:decimal(15,2);not null" json:"principalAmount"`
	AnnualInterestRate float64    `gorm:"type:decimal(8,5);not null" json:"annualInterestRate"`
	ProcessingFee      float64    `gorm:"type:decimal(15,2);not null" json:"processingFee"`
	MonthlyInstallment float64    `gorm:"type:decimal(15,2);not null" json:"monthlyInstallment"`
	TenureMonths       int        `gorm:"not null" json:"tenureMonths"`
	TotalPayable       float64    `gorm:"type:decimal(15,2);not null" json:"totalPayable"`
	Status             PlanStatus `gorm:"type:varchar(10);not null" json:"status"`
	StartDate          time.Time  `gorm:"not null" json:"startDate"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (Plan) TableName() string {
	return "emi_plans"
}

type PlanStatus string

const (
	PlanActive    PlanStatus = "ACTIVE"
	PlanCompleted PlanStatus = "COMPLETED"
	PlanCancelled PlanStatus = "CANCELLED"
)

// ScheduleEntry is a single installment of a plan's repayment schedule.
type ScheduleEntry struct {
	Id                 ulid.ULID   `gorm:"type:varchar(26);primaryKey" json:"id"`
	PlanId             ulid.ULID   `gorm:"type:varchar(26);index:idx_emi_schedule_plan_id;not null" json:"planId"`
	InstallmentNumber  int         `gorm:"not null" json:"installmentNumber"`
	DueDate            time.Time   `gorm:"not null;index:idx_emi_schedule_due_date" json:"dueDate"`
	InstallmentAmount  float64     `gorm:"type:decimal(15,2);not null" json:"installmentAmount"`
	PrincipalComponent float64     `gorm:"type:decimal(15,2);not null" json:"principalComponent"`
	InterestComponent  float64     `gorm:"type:decimal(15,2);not null" json:"interestComponent"`
	Status             EntryStatus `gorm:"type:varchar(10);not null" json:"status"`
	PaidDate           *time.Time  `json:"paidDate,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

func (ScheduleEntry) TableName() string {
	return "emi_schedule_entries"
}

type EntryStatus string

const (
	EntryPending EntryStatus = "PENDING"
	EntryPaid    EntryStatus = "PAID"
	EntryOverdue EntryStatus = "OVERDUE"
)
