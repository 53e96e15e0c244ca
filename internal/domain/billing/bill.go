package billing

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// CreditCardBill is one statement of a credit card's billing cycle. The
// statement window covers whole calendar days: from the day after the
// previous billing date through BillingDate itself.
type CreditCardBill struct {
	Id                 ulid.ULID     `gorm:"type:varchar(26);primaryKey" json:"id"`
	CardId             ulid.ULID     `gorm:"type:varchar(26);index:idx_bills_card_id;uniqueIndex:idx_bills_card_cycle;not null" json:"cardId"`
	BillingDate        time.Time     `gorm:"not null;uniqueIndex:idx_bills_card_cycle" json:"billingDate"`
	DueDate            time.Time     `gorm:"not null" json:"dueDate"`
	TotalAmountDue     float64       `gorm:"type:decimal(15,2);not null" json:"totalAmountDue"`
	MinimumAmountDue   float64       `gorm:"type:decimal(15,2);not null" json:"minimumAmountDue"`
	CurrentOutstanding float64       `gorm:"type:decimal(15,2);not null" json:"currentOutstanding"`
	PaymentStatus      PaymentStatus `gorm:"type:varchar(10);not null" json:"paymentStatus"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

func (CreditCardBill) TableName() string {
	return "credit_card_bills"
}

type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "UNPAID"
	StatusPartial PaymentStatus = "PARTIAL"
	StatusPaid    PaymentStatus = "PAID"
)

type PaymentOption string

const (
	PayFullAmount         PaymentOption = "FULL_AMOUNT"
	PayMinimumAmount      PaymentOption = "MINIMUM_AMOUNT"
	PayCurrentOutstanding PaymentOption = "CURRENT_OUTSTANDING"
	PayOtherAmount        PaymentOption = "OTHER_AMOUNT"
)

func (o PaymentOption) IsValid() bool {
	switch o {
	case PayFullAmount, PayMinimumAmount, PayCurrentOutstanding, PayOtherAmount:
		return true
	}
	return false
}
