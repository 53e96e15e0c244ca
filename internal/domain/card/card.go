package card

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Card struct {
	Id                   ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	CardNumber           string    `gorm:"type:varchar(20);uniqueIndex:idx_cards_number;not null" json:"cardNumber"`
	CustomerId           ulid.ULID `gorm:"type:varchar(26);index:idx_cards_customer_id;not null" json:"customerId"`
	AccountId            ulid.ULID `gorm:"type:varchar(26);index:idx_cards_account_id;not null" json:"accountId"`
	Type                 CardType  `gorm:"type:varchar(10);not null" json:"type"`
	Status               Status    `gorm:"type:varchar(10);not null" json:"status"`
	PinHash              string    `gorm:"type:varchar(72);not null" json:"-"`
	Cvv                  string    `gorm:"type:varchar(4);not null" json:"-"`
	IssueDate            time.Time `gorm:"not null" json:"issueDate"`
	ExpiryDate           time.Time `gorm:"not null" json:"expiryDate"`
	CreditLimit          float64   `gorm:"type:decimal(15,2);not null;default:0" json:"creditLimit"`
	CurrentCreditUsed    float64   `gorm:"type:decimal(15,2);not null;default:0" json:"currentCreditUsed"`
	DailyWithdrawalLimit float64   `gorm:"type:decimal(15,2);not null;default:0" json:"dailyWithdrawalLimit"`
	BillGenerationDay    int       `gorm:"not null;default:20" json:"billGenerationDay"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func (Card) TableName() string {
	return "cards"
}

// AvailableCredit is the unspent portion of the credit line.
func (c *Card) AvailableCredit() float64 {
	return c.CreditLimit - c.CurrentCreditUsed
}

type CardType string

const (
	TypeCredit CardType = "CREDIT"
	TypeDebit  CardType = "DEBIT"
)

func (t CardType) IsValid() bool {
	return t == TypeCredit || t == TypeDebit
}

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusBlocked Status = "BLOCKED"
)
