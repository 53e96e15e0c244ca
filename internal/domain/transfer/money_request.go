package transfer

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// MoneyRequest asks another account holder to pay the requester. Accepting
// one triggers an IMPS transfer from the payer to the requester.
type MoneyRequest struct {
	Id               ulid.ULID     `gorm:"type:varchar(26);primaryKey" json:"id"`
	RequesterAccount string        `gorm:"type:varchar(20);index:idx_money_requests_requester;not null" json:"requesterAccount"`
	PayerAccount     string        `gorm:"type:varchar(20);index:idx_money_requests_payer;not null" json:"payerAccount"`
	Amount           float64       `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description      string        `gorm:"type:varchar(255)" json:"description"`
	Status           RequestStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

func (MoneyRequest) TableName() string {
	return "money_requests"
}

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestCompleted RequestStatus = "COMPLETED"
	RequestDeclined  RequestStatus = "DECLINED"
)
