package account

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Account struct {
	Id            ulid.ULID   `gorm:"type:varchar(26);primaryKey" json:"id"`
	AccountNumber string      `gorm:"type:varchar(20);uniqueIndex:idx_accounts_number;not null" json:"accountNumber"`
	CustomerId    ulid.ULID   `gorm:"type:varchar(26);index:idx_accounts_customer_id;not null" json:"customerId"`
	Type          AccountType `gorm:"type:varchar(20);not null" json:"type"`
	IfscCode      string      `gorm:"type:varchar(11)" json:"ifscCode"`
	Branch        string      `gorm:"type:varchar(100)" json:"branch"`
	Balance       float64     `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	Status        Status      `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_accounts_status" json:"status"`
	CreatedAt     time.Time   `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Account) TableName() string {
	return "accounts"
}
