package customer

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Customer struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex:idx_customers_email;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	KycStatus KycStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"kycStatus"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Customer) TableName() string {
	return "customers"
}

type KycStatus string

const (
	KycPending  KycStatus = "PENDING"
	KycVerified KycStatus = "VERIFIED"
	KycRejected KycStatus = "REJECTED"
)

func (s KycStatus) IsValid() bool {
	switch s {
	case KycPending, KycVerified, KycRejected:
		return true
	}
	return false
}
