package ledger

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Transaction is the immutable audit record created for every money movement.
// Only IsEmiConverted ever changes after insert.
type Transaction struct {
	Id             ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	TransactionID  string     `gorm:"type:varchar(36);uniqueIndex:idx_transactions_reference;not null" json:"transactionId"`
	AccountId      ulid.ULID  `gorm:"type:varchar(26);index:idx_transactions_account_id;not null" json:"accountId"`
	CardId         *ulid.ULID `gorm:"type:varchar(26);index:idx_transactions_card_id" json:"cardId,omitempty"`
	Amount         float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type           Type       `gorm:"type:varchar(20);not null;index:idx_transactions_type" json:"type"`
	Date           time.Time  `gorm:"not null;index:idx_transactions_date" json:"date"`
	Description    string     `gorm:"type:varchar(255)" json:"description"`
	IsEmiConverted bool       `gorm:"not null;default:false" json:"isEmiConverted"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type Type string

const (
	TypeDeposit      Type = "DEPOSIT"
	TypeWithdrawal   Type = "WITHDRAWAL"
	TypeFee          Type = "FEE"
	TypeCardPurchase Type = "CARD_PURCHASE"
	TypeBillPayment  Type = "BILL_PAYMENT"
	TypeEmiPayment   Type = "EMI_PAYMENT"
	TypeNEFTDebit    Type = "NEFT_DEBIT"
	TypeNEFTCredit   Type = "NEFT_CREDIT"
	TypeRTGSDebit    Type = "RTGS_DEBIT"
	TypeRTGSCredit   Type = "RTGS_CREDIT"
	TypeIMPSDebit    Type = "IMPS_DEBIT"
	TypeIMPSCredit   Type = "IMPS_CREDIT"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeFee, TypeCardPurchase, TypeBillPayment, TypeEmiPayment,
		TypeNEFTDebit, TypeNEFTCredit, TypeRTGSDebit, TypeRTGSCredit, TypeIMPSDebit, TypeIMPSCredit:
		return true
	}
	return false
}
