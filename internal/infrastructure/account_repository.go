package infrastructure

import (
	"context"
	"time"

	"Corebank/internal/domain/account"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

type accountDB struct {
	Id            string    `gorm:"type:varchar(26);primaryKey"`
	AccountNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	CustomerId    string    `gorm:"type:varchar(26);index;not null"`
	Type          string    `gorm:"type:varchar(20);not null"`
	IfscCode      string    `gorm:"type:varchar(20);not null"`
	Branch        string    `gorm:"type:varchar(100)"`
	Balance       float64   `gorm:"type:decimal(15,2);not null;default:0"`
	Status        string    `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (accountDB) TableName() string {
	return "accounts"
}

func toDomainAccount(adb *accountDB) (*account.Account, error) {
	id, err := pkg.ParseULID(adb.Id)
	if err != nil {
		return nil, err
	}

	customerID, err := pkg.ParseULID(adb.CustomerId)
	if err != nil {
		return nil, err
	}

	return &account.Account{
		Id:            id,
		AccountNumber: adb.AccountNumber,
		CustomerId:    customerID,
		Type:          account.AccountType(adb.Type),
		IfscCode:      adb.IfscCode,
		Branch:        adb.Branch,
		Balance:       adb.Balance,
		Status:        account.Status(adb.Status),
		CreatedAt:     adb.CreatedAt,
		UpdatedAt:     adb.UpdatedAt,
	}, nil
}

func toDBAccount(a *account.Account) *accountDB {
	return &accountDB{
		Id:            a.Id.String(),
		AccountNumber: a.AccountNumber,
		CustomerId:    a.CustomerId.String(),
		Type:          string(a.Type),
		IfscCode:      a.IfscCode,
		Branch:        a.Branch,
		Balance:       a.Balance,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	return r.DB.WithContext(ctx).Table("accounts").Create(toDBAccount(a)).Error
}

func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	adb := toDBAccount(a)
	return r.DB.WithContext(ctx).Model(&accountDB{}).Where("id = ?", adb.Id).Updates(adb).Error
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID ulid.ULID) (*account.Account, error) {
	var adb accountDB
	err := r.DB.WithContext(ctx).Where("id = ?", accountID.String()).First(&adb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccount(&adb)
}

func (r *AccountRepository) GetByNumber(ctx context.Context, accountNumber string) (*account.Account, error) {
	var adb accountDB
	err := r.DB.WithContext(ctx).Where("account_number = ?", accountNumber).First(&adb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccount(&adb)
}

func (r *AccountRepository) GetByCustomerID(ctx context.Context, customerID ulid.ULID, pagination *pkg.PaginationParams) ([]*account.Account, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("accounts").Where("customer_id = ?", customerID.String())
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainAccount)
}
