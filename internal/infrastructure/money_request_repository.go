package infrastructure

import (
	"context"
	"time"

	"Corebank/internal/domain/transfer"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type MoneyRequestRepository struct {
	DB *gorm.DB
}

type moneyRequestDB struct {
	Id               string    `gorm:"type:varchar(26);primaryKey"`
	RequesterAccount string    `gorm:"type:varchar(20);index;not null"`
	PayerAccount     string    `gorm:"type:varchar(20);index;not null"`
	Amount           float64   `gorm:"type:decimal(15,2);not null"`
	Description      string    `gorm:"type:varchar(255)"`
	Status           string    `gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (moneyRequestDB) TableName() string {
	return "money_requests"
}

func toDomainMoneyRequest(mdb *moneyRequestDB) (*transfer.MoneyRequest, error) {
	id, err := pkg.ParseULID(mdb.Id)
	if err != nil {
		return nil, err
	}

	return &transfer.MoneyRequest{
		Id:               id,
		RequesterAccount: mdb.RequesterAccount,
		PayerAccount:     mdb.PayerAccount,
		Amount:           mdb.Amount,
		Description:      mdb.Description,
		Status:           transfer.RequestStatus(mdb.Status),
		CreatedAt:        mdb.CreatedAt,
		UpdatedAt:        mdb.UpdatedAt,
	}, nil
}

func toDBMoneyRequest(m *transfer.MoneyRequest) *moneyRequestDB {
	return &moneyRequestDB{
		Id:               m.Id.String(),
		RequesterAccount: m.RequesterAccount,
		PayerAccount:     m.PayerAccount,
		Amount:           m.Amount,
		Description:      m.Description,
		Status:           string(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *MoneyRequestRepository) Create(ctx context.Context, m *transfer.MoneyRequest) error {
	return r.DB.WithContext(ctx).Table("money_requests").Create(toDBMoneyRequest(m)).Error
}

func (r *MoneyRequestRepository) Update(ctx context.Context, m *transfer.MoneyRequest) error {
	mdb := toDBMoneyRequest(m)
	return r.DB.WithContext(ctx).Model(&moneyRequestDB{}).Where("id = ?", mdb.Id).Updates(mdb).Error
}

func (r *MoneyRequestRepository) GetByID(ctx context.Context, requestID ulid.ULID) (*transfer.MoneyRequest, error) {
	var mdb moneyRequestDB
	err := r.DB.WithContext(ctx).Where("id = ?", requestID.String()).First(&mdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainMoneyRequest(&mdb)
}

func (r *MoneyRequestRepository) GetByAccount(ctx context.Context, accountNumber string, pagination *pkg.PaginationParams) ([]*transfer.MoneyRequest, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("money_requests").
		Where("requester_account = ? OR payer_account = ?", accountNumber, accountNumber)
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainMoneyRequest)
}
