package infrastructure

import (
	"context"
	"errors"
	"time"

	"Corebank/internal/domain/billing"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type BillRepository struct {
	DB *gorm.DB
}

type billDB struct {
	Id                 string    `gorm:"type:varchar(26);primaryKey"`
	CardId             string    `gorm:"type:varchar(26);index;uniqueIndex:idx_bills_card_cycle;not null"`
	BillingDate        time.Time `gorm:"not null;uniqueIndex:idx_bills_card_cycle"`
	DueDate            time.Time `gorm:"not null"`
	TotalAmountDue     float64   `gorm:"type:decimal(15,2);not null"`
	MinimumAmountDue   float64   `gorm:"type:decimal(15,2);not null"`
	CurrentOutstanding float64   `gorm:"type:decimal(15,2);not null"`
	PaymentStatus      string    `gorm:"type:varchar(10);not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (billDB) TableName() string {
	return "credit_card_bills"
}

func toDomainBill(bdb *billDB) (*billing.CreditCardBill, error) {
	id, err := pkg.ParseULID(bdb.Id)
	if err != nil {
		return nil, err
	}

	cardID, err := pkg.ParseULID(bdb.CardId)
	if err != nil {
		return nil, err
	}

	return &billing.CreditCardBill{
		Id:                 id,
		CardId:             cardID,
		BillingDate:        bdb.BillingDate,
		DueDate:            bdb.DueDate,
		TotalAmountDue:     bdb.TotalAmountDue,
		MinimumAmountDue:   bdb.MinimumAmountDue,
		CurrentOutstanding: bdb.CurrentOutstanding,
		PaymentStatus:      billing.PaymentStatus(bdb.PaymentStatus),
		CreatedAt:          bdb.CreatedAt,
		UpdatedAt:          bdb.UpdatedAt,
	}, nil
}

func toDBBill(b *billing.CreditCardBill) *billDB {
	return &billDB{
		Id:                 b.Id.String(),
		CardId:             b.CardId.String(),
		BillingDate:        b.BillingDate,
		DueDate:            b.DueDate,
		TotalAmountDue:     b.TotalAmountDue,
		MinimumAmountDue:   b.MinimumAmountDue,
		CurrentOutstanding: b.CurrentOutstanding,
		PaymentStatus:      string(b.PaymentStatus),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (r *BillRepository) resolve(tx interface{}) *gorm.DB {
	if tx != nil {
		return tx.(*gorm.DB)
	}
	return r.DB
}

func (r *BillRepository) Create(ctx context.Context, tx interface{}, b *billing.CreditCardBill) error {
	return r.resolve(tx).WithContext(ctx).Table("credit_card_bills").Create(toDBBill(b)).Error
}

func (r *BillRepository) Update(ctx context.Context, tx interface{}, b *billing.CreditCardBill) error {
	bdb := toDBBill(b)
	return r.resolve(tx).WithContext(ctx).Model(&billDB{}).Where("id = ?", bdb.Id).Updates(bdb).Error
}

func (r *BillRepository) GetByID(ctx context.Context, billID ulid.ULID) (*billing.CreditCardBill, error) {
	var bdb billDB
	err := r.DB.WithContext(ctx).Where("id = ?", billID.String()).First(&bdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainBill(&bdb)
}

func (r *BillRepository) GetByCardAndBillingDate(ctx context.Context, cardID ulid.ULID, billingDate time.Time) (*billing.CreditCardBill, error) {
	var bdb billDB
	err := r.DB.WithContext(ctx).
		Where("card_id = ? AND billing_date = ?", cardID.String(), billingDate).
		First(&bdb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainBill(&bdb)
}

func (r *BillRepository) GetLatestUnpaid(ctx context.Context, cardID ulid.ULID) (*billing.CreditCardBill, error) {
	var bdb billDB
	err := r.DB.WithContext(ctx).
		Where("card_id = ? AND payment_status <> ?", cardID.String(), string(billing.StatusPaid)).
		Order("billing_date DESC").
		First(&bdb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainBill(&bdb)
}

func (r *BillRepository) GetByCardID(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*billing.CreditCardBill, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("credit_card_bills").Where("card_id = ?", cardID.String())
	return pkg.Paginate(baseQuery, pagination, "billing_date DESC", toDomainBill)
}
