package infrastructure

import (
	"context"
	"time"

	"Corebank/internal/domain/card"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CardRepository struct {
	DB *gorm.DB
}

type cardDB struct {
	Id                   string    `gorm:"type:varchar(26);primaryKey"`
	CardNumber           string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	CustomerId           string    `gorm:"type:varchar(26);index;not null"`
	AccountId            string    `gorm:"type:varchar(26);index;not null"`
	Type                 string    `gorm:"type:varchar(10);not null"`
	Status               string    `gorm:"type:varchar(10);not null"`
	PinHash              string    `gorm:"type:varchar(72);not null"`
	Cvv                  string    `gorm:"type:varchar(4);not null"`
	IssueDate            time.Time `gorm:"not null"`
	ExpiryDate           time.Time `gorm:"not null"`
	CreditLimit          float64   `gorm:"type:decimal(15,2);not null;default:0"`
	CurrentCreditUsed    float64   `gorm:"type:decimal(15,2);not null;default:0"`
	DailyWithdrawalLimit float64   `gorm:"type:decimal(15,2);not null;default:0"`
	BillGenerationDay    int       `gorm:"not null;default:20"`
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

func (cardDB) TableName() string {
	return "cards"
}

func toDomainCard(cdb *cardDB) (*card.Card, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}

	customerID, err := pkg.ParseULID(cdb.CustomerId)
	if err != nil {
		return nil, err
	}

	accountID, err := pkg.ParseULID(cdb.AccountId)
	if err != nil {
		return nil, err
	}

	return &card.Card{
		Id:                   id,
		CardNumber:           cdb.CardNumber,
		CustomerId:           customerID,
		AccountId:            accountID,
		Type:                 card.CardType(cdb.Type),
		Status:               card.Status(cdb.Status),
		PinHash:              cdb.PinHash,
		Cvv:                  cdb.Cvv,
		IssueDate:            cdb.IssueDate,
		ExpiryDate:           cdb.ExpiryDate,
		CreditLimit:          cdb.CreditLimit,
		CurrentCreditUsed:    cdb.CurrentCreditUsed,
		DailyWithdrawalLimit: cdb.DailyWithdrawalLimit,
		BillGenerationDay:    cdb.BillGenerationDay,
		CreatedAt:            cdb.CreatedAt,
		UpdatedAt:            cdb.UpdatedAt,
	}, nil
}

func toDBCard(c *card.Card) *cardDB {
	return &cardDB{
		Id:                   c.Id.String(),
		CardNumber:           c.CardNumber,
		CustomerId:           c.CustomerId.String(),
		AccountId:            c.AccountId.String(),
		Type:                 string(c.Type),
		Status:               string(c.Status),
		PinHash:              c.PinHash,
		Cvv:                  c.Cvv,
		IssueDate:            c.IssueDate,
		ExpiryDate:           c.ExpiryDate,
		CreditLimit:          c.CreditLimit,
		CurrentCreditUsed:    c.CurrentCreditUsed,
		DailyWithdrawalLimit: c.DailyWithdrawalLimit,
		BillGenerationDay:    c.BillGenerationDay,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func (r *CardRepository) Create(ctx context.Context, c *card.Card) error {
	return r.DB.WithContext(ctx).Table("cards").Create(toDBCard(c)).Error
}

func (r *CardRepository) Update(ctx context.Context, c *card.Card) error {
	cdb := toDBCard(c)
	return r.DB.WithContext(ctx).Model(&cardDB{}).Where("id = ?", cdb.Id).Updates(cdb).Error
}

func (r *CardRepository) GetByID(ctx context.Context, cardID ulid.ULID) (*card.Card, error) {
	var cdb cardDB
	err := r.DB.WithContext(ctx).Where("id = ?", cardID.String()).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCard(&cdb)
}

func (r *CardRepository) GetByNumber(ctx context.Context, cardNumber string) (*card.Card, error) {
	var cdb cardDB
	err := r.DB.WithContext(ctx).Where("card_number = ?", cardNumber).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCard(&cdb)
}

func (r *CardRepository) GetByAccountID(ctx context.Context, accountID ulid.ULID) ([]*card.Card, error) {
	var rows []cardDB
	err := r.DB.WithContext(ctx).Where("account_id = ?", accountID.String()).
		Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*card.Card, 0, len(rows))
	for i := range rows {
		c, err := toDomainCard(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CardRepository) GetCreditCardByAccountID(ctx context.Context, accountID ulid.ULID) (*card.Card, error) {
	var cdb cardDB
	err := r.DB.WithContext(ctx).
		Where("account_id = ? AND type = ?", accountID.String(), string(card.TypeCredit)).
		First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCard(&cdb)
}

func (r *CardRepository) AdjustCreditUsed(ctx context.Context, tx interface{}, cardID ulid.ULID, delta float64) error {
	db := r.DB
	if tx != nil {
		db = tx.(*gorm.DB)
	}
	return db.WithContext(ctx).Model(&cardDB{}).Where("id = ?", cardID.String()).
		UpdateColumn("current_credit_used", gorm.Expr("current_credit_used + ?", delta)).
		UpdateColumn("updated_at", time.Now()).Error
}
