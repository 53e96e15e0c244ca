package infrastructure

import (
	"context"
	"time"

	"Corebank/internal/domain/ledger"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

type transactionDB struct {
	Id             string    `gorm:"type:varchar(26);primaryKey"`
	TransactionId  string    `gorm:"type:varchar(36);uniqueIndex;not null"`
	AccountId      string    `gorm:"type:varchar(26);index;not null"`
	CardId         *string   `gorm:"type:varchar(26);index"`
	Amount         float64   `gorm:"type:decimal(15,2);not null"`
	Type           string    `gorm:"type:varchar(20);not null"`
	Date           time.Time `gorm:"not null;index"`
	Description    string    `gorm:"type:varchar(255)"`
	IsEmiConverted bool      `gorm:"not null;default:false"`
}

func (transactionDB) TableName() string {
	return "transactions"
}

func toDomainTransaction(tdb *transactionDB) (*ledger.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}

	accountID, err := pkg.ParseULID(tdb.AccountId)
	if err != nil {
		return nil, err
	}

	var cardID *ulid.ULID
	if tdb.CardId != nil && *tdb.CardId != "" {
		parsed, err := pkg.ParseULID(*tdb.CardId)
		if err == nil {
			cardID = &parsed
		}
	}

	return &ledger.Transaction{
		Id:             id,
		TransactionID:  tdb.TransactionId,
		AccountId:      accountID,
		CardId:         cardID,
		Amount:         tdb.Amount,
		Type:           ledger.Type(tdb.Type),
		Date:           tdb.Date,
		Description:    tdb.Description,
		IsEmiConverted: tdb.IsEmiConverted,
	}, nil
}

func toDBTransaction(t *ledger.Transaction) *transactionDB {
	var cardID *string
	if t.CardId != nil {
		s := t.CardId.String()
		cardID = &s
	}

	return &transactionDB{
		Id:             t.Id.String(),
		TransactionId:  t.TransactionID,
		AccountId:      t.AccountId.String(),
		CardId:         cardID,
		Amount:         t.Amount,
		Type:           string(t.Type),
		Date:           t.Date,
		Description:    t.Description,
		IsEmiConverted: t.IsEmiConverted,
	}
}

func (r *TransactionRepository) BeginTx(ctx context.Context) (interface{}, error) {
	return r.DB.WithContext(ctx).Begin(), nil
}

func (r *TransactionRepository) CommitTx(tx interface{}) error {
	return tx.(*gorm.DB).Commit().Error
}

func (r *TransactionRepository) RollbackTx(tx interface{}) error {
	return tx.(*gorm.DB).Rollback().Error
}

func (r *TransactionRepository) ApplyDelta(ctx context.Context, tx interface{}, accountID ulid.ULID, delta float64, txn *ledger.Transaction) error {
	apply := func(db *gorm.DB) error {
		err := db.WithContext(ctx).Model(&accountDB{}).Where("id = ?", accountID.String()).
			UpdateColumn("balance", gorm.Expr("balance + ?", delta)).
			UpdateColumn("updated_at", time.Now()).Error
		if err != nil {
			return err
		}
		return db.WithContext(ctx).Table("transactions").Create(toDBTransaction(txn)).Error
	}

	if tx != nil {
		return apply(tx.(*gorm.DB))
	}
	return r.DB.WithContext(ctx).Transaction(apply)
}

func (r *TransactionRepository) Create(ctx context.Context, tx interface{}, txn *ledger.Transaction) error {
	db := r.DB
	if tx != nil {
		db = tx.(*gorm.DB)
	}
	return db.WithContext(ctx).Table("transactions").Create(toDBTransaction(txn)).Error
}

func (r *TransactionRepository) MarkEmiConverted(ctx context.Context, tx interface{}, transactionID ulid.ULID) (bool, error) {
	db := r.DB
	if tx != nil {
		db = tx.(*gorm.DB)
	}

	result := db.WithContext(ctx).Model(&transactionDB{}).
		Where("id = ? AND is_emi_converted = ?", transactionID.String(), false).
		UpdateColumn("is_emi_converted", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, transactionID ulid.ULID) (*ledger.Transaction, error) {
	var tdb transactionDB
	err := r.DB.WithContext(ctx).Where("id = ?", transactionID.String()).First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *TransactionRepository) GetByAccountID(ctx context.Context, accountID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Transaction, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("transactions").Where("account_id = ?", accountID.String())
	return pkg.Paginate(baseQuery, pagination, "date DESC", toDomainTransaction)
}

// GetByCardAndDateRange returns the card's entries in the half-open window
// [from, to).
func (r *TransactionRepository) GetByCardAndDateRange(ctx context.Context, cardID ulid.ULID, from, to time.Time) ([]*ledger.Transaction, error) {
	var rows []transactionDB
	err := r.DB.WithContext(ctx).
		Where("card_id = ? AND date >= ? AND date < ?", cardID.String(), from, to).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*ledger.Transaction, 0, len(rows))
	for i := range rows {
		txn, err := toDomainTransaction(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, txn)
	}
	return out, nil
}
