package billing

import (
	"context"
	"time"

	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Repository persists statements. Create and Update accept an open
// transaction handle so bill settlement commits together with its ledger
// and card writes; nil means a standalone write.
//
// GetByCardAndBillingDate and GetLatestUnpaid return (nil, nil) when no
// matching statement exists.
type Repository interface {
	Create(ctx context.Context, tx interface{}, bill *CreditCardBill) error
	Update(ctx context.Context, tx interface{}, bill *CreditCardBill) error
	GetByID(ctx context.Context, billID ulid.ULID) (*CreditCardBill, error)
	GetByCardAndBillingDate(ctx context.Context, cardID ulid.ULID, billingDate time.Time) (*CreditCardBill, error)
	GetLatestUnpaid(ctx context.Context, cardID ulid.ULID) (*CreditCardBill, error)
	GetByCardID(ctx context.Context, cardID ulid.ULID, pagination *pkg.PaginationParams) ([]*CreditCardBill, int64, error)
}
