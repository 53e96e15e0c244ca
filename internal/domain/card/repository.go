package card

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, card *Card) error
	Update(ctx context.Context, card *Card) error
	GetByID(ctx context.Context, cardID ulid.ULID) (*Card, error)
	GetByNumber(ctx context.Context, cardNumber string) (*Card, error)
	GetByAccountID(ctx context.Context, accountID ulid.ULID) ([]*Card, error)
	GetCreditCardByAccountID(ctx context.Context, accountID ulid.ULID) (*Card, error)

	// AdjustCreditUsed changes current_credit_used by delta inside the given
	// transaction handle so purchases and bill settlements stay atomic with
	// their ledger writes.
	AdjustCreditUsed(ctx context.Context, tx interface{}, cardID ulid.ULID, delta float64) error
}
