package ledger

import (
	"context"
	"time"

	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Repository persists transactions and applies balance deltas. ApplyDelta and
// MarkEmiConverted accept an open transaction handle (the BeginTx result) so
// callers can group several writes into one atomic unit; nil means the
// repository opens and commits its own unit.
type Repository interface {
	BeginTx(ctx context.Context) (interface{}, error)
	CommitTx(tx interface{}) error
	RollbackTx(tx interface{}) error

	// ApplyDelta updates the account balance by delta and inserts txn in the
	// same atomic unit. Both writes commit together or not at all.
	ApplyDelta(ctx context.Context, tx interface{}, accountID ulid.ULID, delta float64, txn *Transaction) error

	// Create inserts an audit-only transaction without touching any balance.
	Create(ctx context.Context, tx interface{}, txn *Transaction) error

	// MarkEmiConverted flips is_emi_converted only when it is still false and
	// reports whether a row was updated.
	MarkEmiConverted(ctx context.Context, tx interface{}, transactionID ulid.ULID) (bool, error)

	GetByID(ctx context.Context, transactionID ulid.ULID) (*Transaction, error)
	GetByAccountID(ctx context.Context, accountID ulid.ULID, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	GetByCardAndDateRange(ctx context.Context, cardID ulid.ULID, from, to time.Time) ([]*Transaction, error)
}
