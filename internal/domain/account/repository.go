package account

import (
	"context"

	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, accountID ulid.ULID) (*Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (*Account, error)
	GetByCustomerID(ctx context.Context, customerID ulid.ULID, pagination *pkg.PaginationParams) ([]*Account, int64, error)
}
