package customer

import (
	"context"

	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Update(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, customerID ulid.ULID) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	List(ctx context.Context, pagination *pkg.PaginationParams) ([]*Customer, int64, error)
}
