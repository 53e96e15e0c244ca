package transfer

import (
	"context"

	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type RequestRepository interface {
	Create(ctx context.Context, request *MoneyRequest) error
	Update(ctx context.Context, request *MoneyRequest) error
	GetByID(ctx context.Context, requestID ulid.ULID) (*MoneyRequest, error)
	GetByAccount(ctx context.Context, accountNumber string, pagination *pkg.PaginationParams) ([]*MoneyRequest, int64, error)
}
