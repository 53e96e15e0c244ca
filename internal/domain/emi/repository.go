package emi

import (
	"context"
	"time"

	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// Repository persists plans and their schedules. Write methods accept an
// open transaction handle so conversion and installment collection stay
// atomic with their ledger writes.
type Repository interface {
	CreatePlan(ctx context.Context, tx interface{}, plan *Plan) error
	CreateScheduleEntries(ctx context.Context, tx interface{}, entries []*ScheduleEntry) error
	UpdateScheduleEntry(ctx context.Context, tx interface{}, entry *ScheduleEntry) error
	UpdatePlanStatus(ctx context.Context, tx interface{}, planID ulid.ULID, status PlanStatus) error

	GetPlanByID(ctx context.Context, planID ulid.ULID) (*Plan, error)
	GetPlansByAccountID(ctx context.Context, accountID ulid.ULID, pagination *pkg.PaginationParams) ([]*Plan, int64, error)
	GetSchedule(ctx context.Context, planID ulid.ULID) ([]*ScheduleEntry, error)

	// FindPendingDueOnOrBefore lists PENDING installments whose due date has
	// arrived, ordered by due date then installment number.
	FindPendingDueOnOrBefore(ctx context.Context, date time.Time) ([]*ScheduleEntry, error)
	CountPendingByPlan(ctx context.Context, planID ulid.ULID) (int64, error)
}
