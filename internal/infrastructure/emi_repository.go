package infrastructure

import (
	"context"
	"time"

	"Corebank/internal/domain/emi"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type EmiRepository struct {
	DB *gorm.DB
}

type emiPlanDB struct {
	Id                 string    `gorm:"type:varchar(26);primaryKey"`
	TransactionId      string    `gorm:"type:varchar(26);uniqueIndex;not null"`
	CardId             string    `gorm:"type:varchar(26);index;not null"`
	AccountId          string    `gorm:"type:varchar(26);index;not null"`
	PrincipalAmount    float64   `gorm:"type:decimal(15,2);not null"`
	AnnualInterestRate float64   `gorm:"type:decimal(8,5);not null"`
	ProcessingFee      float64   `gorm:"type:decimal(15,2);not null"`
	MonthlyInstallment float64   `gorm:"type:decimal(15,2);not null"`
	TenureMonths       int       `gorm:"not null"`
	TotalPayable       float64   `gorm:"type:decimal(15,2);not null"`
	Status             string    `gorm:"type:varchar(10);not null"`
	StartDate          time.Time `gorm:"not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (emiPlanDB) TableName() string {
	return "emi_plans"
}

type emiScheduleDB struct {
	Id                 string     `gorm:"type:varchar(26);primaryKey"`
	PlanId             string     `gorm:"type:varchar(26);index;not null"`
	InstallmentNumber  int        `gorm:"not null"`
	DueDate            time.Time  `gorm:"not null;index"`
	InstallmentAmount  float64    `gorm:"type:decimal(15,2);not null"`
	PrincipalComponent float64    `gorm:"type:decimal(15,2);not null"`
	InterestComponent  float64    `gorm:"type:decimal(15,2);not null"`
	Status             string     `gorm:"type:varchar(10);not null"`
	PaidDate           *time.Time `gorm:""`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

func (emiScheduleDB) TableName() string {
	return "emi_schedule_entries"
}

func toDomainPlan(pdb *emiPlanDB) (*emi.Plan, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}
	transactionID, err := pkg.ParseULID(pdb.TransactionId)
	if err != nil {
		return nil, err
	}
	cardID, err := pkg.ParseULID(pdb.CardId)
	if err != nil {
		return nil, err
	}
	accountID, err := pkg.ParseULID(pdb.AccountId)
	if err != nil {
		return nil, err
	}

	return &emi.Plan{
		Id:                 id,
		TransactionId:      transactionID,
		CardId:             cardID,
		AccountId:          accountID,
		PrincipalAmount:    pdb.PrincipalAmount,
		AnnualInterestRate: pdb.AnnualInterestRate,
		ProcessingFee:      pdb.ProcessingFee,
		MonthlyInstallment: pdb.MonthlyInstallment,
		TenureMonths:       pdb.TenureMonths,
		TotalPayable:       pdb.TotalPayable,
		Status:             emi.PlanStatus(pdb.Status),
		StartDate:          pdb.StartDate,
		CreatedAt:          pdb.CreatedAt,
		UpdatedAt:          pdb.UpdatedAt,
	}, nil
}

func toDBPlan(p *emi.Plan) *emiPlanDB {
	return &emiPlanDB{
		Id:                 p.Id.String(),
		TransactionId:      p.TransactionId.String(),
		CardId:             p.CardId.String(),
		AccountId:          p.AccountId.String(),
		PrincipalAmount:    p.PrincipalAmount,
		AnnualInterestRate: p.AnnualInterestRate,
		ProcessingFee:      p.ProcessingFee,
		MonthlyInstallment: p.MonthlyInstallment,
		TenureMonths:       p.TenureMonths,
		TotalPayable:       p.TotalPayable,
		Status:             string(p.Status),
		StartDate:          p.StartDate,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toDomainScheduleEntry(sdb *emiScheduleDB) (*emi.ScheduleEntry, error) {
	id, err := pkg.ParseULID(sdb.Id)
	if err != nil {
		return nil, err
	}
	planID, err := pkg.ParseULID(sdb.PlanId)
	if err != nil {
		return nil, err
	}

	return &emi.ScheduleEntry{
		Id:                 id,
		PlanId:             planID,
		InstallmentNumber:  sdb.InstallmentNumber,
		DueDate:            sdb.DueDate,
		InstallmentAmount:  sdb.InstallmentAmount,
		PrincipalComponent: sdb.PrincipalComponent,
		InterestComponent:  sdb.InterestComponent,
		Status:             emi.EntryStatus(sdb.Status),
		PaidDate:           sdb.PaidDate,
		CreatedAt:          sdb.CreatedAt,
		UpdatedAt:          sdb.UpdatedAt,
	}, nil
}

func toDBScheduleEntry(e *emi.ScheduleEntry) *emiScheduleDB {
	return &emiScheduleDB{
		Id:                 e.Id.String(),
		PlanId:             e.PlanId.String(),
		InstallmentNumber:  e.InstallmentNumber,
		DueDate:            e.DueDate,
		InstallmentAmount:  e.InstallmentAmount,
		PrincipalComponent: e.PrincipalComponent,
		InterestComponent:  e.InterestComponent,
		Status:             string(e.Status),
		PaidDate:           e.PaidDate,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func (r *EmiRepository) resolve(tx interface{}) *gorm.DB {
	if tx != nil {
		return tx.(*gorm.DB)
	}
	return r.DB
}

func (r *EmiRepository) CreatePlan(ctx context.Context, tx interface{}, plan *emi.Plan) error {
	return r.resolve(tx).WithContext(ctx).Table("emi_plans").Create(toDBPlan(plan)).Error
}

func (r *EmiRepository) CreateScheduleEntries(ctx context.Context, tx interface{}, entries []*emi.ScheduleEntry) error {
	rows := make([]*emiScheduleDB, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, toDBScheduleEntry(entry))
	}
	return r.resolve(tx).WithContext(ctx).Table("emi_schedule_entries").Create(rows).Error
}

func (r *EmiRepository) UpdateScheduleEntry(ctx context.Context, tx interface{}, entry *emi.ScheduleEntry) error {
	sdb := toDBScheduleEntry(entry)
	return r.resolve(tx).WithContext(ctx).Model(&emiScheduleDB{}).Where("id = ?", sdb.Id).Updates(sdb).Error
}

func (r *EmiRepository) UpdatePlanStatus(ctx context.Context, tx interface{}, planID ulid.ULID, status emi.PlanStatus) error {
	return r.resolve(tx).WithContext(ctx).Model(&emiPlanDB{}).Where("id = ?", planID.String()).
		UpdateColumn("status", string(status)).
		UpdateColumn("updated_at", time.Now()).Error
}

func (r *EmiRepository) GetPlanByID(ctx context.Context, planID ulid.ULID) (*emi.Plan, error) {
	var pdb emiPlanDB
	err := r.DB.WithContext(ctx).Where("id = ?", planID.String()).First(&pdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainPlan(&pdb)
}

func (r *EmiRepository) GetPlansByAccountID(ctx context.Context, accountID ulid.ULID, pagination *pkg.PaginationParams) ([]*emi.Plan, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("emi_plans").Where("account_id = ?", accountID.String())
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainPlan)
}

func (r *EmiRepository) GetSchedule(ctx context.Context, planID ulid.ULID) ([]*emi.ScheduleEntry, error) {
	var rows []emiScheduleDB
	err := r.DB.WithContext(ctx).Where("plan_id = ?", planID.String()).
		Order("installment_number ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainScheduleEntries(rows)
}

func (r *EmiRepository) FindPendingDueOnOrBefore(ctx context.Context, date time.Time) ([]*emi.ScheduleEntry, error) {
	var rows []emiScheduleDB
	err := r.DB.WithContext(ctx).
		Where("status = ? AND due_date <= ?", string(emi.EntryPending), date).
		Order("due_date ASC, installment_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainScheduleEntries(rows)
}

func (r *EmiRepository) CountPendingByPlan(ctx context.Context, planID ulid.ULID) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&emiScheduleDB{}).
		Where("plan_id = ? AND status = ?", planID.String(), string(emi.EntryPending)).
		Count(&count).Error
	return count, err
}

func toDomainScheduleEntries(rows []emiScheduleDB) ([]*emi.ScheduleEntry, error) {
	out := make([]*emi.ScheduleEntry, 0, len(rows))
	for i := range rows {
		entry, err := toDomainScheduleEntry(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}
