package infrastructure

import (
	"context"
	"time"

	"Corebank/internal/domain/customer"
	"Corebank/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	DB *gorm.DB
}

type customerDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Phone     string    `gorm:"type:varchar(20)"`
	Address   string    `gorm:"type:varchar(255)"`
	KycStatus string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (customerDB) TableName() string {
	return "customers"
}

func toDomainCustomer(cdb *customerDB) (*customer.Customer, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}

	return &customer.Customer{
		Id:        id,
		Name:      cdb.Name,
		Email:     cdb.Email,
		Phone:     cdb.Phone,
		Address:   cdb.Address,
		KycStatus: customer.KycStatus(cdb.KycStatus),
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBCustomer(c *customer.Customer) *customerDB {
	return &customerDB{
		Id:        c.Id.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		KycStatus: string(c.KycStatus),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return r.DB.WithContext(ctx).Table("customers").Create(toDBCustomer(c)).Error
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	cdb := toDBCustomer(c)
	return r.DB.WithContext(ctx).Model(&customerDB{}).Where("id = ?", cdb.Id).Updates(cdb).Error
}

func (r *CustomerRepository) GetByID(ctx context.Context, customerID ulid.ULID) (*customer.Customer, error) {
	var cdb customerDB
	err := r.DB.WithContext(ctx).Where("id = ?", customerID.String()).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCustomer(&cdb)
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var cdb customerDB
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&cdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainCustomer(&cdb)
}

func (r *CustomerRepository) List(ctx context.Context, pagination *pkg.PaginationParams) ([]*customer.Customer, int64, error) {
	baseQuery := r.DB.WithContext(ctx).Table("customers")
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainCustomer)
}
