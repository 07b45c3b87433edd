package payroll

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// RecordFilter narrows salary record listings. Zero values mean "any".
type RecordFilter struct {
	EmployeeID    string
	Year          int
	Month         int
	PaymentStatus string
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, record *SalaryRecord) error
	FindAll(ctx context.Context, filter RecordFilter) ([]SalaryRecord, error)
	FindByID(ctx context.Context, id string) (*SalaryRecord, error)
	FindByEmployeeAndPeriod(ctx context.Context, employeeID string, year, month int) (*SalaryRecord, error)
	Update(ctx context.Context, record *SalaryRecord) error
	MarkAsPaid(ctx context.Context, id string, paidAt time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *SalaryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindAll(ctx context.Context, filter RecordFilter) ([]SalaryRecord, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Order("year DESC, month DESC")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Year != 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Month != 0 {
		q = q.Where("month = ?", filter.Month)
	}
	if filter.PaymentStatus != "" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}

	var records []SalaryRecord
	err := q.Find(&records).Error
	return records, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryRecord, error) {
	var record SalaryRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindByEmployeeAndPeriod(
	ctx context.Context,
	employeeID string,
	year, month int,
) (*SalaryRecord, error) {
	var record SalaryRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Where("month = ?", month).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) Update(ctx context.Context, record *SalaryRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// MarkAsPaid flips a pending record to paid in one guarded statement. The
// returned count is zero when the record was already paid or missing, so the
// caller can distinguish a lost race from success.
func (r *repository) MarkAsPaid(ctx context.Context, id string, paidAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&SalaryRecord{}).
		Where("id = ?", id).
		Where("payment_status <> ?", PaymentStatusPaid).
		Updates(map[string]interface{}{
			"payment_status": PaymentStatusPaid,
			"paid_at":        paidAt,
		})
	return res.RowsAffected, res.Error
}
