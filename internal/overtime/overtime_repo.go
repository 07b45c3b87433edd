package overtime

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ListFilter narrows overtime listings. Zero values mean "any".
type ListFilter struct {
	EmployeeID string
	Status     string
}

//go:generate mockgen -source=overtime_repo.go -destination=mock/overtime_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, o *Overtime) error
	FindAll(ctx context.Context, filter ListFilter) ([]Overtime, error)
	FindByID(ctx context.Context, id string) (*Overtime, error)
	Update(ctx context.Context, o *Overtime) error
	Delete(ctx context.Context, id string) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	FindApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Overtime, error)
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

func (r *repository) Create(ctx context.Context, o *Overtime) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Overtime, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Order("created_at DESC")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var overtimes []Overtime
	err := q.Find(&overtimes).Error
	return overtimes, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Overtime, error) {
	var o Overtime
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Update(ctx context.Context, o *Overtime) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Overtime{}, "id = ?", id).Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

// FindApprovedInRange returns approved requests whose window touches
// [start, end]. Pending and rejected requests never contribute hours.
func (r *repository) FindApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]Overtime, error) {
	var overtimes []Overtime
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("start_time <= ? AND end_time >= ?", end, start).
		Find(&overtimes).Error
	return overtimes, err
}
