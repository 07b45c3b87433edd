package leave

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ListFilter narrows leave listings. Zero values mean "any".
type ListFilter struct {
	EmployeeID string
	Status     string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context, filter ListFilter) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Leave, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Order("start_date DESC")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var leaves []Leave
	err := q.Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

// HasOverlappingPeriod treats windows as inclusive on both ends. Rejected
// and cancelled requests do not block a new one.
func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []string{StatusRejected, StatusCancelled}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
