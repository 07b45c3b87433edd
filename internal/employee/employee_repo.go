package employee

import (
	"context"

	"gorm.io/gorm"
)

// ListFilter narrows employee listings. Zero values mean "any".
type ListFilter struct {
	DepartmentID     string
	EmploymentStatus string
	Search           string
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, filter ListFilter) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	DepartmentExists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, error) {
	q := r.db.WithContext(ctx).
		Preload("Department").
		Order("employee_number ASC")
	if filter.DepartmentID != "" {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.EmploymentStatus != "" {
		q = q.Where("employment_status = ?", filter.EmploymentStatus)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("full_name ILIKE ? OR employee_number ILIKE ?", pattern, pattern)
	}

	var empls []Employee
	err := q.Find(&empls).Error
	return empls, err
}

// FindOptions returns the lean active-employee listing backing dropdowns.
func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "employee_number", "full_name", "department_id").
		Where("employment_status <> ?", EmploymentStatusResigned).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) DepartmentExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}
