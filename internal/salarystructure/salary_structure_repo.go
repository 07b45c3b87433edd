package salarystructure

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_structure_repo.go -destination=mock/salary_structure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateStructure(ctx context.Context, structure *SalaryStructure) error
	FindAllStructures(ctx context.Context) ([]SalaryStructure, error)
	FindStructureByID(ctx context.Context, id string) (*SalaryStructure, error)
	UpdateStructure(ctx context.Context, structure *SalaryStructure) error
	DeleteStructure(ctx context.Context, id string) error
	CountAssignmentsByStructure(ctx context.Context, structureID string) (int64, error)

	CreateAssignment(ctx context.Context, assignment *SalaryStructureAssignment) error
	FindAllAssignments(ctx context.Context) ([]SalaryStructureAssignment, error)
	FindAssignmentByID(ctx context.Context, id string) (*SalaryStructureAssignment, error)
	UpdateAssignment(ctx context.Context, assignment *SalaryStructureAssignment) error
	DeactivateAssignment(ctx context.Context, id string) error

	FindValidByEmployee(ctx context.Context, employeeID string, date time.Time) ([]SalaryStructureAssignment, error)
	FindValidByDepartment(ctx context.Context, departmentID string, date time.Time) ([]SalaryStructureAssignment, error)
	FindValidDefault(ctx context.Context, date time.Time) ([]SalaryStructureAssignment, error)

	FindEmployeeRef(ctx context.Context, employeeID string) (*EmployeeRef, error)
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

func (r *repository) CreateStructure(ctx context.Context, structure *SalaryStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

func (r *repository) FindAllStructures(ctx context.Context) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	err := r.db.WithContext(ctx).
		Order("effective_date DESC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) FindStructureByID(ctx context.Context, id string) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.db.WithContext(ctx).
		First(&structure, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &structure, nil
}

func (r *repository) UpdateStructure(ctx context.Context, structure *SalaryStructure) error {
	return r.db.WithContext(ctx).Save(structure).Error
}

func (r *repository) DeleteStructure(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&SalaryStructure{}, "id = ?", id).Error
}

func (r *repository) CountAssignmentsByStructure(ctx context.Context, structureID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SalaryStructureAssignment{}).
		Where("salary_structure_id = ?", structureID).
		Count(&count).Error
	return count, err
}

func (r *repository) CreateAssignment(ctx context.Context, assignment *SalaryStructureAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *repository) FindAllAssignments(ctx context.Context) ([]SalaryStructureAssignment, error) {
	var assignments []SalaryStructureAssignment
	err := r.db.WithContext(ctx).
		Preload("SalaryStructure").
		Order("effective_date DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) FindAssignmentByID(ctx context.Context, id string) (*SalaryStructureAssignment, error) {
	var assignment SalaryStructureAssignment
	err := r.db.WithContext(ctx).
		Preload("SalaryStructure").
		First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) UpdateAssignment(ctx context.Context, assignment *SalaryStructureAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *repository) DeactivateAssignment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&SalaryStructureAssignment{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *repository) FindValidByEmployee(
	ctx context.Context,
	employeeID string,
	date time.Time,
) ([]SalaryStructureAssignment, error) {
	var assignments []SalaryStructureAssignment
	err := r.validScope(ctx, date).
		Where("employee_id = ?", employeeID).
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) FindValidByDepartment(
	ctx context.Context,
	departmentID string,
	date time.Time,
) ([]SalaryStructureAssignment, error) {
	var assignments []SalaryStructureAssignment
	err := r.validScope(ctx, date).
		Where("department_id = ?", departmentID).
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) FindValidDefault(
	ctx context.Context,
	date time.Time,
) ([]SalaryStructureAssignment, error) {
	var assignments []SalaryStructureAssignment
	err := r.validScope(ctx, date).
		Where("employee_id IS NULL").
		Where("department_id IS NULL").
		Where("is_default = ?", true).
		Find(&assignments).Error
	return assignments, err
}

// validScope applies the candidate filter shared by every resolution scope:
// active rows whose inclusive validity window contains date.
func (r *repository) validScope(ctx context.Context, date time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&SalaryStructureAssignment{}).
		Preload("SalaryStructure").
		Where("is_active = ?", true).
		Where("effective_date <= ?", date).
		Where("expiry_date IS NULL OR expiry_date >= ?", date)
}

func (r *repository) FindEmployeeRef(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		First(&ref, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
