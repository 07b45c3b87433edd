package attendance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_rule_repo.go -destination=mock/attendance_rule_repo_mock.go -package=mock
type RuleRepository interface {
	WithTx(tx *gorm.DB) RuleRepository

	Create(ctx context.Context, rule *AttendanceRule) error
	FindAll(ctx context.Context) ([]AttendanceRule, error)
	FindByID(ctx context.Context, id string) (*AttendanceRule, error)
	Update(ctx context.Context, rule *AttendanceRule) error
	Delete(ctx context.Context, id string) error

	FindAssignedToEmployee(ctx context.Context, employeeID string) ([]AttendanceRule, error)
	FindByDepartment(ctx context.Context, departmentID string) ([]AttendanceRule, error)
	FindDefault(ctx context.Context) (*AttendanceRule, error)

	PromoteDefault(ctx context.Context, id string) error
	ReplaceEmployees(ctx context.Context, rule *AttendanceRule, employeeIDs []uuid.UUID) error

	FindEmployeeRef(ctx context.Context, employeeID string) (*EmployeeRef, error)
}

type ruleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) WithTx(tx *gorm.DB) RuleRepository {
	return &ruleRepository{db: tx}
}

func (r *ruleRepository) Create(ctx context.Context, rule *AttendanceRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ruleRepository) FindAll(ctx context.Context) ([]AttendanceRule, error) {
	var rules []AttendanceRule
	err := r.db.WithContext(ctx).
		Preload("Employees").
		Order("priority DESC, created_at DESC").
		Find(&rules).Error
	return rules, err
}

func (r *ruleRepository) FindByID(ctx context.Context, id string) (*AttendanceRule, error) {
	var rule AttendanceRule
	err := r.db.WithContext(ctx).
		Preload("Employees").
		First(&rule, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *ruleRepository) Update(ctx context.Context, rule *AttendanceRule) error {
	return r.db.WithContext(ctx).
		Omit("Employees").
		Save(rule).Error
}

func (r *ruleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&AttendanceRule{}, "id = ?", id).Error
}

func (r *ruleRepository) FindAssignedToEmployee(ctx context.Context, employeeID string) ([]AttendanceRule, error) {
	var rules []AttendanceRule
	err := r.db.WithContext(ctx).
		Joins("JOIN attendance_rule_employees rel ON rel.attendance_rule_id = attendance_rules.id").
		Where("rel.employee_ref_id = ?", employeeID).
		Find(&rules).Error
	return rules, err
}

func (r *ruleRepository) FindByDepartment(ctx context.Context, departmentID string) ([]AttendanceRule, error) {
	var rules []AttendanceRule
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Find(&rules).Error
	return rules, err
}

func (r *ruleRepository) FindDefault(ctx context.Context) (*AttendanceRule, error) {
	var rule AttendanceRule
	err := r.db.WithContext(ctx).
		First(&rule, "is_default = ?", true).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// PromoteDefault swaps the default flag onto id in a single statement so no
// reader ever observes zero or two defaults.
func (r *ruleRepository) PromoteDefault(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Exec("UPDATE attendance_rules SET is_default = (id = ?), updated_at = NOW()", id).Error
}

func (r *ruleRepository) ReplaceEmployees(ctx context.Context, rule *AttendanceRule, employeeIDs []uuid.UUID) error {
	refs := make([]EmployeeRef, len(employeeIDs))
	for i, id := range employeeIDs {
		refs[i] = EmployeeRef{ID: id}
	}
	return r.db.WithContext(ctx).
		Model(rule).
		Association("Employees").
		Replace(&refs)
}

func (r *ruleRepository) FindEmployeeRef(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		First(&ref, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
