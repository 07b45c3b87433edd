package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"hr-admin/internal/attendance"
	attendanceerrors "hr-admin/internal/attendance/errors"
)

type fakeRuleRepository struct {
	withTxFn                 func(tx *gorm.DB) attendance.RuleRepository
	createFn                 func(ctx context.Context, rule *attendance.AttendanceRule) error
	findAllFn                func(ctx context.Context) ([]attendance.AttendanceRule, error)
	findByIDFn               func(ctx context.Context, id string) (*attendance.AttendanceRule, error)
	updateFn                 func(ctx context.Context, rule *attendance.AttendanceRule) error
	deleteFn                 func(ctx context.Context, id string) error
	findAssignedToEmployeeFn func(ctx context.Context, employeeID string) ([]attendance.AttendanceRule, error)
	findByDepartmentFn       func(ctx context.Context, departmentID string) ([]attendance.AttendanceRule, error)
	findDefaultFn            func(ctx context.Context) (*attendance.AttendanceRule, error)
	promoteDefaultFn         func(ctx context.Context, id string) error
	replaceEmployeesFn       func(ctx context.Context, rule *attendance.AttendanceRule, employeeIDs []uuid.UUID) error
	findEmployeeRefFn        func(ctx context.Context, employeeID string) (*attendance.EmployeeRef, error)
}

func (f *fakeRuleRepository) WithTx(tx *gorm.DB) attendance.RuleRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRuleRepository) Create(ctx context.Context, rule *attendance.AttendanceRule) error {
	if f.createFn != nil {
		return f.createFn(ctx, rule)
	}
	return nil
}

func (f *fakeRuleRepository) FindAll(ctx context.Context) ([]attendance.AttendanceRule, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeRuleRepository) FindByID(ctx context.Context, id string) (*attendance.AttendanceRule, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &attendance.AttendanceRule{ID: uuid.MustParse(id)}, nil
}

func (f *fakeRuleRepository) Update(ctx context.Context, rule *attendance.AttendanceRule) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, rule)
	}
	return nil
}

func (f *fakeRuleRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeRuleRepository) FindAssignedToEmployee(ctx context.Context, employeeID string) ([]attendance.AttendanceRule, error) {
	if f.findAssignedToEmployeeFn != nil {
		return f.findAssignedToEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeRuleRepository) FindByDepartment(ctx context.Context, departmentID string) ([]attendance.AttendanceRule, error) {
	if f.findByDepartmentFn != nil {
		return f.findByDepartmentFn(ctx, departmentID)
	}
	return nil, nil
}

func (f *fakeRuleRepository) FindDefault(ctx context.Context) (*attendance.AttendanceRule, error) {
	if f.findDefaultFn != nil {
		return f.findDefaultFn(ctx)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRuleRepository) PromoteDefault(ctx context.Context, id string) error {
	if f.promoteDefaultFn != nil {
		return f.promoteDefaultFn(ctx, id)
	}
	return nil
}

func (f *fakeRuleRepository) ReplaceEmployees(ctx context.Context, rule *attendance.AttendanceRule, employeeIDs []uuid.UUID) error {
	if f.replaceEmployeesFn != nil {
		return f.replaceEmployeesFn(ctx, rule, employeeIDs)
	}
	return nil
}

func (f *fakeRuleRepository) FindEmployeeRef(ctx context.Context, employeeID string) (*attendance.EmployeeRef, error) {
	if f.findEmployeeRefFn != nil {
		return f.findEmployeeRefFn(ctx, employeeID)
	}
	return &attendance.EmployeeRef{ID: uuid.MustParse(employeeID)}, nil
}

func validRule(priority int, createdAt time.Time) attendance.AttendanceRule {
	return attendance.AttendanceRule{
		ID:                 uuid.New(),
		WorkStartTime:      "09:00",
		WorkEndTime:        "18:00",
		Priority:           priority,
		EffectiveStartDate: date("2026-01-01"),
		CreatedAt:          createdAt,
	}
}

func TestRuleResolver_ScopePrecedence(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	departmentID := uuid.New()
	target := date("2026-03-15")

	assigned := validRule(0, date("2026-01-02"))
	departmental := validRule(5, date("2026-01-02"))
	fallback := validRule(0, date("2026-01-02"))
	fallback.IsDefault = true

	repo := &fakeRuleRepository{
		findEmployeeRefFn: func(ctx context.Context, id string) (*attendance.EmployeeRef, error) {
			return &attendance.EmployeeRef{ID: employeeID, DepartmentID: &departmentID}, nil
		},
	}
	resolver := attendance.NewRuleResolver(repo)

	t.Run("directly assigned rule wins even at lower priority", func(t *testing.T) {
		repo.findAssignedToEmployeeFn = func(ctx context.Context, id string) ([]attendance.AttendanceRule, error) {
			return []attendance.AttendanceRule{assigned}, nil
		}
		repo.findByDepartmentFn = func(ctx context.Context, id string) ([]attendance.AttendanceRule, error) {
			t.Fatal("department rules must not be consulted when a direct assignment matches")
			return nil, nil
		}

		got, err := resolver.Resolve(ctx, employeeID.String(), target)

		assert.NoError(t, err)
		assert.Equal(t, assigned.ID, got.ID)
	})

	t.Run("department rule when no direct assignment is valid", func(t *testing.T) {
		expired := validRule(10, date("2025-01-02"))
		end := date("2025-12-31")
		expired.EffectiveEndDate = &end

		repo.findAssignedToEmployeeFn = func(ctx context.Context, id string) ([]attendance.AttendanceRule, error) {
			return []attendance.AttendanceRule{expired}, nil
		}
		repo.findByDepartmentFn = func(ctx context.Context, id string) ([]attendance.AttendanceRule, error) {
			assert.Equal(t, departmentID.String(), id)
			return []attendance.AttendanceRule{departmental}, nil
		}

		got, err := resolver.Resolve(ctx, employeeID.String(), target)

		assert.NoError(t, err)
		assert.Equal(t, departmental.ID, got.ID)
	})

	t.Run("default rule as last resort", func(t *testing.T) {
		repo.findAssignedToEmployeeFn = nil
		repo.findByDepartmentFn = nil
		repo.findDefaultFn = func(ctx context.Context) (*attendance.AttendanceRule, error) {
			return &fallback, nil
		}

		got, err := resolver.Resolve(ctx, employeeID.String(), target)

		assert.NoError(t, err)
		assert.Equal(t, fallback.ID, got.ID)
	})

	t.Run("expired default does not apply", func(t *testing.T) {
		expiredDefault := fallback
		end := date("2026-02-01")
		expiredDefault.EffectiveEndDate = &end
		repo.findDefaultFn = func(ctx context.Context) (*attendance.AttendanceRule, error) {
			return &expiredDefault, nil
		}

		got, err := resolver.Resolve(ctx, employeeID.String(), target)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, attendanceerrors.ErrNoApplicableRule)
	})

	t.Run("nothing resolves", func(t *testing.T) {
		repo.findDefaultFn = nil

		got, err := resolver.Resolve(ctx, employeeID.String(), target)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, attendanceerrors.ErrNoApplicableRule)
	})
}

func TestRuleResolver_PrioritySelection(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	target := date("2026-03-15")

	repo := &fakeRuleRepository{
		findEmployeeRefFn: func(ctx context.Context, id string) (*attendance.EmployeeRef, error) {
			return &attendance.EmployeeRef{ID: employeeID}, nil
		},
	}
	resolver := attendance.NewRuleResolver(repo)

	t.Run("highest priority wins", func(t *testing.T) {
		low := validRule(1, date("2026-02-01"))
		high := validRule(9, date("2026-01-01"))

		repo.findAssignedToEmployeeFn = func(ctx context.Context, id string) ([]attendance.AttendanceRule, error) {
			return []attendance.AttendanceRule{low, high}, nil
		}

		got, err := resolver.Resolve(ctx, employeeID.String(), target)

		assert.NoError(t, err)
		assert.Equal(t, high.ID, got.ID)
	})

	t.Run("most recently created wins at equal priority", func(t *testing.T) {
		older := validRule(5, date("2026-01-01"))
		newer := validRule(5, date("2026-02-01"))

		repo.findAssignedToEmployeeFn = func(ctx context.Context, id string) ([]attendance.AttendanceRule, error) {
			return []attendance.AttendanceRule{older, newer}, nil
		}

		got, err := resolver.Resolve(ctx, employeeID.String(), target)

		assert.NoError(t, err)
		assert.Equal(t, newer.ID, got.ID)
	})
}
