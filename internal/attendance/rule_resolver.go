package attendance

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	attendanceerrors "hr-admin/internal/attendance/errors"
)

// RuleResolver selects the attendance rule in force for an employee on a
// date. Directly assigned rules are checked first, then the employee's
// department rules, then the global default. Resolution is read-only.
type RuleResolver struct {
	repo RuleRepository
}

func NewRuleResolver(repo RuleRepository) *RuleResolver {
	return &RuleResolver{repo: repo}
}

func (r *RuleResolver) WithTx(tx *gorm.DB) *RuleResolver {
	return &RuleResolver{repo: r.repo.WithTx(tx)}
}

// Resolve returns the winning rule or ErrNoApplicableRule. Callers must not
// substitute a zero-threshold rule when nothing resolves; classification
// without a rule is meaningless.
func (r *RuleResolver) Resolve(ctx context.Context, employeeID string, date time.Time) (*AttendanceRule, error) {
	ref, err := r.repo.FindEmployeeRef(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	assigned, err := r.repo.FindAssignedToEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if winner := pickRule(assigned, date); winner != nil {
		return winner, nil
	}

	if ref.DepartmentID != nil {
		departmental, err := r.repo.FindByDepartment(ctx, ref.DepartmentID.String())
		if err != nil {
			return nil, err
		}
		if winner := pickRule(departmental, date); winner != nil {
			return winner, nil
		}
	}

	fallback, err := r.repo.FindDefault(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrNoApplicableRule
		}
		return nil, err
	}
	if fallback.IsValidForDate(date) {
		return fallback, nil
	}

	return nil, attendanceerrors.ErrNoApplicableRule
}

// pickRule filters candidates by validity on date and breaks ties: highest
// priority first, then the most recently created, then the greatest id.
func pickRule(candidates []AttendanceRule, date time.Time) *AttendanceRule {
	var winner *AttendanceRule
	for i := range candidates {
		c := &candidates[i]
		if !c.IsValidForDate(date) {
			continue
		}
		if winner == nil || ruleBeats(c, winner) {
			winner = c
		}
	}
	return winner
}

func ruleBeats(a, b *AttendanceRule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}
