package salarystructure

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	salarystructureerrors "hr-admin/internal/salarystructure/errors"
)

// Resolver answers "which salary structure applies to this employee on this
// date". Candidates are searched one scope at a time, employee assignments
// first, then the employee's department, then the global default. The first
// scope that yields any valid assignment wins and wider scopes are never
// consulted.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// WithTx rebinds the resolver to a transaction-scoped repository.
func (r *Resolver) WithTx(tx *gorm.DB) *Resolver {
	return &Resolver{repo: r.repo.WithTx(tx)}
}

// Resolve returns the winning assignment for the employee on date, or
// ErrNoActiveAssignment when every scope comes up empty. The lookup never
// mutates state, so resolving the same inputs twice returns the same row.
func (r *Resolver) Resolve(ctx context.Context, employeeID string, date time.Time) (*SalaryStructureAssignment, error) {
	ref, err := r.repo.FindEmployeeRef(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salarystructureerrors.ErrEmployeeNotFound
		}
		return nil, err
	}

	candidates, err := r.repo.FindValidByEmployee(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if winner := pickAssignment(candidates); winner != nil {
		return winner, nil
	}

	if ref.DepartmentID != nil {
		candidates, err = r.repo.FindValidByDepartment(ctx, ref.DepartmentID.String(), date)
		if err != nil {
			return nil, err
		}
		if winner := pickAssignment(candidates); winner != nil {
			return winner, nil
		}
	}

	candidates, err = r.repo.FindValidDefault(ctx, date)
	if err != nil {
		return nil, err
	}
	if winner := pickAssignment(candidates); winner != nil {
		return winner, nil
	}

	return nil, salarystructureerrors.ErrNoActiveAssignment
}

// pickAssignment breaks ties within a scope: the latest effective date wins,
// and between assignments sharing that date the greatest id wins so the
// outcome stays deterministic.
func pickAssignment(candidates []SalaryStructureAssignment) *SalaryStructureAssignment {
	var winner *SalaryStructureAssignment
	for i := range candidates {
		c := &candidates[i]
		if winner == nil {
			winner = c
			continue
		}
		if c.EffectiveDate.After(winner.EffectiveDate) {
			winner = c
			continue
		}
		if c.EffectiveDate.Equal(winner.EffectiveDate) && c.ID.String() > winner.ID.String() {
			winner = c
		}
	}
	return winner
}
