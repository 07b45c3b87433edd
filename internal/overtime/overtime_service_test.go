package overtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hr-admin/internal/overtime"
	overtimeerrors "hr-admin/internal/overtime/errors"
)

type fakeOvertimeRepository struct {
	createFn              func(ctx context.Context, o *overtime.Overtime) error
	findAllFn             func(ctx context.Context, filter overtime.ListFilter) ([]overtime.Overtime, error)
	findByIDFn            func(ctx context.Context, id string) (*overtime.Overtime, error)
	updateFn              func(ctx context.Context, o *overtime.Overtime) error
	deleteFn              func(ctx context.Context, id string) error
	employeeExistsFn      func(ctx context.Context, employeeID string) (bool, error)
	findApprovedInRangeFn func(ctx context.Context, employeeID string, start, end time.Time) ([]overtime.Overtime, error)
}

func (f *fakeOvertimeRepository) WithTx(tx *gorm.DB) overtime.Repository { return f }

func (f *fakeOvertimeRepository) Create(ctx context.Context, o *overtime.Overtime) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, o)
}

func (f *fakeOvertimeRepository) FindAll(ctx context.Context, filter overtime.ListFilter) ([]overtime.Overtime, error) {
	if f.findAllFn == nil {
		return nil, nil
	}
	return f.findAllFn(ctx, filter)
}

func (f *fakeOvertimeRepository) FindByID(ctx context.Context, id string) (*overtime.Overtime, error) {
	if f.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeOvertimeRepository) Update(ctx context.Context, o *overtime.Overtime) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, o)
}

func (f *fakeOvertimeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeOvertimeRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn == nil {
		return true, nil
	}
	return f.employeeExistsFn(ctx, employeeID)
}

func (f *fakeOvertimeRepository) FindApprovedInRange(ctx context.Context, employeeID string, start, end time.Time) ([]overtime.Overtime, error) {
	if f.findApprovedInRangeFn == nil {
		return nil, nil
	}
	return f.findApprovedInRangeFn(ctx, employeeID, start, end)
}

type overtimeServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	service overtime.Service
	repo    *fakeOvertimeRepository
}

func setupOvertimeServiceTest(t *testing.T) *overtimeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	repo := &fakeOvertimeRepository{}
	svc := overtime.NewService(gormDB, repo)

	return &overtimeServiceDeps{sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingOvertime(id, employeeID uuid.UUID) *overtime.Overtime {
	return &overtime.Overtime{
		ID:         id,
		EmployeeID: employeeID,
		StartTime:  time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 6, 2, 21, 0, 0, 0, time.UTC),
		Reason:     "release night",
		Status:     overtime.StatusPending,
	}
}

func TestOvertimeService_Create(t *testing.T) {
	t.Run("creates a pending request with computed hours", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)
		employeeID := uuid.New()

		var created *overtime.Overtime
		deps.repo.createFn = func(ctx context.Context, o *overtime.Overtime) error {
			created = o
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(context.Background(), overtime.CreateOvertimeRequest{
			EmployeeID: employeeID.String(),
			StartTime:  "2025-06-02 18:00:00",
			EndTime:    "2025-06-02 20:30:00",
			Reason:     "release night",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, overtime.StatusPending, resp.Status)
		assert.Equal(t, "2.50", resp.Hours)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)

		_, err := deps.service.Create(context.Background(), overtime.CreateOvertimeRequest{
			EmployeeID: uuid.NewString(),
			StartTime:  "2025-06-02 21:00:00",
			EndTime:    "2025-06-02 18:00:00",
		})
		assert.ErrorIs(t, err, overtimeerrors.ErrInvalidTimeRange)
	})

	t.Run("rejects a malformed timestamp", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)

		_, err := deps.service.Create(context.Background(), overtime.CreateOvertimeRequest{
			EmployeeID: uuid.NewString(),
			StartTime:  "2025-06-02T18:00:00Z",
			EndTime:    "2025-06-02 21:00:00",
		})
		assert.ErrorIs(t, err, overtimeerrors.ErrInvalidTimeFormat)
	})

	t.Run("rejects an unknown employee", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)
		deps.repo.employeeExistsFn = func(ctx context.Context, employeeID string) (bool, error) {
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, o *overtime.Overtime) error {
			t.Fatal("create must not run for an unknown employee")
			return nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(context.Background(), overtime.CreateOvertimeRequest{
			EmployeeID: uuid.NewString(),
			StartTime:  "2025-06-02 18:00:00",
			EndTime:    "2025-06-02 21:00:00",
		})
		assert.ErrorIs(t, err, overtimeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestOvertimeService_Transitions(t *testing.T) {
	t.Run("approve stamps the approver", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)
		overtimeID := uuid.New()
		actorID := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*overtime.Overtime, error) {
			return pendingOvertime(overtimeID, uuid.New()), nil
		}
		var updated *overtime.Overtime
		deps.repo.updateFn = func(ctx context.Context, o *overtime.Overtime) error {
			updated = o
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Approve(context.Background(), actorID.String(), overtimeID.String())

		assert.NoError(t, err)
		assert.Equal(t, overtime.StatusApproved, resp.Status)
		assert.NotNil(t, updated)
		assert.Equal(t, actorID, *updated.ApprovedBy)
		assert.NotNil(t, updated.ApprovedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("a decided request cannot be decided again", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)
		overtimeID := uuid.New()

		decided := pendingOvertime(overtimeID, uuid.New())
		decided.Status = overtime.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*overtime.Overtime, error) {
			return decided, nil
		}
		deps.repo.updateFn = func(ctx context.Context, o *overtime.Overtime) error {
			t.Fatal("update must not run for a decided request")
			return nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Reject(context.Background(), uuid.NewString(), overtimeID.String())
		assert.ErrorIs(t, err, overtimeerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestOvertimeService_UpdateDelete(t *testing.T) {
	t.Run("update rewrites a pending window", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)
		overtimeID := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*overtime.Overtime, error) {
			return pendingOvertime(overtimeID, uuid.New()), nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Update(context.Background(), overtimeID.String(), overtime.UpdateOvertimeRequest{
			StartTime: "2025-06-03 18:00:00",
			EndTime:   "2025-06-03 22:00:00",
			Reason:    "release slipped a day",
		})

		assert.NoError(t, err)
		assert.Equal(t, "4.00", resp.Hours)
		assert.Equal(t, "release slipped a day", resp.Reason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("approved requests are frozen", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)
		overtimeID := uuid.New()

		approved := pendingOvertime(overtimeID, uuid.New())
		approved.Status = overtime.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*overtime.Overtime, error) {
			return approved, nil
		}
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			t.Fatal("delete must not run for an approved request")
			return nil
		}

		expectTx(t, deps.sqlMock, false)

		err := deps.service.Delete(context.Background(), overtimeID.String())
		assert.ErrorIs(t, err, overtimeerrors.ErrOvertimeNotEditable)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("delete removes a pending request", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)
		overtimeID := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*overtime.Overtime, error) {
			return pendingOvertime(overtimeID, uuid.New()), nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		err := deps.service.Delete(context.Background(), overtimeID.String())
		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestOvertimeService_ApprovedHours(t *testing.T) {
	t.Run("totals only approved windows in range", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)
		employeeID := uuid.New()

		deps.repo.findApprovedInRangeFn = func(ctx context.Context, id string, start, end time.Time) ([]overtime.Overtime, error) {
			assert.Equal(t, employeeID.String(), id)
			assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), start)
			return []overtime.Overtime{
				{
					StartTime: time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2025, 6, 2, 20, 30, 0, 0, time.UTC),
					Status:    overtime.StatusApproved,
				},
				{
					StartTime: time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC),
					Status:    overtime.StatusApproved,
				},
			}, nil
		}

		resp, err := deps.service.ApprovedHours(context.Background(), overtime.ApprovedHoursRequest{
			EmployeeID: employeeID.String(),
			StartDate:  "2025-06-01",
			EndDate:    "2025-06-30",
		})

		assert.NoError(t, err)
		assert.Equal(t, "6.50", resp.TotalHours)
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		deps := setupOvertimeServiceTest(t)

		_, err := deps.service.ApprovedHours(context.Background(), overtime.ApprovedHoursRequest{
			EmployeeID: uuid.NewString(),
			StartDate:  "2025-06-30",
			EndDate:    "2025-06-01",
		})
		assert.ErrorIs(t, err, overtimeerrors.ErrInvalidTimeRange)
	})
}
