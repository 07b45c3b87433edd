package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hr-admin/internal/leave"
	leaveerrors "hr-admin/internal/leave/errors"
)

type fakeLeaveRepository struct {
	createFn               func(ctx context.Context, l *leave.Leave) error
	findAllFn              func(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, error)
	findByIDFn             func(ctx context.Context, id string) (*leave.Leave, error)
	updateFn               func(ctx context.Context, l *leave.Leave) error
	employeeExistsFn       func(ctx context.Context, employeeID string) (bool, error)
	hasOverlappingPeriodFn func(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *gorm.DB) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, l)
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, filter leave.ListFilter) ([]leave.Leave, error) {
	if f.findAllFn == nil {
		return nil, nil
	}
	return f.findAllFn(ctx, filter)
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, l)
}

func (f *fakeLeaveRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn == nil {
		return true, nil
	}
	return f.employeeExistsFn(ctx, employeeID)
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn == nil {
		return false, nil
	}
	return f.hasOverlappingPeriodFn(ctx, employeeID, startDate, endDate, excludeID)
}

type leaveServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *fakeLeaveRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	svc := leave.NewService(gormDB, repo)

	return &leaveServiceDeps{sqlMock: sqlMock, service: svc, repo: repo}
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

func TestLeaveService_Create(t *testing.T) {
	t.Run("creates a pending request and counts inclusive days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		employeeID := uuid.New()

		var created *leave.Leave
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			created = l
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(context.Background(), leave.CreateLeaveRequest{
			EmployeeID: employeeID.String(),
			LeaveType:  leave.TypeAnnual,
			StartDate:  "2025-06-02",
			EndDate:    "2025-06-06",
			Reason:     "family trip",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 5, resp.TotalDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects an overlapping window", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, _ string, _, _ time.Time, _ *string) (bool, error) {
			return true, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.Leave) error {
			t.Fatal("create must not run for an overlapping window")
			return nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(context.Background(), leave.CreateLeaveRequest{
			EmployeeID: uuid.NewString(),
			LeaveType:  leave.TypeSick,
			StartDate:  "2025-06-02",
			EndDate:    "2025-06-06",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(context.Background(), leave.CreateLeaveRequest{
			EmployeeID: uuid.NewString(),
			LeaveType:  leave.TypeAnnual,
			StartDate:  "2025-06-06",
			EndDate:    "2025-06-02",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("rejects an unknown leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		_, err := deps.service.Create(context.Background(), leave.CreateLeaveRequest{
			EmployeeID: uuid.NewString(),
			LeaveType:  "sabbatical",
			StartDate:  "2025-06-02",
			EndDate:    "2025-06-06",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})

	t.Run("rejects an unknown employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)

		deps.repo.employeeExistsFn = func(ctx context.Context, _ string) (bool, error) {
			return false, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Create(context.Background(), leave.CreateLeaveRequest{
			EmployeeID: uuid.NewString(),
			LeaveType:  leave.TypeAnnual,
			StartDate:  "2025-06-02",
			EndDate:    "2025-06-06",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Transitions(t *testing.T) {
	pendingLeave := func(id uuid.UUID) *leave.Leave {
		return &leave.Leave{
			ID:         id,
			EmployeeID: uuid.New(),
			LeaveType:  leave.TypeAnnual,
			StartDate:  time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
			TotalDays:  5,
			Status:     leave.StatusPending,
		}
	}

	t.Run("approve stamps the approver", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		id := uuid.New()
		actor := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, _ string) (*leave.Leave, error) {
			return pendingLeave(id), nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Approve(context.Background(), actor.String(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, actor.String(), *resp.ApprovedBy)
		assert.NotNil(t, resp.ApprovedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		id := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, _ string) (*leave.Leave, error) {
			return pendingLeave(id), nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Reject(context.Background(), uuid.NewString(), id.String(), "")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject records the reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		id := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, _ string) (*leave.Leave, error) {
			return pendingLeave(id), nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Reject(context.Background(), uuid.NewString(), id.String(), "headcount freeze")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "headcount freeze", *resp.RejectionReason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("only pending requests can transition", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		id := uuid.New()

		approved := pendingLeave(id)
		approved.Status = leave.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, _ string) (*leave.Leave, error) {
			return approved, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.Leave) error {
			t.Fatal("a non-pending request must not be updated")
			return nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Cancel(context.Background(), id.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
