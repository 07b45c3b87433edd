package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hr-admin/internal/attendance"
	attendanceerrors "hr-admin/internal/attendance/errors"
)

type fakeRecordRepository struct {
	withTxFn                func(tx *gorm.DB) attendance.RecordRepository
	createFn                func(ctx context.Context, record *attendance.AttendanceRecord) error
	findAllFn               func(ctx context.Context, filter attendance.RecordFilter) ([]attendance.AttendanceRecord, error)
	findByIDFn              func(ctx context.Context, id string) (*attendance.AttendanceRecord, error)
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error)
	updateFn                func(ctx context.Context, record *attendance.AttendanceRecord) error
}

func (f *fakeRecordRepository) WithTx(tx *gorm.DB) attendance.RecordRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRecordRepository) Create(ctx context.Context, record *attendance.AttendanceRecord) error {
	if f.createFn != nil {
		return f.createFn(ctx, record)
	}
	return nil
}

func (f *fakeRecordRepository) FindAll(ctx context.Context, filter attendance.RecordFilter) ([]attendance.AttendanceRecord, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeRecordRepository) FindByID(ctx context.Context, id string) (*attendance.AttendanceRecord, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecordRepository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	if f.findByEmployeeAndDateFn != nil {
		return f.findByEmployeeAndDateFn(ctx, employeeID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecordRepository) Update(ctx context.Context, record *attendance.AttendanceRecord) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, record)
	}
	return nil
}

type recordServiceDeps struct {
	sqlMock  sqlmock.Sqlmock
	service  attendance.Service
	repo     *fakeRecordRepository
	ruleRepo *fakeRuleRepository
}

func setupRecordServiceTest(t *testing.T, employeeID uuid.UUID) *recordServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	ruleRepo := &fakeRuleRepository{
		findEmployeeRefFn: func(ctx context.Context, id string) (*attendance.EmployeeRef, error) {
			return &attendance.EmployeeRef{ID: employeeID}, nil
		},
		findDefaultFn: func(ctx context.Context) (*attendance.AttendanceRule, error) {
			rule := validRule(0, date("2026-01-01"))
			rule.IsDefault = true
			rule.LateThresholdMinutes = 15
			rule.EarlyLeaveThresholdMinutes = 15
			return &rule, nil
		},
	}

	repo := &fakeRecordRepository{}
	svc := attendance.NewService(gormDB, repo, attendance.NewRuleResolver(ruleRepo))

	return &recordServiceDeps{sqlMock: sqlMock, service: svc, repo: repo, ruleRepo: ruleRepo}
}

func TestAttendanceService_CheckIn(t *testing.T) {
	employeeID := uuid.New()
	ctx := context.Background()

	t.Run("on-time check-in creates a normal record", func(t *testing.T) {
		deps := setupRecordServiceTest(t, employeeID)
		expectRuleTx(t, deps.sqlMock, true)

		var created *attendance.AttendanceRecord
		deps.repo.createFn = func(ctx context.Context, record *attendance.AttendanceRecord) error {
			created = record
			return nil
		}

		resp, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{
			EmployeeID: employeeID.String(),
			Timestamp:  "2026-03-10T09:05:00Z",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, attendance.StatusNormal, resp.Status)
		assert.Equal(t, "2026-03-10", resp.WorkDate)
	})

	t.Run("late check-in is classified late", func(t *testing.T) {
		deps := setupRecordServiceTest(t, employeeID)
		expectRuleTx(t, deps.sqlMock, true)

		resp, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{
			EmployeeID: employeeID.String(),
			Timestamp:  "2026-03-10T09:30:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusLate, resp.Status)
	})

	t.Run("second check-in rejected", func(t *testing.T) {
		deps := setupRecordServiceTest(t, employeeID)
		expectRuleTx(t, deps.sqlMock, false)

		in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, id string, d time.Time) (*attendance.AttendanceRecord, error) {
			return &attendance.AttendanceRecord{
				ID:          uuid.New(),
				EmployeeID:  employeeID,
				WorkDate:    d,
				CheckInTime: &in,
				Status:      attendance.StatusNormal,
			}, nil
		}

		_, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{
			EmployeeID: employeeID.String(),
			Timestamp:  "2026-03-10T10:00:00Z",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})

	t.Run("no applicable rule aborts the check-in", func(t *testing.T) {
		deps := setupRecordServiceTest(t, employeeID)
		expectRuleTx(t, deps.sqlMock, false)

		deps.ruleRepo.findDefaultFn = func(ctx context.Context) (*attendance.AttendanceRule, error) {
			return nil, gorm.ErrRecordNotFound
		}
		deps.repo.createFn = func(ctx context.Context, record *attendance.AttendanceRecord) error {
			t.Fatal("no record must be written when no rule resolves")
			return nil
		}

		_, err := deps.service.CheckIn(ctx, attendance.CheckInRequest{
			EmployeeID: employeeID.String(),
			Timestamp:  "2026-03-10T09:00:00Z",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrNoApplicableRule)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	employeeID := uuid.New()
	ctx := context.Background()
	in := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("early leave reclassifies the record", func(t *testing.T) {
		deps := setupRecordServiceTest(t, employeeID)
		expectRuleTx(t, deps.sqlMock, true)

		record := &attendance.AttendanceRecord{
			ID:          uuid.New(),
			EmployeeID:  employeeID,
			WorkDate:    date("2026-03-10"),
			CheckInTime: &in,
			Status:      attendance.StatusNormal,
		}
		deps.repo.findByEmployeeAndDateFn = func(ctx context.Context, id string, d time.Time) (*attendance.AttendanceRecord, error) {
			return record, nil
		}

		resp, err := deps.service.CheckOut(ctx, attendance.CheckOutRequest{
			EmployeeID: employeeID.String(),
			Timestamp:  "2026-03-10T15:00:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusEarly, resp.Status)
	})

	t.Run("check-out without check-in rejected", func(t *testing.T) {
		deps := setupRecordServiceTest(t, employeeID)
		expectRuleTx(t, deps.sqlMock, false)

		_, err := deps.service.CheckOut(ctx, attendance.CheckOutRequest{
			EmployeeID: employeeID.String(),
			Timestamp:  "2026-03-10T18:00:00Z",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
	})
}

func TestAttendanceService_CreateRecord(t *testing.T) {
	employeeID := uuid.New()
	ctx := context.Background()

	t.Run("record without check-in is absent", func(t *testing.T) {
		deps := setupRecordServiceTest(t, employeeID)
		expectRuleTx(t, deps.sqlMock, true)

		resp, err := deps.service.CreateRecord(ctx, attendance.CreateRecordRequest{
			EmployeeID: employeeID.String(),
			Date:       "2026-03-10",
		})

		assert.NoError(t, err)
		assert.Equal(t, attendance.StatusAbsent, resp.Status)
	})

	t.Run("duplicate day maps to a conflict", func(t *testing.T) {
		deps := setupRecordServiceTest(t, employeeID)
		expectRuleTx(t, deps.sqlMock, false)

		deps.repo.createFn = func(ctx context.Context, record *attendance.AttendanceRecord) error {
			return assert.AnError
		}

		_, err := deps.service.CreateRecord(ctx, attendance.CreateRecordRequest{
			EmployeeID: employeeID.String(),
			Date:       "2026-03-10",
		})

		assert.Error(t, err)
	})
}
