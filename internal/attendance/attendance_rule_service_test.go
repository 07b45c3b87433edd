package attendance_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hr-admin/internal/attendance"
	attendanceerrors "hr-admin/internal/attendance/errors"
)

type ruleServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	service attendance.RuleService
	repo    *fakeRuleRepository
}

func setupRuleServiceTest(t *testing.T) *ruleServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	repo := &fakeRuleRepository{}
	svc := attendance.NewRuleService(gormDB, repo, attendance.NewRuleResolver(repo))

	return &ruleServiceDeps{sqlMock: sqlMock, service: svc, repo: repo}
}

func expectRuleTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestRuleService_Create(t *testing.T) {
	deps := setupRuleServiceTest(t)
	ctx := context.Background()
	departmentID := uuid.New()

	t.Run("department rule with overlapping window rejected", func(t *testing.T) {
		dept := departmentID.String()

		expectRuleTx(t, deps.sqlMock, false)

		deps.repo.findByDepartmentFn = func(ctx context.Context, id string) ([]attendance.AttendanceRule, error) {
			existing := validRule(0, date("2026-01-01"))
			existing.DepartmentID = &departmentID
			return []attendance.AttendanceRule{existing}, nil
		}

		_, err := deps.service.Create(ctx, attendance.CreateAttendanceRuleRequest{
			Name:               "Engineering hours",
			WorkStartTime:      "09:00",
			WorkEndTime:        "18:00",
			DepartmentID:       &dept,
			EffectiveStartDate: "2026-03-01",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrRuleConflict)
	})

	t.Run("department rule with disjoint window accepted", func(t *testing.T) {
		dept := departmentID.String()
		end := "2026-12-31"

		expectRuleTx(t, deps.sqlMock, true)

		deps.repo.findByDepartmentFn = func(ctx context.Context, id string) ([]attendance.AttendanceRule, error) {
			existing := validRule(0, date("2025-01-01"))
			existing.DepartmentID = &departmentID
			expiry := date("2025-12-31")
			existing.EffectiveEndDate = &expiry
			existing.EffectiveStartDate = date("2025-01-01")
			return []attendance.AttendanceRule{existing}, nil
		}
		created := false
		deps.repo.createFn = func(ctx context.Context, rule *attendance.AttendanceRule) error {
			created = true
			assert.Equal(t, "Engineering hours", rule.Name)
			assert.Equal(t, 15, rule.LateThresholdMinutes)
			assert.Equal(t, attendance.RuleTypeRegular, rule.RuleType)
			return nil
		}

		resp, err := deps.service.Create(ctx, attendance.CreateAttendanceRuleRequest{
			Name:               "Engineering hours",
			WorkStartTime:      "09:00",
			WorkEndTime:        "18:00",
			DepartmentID:       &dept,
			EffectiveStartDate: "2026-01-01",
			EffectiveEndDate:   &end,
		})

		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "2026-01-01", resp.EffectiveStartDate)
	})

	t.Run("bad clock format rejected", func(t *testing.T) {
		_, err := deps.service.Create(ctx, attendance.CreateAttendanceRuleRequest{
			Name:               "Broken",
			WorkStartTime:      "9am",
			WorkEndTime:        "18:00",
			EffectiveStartDate: "2026-01-01",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidClockFormat)
	})

	t.Run("unknown rule type rejected", func(t *testing.T) {
		_, err := deps.service.Create(ctx, attendance.CreateAttendanceRuleRequest{
			Name:               "Broken",
			WorkStartTime:      "09:00",
			WorkEndTime:        "18:00",
			RuleType:           "weekend",
			EffectiveStartDate: "2026-01-01",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidRuleType)
	})
}

func TestRuleService_Delete(t *testing.T) {
	deps := setupRuleServiceTest(t)
	ctx := context.Background()
	ruleID := uuid.New()

	t.Run("default rule cannot be deleted", func(t *testing.T) {
		expectRuleTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*attendance.AttendanceRule, error) {
			return &attendance.AttendanceRule{ID: ruleID, IsDefault: true}, nil
		}

		err := deps.service.Delete(ctx, ruleID.String())

		assert.ErrorIs(t, err, attendanceerrors.ErrDefaultRuleDelete)
	})

	t.Run("ordinary rule deletes", func(t *testing.T) {
		expectRuleTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*attendance.AttendanceRule, error) {
			return &attendance.AttendanceRule{ID: ruleID}, nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, ruleID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestRuleService_PromoteDefault(t *testing.T) {
	deps := setupRuleServiceTest(t)
	ctx := context.Background()
	ruleID := uuid.New()

	t.Run("missing rule", func(t *testing.T) {
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*attendance.AttendanceRule, error) {
			return nil, gorm.ErrRecordNotFound
		}

		err := deps.service.PromoteDefault(ctx, ruleID.String())

		assert.ErrorIs(t, err, attendanceerrors.ErrRuleNotFound)
	})

	t.Run("existing rule promoted", func(t *testing.T) {
		deps.repo.findByIDFn = nil
		promoted := ""
		deps.repo.promoteDefaultFn = func(ctx context.Context, id string) error {
			promoted = id
			return nil
		}

		err := deps.service.PromoteDefault(ctx, ruleID.String())

		assert.NoError(t, err)
		assert.Equal(t, ruleID.String(), promoted)
	})
}
