package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	attendanceerrors "hr-admin/internal/attendance/errors"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceRecordResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceRecordResponse, error)
	CreateRecord(ctx context.Context, req CreateRecordRequest) (AttendanceRecordResponse, error)
	GetAll(ctx context.Context, req RecordListRequest) ([]AttendanceRecordResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceRecordResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     RecordRepository
	resolver *RuleResolver
	now      func() time.Time
}

func NewService(db *gorm.DB, repo RecordRepository, resolver *RuleResolver) Service {
	return &service{db: db, repo: repo, resolver: resolver, now: time.Now}
}

func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (AttendanceRecordResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	at, err := s.eventTime(req.Timestamp)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}
	workDate := dateOf(at)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceRecordResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEmployeeAndDate(ctx, employeeID.String(), workDate)
	if err == nil && existing.CheckInTime != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceRecordResponse{}, err
	}

	rule, err := s.resolver.WithTx(tx).Resolve(ctx, employeeID.String(), workDate)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}

	status, err := ClassifyStatus(&at, nil, rule)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}

	record := existing
	if record == nil {
		record = &AttendanceRecord{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			WorkDate:   workDate,
		}
	}
	record.CheckInTime = &at
	record.Status = status

	if existing == nil {
		err = qtx.Create(ctx, record)
	} else {
		err = qtx.Update(ctx, record)
	}
	if err != nil {
		return AttendanceRecordResponse{}, mapRecordError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceRecordResponse{}, err
	}

	return mapRecordToResponse(*record), nil
}

func (s *service) CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceRecordResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	at, err := s.eventTime(req.Timestamp)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}
	workDate := dateOf(at)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceRecordResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByEmployeeAndDate(ctx, employeeID.String(), workDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceRecordResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceRecordResponse{}, err
	}
	if record.CheckInTime == nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrNotCheckedIn
	}

	rule, err := s.resolver.WithTx(tx).Resolve(ctx, employeeID.String(), workDate)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}

	record.CheckOutTime = &at
	status, err := ClassifyStatus(record.CheckInTime, record.CheckOutTime, rule)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}
	record.Status = status

	if err := qtx.Update(ctx, record); err != nil {
		return AttendanceRecordResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceRecordResponse{}, err
	}

	return mapRecordToResponse(*record), nil
}

// CreateRecord is the administrative path: both clock events are supplied
// and the day may lie in the past. The status is still derived through the
// resolver and classifier, never supplied by the caller.
func (s *service) CreateRecord(ctx context.Context, req CreateRecordRequest) (AttendanceRecordResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	workDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrInvalidDateFormat
	}

	checkIn, err := parseOptionalTime(req.CheckInTime)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}
	checkOut, err := parseOptionalTime(req.CheckOutTime)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceRecordResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rule, err := s.resolver.WithTx(tx).Resolve(ctx, employeeID.String(), workDate)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}

	status, err := ClassifyStatus(checkIn, checkOut, rule)
	if err != nil {
		return AttendanceRecordResponse{}, err
	}

	record := &AttendanceRecord{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		WorkDate:     workDate,
		CheckInTime:  checkIn,
		CheckOutTime: checkOut,
		Status:       status,
		Notes:        req.Notes,
	}

	if err := qtx.Create(ctx, record); err != nil {
		return AttendanceRecordResponse{}, mapRecordError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceRecordResponse{}, err
	}

	return mapRecordToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, req RecordListRequest) ([]AttendanceRecordResponse, error) {
	filter := RecordFilter{
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
	}
	if req.DateFrom != "" {
		from, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
		filter.DateTo = &to
	}

	records, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapRecordsToResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceRecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceRecordResponse{}, attendanceerrors.ErrRecordNotFound
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceRecordResponse{}, attendanceerrors.ErrRecordNotFound
		}
		return AttendanceRecordResponse{}, err
	}
	return mapRecordToResponse(*record), nil
}

func (s *service) eventTime(raw string) (time.Time, error) {
	if raw == "" {
		return s.now(), nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	return at, nil
}

func parseOptionalTime(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	at, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	return &at, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mapRecordError relies on the (employee_id, work_date) unique index as the
// backstop when two writers race on the same day.
func mapRecordError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return attendanceerrors.ErrDuplicateRecord
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return attendanceerrors.ErrDuplicateRecord
	}

	return err
}
