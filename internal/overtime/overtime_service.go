package overtime

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	overtimeerrors "hr-admin/internal/overtime/errors"
)

//go:generate mockgen -source=overtime_service.go -destination=mock/overtime_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateOvertimeRequest) (OvertimeResponse, error)
	GetAll(ctx context.Context, req OvertimeListRequest) ([]OvertimeResponse, error)
	GetByID(ctx context.Context, id string) (OvertimeResponse, error)
	Update(ctx context.Context, id string, req UpdateOvertimeRequest) (OvertimeResponse, error)
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, actorID, id string) (OvertimeResponse, error)
	Reject(ctx context.Context, actorID, id string) (OvertimeResponse, error)
	ApprovedHours(ctx context.Context, req ApprovedHoursRequest) (ApprovedHoursResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("overtime.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("overtime.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateOvertimeRequest) (OvertimeResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidEmployeeID
	}
	startTime, endTime, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return OvertimeResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return OvertimeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return OvertimeResponse{}, err
	}
	if !exists {
		return OvertimeResponse{}, overtimeerrors.ErrEmployeeNotFound
	}

	o := &Overtime{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		StartTime:  startTime,
		EndTime:    endTime,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, o); err != nil {
		s.logger.Error("create overtime persist failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return OvertimeResponse{}, err
	}

	s.logger.Info("create overtime success",
		zap.String("overtime_id", o.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*o), nil
}

func (s *service) GetAll(ctx context.Context, req OvertimeListRequest) ([]OvertimeResponse, error) {
	overtimes, err := s.repo.FindAll(ctx, ListFilter{
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
	})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(overtimes), nil
}

func (s *service) GetByID(ctx context.Context, id string) (OvertimeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidOvertimeID
	}

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		return OvertimeResponse{}, err
	}
	return mapToResponse(*o), nil
}

// Update rewrites the window and reason of a request that has not been
// decided yet. Approved and rejected requests are frozen.
func (s *service) Update(ctx context.Context, id string, req UpdateOvertimeRequest) (OvertimeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidOvertimeID
	}
	startTime, endTime, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return OvertimeResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return OvertimeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	o, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		return OvertimeResponse{}, err
	}
	if o.Status != StatusPending {
		return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotEditable
	}

	o.StartTime = startTime
	o.EndTime = endTime
	o.Reason = req.Reason

	if err := qtx.Update(ctx, o); err != nil {
		s.logger.Error("update overtime persist failed",
			zap.String("overtime_id", id),
			zap.Error(err),
		)
		return OvertimeResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return OvertimeResponse{}, err
	}
	return mapToResponse(*o), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return overtimeerrors.ErrInvalidOvertimeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	o, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return overtimeerrors.ErrOvertimeNotFound
		}
		return err
	}
	if o.Status != StatusPending {
		return overtimeerrors.ErrOvertimeNotEditable
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("delete overtime success", zap.String("overtime_id", id))
	return nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (OvertimeResponse, error) {
	return s.transition(ctx, actorID, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, actorID, id string) (OvertimeResponse, error) {
	return s.transition(ctx, actorID, id, StatusRejected)
}

// transition decides a pending request. The status check runs inside the
// transaction so two approvers cannot both win.
func (s *service) transition(ctx context.Context, actorID, id, targetStatus string) (OvertimeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidOvertimeID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidActorID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return OvertimeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	o, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		return OvertimeResponse{}, err
	}
	if o.Status != StatusPending {
		s.logger.Warn("overtime status transition refused",
			zap.String("overtime_id", id),
			zap.String("from_status", o.Status),
			zap.String("to_status", targetStatus),
		)
		return OvertimeResponse{}, overtimeerrors.ErrInvalidStatusTransition
	}

	now := s.now().UTC()
	o.Status = targetStatus
	o.ApprovedBy = &actorUUID
	o.ApprovedAt = &now

	if err := qtx.Update(ctx, o); err != nil {
		s.logger.Error("overtime status transition persist failed",
			zap.String("overtime_id", id),
			zap.Error(err),
		)
		return OvertimeResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return OvertimeResponse{}, err
	}

	s.logger.Info("overtime status transition success",
		zap.String("overtime_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*o), nil
}

// ApprovedHours totals the approved overtime touching the date range, for
// feeding payroll generation.
func (s *service) ApprovedHours(ctx context.Context, req ApprovedHoursRequest) (ApprovedHoursResponse, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return ApprovedHoursResponse{}, overtimeerrors.ErrInvalidEmployeeID
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return ApprovedHoursResponse{}, overtimeerrors.ErrInvalidTimeFormat
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return ApprovedHoursResponse{}, overtimeerrors.ErrInvalidTimeFormat
	}
	if startDate.After(endDate) {
		return ApprovedHoursResponse{}, overtimeerrors.ErrInvalidTimeRange
	}
	// the range is inclusive of the end date
	rangeEnd := endDate.Add(24*time.Hour - time.Second)

	overtimes, err := s.repo.FindApprovedInRange(ctx, req.EmployeeID, startDate, rangeEnd)
	if err != nil {
		return ApprovedHoursResponse{}, err
	}

	total := decimal.Zero
	for _, o := range overtimes {
		total = total.Add(o.Hours())
	}

	return ApprovedHoursResponse{
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalHours: total.StringFixed(2),
	}, nil
}

func parseWindow(start, end string) (time.Time, time.Time, error) {
	startTime, err := time.Parse("2006-01-02 15:04:05", start)
	if err != nil {
		return time.Time{}, time.Time{}, overtimeerrors.ErrInvalidTimeFormat
	}
	endTime, err := time.Parse("2006-01-02 15:04:05", end)
	if err != nil {
		return time.Time{}, time.Time{}, overtimeerrors.ErrInvalidTimeFormat
	}
	if !startTime.Before(endTime) {
		return time.Time{}, time.Time{}, overtimeerrors.ErrInvalidTimeRange
	}
	return startTime, endTime, nil
}
