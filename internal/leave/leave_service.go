package leave

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	leaveerrors "hr-admin/internal/leave/errors"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, req LeaveListRequest) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, id string) (LeaveResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l, now: time.Now}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if !validLeaveType(req.LeaveType) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !exists {
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  int(endDate.Sub(startDate).Hours()/24) + 1,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, req LeaveListRequest) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAll(ctx, ListFilter{
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
	})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transition(ctx, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error) {
	return s.transition(ctx, actorID, id, StatusRejected, &rejectionReason)
}

func (s *service) Cancel(ctx context.Context, id string) (LeaveResponse, error) {
	return s.transition(ctx, "", id, StatusCancelled, nil)
}

// transition moves a pending request to a terminal status. The status
// check runs inside the transaction so two approvers cannot both win.
func (s *service) transition(ctx context.Context, actorID, id, targetStatus string, rejectionReason *string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	var actorUUID uuid.UUID
	if actorID != "" {
		parsed, err := uuid.Parse(actorID)
		if err != nil {
			return LeaveResponse{}, leaveerrors.ErrInvalidActorID
		}
		actorUUID = parsed
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return LeaveResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("leave status transition refused",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = targetStatus
	switch targetStatus {
	case StatusApproved:
		now := s.now().UTC()
		l.ApprovedBy = &actorUUID
		l.ApprovedAt = &now
		l.RejectionReason = nil
	case StatusRejected:
		if rejectionReason == nil || *rejectionReason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = rejectionReason
	default:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("leave status transition persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave status transition success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*l), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
