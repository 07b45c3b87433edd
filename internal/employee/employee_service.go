package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	employeeerrors "hr-admin/internal/employee/errors"
	"hr-admin/internal/events"
	"hr-admin/internal/messaging/kafka"
	"hr-admin/internal/shared/contextutil"
	"hr-admin/internal/shared/counter"
)

// EmployeeOptionsKey caches the dropdown listing of active employees.
const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, req EmployeeListRequest) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Resign(ctx context.Context, id string) (EmployeeResponse, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
		now:     time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	status := req.EmploymentStatus
	if status == "" {
		status = EmploymentStatusActive
	}
	if !validEmploymentStatus(status) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmploymentStatus
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var departmentID *uuid.UUID
	if req.DepartmentID != "" {
		id, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
		}
		exists, err := qtx.DepartmentExists(ctx, req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if !exists {
			return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
		}
		departmentID = &id
	}

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:               uuid.New(),
		EmployeeNumber:   req.EmployeeNumber,
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		PositionTitle:    req.PositionTitle,
		DepartmentID:     departmentID,
		HireDate:         hireDate,
		EmploymentStatus: status,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueCreatedEvent(ctx, tx, empl); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_number", empl.EmployeeNumber),
	)

	return mapToResponse(*empl), nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *gorm.DB, empl *Employee) error {
	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.EmployeeCreatedEvent{
		EventType:  "employee.created",
		RequestID:  rid,
		EmployeeID: empl.ID.String(),
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     "employee.created",
		Topic:         events.EmployeeCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, req EmployeeListRequest) ([]EmployeeResponse, error) {
	if req.EmploymentStatus != "" && !validEmploymentStatus(req.EmploymentStatus) {
		return nil, employeeerrors.ErrInvalidEmploymentStatus
	}

	empls, err := s.repo.FindAll(ctx, ListFilter{
		DepartmentID:     req.DepartmentID,
		EmploymentStatus: req.EmploymentStatus,
		Search:           req.Search,
	})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

// GetOptions serves the dropdown listing through Redis, with singleflight
// collapsing the stampede after an invalidation.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}
	if req.EmploymentStatus != "" && !validEmploymentStatus(req.EmploymentStatus) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmploymentStatus
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	var departmentID *uuid.UUID
	if req.DepartmentID != "" {
		deptID, err := uuid.Parse(req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
		}
		exists, err := qtx.DepartmentExists(ctx, req.DepartmentID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if !exists {
			return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
		}
		departmentID = &deptID
	}

	empl.FullName = req.FullName
	empl.Email = req.Email
	empl.Phone = req.Phone
	empl.PositionTitle = req.PositionTitle
	empl.DepartmentID = departmentID
	empl.Department = nil
	empl.HireDate = hireDate
	if req.EmploymentStatus != "" {
		empl.EmploymentStatus = req.EmploymentStatus
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

// Resign marks the employee as resigned instead of deleting the row;
// attendance and salary history keep their references.
func (s *service) Resign(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return EmployeeResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if empl.EmploymentStatus == EmploymentStatusResigned {
		return EmployeeResponse{}, employeeerrors.ErrAlreadyResigned
	}

	resignedAt := s.now().UTC()
	empl.EmploymentStatus = EmploymentStatusResigned
	empl.ResignationDate = &resignedAt

	if err := qtx.Update(ctx, empl); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("employee resigned", zap.String("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}
