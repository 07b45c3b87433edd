package department

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	departmenterrors "hr-admin/internal/department/errors"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *gorm.DB
	repo Repository
}

func NewService(db *gorm.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	dept := &Department{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if req.Description != "" {
		dept.Description = &req.Description
	}
	if req.ManagerID != "" {
		managerID, err := uuid.Parse(req.ManagerID)
		if err != nil {
			return DepartmentResponse{}, departmenterrors.ErrInvalidManagerID
		}
		dept.ManagerID = &managerID
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return DepartmentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	dept.Name = req.Name
	dept.Description = nil
	if req.Description != "" {
		dept.Description = &req.Description
	}
	dept.ManagerID = nil
	if req.ManagerID != "" {
		managerID, err := uuid.Parse(req.ManagerID)
		if err != nil {
			return DepartmentResponse{}, departmenterrors.ErrInvalidManagerID
		}
		dept.ManagerID = &managerID
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

// Delete refuses to orphan employees; the count runs in the same
// transaction as the delete.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	count, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return departmenterrors.ErrDepartmentInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	return tx.Commit().Error
}
