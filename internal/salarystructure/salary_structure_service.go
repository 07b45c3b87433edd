package salarystructure

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	salarystructureerrors "hr-admin/internal/salarystructure/errors"
)

//go:generate mockgen -source=salary_structure_service.go -destination=mock/salary_structure_service_mock.go -package=mock
type Service interface {
	CreateStructure(ctx context.Context, req CreateSalaryStructureRequest) (SalaryStructureResponse, error)
	GetAllStructures(ctx context.Context) ([]SalaryStructureResponse, error)
	GetStructureByID(ctx context.Context, id string) (SalaryStructureResponse, error)
	UpdateStructure(ctx context.Context, id string, req UpdateSalaryStructureRequest) (SalaryStructureResponse, error)
	DeleteStructure(ctx context.Context, id string) error

	CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	GetAllAssignments(ctx context.Context) ([]AssignmentResponse, error)
	GetAssignmentByID(ctx context.Context, id string) (AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, id string, req UpdateAssignmentRequest) (AssignmentResponse, error)
	DeactivateAssignment(ctx context.Context, id string) error

	Resolve(ctx context.Context, req ResolveAssignmentRequest) (AssignmentResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	resolver *Resolver
	now      func() time.Time
}

func NewService(db *gorm.DB, repo Repository, resolver *Resolver) Service {
	return &service{db: db, repo: repo, resolver: resolver, now: time.Now}
}

func (s *service) CreateStructure(
	ctx context.Context,
	req CreateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	structure, err := structureFromRequest(req.Name, req.BasicSalary, req.HousingAllowance,
		req.TransportAllowance, req.MealAllowance, req.EffectiveDate, req.Description)
	if err != nil {
		return SalaryStructureResponse{}, err
	}

	if err := s.repo.CreateStructure(ctx, structure); err != nil {
		return SalaryStructureResponse{}, mapStructureError(err)
	}

	return mapStructureToResponse(*structure), nil
}

func (s *service) GetAllStructures(ctx context.Context) ([]SalaryStructureResponse, error) {
	structures, err := s.repo.FindAllStructures(ctx)
	if err != nil {
		return nil, mapStructureError(err)
	}
	return mapStructuresToResponse(structures), nil
}

func (s *service) GetStructureByID(ctx context.Context, id string) (SalaryStructureResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidStructureID
	}

	structure, err := s.repo.FindStructureByID(ctx, id)
	if err != nil {
		return SalaryStructureResponse{}, mapStructureError(err)
	}
	return mapStructureToResponse(*structure), nil
}

func (s *service) UpdateStructure(
	ctx context.Context,
	id string,
	req UpdateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryStructureResponse{}, salarystructureerrors.ErrInvalidStructureID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return SalaryStructureResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindStructureByID(ctx, id)
	if err != nil {
		return SalaryStructureResponse{}, mapStructureError(err)
	}

	updated, err := structureFromRequest(req.Name, req.BasicSalary, req.HousingAllowance,
		req.TransportAllowance, req.MealAllowance, req.EffectiveDate, req.Description)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := qtx.UpdateStructure(ctx, updated); err != nil {
		return SalaryStructureResponse{}, mapStructureError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapStructureToResponse(*updated), nil
}

func (s *service) DeleteStructure(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return salarystructureerrors.ErrInvalidStructureID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindStructureByID(ctx, id); err != nil {
		return mapStructureError(err)
	}

	count, err := qtx.CountAssignmentsByStructure(ctx, id)
	if err != nil {
		return mapStructureError(err)
	}
	if count > 0 {
		return salarystructureerrors.ErrStructureInUse
	}

	if err := qtx.DeleteStructure(ctx, id); err != nil {
		return mapStructureError(err)
	}

	return tx.Commit().Error
}

func (s *service) CreateAssignment(
	ctx context.Context,
	req CreateAssignmentRequest,
) (AssignmentResponse, error) {
	structureID, err := uuid.Parse(req.SalaryStructureID)
	if err != nil {
		return AssignmentResponse{}, salarystructureerrors.ErrInvalidStructureID
	}

	if req.EmployeeID != nil && req.DepartmentID != nil {
		return AssignmentResponse{}, salarystructureerrors.ErrScopeConflict
	}
	if req.EmployeeID == nil && req.DepartmentID == nil && !req.IsDefault {
		return AssignmentResponse{}, salarystructureerrors.ErrGlobalMustBeDefault
	}

	var employeeID *uuid.UUID
	if req.EmployeeID != nil {
		parsed, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return AssignmentResponse{}, salarystructureerrors.ErrInvalidEmployeeID
		}
		employeeID = &parsed
	}

	var departmentID *uuid.UUID
	if req.DepartmentID != nil {
		parsed, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return AssignmentResponse{}, salarystructureerrors.ErrInvalidDepartmentID
		}
		departmentID = &parsed
	}

	effectiveDate, expiryDate, err := parseAssignmentWindow(req.EffectiveDate, req.ExpiryDate)
	if err != nil {
		return AssignmentResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AssignmentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindStructureByID(ctx, structureID.String()); err != nil {
		return AssignmentResponse{}, mapStructureError(err)
	}

	if employeeID != nil {
		if _, err := qtx.FindEmployeeRef(ctx, employeeID.String()); err != nil {
			return AssignmentResponse{}, salarystructureerrors.ErrEmployeeNotFound
		}
	}

	assignment := &SalaryStructureAssignment{
		ID:                uuid.New(),
		SalaryStructureID: structureID,
		EmployeeID:        employeeID,
		DepartmentID:      departmentID,
		IsDefault:         req.IsDefault,
		EffectiveDate:     effectiveDate,
		ExpiryDate:        expiryDate,
		IsActive:          true,
	}

	if err := qtx.CreateAssignment(ctx, assignment); err != nil {
		return AssignmentResponse{}, mapAssignmentError(err)
	}

	created, err := qtx.FindAssignmentByID(ctx, assignment.ID.String())
	if err != nil {
		return AssignmentResponse{}, mapAssignmentError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AssignmentResponse{}, err
	}

	return mapAssignmentToResponse(*created), nil
}

func (s *service) GetAllAssignments(ctx context.Context) ([]AssignmentResponse, error) {
	assignments, err := s.repo.FindAllAssignments(ctx)
	if err != nil {
		return nil, mapAssignmentError(err)
	}
	return mapAssignmentsToResponse(assignments), nil
}

func (s *service) GetAssignmentByID(ctx context.Context, id string) (AssignmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AssignmentResponse{}, salarystructureerrors.ErrAssignmentNotFound
	}

	assignment, err := s.repo.FindAssignmentByID(ctx, id)
	if err != nil {
		return AssignmentResponse{}, mapAssignmentError(err)
	}
	return mapAssignmentToResponse(*assignment), nil
}

func (s *service) UpdateAssignment(
	ctx context.Context,
	id string,
	req UpdateAssignmentRequest,
) (AssignmentResponse, error) {
	structureID, err := uuid.Parse(req.SalaryStructureID)
	if err != nil {
		return AssignmentResponse{}, salarystructureerrors.ErrInvalidStructureID
	}

	effectiveDate, expiryDate, err := parseAssignmentWindow(req.EffectiveDate, req.ExpiryDate)
	if err != nil {
		return AssignmentResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AssignmentResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	assignment, err := qtx.FindAssignmentByID(ctx, id)
	if err != nil {
		return AssignmentResponse{}, mapAssignmentError(err)
	}

	if _, err := qtx.FindStructureByID(ctx, structureID.String()); err != nil {
		return AssignmentResponse{}, mapStructureError(err)
	}

	assignment.SalaryStructureID = structureID
	assignment.EffectiveDate = effectiveDate
	assignment.ExpiryDate = expiryDate
	if req.IsActive != nil {
		assignment.IsActive = *req.IsActive
	}

	if err := qtx.UpdateAssignment(ctx, assignment); err != nil {
		return AssignmentResponse{}, mapAssignmentError(err)
	}

	updated, err := qtx.FindAssignmentByID(ctx, id)
	if err != nil {
		return AssignmentResponse{}, mapAssignmentError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AssignmentResponse{}, err
	}

	return mapAssignmentToResponse(*updated), nil
}

func (s *service) DeactivateAssignment(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return salarystructureerrors.ErrAssignmentNotFound
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindAssignmentByID(ctx, id); err != nil {
		return mapAssignmentError(err)
	}

	if err := qtx.DeactivateAssignment(ctx, id); err != nil {
		return mapAssignmentError(err)
	}

	return tx.Commit().Error
}

func (s *service) Resolve(ctx context.Context, req ResolveAssignmentRequest) (AssignmentResponse, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return AssignmentResponse{}, salarystructureerrors.ErrInvalidEmployeeID
	}

	date := s.now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return AssignmentResponse{}, salarystructureerrors.ErrInvalidDateFormat
		}
		date = parsed
	}

	assignment, err := s.resolver.Resolve(ctx, req.EmployeeID, date)
	if err != nil {
		return AssignmentResponse{}, err
	}

	return mapAssignmentToResponse(*assignment), nil
}

func structureFromRequest(
	name, basic, housing, transport, meal, effective string,
	description *string,
) (*SalaryStructure, error) {
	basicSalary, err := parseAmount(basic)
	if err != nil {
		return nil, err
	}
	housingAllowance, err := parseAmount(housing)
	if err != nil {
		return nil, err
	}
	transportAllowance, err := parseAmount(transport)
	if err != nil {
		return nil, err
	}
	mealAllowance, err := parseAmount(meal)
	if err != nil {
		return nil, err
	}

	effectiveDate, err := time.Parse("2006-01-02", effective)
	if err != nil {
		return nil, salarystructureerrors.ErrInvalidDateFormat
	}

	return &SalaryStructure{
		ID:                 uuid.New(),
		Name:               name,
		BasicSalary:        basicSalary,
		HousingAllowance:   housingAllowance,
		TransportAllowance: transportAllowance,
		MealAllowance:      mealAllowance,
		EffectiveDate:      effectiveDate,
		Description:        description,
	}, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, salarystructureerrors.ErrInvalidAmount
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, salarystructureerrors.ErrNegativeAmount
	}
	return amount, nil
}

func parseAssignmentWindow(effective string, expiry *string) (time.Time, *time.Time, error) {
	effectiveDate, err := time.Parse("2006-01-02", effective)
	if err != nil {
		return time.Time{}, nil, salarystructureerrors.ErrInvalidDateFormat
	}

	var expiryDate *time.Time
	if expiry != nil && *expiry != "" {
		parsed, err := time.Parse("2006-01-02", *expiry)
		if err != nil {
			return time.Time{}, nil, salarystructureerrors.ErrInvalidDateFormat
		}
		if parsed.Before(effectiveDate) {
			return time.Time{}, nil, salarystructureerrors.ErrInvalidDateRange
		}
		expiryDate = &parsed
	}

	return effectiveDate, expiryDate, nil
}
