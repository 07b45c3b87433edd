package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceerrors "hr-admin/internal/attendance/errors"
)

//go:generate mockgen -source=attendance_rule_service.go -destination=mock/attendance_rule_service_mock.go -package=mock
type RuleService interface {
	Create(ctx context.Context, req CreateAttendanceRuleRequest) (AttendanceRuleResponse, error)
	GetAll(ctx context.Context) ([]AttendanceRuleResponse, error)
	GetByID(ctx context.Context, id string) (AttendanceRuleResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRuleRequest) (AttendanceRuleResponse, error)
	Delete(ctx context.Context, id string) error
	PromoteDefault(ctx context.Context, id string) error
	AssignEmployees(ctx context.Context, id string, req AssignEmployeesRequest) (AttendanceRuleResponse, error)
	Resolve(ctx context.Context, req ResolveRuleRequest) (AttendanceRuleResponse, error)
}

type ruleService struct {
	db       *gorm.DB
	repo     RuleRepository
	resolver *RuleResolver
	now      func() time.Time
}

func NewRuleService(db *gorm.DB, repo RuleRepository, resolver *RuleResolver) RuleService {
	return &ruleService{db: db, repo: repo, resolver: resolver, now: time.Now}
}

func (s *ruleService) Create(ctx context.Context, req CreateAttendanceRuleRequest) (AttendanceRuleResponse, error) {
	rule, err := ruleFromRequest(req.Name, req.WorkStartTime, req.WorkEndTime,
		req.LateThresholdMinutes, req.EarlyLeaveThresholdMinutes, req.OvertimeMinimumMinutes,
		req.Priority, req.RuleType, req.DepartmentID, req.EffectiveStartDate, req.EffectiveEndDate)
	if err != nil {
		return AttendanceRuleResponse{}, err
	}

	employeeIDs, err := parseEmployeeIDs(req.EmployeeIDs)
	if err != nil {
		return AttendanceRuleResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceRuleResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.guardConflicts(ctx, qtx, rule, ""); err != nil {
		return AttendanceRuleResponse{}, err
	}

	if err := qtx.Create(ctx, rule); err != nil {
		return AttendanceRuleResponse{}, err
	}

	if len(employeeIDs) > 0 {
		if err := qtx.ReplaceEmployees(ctx, rule, employeeIDs); err != nil {
			return AttendanceRuleResponse{}, err
		}
	}

	if req.IsDefault {
		if err := qtx.PromoteDefault(ctx, rule.ID.String()); err != nil {
			return AttendanceRuleResponse{}, err
		}
		rule.IsDefault = true
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceRuleResponse{}, err
	}

	return mapRuleToResponse(*rule), nil
}

func (s *ruleService) GetAll(ctx context.Context) ([]AttendanceRuleResponse, error) {
	rules, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapRulesToResponse(rules), nil
}

func (s *ruleService) GetByID(ctx context.Context, id string) (AttendanceRuleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceRuleResponse{}, attendanceerrors.ErrInvalidRuleID
	}

	rule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceRuleResponse{}, mapRuleError(err)
	}
	return mapRuleToResponse(*rule), nil
}

func (s *ruleService) Update(ctx context.Context, id string, req UpdateAttendanceRuleRequest) (AttendanceRuleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceRuleResponse{}, attendanceerrors.ErrInvalidRuleID
	}

	updated, err := ruleFromRequest(req.Name, req.WorkStartTime, req.WorkEndTime,
		req.LateThresholdMinutes, req.EarlyLeaveThresholdMinutes, req.OvertimeMinimumMinutes,
		req.Priority, req.RuleType, req.DepartmentID, req.EffectiveStartDate, req.EffectiveEndDate)
	if err != nil {
		return AttendanceRuleResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceRuleResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceRuleResponse{}, mapRuleError(err)
	}

	if err := s.guardConflicts(ctx, qtx, updated, id); err != nil {
		return AttendanceRuleResponse{}, err
	}

	updated.ID = existing.ID
	updated.IsDefault = existing.IsDefault
	updated.CreatedAt = existing.CreatedAt

	if err := qtx.Update(ctx, updated); err != nil {
		return AttendanceRuleResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceRuleResponse{}, err
	}

	updated.Employees = existing.Employees
	return mapRuleToResponse(*updated), nil
}

func (s *ruleService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrInvalidRuleID
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rule, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRuleError(err)
	}
	if rule.IsDefault {
		return attendanceerrors.ErrDefaultRuleDelete
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit().Error
}

func (s *ruleService) PromoteDefault(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrInvalidRuleID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRuleError(err)
	}

	return s.repo.PromoteDefault(ctx, id)
}

func (s *ruleService) AssignEmployees(ctx context.Context, id string, req AssignEmployeesRequest) (AttendanceRuleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AttendanceRuleResponse{}, attendanceerrors.ErrInvalidRuleID
	}

	employeeIDs, err := parseEmployeeIDs(req.EmployeeIDs)
	if err != nil {
		return AttendanceRuleResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return AttendanceRuleResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rule, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceRuleResponse{}, mapRuleError(err)
	}

	for _, employeeID := range employeeIDs {
		if _, err := qtx.FindEmployeeRef(ctx, employeeID.String()); err != nil {
			return AttendanceRuleResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
	}

	if err := qtx.ReplaceEmployees(ctx, rule, employeeIDs); err != nil {
		return AttendanceRuleResponse{}, err
	}

	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceRuleResponse{}, mapRuleError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return AttendanceRuleResponse{}, err
	}

	return mapRuleToResponse(*updated), nil
}

func (s *ruleService) Resolve(ctx context.Context, req ResolveRuleRequest) (AttendanceRuleResponse, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return AttendanceRuleResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	date := s.now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return AttendanceRuleResponse{}, attendanceerrors.ErrInvalidDateFormat
		}
		date = parsed
	}

	rule, err := s.resolver.Resolve(ctx, req.EmployeeID, date)
	if err != nil {
		return AttendanceRuleResponse{}, err
	}

	return mapRuleToResponse(*rule), nil
}

// guardConflicts rejects a department rule whose validity window overlaps an
// existing rule of the same department. excludeID skips the rule being
// edited.
func (s *ruleService) guardConflicts(ctx context.Context, repo RuleRepository, rule *AttendanceRule, excludeID string) error {
	if rule.DepartmentID == nil {
		return nil
	}

	siblings, err := repo.FindByDepartment(ctx, rule.DepartmentID.String())
	if err != nil {
		return err
	}

	for i := range siblings {
		if siblings[i].ID.String() == excludeID {
			continue
		}
		if rule.HasConflictWith(&siblings[i]) {
			return attendanceerrors.ErrRuleConflict
		}
	}
	return nil
}

func ruleFromRequest(
	name, workStart, workEnd string,
	lateThreshold, earlyThreshold, overtimeMinimum *int,
	priority int,
	ruleType string,
	departmentID *string,
	effectiveStart string,
	effectiveEnd *string,
) (*AttendanceRule, error) {
	if _, err := clockMinutes(workStart); err != nil {
		return nil, err
	}
	if _, err := clockMinutes(workEnd); err != nil {
		return nil, err
	}

	rule := &AttendanceRule{
		ID:                         uuid.New(),
		Name:                       name,
		WorkStartTime:              workStart,
		WorkEndTime:                workEnd,
		LateThresholdMinutes:       15,
		EarlyLeaveThresholdMinutes: 15,
		OvertimeMinimumMinutes:     60,
		Priority:                   priority,
		RuleType:                   RuleTypeRegular,
	}

	if lateThreshold != nil {
		rule.LateThresholdMinutes = *lateThreshold
	}
	if earlyThreshold != nil {
		rule.EarlyLeaveThresholdMinutes = *earlyThreshold
	}
	if overtimeMinimum != nil {
		rule.OvertimeMinimumMinutes = *overtimeMinimum
	}
	if rule.LateThresholdMinutes < 0 || rule.EarlyLeaveThresholdMinutes < 0 || rule.OvertimeMinimumMinutes < 0 {
		return nil, attendanceerrors.ErrInvalidThreshold
	}

	if ruleType != "" {
		switch ruleType {
		case RuleTypeRegular, RuleTypeSpecial, RuleTypeTemporary:
			rule.RuleType = ruleType
		default:
			return nil, attendanceerrors.ErrInvalidRuleType
		}
	}

	if departmentID != nil {
		parsed, err := uuid.Parse(*departmentID)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDepartmentID
		}
		rule.DepartmentID = &parsed
	}

	start, err := time.Parse("2006-01-02", effectiveStart)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	rule.EffectiveStartDate = start

	if effectiveEnd != nil && *effectiveEnd != "" {
		end, err := time.Parse("2006-01-02", *effectiveEnd)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
		if end.Before(start) {
			return nil, attendanceerrors.ErrInvalidDateRange
		}
		rule.EffectiveEndDate = &end
	}

	return rule, nil
}

func parseEmployeeIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func mapRuleError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrRuleNotFound
	}
	return err
}
