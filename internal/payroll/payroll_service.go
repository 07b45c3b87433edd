package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-admin/internal/events"
	"hr-admin/internal/messaging/kafka"
	payrollerrors "hr-admin/internal/payroll/errors"
	"hr-admin/internal/salarystructure"
	salarystructureerrors "hr-admin/internal/salarystructure/errors"
	"hr-admin/internal/shared/contextutil"
)

// Batch failure reasons are part of the API contract.
const (
	failureReasonExists       = "already exists"
	failureReasonNoAssignment = "no valid salary structure assignment"
)

// StructureResolver yields the salary structure assignment in force for an
// employee on a date. Satisfied by salarystructure.Resolver.
type StructureResolver interface {
	Resolve(ctx context.Context, employeeID string, date time.Time) (*salarystructure.SalaryStructureAssignment, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (SalaryRecordResponse, error)
	GenerateBatch(ctx context.Context, req GenerateBatchRequest) (BatchResultResponse, error)
	GetAll(ctx context.Context, req RecordListRequest) ([]SalaryRecordResponse, error)
	GetByID(ctx context.Context, id string) (SalaryRecordResponse, error)
	Update(ctx context.Context, id string, req UpdateRequest) (SalaryRecordResponse, error)
	MarkAsPaid(ctx context.Context, id string) (SalaryRecordResponse, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	resolver StructureResolver
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	resolver StructureResolver,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		resolver: resolver,
		outbox:   outbox,
		logger:   l,
		now:      time.Now,
	}
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (SalaryRecordResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryRecordResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if err := validatePeriod(req.Year, req.Month); err != nil {
		return SalaryRecordResponse{}, err
	}

	inputs, err := parseGenerateInputs(req.OvertimeHours, req.Bonus, req.Deductions)
	if err != nil {
		return SalaryRecordResponse{}, err
	}

	record, err := s.generateOne(ctx, employeeID, req.Year, req.Month, inputs)
	if err != nil {
		return SalaryRecordResponse{}, err
	}

	return mapRecordToResponse(*record), nil
}

// GenerateBatch processes each employee independently in its own
// transaction. A failure for one employee is recorded and never rolls back
// or blocks records already committed for others.
func (s *service) GenerateBatch(ctx context.Context, req GenerateBatchRequest) (BatchResultResponse, error) {
	if err := validatePeriod(req.Year, req.Month); err != nil {
		return BatchResultResponse{}, err
	}
	if len(req.EmployeeIDs) == 0 {
		return BatchResultResponse{}, payrollerrors.ErrEmptyBatch
	}

	result := BatchResultResponse{
		Success: []SalaryRecordResponse{},
		Failed:  []BatchFailure{},
	}

	for _, rawID := range req.EmployeeIDs {
		employeeID, err := uuid.Parse(rawID)
		if err != nil {
			result.Failed = append(result.Failed, BatchFailure{EmployeeID: rawID, Reason: payrollerrors.ErrInvalidEmployeeID.Message})
			continue
		}

		record, err := s.generateOne(ctx, employeeID, req.Year, req.Month, generateInputs{})
		if err != nil {
			result.Failed = append(result.Failed, BatchFailure{EmployeeID: rawID, Reason: batchFailureReason(err)})
			continue
		}

		result.Success = append(result.Success, mapRecordToResponse(*record))
	}

	s.logger.Info("payroll batch generated",
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("success", len(result.Success)),
		zap.Int("failed", len(result.Failed)),
	)

	return result, nil
}

type generateInputs struct {
	overtimeHours decimal.Decimal
	bonus         decimal.Decimal
	deductions    decimal.Decimal
}

func (s *service) generateOne(
	ctx context.Context,
	employeeID uuid.UUID,
	year, month int,
	inputs generateInputs,
) (*SalaryRecord, error) {
	if _, err := s.repo.FindByEmployeeAndPeriod(ctx, employeeID.String(), year, month); err == nil {
		return nil, payrollerrors.ErrRecordExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	assignment, err := s.resolver.Resolve(ctx, employeeID.String(), periodStart)
	if err != nil {
		return nil, err
	}

	structure := assignment.SalaryStructure
	if structure == nil {
		return nil, salarystructureerrors.ErrStructureNotFound
	}

	overtimePay := decimal.Zero
	if inputs.overtimeHours.IsPositive() {
		overtimePay = CalculateOvertimePay(structure.BasicSalary, inputs.overtimeHours, decimal.Decimal{})
	}

	allowances := structure.TotalAllowances()
	computed := CalculateNetSalary(structure.BasicSalary, allowances, overtimePay, inputs.bonus, inputs.deductions)

	record := &SalaryRecord{
		ID:            uuid.New(),
		EmployeeID:    employeeID,
		Year:          year,
		Month:         month,
		BasicSalary:   structure.BasicSalary,
		Allowances:    allowances,
		OvertimePay:   overtimePay,
		Bonus:         inputs.bonus,
		Deductions:    inputs.deductions,
		GrossSalary:   computed.Gross,
		Tax:           computed.Tax,
		NetSalary:     computed.Net,
		PaymentStatus: PaymentStatusPending,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, record); err != nil {
		return nil, mapDuplicateError(err)
	}

	if err := s.enqueueGeneratedEvent(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return record, nil
}

func (s *service) enqueueGeneratedEvent(ctx context.Context, tx *gorm.DB, record *SalaryRecord) error {
	payload, err := json.Marshal(events.PayrollGeneratedEvent{
		EventType:  "payroll.generated",
		RequestID:  contextutil.GetRequestID(ctx),
		RecordID:   record.ID.String(),
		EmployeeID: record.EmployeeID.String(),
		Year:       record.Year,
		Month:      record.Month,
		NetSalary:  record.NetSalary.StringFixed(2),
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "salary_record",
		AggregateID:   record.ID.String(),
		EventType:     "payroll.generated",
		Topic:         events.PayrollGeneratedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, req RecordListRequest) ([]SalaryRecordResponse, error) {
	if req.Month < 0 || req.Month > 12 {
		return nil, payrollerrors.ErrInvalidPeriod
	}

	records, err := s.repo.FindAll(ctx, RecordFilter{
		EmployeeID:    req.EmployeeID,
		Year:          req.Year,
		Month:         req.Month,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		return nil, err
	}
	return mapRecordsToResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalaryRecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryRecordResponse{}, payrollerrors.ErrInvalidRecordID
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryRecordResponse{}, payrollerrors.ErrRecordNotFound
		}
		return SalaryRecordResponse{}, err
	}
	return mapRecordToResponse(*record), nil
}

// Update regenerates the derived amounts of a pending record from fresh
// overtime/bonus/deduction inputs. The paid check runs inside the same
// transaction as the write so it cannot race a concurrent MarkAsPaid.
func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (SalaryRecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryRecordResponse{}, payrollerrors.ErrInvalidRecordID
	}

	inputs, err := parseGenerateInputs(req.OvertimeHours, req.Bonus, req.Deductions)
	if err != nil {
		return SalaryRecordResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return SalaryRecordResponse{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryRecordResponse{}, payrollerrors.ErrRecordNotFound
		}
		return SalaryRecordResponse{}, err
	}
	if record.PaymentStatus == PaymentStatusPaid {
		return SalaryRecordResponse{}, payrollerrors.ErrRecordPaid
	}

	overtimePay := decimal.Zero
	if inputs.overtimeHours.IsPositive() {
		overtimePay = CalculateOvertimePay(record.BasicSalary, inputs.overtimeHours, decimal.Decimal{})
	}

	computed := CalculateNetSalary(record.BasicSalary, record.Allowances, overtimePay, inputs.bonus, inputs.deductions)

	record.OvertimePay = overtimePay
	record.Bonus = inputs.bonus
	record.Deductions = inputs.deductions
	record.GrossSalary = computed.Gross
	record.Tax = computed.Tax
	record.NetSalary = computed.Net

	if err := qtx.Update(ctx, record); err != nil {
		return SalaryRecordResponse{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return SalaryRecordResponse{}, err
	}

	return mapRecordToResponse(*record), nil
}

// MarkAsPaid is a single guarded update; losing the race to another payer
// surfaces as ErrAlreadyPaid rather than a silent double payment.
func (s *service) MarkAsPaid(ctx context.Context, id string) (SalaryRecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalaryRecordResponse{}, payrollerrors.ErrInvalidRecordID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SalaryRecordResponse{}, payrollerrors.ErrRecordNotFound
		}
		return SalaryRecordResponse{}, err
	}

	affected, err := s.repo.MarkAsPaid(ctx, id, s.now())
	if err != nil {
		return SalaryRecordResponse{}, err
	}
	if affected == 0 {
		return SalaryRecordResponse{}, payrollerrors.ErrAlreadyPaid
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SalaryRecordResponse{}, err
	}
	return mapRecordToResponse(*record), nil
}

func validatePeriod(year, month int) error {
	if year < 1 || month < 1 || month > 12 {
		return payrollerrors.ErrInvalidPeriod
	}
	return nil
}

func parseGenerateInputs(overtimeHours, bonus, deductions string) (generateInputs, error) {
	parse := func(raw string) (decimal.Decimal, error) {
		if raw == "" {
			return decimal.Zero, nil
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			return decimal.Decimal{}, payrollerrors.ErrInvalidAmount
		}
		return amount, nil
	}
	// Money lands in numeric(12,2) columns; anything finer than a cent would
	// silently diverge from the persisted row.
	parseMoney := func(raw string) (decimal.Decimal, error) {
		amount, err := parse(raw)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if !amount.Equal(amount.Round(2)) {
			return decimal.Decimal{}, payrollerrors.ErrInvalidAmount
		}
		return amount, nil
	}

	var inputs generateInputs
	var err error
	if inputs.overtimeHours, err = parse(overtimeHours); err != nil {
		return generateInputs{}, err
	}
	if inputs.bonus, err = parseMoney(bonus); err != nil {
		return generateInputs{}, err
	}
	if inputs.deductions, err = parseMoney(deductions); err != nil {
		return generateInputs{}, err
	}
	return inputs, nil
}

func batchFailureReason(err error) string {
	switch {
	case errors.Is(err, payrollerrors.ErrRecordExists):
		return failureReasonExists
	case errors.Is(err, salarystructureerrors.ErrNoActiveAssignment):
		return failureReasonNoAssignment
	default:
		return err.Error()
	}
}

// mapDuplicateError turns the unique-index violation into the period
// conflict. The index is the arbiter when two generators race on the same
// employee and period.
func mapDuplicateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return payrollerrors.ErrRecordExists
	}

	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return payrollerrors.ErrRecordExists
	}

	return err
}
