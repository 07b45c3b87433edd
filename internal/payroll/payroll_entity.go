package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// SalaryRecord is one employee-month of payroll. Amounts are snapshots taken
// at generation time; later edits to the salary structure never reach an
// existing record. Once paid, the row is immutable.
type SalaryRecord struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_salary_employee_period"`
	Year          int             `gorm:"not null;uniqueIndex:idx_salary_employee_period"`
	Month         int             `gorm:"not null;uniqueIndex:idx_salary_employee_period"`
	BasicSalary   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Allowances    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OvertimePay   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Bonus         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Deductions    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	GrossSalary   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Tax           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	NetSalary     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:pending"`
	PaidAt        *time.Time      `gorm:"type:timestamptz"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SalaryRecord) TableName() string {
	return "salary_records"
}

type EmployeeRef struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName       string    `gorm:"column:full_name"`
	EmployeeNumber string    `gorm:"column:employee_number"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
