package overtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Overtime struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null;index:idx_overtimes_employee_times"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	StartTime time.Time `gorm:"not null;index:idx_overtimes_employee_times"`
	EndTime   time.Time `gorm:"not null;index:idx_overtimes_employee_times"`
	Reason    string    `gorm:"type:text"`

	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Overtime) TableName() string {
	return "overtimes"
}

// Hours is the window length rounded to two places; a request for
// 18:00-20:30 counts 2.50 hours.
func (o Overtime) Hours() decimal.Decimal {
	return decimal.NewFromFloat(o.EndTime.Sub(o.StartTime).Hours()).Round(2)
}

// EmployeeRef is a narrow read-only view of the employees table.
type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string
}

func (EmployeeRef) TableName() string {
	return "employees"
}
