package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

const (
	TypeAnnual   = "annual"
	TypeSick     = "sick"
	TypePersonal = "personal"
	TypeUnpaid   = "unpaid"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'annual'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func validLeaveType(t string) bool {
	switch t {
	case TypeAnnual, TypeSick, TypePersonal, TypeUnpaid:
		return true
	}
	return false
}

// EmployeeRef is a narrow read-only view of the employees table.
type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string
}

func (EmployeeRef) TableName() string {
	return "employees"
}
