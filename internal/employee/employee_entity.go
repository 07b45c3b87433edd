package employee

import (
	"time"

	"github.com/google/uuid"

	"hr-admin/internal/department"
)

const (
	EmploymentStatusActive    = "active"
	EmploymentStatusSuspended = "suspended"
	EmploymentStatusResigned  = "resigned"
)

type Employee struct {
	ID               uuid.UUID              `gorm:"type:uuid;primaryKey"`
	EmployeeNumber   string                 `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName         string                 `gorm:"type:varchar(120);not null"`
	Email            string                 `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Phone            string                 `gorm:"type:varchar(20)"`
	PositionTitle    string                 `gorm:"type:varchar(120)"`
	DepartmentID     *uuid.UUID             `gorm:"type:uuid;index"`
	Department       *department.Department `gorm:"foreignKey:DepartmentID;references:ID"`
	HireDate         time.Time              `gorm:"type:date;not null"`
	ResignationDate  *time.Time             `gorm:"type:date"`
	EmploymentStatus string                 `gorm:"type:varchar(20);not null;default:'active'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func validEmploymentStatus(status string) bool {
	switch status {
	case EmploymentStatusActive, EmploymentStatusSuspended, EmploymentStatusResigned:
		return true
	}
	return false
}
