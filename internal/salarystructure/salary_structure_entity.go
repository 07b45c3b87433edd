package salarystructure

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalaryStructure struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name               string          `gorm:"type:varchar(120);not null;uniqueIndex"`
	BasicSalary        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	HousingAllowance   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TransportAllowance decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	MealAllowance      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	EffectiveDate      time.Time       `gorm:"type:date;not null"`
	Description        *string         `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalAllowances sums the three allowance components.
func (s *SalaryStructure) TotalAllowances() decimal.Decimal {
	return s.HousingAllowance.Add(s.TransportAllowance).Add(s.MealAllowance)
}

// SalaryStructureAssignment binds a structure to exactly one scope for an
// inclusive date window. EmployeeID and DepartmentID are mutually exclusive;
// a row with neither must carry IsDefault and acts as the global fallback.
type SalaryStructureAssignment struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalaryStructureID uuid.UUID        `gorm:"type:uuid;not null;index"`
	SalaryStructure   *SalaryStructure `gorm:"foreignKey:SalaryStructureID;references:ID"`
	EmployeeID        *uuid.UUID       `gorm:"type:uuid;index"`
	DepartmentID      *uuid.UUID       `gorm:"type:uuid;index"`
	IsDefault         bool             `gorm:"not null;default:false"`
	EffectiveDate     time.Time        `gorm:"type:date;not null"`
	ExpiryDate        *time.Time       `gorm:"type:date"`
	IsActive          bool             `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *SalaryStructureAssignment) Scope() Scope {
	switch {
	case a.EmployeeID != nil:
		return EmployeeScope(*a.EmployeeID)
	case a.DepartmentID != nil:
		return DepartmentScope(*a.DepartmentID)
	default:
		return GlobalScope()
	}
}

// CoversDate reports whether date falls inside the assignment's inclusive
// validity window. An absent expiry date means open-ended.
func (a *SalaryStructureAssignment) CoversDate(date time.Time) bool {
	if a.EffectiveDate.After(date) {
		return false
	}
	if a.ExpiryDate != nil && date.After(*a.ExpiryDate) {
		return false
	}
	return true
}

// EmployeeRef is a narrow projection of the employees table; only the fields
// the resolver reads.
type EmployeeRef struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	DepartmentID     *uuid.UUID
	EmploymentStatus string
}

func (EmployeeRef) TableName() string {
	return "employees"
}
