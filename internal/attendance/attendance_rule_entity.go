package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	RuleTypeRegular   = "regular"
	RuleTypeSpecial   = "special"
	RuleTypeTemporary = "temporary"
)

// AttendanceRule is a working-time policy. A rule is scoped either to the
// employees directly assigned to it, to a department, or it is the single
// global default that backstops everyone else.
type AttendanceRule struct {
	ID                         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                       string     `gorm:"type:varchar(120);not null"`
	WorkStartTime              string     `gorm:"type:varchar(5);not null"`
	WorkEndTime                string     `gorm:"type:varchar(5);not null"`
	LateThresholdMinutes       int        `gorm:"not null;default:15"`
	EarlyLeaveThresholdMinutes int        `gorm:"not null;default:15"`
	OvertimeMinimumMinutes     int        `gorm:"not null;default:60"`
	Priority                   int        `gorm:"not null;default:0"`
	RuleType                   string     `gorm:"type:varchar(20);not null;default:regular"`
	DepartmentID               *uuid.UUID `gorm:"type:uuid;index"`
	EffectiveStartDate         time.Time  `gorm:"type:date;not null"`
	EffectiveEndDate           *time.Time `gorm:"type:date"`
	IsDefault                  bool       `gorm:"not null;default:false"`

	Employees []EmployeeRef `gorm:"many2many:attendance_rule_employees"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AttendanceRule) TableName() string {
	return "attendance_rules"
}

// IsValidForDate reports whether the rule's inclusive validity window
// contains date. An absent end date means open-ended.
func (r *AttendanceRule) IsValidForDate(date time.Time) bool {
	if r.EffectiveStartDate.After(date) {
		return false
	}
	if r.EffectiveEndDate != nil && date.After(*r.EffectiveEndDate) {
		return false
	}
	return true
}

// HasConflictWith reports whether two department rules cover the same
// department over overlapping windows. Rules in different departments, or
// without a department, never conflict.
func (r *AttendanceRule) HasConflictWith(other *AttendanceRule) bool {
	if r.DepartmentID == nil || other.DepartmentID == nil {
		return false
	}
	if *r.DepartmentID != *other.DepartmentID {
		return false
	}
	if r.EffectiveEndDate != nil && r.EffectiveEndDate.Before(other.EffectiveStartDate) {
		return false
	}
	if other.EffectiveEndDate != nil && other.EffectiveEndDate.Before(r.EffectiveStartDate) {
		return false
	}
	return true
}

type EmployeeRef struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"column:full_name"`
	DepartmentID *uuid.UUID
}

func (EmployeeRef) TableName() string {
	return "employees"
}
