package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusNormal = "normal"
	StatusLate   = "late"
	StatusEarly  = "early"
	StatusAbsent = "absent"
)

// AttendanceRecord holds one employee-day. The unique index makes the
// database the arbiter when two writers race on the same day.
type AttendanceRecord struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_employee_date"`
	WorkDate     time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date"`
	CheckInTime  *time.Time `gorm:"type:timestamptz"`
	CheckOutTime *time.Time `gorm:"type:timestamptz"`
	Status       string     `gorm:"type:varchar(20);not null"`
	Notes        *string    `gorm:"type:text"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}
