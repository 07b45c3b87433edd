package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description *string    `gorm:"type:text"`
	ManagerID   *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
