package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// RecordFilter narrows attendance record listings. Zero values mean "any".
type RecordFilter struct {
	EmployeeID string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type RecordRepository interface {
	WithTx(tx *gorm.DB) RecordRepository

	Create(ctx context.Context, record *AttendanceRecord) error
	FindAll(ctx context.Context, filter RecordFilter) ([]AttendanceRecord, error)
	FindByID(ctx context.Context, id string) (*AttendanceRecord, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)
	Update(ctx context.Context, record *AttendanceRecord) error
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) WithTx(tx *gorm.DB) RecordRepository {
	return &recordRepository{db: tx}
}

func (r *recordRepository) Create(ctx context.Context, record *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *recordRepository) FindAll(ctx context.Context, filter RecordFilter) ([]AttendanceRecord, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Order("work_date DESC")
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		q = q.Where("work_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("work_date <= ?", *filter.DateTo)
	}

	var records []AttendanceRecord
	err := q.Find(&records).Error
	return records, err
}

func (r *recordRepository) FindByID(ctx context.Context, id string) (*AttendanceRecord, error) {
	var record AttendanceRecord
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *recordRepository) FindByEmployeeAndDate(
	ctx context.Context,
	employeeID string,
	date time.Time,
) (*AttendanceRecord, error) {
	var record AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *recordRepository) Update(ctx context.Context, record *AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}
