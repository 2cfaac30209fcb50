package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hms/cmd/internal/domain/entity"
)

type DefaultAvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *DefaultAvailabilityRepository {
	return &DefaultAvailabilityRepository{db: db}
}

func (r *DefaultAvailabilityRepository) FindByDoctor(doctorID int) ([]*entity.AvailabilityDay, error) {
	var days []*entity.AvailabilityDay
	err := r.db.Where("doctor_id = ?", doctorID).
		Order("date asc").
		Find(&days).Error
	return days, err
}

func (r *DefaultAvailabilityRepository) FindByDoctorAndDate(doctorID int, date string) (*entity.AvailabilityDay, error) {
	var day entity.AvailabilityDay
	err := r.db.Where("doctor_id = ? AND date = ?", doctorID, date).
		First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &day, err
}

// Upsert writes exactly the supplied days, replacing any existing row
// for the same (doctor, date) and leaving all other dates untouched.
func (r *DefaultAvailabilityRepository) Upsert(days []*entity.AvailabilityDay) error {
	if len(days) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"available", "updated_at"}),
	}).Create(&days).Error
}
