package repository

import (
	"gorm.io/gorm"

	"hms/cmd/internal/domain/entity"
)

type DefaultTreatmentRepository struct {
	db *gorm.DB
}

func NewTreatmentRepository(db *gorm.DB) *DefaultTreatmentRepository {
	return &DefaultTreatmentRepository{db: db}
}

func (r *DefaultTreatmentRepository) Save(treatment *entity.Treatment) error {
	return r.db.Save(treatment).Error
}

func (r *DefaultTreatmentRepository) FindByPatient(patientID int) ([]*entity.Treatment, error) {
	var treatments []*entity.Treatment
	err := r.db.Model(&entity.Treatment{}).
		Joins("JOIN appointments ON appointments.id = treatments.appointment_id").
		Where("appointments.patient_id = ?", patientID).
		Order("treatments.id asc").
		Find(&treatments).Error
	return treatments, err
}
