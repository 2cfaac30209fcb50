package repository

import (
	"errors"

	"gorm.io/gorm"

	"hms/cmd/internal/domain/entity"
)

type DefaultDoctorProfileRepository struct {
	db *gorm.DB
}

func NewDoctorProfileRepository(db *gorm.DB) *DefaultDoctorProfileRepository {
	return &DefaultDoctorProfileRepository{db: db}
}

func (r *DefaultDoctorProfileRepository) FindByUserID(userID int) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *DefaultDoctorProfileRepository) FindBySpecialization(departmentID int) ([]*entity.DoctorProfile, error) {
	var profiles []*entity.DoctorProfile
	err := r.db.Where("specialization_id = ?", departmentID).
		Find(&profiles).Error
	return profiles, err
}

func (r *DefaultDoctorProfileRepository) Save(profile *entity.DoctorProfile) error {
	return r.db.Save(profile).Error
}

func (r *DefaultDoctorProfileRepository) Delete(profile *entity.DoctorProfile) error {
	return r.db.Delete(profile).Error
}

type DefaultPatientProfileRepository struct {
	db *gorm.DB
}

func NewPatientProfileRepository(db *gorm.DB) *DefaultPatientProfileRepository {
	return &DefaultPatientProfileRepository{db: db}
}

func (r *DefaultPatientProfileRepository) FindByUserID(userID int) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *DefaultPatientProfileRepository) Save(profile *entity.PatientProfile) error {
	return r.db.Save(profile).Error
}
