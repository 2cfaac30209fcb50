package repository

import (
	"errors"

	"gorm.io/gorm"

	"hms/cmd/internal/domain/entity"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

// Create inserts a new appointment. The unique index on
// (doctor_id, date, time) makes the existence check and the insert a
// single atomic unit: of N concurrent inserts for the same triple
// exactly one commits, the rest get entity.ErrSlotTaken.
func (a *DefaultAppointmentRepository) Create(appt *entity.Appointment) error {
	err := a.db.Create(appt).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.ErrSlotTaken
	}
	return err
}

func (a *DefaultAppointmentRepository) FindByID(id int) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appt, err
}

func (a *DefaultAppointmentRepository) FindByDoctor(doctorID int) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.Where("doctor_id = ?", doctorID).
		Order("date asc, time asc").
		Find(&appts).Error
	return appts, err
}

// FindByDoctorDateRange returns every appointment row, regardless of
// status, for the doctor in [first, last]. Dates use the "2006-01-02"
// format, so lexicographic comparison is chronological.
func (a *DefaultAppointmentRepository) FindByDoctorDateRange(doctorID int, first, last string) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.Where("doctor_id = ?", doctorID).
		Where("date BETWEEN ? AND ?", first, last).
		Order("date asc, time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindByPatient(patientID int) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.Where("patient_id = ?", patientID).
		Order("date asc, time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindAll() ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.Order("date desc, time desc").Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) CountAll() (int64, error) {
	var count int64
	err := a.db.Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

func (a *DefaultAppointmentRepository) CountFromDate(date string) (int64, error) {
	var count int64
	err := a.db.Model(&entity.Appointment{}).
		Where("date >= ?", date).
		Where("status = ?", entity.StatusBooked).
		Count(&count).Error
	return count, err
}

func (a *DefaultAppointmentRepository) Save(appt *entity.Appointment) error {
	return a.db.Save(appt).Error
}
