package entity

import "errors"

const (
	StatusBooked    = "Booked"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// ErrSlotTaken is returned by the appointment repository when an insert
// loses the booking race: some appointment row (of any status) already
// occupies the (doctor_id, date, time) triple.
var ErrSlotTaken = errors.New("slot already taken")

type Appointment struct {
	ID        int    `gorm:"primaryKey"`
	DoctorID  int    `gorm:"not null;uniqueIndex:idx_doctor_slot"` // References: users(id)
	PatientID int    `gorm:"not null"`                             // References: users(id)
	Date      string `gorm:"not null;uniqueIndex:idx_doctor_slot"` // "2006-01-02"
	Time      string `gorm:"not null;uniqueIndex:idx_doctor_slot"` // "03:04 PM"
	Status    string `gorm:"not null"`
	Remarks   *string

	// Snapshots taken at booking time. The doctor's User row may be
	// deleted later; appointment history must still display who the
	// appointment was with.
	DoctorName     string `gorm:"not null"`
	DepartmentName string

	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null"`
}
