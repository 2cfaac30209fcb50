package entity

// AvailabilityDay records whether a doctor accepts bookings on a date.
// Absence of a row for a (doctor, date) pair means the default policy
// applies: the doctor is treated as available.
type AvailabilityDay struct {
	ID        int    `gorm:"primaryKey"`
	DoctorID  int    `gorm:"not null;uniqueIndex:idx_doctor_day"` // References: users(id)
	Date      string `gorm:"not null;uniqueIndex:idx_doctor_day"` // "2006-01-02"
	Available bool   `gorm:"not null"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null"`
}
