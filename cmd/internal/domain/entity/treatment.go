package entity

// Treatment is recorded by the doctor when completing an appointment.
type Treatment struct {
	ID            int `gorm:"primaryKey"`
	AppointmentID int `gorm:"not null"` // References: appointments(id)
	Diagnosis     string
	Prescription  string
	Notes         string
	CreatedAt     int64 `gorm:"not null"`
}
