package entity

// DoctorProfile is owned 1:1 by a doctor User. Absence of a row is a
// valid "no profile" state and routes the doctor to profile completion
// at login.
type DoctorProfile struct {
	ID               int    `gorm:"primaryKey"`
	UserID           int    `gorm:"uniqueIndex;not null"` // References: users(id)
	SpecializationID int    `gorm:"not null"`             // References: departments(id)
	Experience       string
	CreatedAt        int64 `gorm:"not null"`
	UpdatedAt        int64 `gorm:"not null"`

	// Relations
	User           User       `gorm:"foreignKey:UserID;references:ID"`
	Specialization Department `gorm:"foreignKey:SpecializationID;references:ID"`
}

type PatientProfile struct {
	ID        int    `gorm:"primaryKey"`
	UserID    int    `gorm:"uniqueIndex;not null"` // References: users(id)
	FullName  string
	Age       int
	Contact   string
	Address   string
	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null"`
}
