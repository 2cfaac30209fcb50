package entity

// Department is static reference data, admin-managed.
type Department struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
}
