package sqlite

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hms/cmd/internal/domain/entity"
	"hms/cmd/internal/utils"
)

func Init(path string) (*gorm.DB, error) {
	// TranslateError maps the driver's unique-constraint violation to
	// gorm.ErrDuplicatedKey; the booking engine relies on it to detect
	// a lost booking race.
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Department{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.AvailabilityDay{},
		&entity.Appointment{},
		&entity.Treatment{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := seedAdmin(db); err != nil {
		return nil, err
	}
	return db, nil
}

// seedAdmin creates the default admin account if no admin exists yet.
func seedAdmin(db *gorm.DB) error {
	var count int64
	err := db.Model(&entity.User{}).
		Where("role = ?", entity.RoleAdmin).
		Count(&count).Error
	if err != nil || count > 0 {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := utils.NowUTC()
	admin := &entity.User{
		Username:  "admin@hms.com",
		Password:  string(hash),
		Role:      entity.RoleAdmin,
		Approved:  true,
		Blocked:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return db.Create(admin).Error
}
