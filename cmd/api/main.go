package main

import (
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"hms/cmd/internal/config"
	"hms/cmd/internal/domain/entity"
	"hms/cmd/internal/domain/sqlite"
	"hms/cmd/internal/domain/sqlite/repository"
	"hms/cmd/internal/routes"
	"hms/cmd/internal/service"
	"hms/cmd/internal/token"
	"hms/cmd/internal/utils/validators"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, relying on process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	tokens := token.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	doctorProfileRepo := repository.NewDoctorProfileRepository(db)
	patientProfileRepo := repository.NewPatientProfileRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	treatmentRepo := repository.NewTreatmentRepository(db)

	// Getting services
	template := service.SlotTemplate{
		StartHour:   cfg.SlotStartHour,
		EndHour:     cfg.SlotEndHour,
		StepMinutes: cfg.SlotStepMinutes,
	}
	directoryService := service.NewDirectoryService(userRepo, doctorProfileRepo, departmentRepo)
	authService := service.NewAuthService(userRepo, doctorProfileRepo, patientProfileRepo, validate, tokens)
	availabilityService := service.NewAvailabilityService(availabilityRepo, validate, template)
	bookingService := service.NewBookingService(apptRepo, treatmentRepo, availabilityService, directoryService, validate)
	adminService := service.NewAdminService(userRepo, doctorProfileRepo, departmentRepo, apptRepo, validate)
	profileService := service.NewProfileService(userRepo, doctorProfileRepo, patientProfileRepo, departmentRepo, treatmentRepo, apptRepo, validate)

	// Getting routes
	authRoutes := routes.NewAuthDefault(authService)
	availabilityRoutes := routes.NewAvailabilityDefault(availabilityService)
	bookingRoutes := routes.NewBookingDefault(bookingService)
	directoryRoutes := routes.NewDirectoryDefault(directoryService)
	adminRoutes := routes.NewAdminDefault(adminService)
	profileRoutes := routes.NewProfileDefault(profileService)

	e := echo.New()
	e.Use(middleware.CORS())

	auth := routes.RequireAuth(tokens)
	doctorOnly := routes.RequireRole(entity.RoleDoctor)
	patientOnly := routes.RequireRole(entity.RolePatient)
	adminOnly := routes.RequireRole(entity.RoleAdmin)

	// Auth
	e.POST("/register", authRoutes.Register)
	e.POST("/login", authRoutes.Login)
	e.GET("/get-claims", authRoutes.GetClaims, auth)

	// Directory
	e.GET("/departments", directoryRoutes.ListDepartments, auth)
	e.GET("/departments/:id", directoryRoutes.GetDepartment, auth)

	// Bookable slots and booked history, readable by any authenticated caller
	e.GET("/doctor/:id/availability", bookingRoutes.GetBookableSlots, auth)
	e.GET("/doctor/:id/appointments", bookingRoutes.GetDoctorAppointments, auth)

	// Doctor-owned
	e.GET("/doctor/availability", availabilityRoutes.GetOwnAvailability, auth, doctorOnly)
	e.POST("/doctor/availability", availabilityRoutes.SetAvailability, auth, doctorOnly)
	e.GET("/doctor/appointments", bookingRoutes.GetOwnDoctorAppointments, auth, doctorOnly)
	e.POST("/doctor/appointments/:id/complete", bookingRoutes.CompleteAppointment, auth, doctorOnly)
	e.GET("/doctor/profile", profileRoutes.GetDoctorProfile, auth, doctorOnly)
	e.POST("/doctor/profile", profileRoutes.SaveDoctorProfile, auth, doctorOnly)

	// Patient-owned
	e.POST("/appointments/book", bookingRoutes.BookAppointment, auth, patientOnly)
	e.GET("/patient/appointments", bookingRoutes.GetPatientAppointments, auth, patientOnly)
	e.POST("/patient/appointments/:id/cancel", bookingRoutes.CancelAppointment, auth, patientOnly)
	e.GET("/patient/profile", profileRoutes.GetPatientProfile, auth, patientOnly)
	e.POST("/patient/profile", profileRoutes.SavePatientProfile, auth, patientOnly)
	e.GET("/patient/treatments", profileRoutes.GetTreatments, auth, patientOnly)
	e.GET("/patient/treatments/export", profileRoutes.ExportTreatments, auth, patientOnly)

	// Admin
	e.GET("/admin/dashboard", adminRoutes.Dashboard, auth, adminOnly)
	e.GET("/admin/doctors", adminRoutes.ListDoctors, auth, adminOnly)
	e.POST("/admin/doctors", adminRoutes.CreateDoctor, auth, adminOnly)
	e.GET("/admin/doctors/:id", adminRoutes.GetDoctor, auth, adminOnly)
	e.PUT("/admin/doctors/:id", adminRoutes.UpdateDoctor, auth, adminOnly)
	e.DELETE("/admin/doctors/:id", adminRoutes.DeleteDoctor, auth, adminOnly)
	e.GET("/admin/patients", adminRoutes.ListPatients, auth, adminOnly)
	e.GET("/admin/appointments", adminRoutes.ListAppointments, auth, adminOnly)
	e.POST("/admin/block_user/:id", adminRoutes.ModerateUser, auth, adminOnly)
	e.POST("/admin/departments", adminRoutes.CreateDepartment, auth, adminOnly)
	e.GET("/admin/export/:id", adminRoutes.ExportDoctorAppointments, auth, adminOnly)

	err = e.Start(cfg.Addr)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	_ = validate.RegisterValidation("isodate", validators.IsISODate)
	_ = validate.RegisterValidation("clocktime", validators.IsClockTime)
}
