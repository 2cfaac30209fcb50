package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"hms/cmd/internal/domain/entity"
	"hms/cmd/internal/utils"
	"hms/cmd/internal/utils/apierror"
)

// Password assigned to admin-created doctors when none is supplied.
const defaultDoctorPassword = "changeme123"

type DashboardResponse struct {
	TotalDoctors         int64 `json:"total_doctors"`
	TotalPatients        int64 `json:"total_patients"`
	TotalAppointments    int64 `json:"total_appointments"`
	UpcomingAppointments int64 `json:"upcoming_appointments"`
}

type CreateDoctorRequest struct {
	Username         string `json:"username" validate:"required,min=2,max=120,nospaces"`
	Password         string `json:"password" validate:"omitempty,min=8,max=64"`
	SpecializationID int    `json:"specialization_id" validate:"required,gt=0"`
	Experience       string `json:"experience" validate:"max=240"`
	Approved         bool   `json:"approved"`
}

type UpdateDoctorRequest struct {
	Approved *bool `json:"approved"`
	Blocked  *bool `json:"blocked"`
}

type ModerateUserRequest struct {
	Action string `json:"action" validate:"required,oneof=block unblock approve reject"`
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"max=500"`
}

type DoctorSummary struct {
	ID                 int    `json:"id"`
	Username           string `json:"username"`
	Approved           bool   `json:"approved"`
	Blocked            bool   `json:"blocked"`
	SpecializationID   int    `json:"specialization_id,omitempty"`
	SpecializationName string `json:"specialization_name,omitempty"`
	Experience         string `json:"experience,omitempty"`
}

type PatientSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type DefaultAdminService struct {
	Users          UserRepository
	DoctorProfiles DoctorProfileRepository
	Departments    DepartmentRepository
	Appointments   AppointmentRepository
	Validate       *validator.Validate
}

func NewAdminService(users UserRepository, doctorProfiles DoctorProfileRepository, departments DepartmentRepository, appointments AppointmentRepository, validate *validator.Validate) *DefaultAdminService {
	return &DefaultAdminService{
		Users:          users,
		DoctorProfiles: doctorProfiles,
		Departments:    departments,
		Appointments:   appointments,
		Validate:       validate,
	}
}

func (a *DefaultAdminService) Dashboard() (*DashboardResponse, apierror.ErrorResponse) {
	doctors, err := a.Users.CountByRole(entity.RoleDoctor)
	if err != nil {
		log.Errorf("failed to count doctors: %v", err)
		return nil, apierror.InternalServerError
	}
	patients, err := a.Users.CountByRole(entity.RolePatient)
	if err != nil {
		log.Errorf("failed to count patients: %v", err)
		return nil, apierror.InternalServerError
	}
	appts, err := a.Appointments.CountAll()
	if err != nil {
		log.Errorf("failed to count appointments: %v", err)
		return nil, apierror.InternalServerError
	}
	today := utils.FormatDate(time.Now().UTC())
	upcoming, err := a.Appointments.CountFromDate(today)
	if err != nil {
		log.Errorf("failed to count upcoming appointments: %v", err)
		return nil, apierror.InternalServerError
	}

	return &DashboardResponse{
		TotalDoctors:         doctors,
		TotalPatients:        patients,
		TotalAppointments:    appts,
		UpcomingAppointments: upcoming,
	}, nil
}

// CreateDoctor creates the doctor account and its profile in one go.
// Doctors cannot self-register.
func (a *DefaultAdminService) CreateDoctor(req *CreateDoctorRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	dept, err := a.Departments.FindByID(req.SpecializationID)
	if err != nil {
		log.Errorf("failed to fetch department %d: %v", req.SpecializationID, err)
		return apierror.InternalServerError
	}
	if dept == nil {
		return apierror.NewInvalidParamTypeError("specialization_id", "existing department id")
	}

	found, err := a.Users.ExistsByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to check if user %q exists: %v", req.Username, err)
		return apierror.InternalServerError
	}
	if found {
		return apierror.UserAlreadyExistsError
	}

	password := req.Password
	if password == "" {
		password = defaultDoctorPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password for %q: %v", req.Username, err)
		return apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		Username:  req.Username,
		Password:  string(hash),
		Role:      entity.RoleDoctor,
		Approved:  req.Approved,
		Blocked:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Users.Save(user); err != nil {
		log.Errorf("failed to create doctor %q: %v", req.Username, err)
		return apierror.InternalServerError
	}

	profile := &entity.DoctorProfile{
		UserID:           user.ID,
		SpecializationID: req.SpecializationID,
		Experience:       req.Experience,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := a.DoctorProfiles.Save(profile); err != nil {
		log.Errorf("failed to create profile for doctor %d: %v", user.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (a *DefaultAdminService) ListDoctors() ([]*DoctorSummary, apierror.ErrorResponse) {
	doctors, err := a.Users.FindByRole(entity.RoleDoctor)
	if err != nil {
		log.Errorf("failed to fetch doctors: %v", err)
		return nil, apierror.InternalServerError
	}

	summaries := make([]*DoctorSummary, 0, len(doctors))
	for _, doctor := range doctors {
		summary, apierr := a.doctorSummary(doctor)
		if apierr != nil {
			return nil, apierr
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (a *DefaultAdminService) GetDoctor(id int) (*DoctorSummary, apierror.ErrorResponse) {
	doctor, apierr := a.fetchDoctor(id)
	if apierr != nil {
		return nil, apierr
	}
	return a.doctorSummary(doctor)
}

func (a *DefaultAdminService) UpdateDoctor(id int, req *UpdateDoctorRequest) apierror.ErrorResponse {
	doctor, apierr := a.fetchDoctor(id)
	if apierr != nil {
		return apierr
	}

	if req.Approved != nil {
		doctor.Approved = *req.Approved
	}
	if req.Blocked != nil {
		doctor.Blocked = *req.Blocked
	}
	doctor.UpdatedAt = utils.NowUTC()

	if err := a.Users.Save(doctor); err != nil {
		log.Errorf("failed to update doctor %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

// DeleteDoctor removes the user row and profile. Appointment rows are
// kept; they carry their own identity snapshot.
func (a *DefaultAdminService) DeleteDoctor(id int) apierror.ErrorResponse {
	doctor, apierr := a.fetchDoctor(id)
	if apierr != nil {
		return apierr
	}

	profile, err := a.DoctorProfiles.FindByUserID(doctor.ID)
	if err != nil {
		log.Errorf("failed to fetch profile of doctor %d: %v", id, err)
		return apierror.InternalServerError
	}
	if profile != nil {
		if err := a.DoctorProfiles.Delete(profile); err != nil {
			log.Errorf("failed to delete profile of doctor %d: %v", id, err)
			return apierror.InternalServerError
		}
	}

	if err := a.Users.Delete(doctor); err != nil {
		log.Errorf("failed to delete doctor %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func (a *DefaultAdminService) ListPatients() ([]*PatientSummary, apierror.ErrorResponse) {
	patients, err := a.Users.FindByRole(entity.RolePatient)
	if err != nil {
		log.Errorf("failed to fetch patients: %v", err)
		return nil, apierror.InternalServerError
	}

	summaries := make([]*PatientSummary, len(patients))
	for i, patient := range patients {
		summaries[i] = &PatientSummary{ID: patient.ID, Username: patient.Username}
	}
	return summaries, nil
}

func (a *DefaultAdminService) ListAppointments() ([]*AppointmentResponse, apierror.ErrorResponse) {
	appts, err := a.Appointments.FindAll()
	if err != nil {
		log.Errorf("failed to fetch appointments: %v", err)
		return nil, apierror.InternalServerError
	}
	return toAppointmentResponses(appts), nil
}

// ModerateUser applies a block/unblock/approve/reject action to any
// user.
func (a *DefaultAdminService) ModerateUser(id int, req *ModerateUserRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	user, err := a.Users.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", id, err)
		return apierror.InternalServerError
	}
	if user == nil {
		return apierror.NotFoundError
	}

	switch req.Action {
	case "block":
		user.Blocked = true
	case "unblock":
		user.Blocked = false
	case "approve":
		user.Approved = true
	case "reject":
		user.Approved = false
	}
	user.UpdatedAt = utils.NowUTC()

	if err := a.Users.Save(user); err != nil {
		log.Errorf("failed to moderate user %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func (a *DefaultAdminService) CreateDepartment(req *CreateDepartmentRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	dept := &entity.Department{Name: req.Name, Description: req.Description}
	if err := a.Departments.Save(dept); err != nil {
		log.Errorf("failed to create department %q: %v", req.Name, err)
		return apierror.InternalServerError
	}
	return nil
}

// ExportDoctorAppointments renders the doctor's full appointment
// history as a CSV attachment.
func (a *DefaultAdminService) ExportDoctorAppointments(doctorID int) ([]byte, string, apierror.ErrorResponse) {
	if _, apierr := a.fetchDoctor(doctorID); apierr != nil {
		return nil, "", apierr
	}

	appts, err := a.Appointments.FindByDoctor(doctorID)
	if err != nil {
		log.Errorf("failed to fetch appointments for doctor %d: %v", doctorID, err)
		return nil, "", apierror.InternalServerError
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"appointment_id", "patient_id", "date", "time", "status", "remarks"})
	for _, appt := range appts {
		remarks := ""
		if appt.Remarks != nil {
			remarks = *appt.Remarks
		}
		_ = w.Write([]string{
			strconv.Itoa(appt.ID),
			strconv.Itoa(appt.PatientID),
			appt.Date,
			appt.Time,
			appt.Status,
			remarks,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Errorf("failed to render CSV for doctor %d: %v", doctorID, err)
		return nil, "", apierror.InternalServerError
	}

	filename := fmt.Sprintf("doctor_%d_appointments.csv", doctorID)
	return buf.Bytes(), filename, nil
}

func (a *DefaultAdminService) fetchDoctor(id int) (*entity.User, apierror.ErrorResponse) {
	user, err := a.Users.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if user == nil || user.Role != entity.RoleDoctor {
		return nil, apierror.NotFoundError
	}
	return user, nil
}

func (a *DefaultAdminService) doctorSummary(doctor *entity.User) (*DoctorSummary, apierror.ErrorResponse) {
	summary := &DoctorSummary{
		ID:       doctor.ID,
		Username: doctor.Username,
		Approved: doctor.Approved,
		Blocked:  doctor.Blocked,
	}

	profile, err := a.DoctorProfiles.FindByUserID(doctor.ID)
	if err != nil {
		log.Errorf("failed to fetch profile of doctor %d: %v", doctor.ID, err)
		return nil, apierror.InternalServerError
	}
	if profile == nil {
		return summary, nil
	}

	summary.SpecializationID = profile.SpecializationID
	summary.Experience = profile.Experience

	dept, err := a.Departments.FindByID(profile.SpecializationID)
	if err != nil {
		log.Errorf("failed to fetch department %d: %v", profile.SpecializationID, err)
		return nil, apierror.InternalServerError
	}
	if dept != nil {
		summary.SpecializationName = dept.Name
	}
	return summary, nil
}
