package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"hms/cmd/internal/domain/entity"
	"hms/cmd/internal/utils"
	"hms/cmd/internal/utils/apierror"
)

type DoctorProfileRequest struct {
	SpecializationID int    `json:"specialization_id" validate:"required,gt=0"`
	Experience       string `json:"experience" validate:"max=240"`
}

type DoctorProfileResponse struct {
	Username           string `json:"username"`
	SpecializationID   int    `json:"specialization_id"`
	SpecializationName string `json:"specialization_name,omitempty"`
	Experience         string `json:"experience"`
}

type PatientProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Age      int    `json:"age" validate:"gte=0,lte=130"`
	Contact  string `json:"contact" validate:"max=60"`
	Address  string `json:"address" validate:"max=240"`
}

type PatientProfileResponse struct {
	FullName string `json:"full_name"`
	Age      int    `json:"age"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
}

type TreatmentResponse struct {
	TreatmentID     int    `json:"treatment_id"`
	AppointmentID   int    `json:"appointment_id"`
	AppointmentDate string `json:"appointment_date,omitempty"`
	DoctorName      string `json:"doctor_name,omitempty"`
	Diagnosis       string `json:"diagnosis"`
	Prescription    string `json:"prescription"`
	Notes           string `json:"notes"`
}

type DefaultProfileService struct {
	Users           UserRepository
	DoctorProfiles  DoctorProfileRepository
	PatientProfiles PatientProfileRepository
	Departments     DepartmentRepository
	Treatments      TreatmentRepository
	Appointments    AppointmentRepository
	Validate        *validator.Validate
}

func NewProfileService(users UserRepository, doctorProfiles DoctorProfileRepository, patientProfiles PatientProfileRepository, departments DepartmentRepository, treatments TreatmentRepository, appointments AppointmentRepository, validate *validator.Validate) *DefaultProfileService {
	return &DefaultProfileService{
		Users:           users,
		DoctorProfiles:  doctorProfiles,
		PatientProfiles: patientProfiles,
		Departments:     departments,
		Treatments:      treatments,
		Appointments:    appointments,
		Validate:        validate,
	}
}

func (p *DefaultProfileService) GetDoctorProfile(userID int) (*DoctorProfileResponse, apierror.ErrorResponse) {
	profile, err := p.DoctorProfiles.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch doctor profile for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	if profile == nil {
		// "No profile yet" is a normal state for a fresh doctor
		// account; login routes them here to fill it in.
		return nil, apierror.NotFoundError
	}

	user, err := p.Users.FindByID(userID)
	if err != nil || user == nil {
		log.Errorf("failed to fetch user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	resp := &DoctorProfileResponse{
		Username:         user.Username,
		SpecializationID: profile.SpecializationID,
		Experience:       profile.Experience,
	}

	dept, err := p.Departments.FindByID(profile.SpecializationID)
	if err != nil {
		log.Errorf("failed to fetch department %d: %v", profile.SpecializationID, err)
		return nil, apierror.InternalServerError
	}
	if dept != nil {
		resp.SpecializationName = dept.Name
	}
	return resp, nil
}

// SaveDoctorProfile creates or replaces the doctor's own profile.
func (p *DefaultProfileService) SaveDoctorProfile(userID int, req *DoctorProfileRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	dept, err := p.Departments.FindByID(req.SpecializationID)
	if err != nil {
		log.Errorf("failed to fetch department %d: %v", req.SpecializationID, err)
		return apierror.InternalServerError
	}
	if dept == nil {
		return apierror.NewInvalidParamTypeError("specialization_id", "existing department id")
	}

	profile, err := p.DoctorProfiles.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch doctor profile for user %d: %v", userID, err)
		return apierror.InternalServerError
	}

	now := utils.NowUTC()
	if profile == nil {
		profile = &entity.DoctorProfile{UserID: userID, CreatedAt: now}
	}
	profile.SpecializationID = req.SpecializationID
	profile.Experience = req.Experience
	profile.UpdatedAt = now

	if err := p.DoctorProfiles.Save(profile); err != nil {
		log.Errorf("failed to save doctor profile for user %d: %v", userID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (p *DefaultProfileService) GetPatientProfile(userID int) (*PatientProfileResponse, apierror.ErrorResponse) {
	profile, err := p.PatientProfiles.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch patient profile for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	if profile == nil {
		return nil, apierror.NotFoundError
	}

	return &PatientProfileResponse{
		FullName: profile.FullName,
		Age:      profile.Age,
		Contact:  profile.Contact,
		Address:  profile.Address,
	}, nil
}

func (p *DefaultProfileService) SavePatientProfile(userID int, req *PatientProfileRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	profile, err := p.PatientProfiles.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch patient profile for user %d: %v", userID, err)
		return apierror.InternalServerError
	}

	now := utils.NowUTC()
	if profile == nil {
		profile = &entity.PatientProfile{UserID: userID, CreatedAt: now}
	}
	profile.FullName = req.FullName
	profile.Age = req.Age
	profile.Contact = req.Contact
	profile.Address = req.Address
	profile.UpdatedAt = now

	if err := p.PatientProfiles.Save(profile); err != nil {
		log.Errorf("failed to save patient profile for user %d: %v", userID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (p *DefaultProfileService) ListTreatments(patientID int) ([]*TreatmentResponse, apierror.ErrorResponse) {
	treatments, err := p.Treatments.FindByPatient(patientID)
	if err != nil {
		log.Errorf("failed to fetch treatments for patient %d: %v", patientID, err)
		return nil, apierror.InternalServerError
	}

	responses := make([]*TreatmentResponse, 0, len(treatments))
	for _, treatment := range treatments {
		resp := &TreatmentResponse{
			TreatmentID:   treatment.ID,
			AppointmentID: treatment.AppointmentID,
			Diagnosis:     treatment.Diagnosis,
			Prescription:  treatment.Prescription,
			Notes:         treatment.Notes,
		}

		appt, err := p.Appointments.FindByID(treatment.AppointmentID)
		if err != nil {
			log.Errorf("failed to fetch appointment %d: %v", treatment.AppointmentID, err)
			return nil, apierror.InternalServerError
		}
		if appt != nil {
			resp.AppointmentDate = appt.Date
			resp.DoctorName = appt.DoctorName
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// ExportTreatments renders the patient's treatment history as a CSV
// attachment.
func (p *DefaultProfileService) ExportTreatments(patientID int) ([]byte, string, apierror.ErrorResponse) {
	treatments, apierr := p.ListTreatments(patientID)
	if apierr != nil {
		return nil, "", apierr
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"appointment_date", "doctor_name", "diagnosis", "prescription", "notes"})
	for _, t := range treatments {
		_ = w.Write([]string{t.AppointmentDate, t.DoctorName, t.Diagnosis, t.Prescription, t.Notes})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Errorf("failed to render CSV for patient %d: %v", patientID, err)
		return nil, "", apierror.InternalServerError
	}

	filename := fmt.Sprintf("patient_%d_treatments.csv", patientID)
	return buf.Bytes(), filename, nil
}
