package service

import (
	"errors"

	"github.com/labstack/gommon/log"

	"hms/cmd/internal/domain/entity"
	"hms/cmd/internal/utils/apierror"
)

type DepartmentRepository interface {
	FindByID(id int) (*entity.Department, error)
	FindAll() ([]*entity.Department, error)
	Save(dept *entity.Department) error
}

type DepartmentResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type DepartmentDoctor struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Experience string `json:"experience"`
}

type DepartmentDetailResponse struct {
	Department *DepartmentResponse `json:"department"`
	Doctors    []*DepartmentDoctor `json:"doctors"`
}

// DefaultDirectoryService is the lookup collaborator of the booking
// engine: doctor validity, identity snapshots and department reference
// data.
type DefaultDirectoryService struct {
	Users          UserRepository
	DoctorProfiles DoctorProfileRepository
	Departments    DepartmentRepository
}

func NewDirectoryService(users UserRepository, doctorProfiles DoctorProfileRepository, departments DepartmentRepository) *DefaultDirectoryService {
	return &DefaultDirectoryService{Users: users, DoctorProfiles: doctorProfiles, Departments: departments}
}

// DoctorIsBookable reports whether the user exists, is a doctor, is
// approved and is not blocked.
func (d *DefaultDirectoryService) DoctorIsBookable(doctorID int) (bool, error) {
	user, err := d.Users.FindByID(doctorID)
	if err != nil {
		return false, err
	}
	return user != nil && user.Role == entity.RoleDoctor && user.Approved && !user.Blocked, nil
}

// DoctorIdentity returns the snapshot data stored on appointments: the
// doctor's name and, when a profile exists, their department name.
func (d *DefaultDirectoryService) DoctorIdentity(doctorID int) (*DoctorRecord, error) {
	user, err := d.Users.FindByID(doctorID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != entity.RoleDoctor {
		return nil, errors.New("doctor not found")
	}

	record := &DoctorRecord{Name: user.Username}

	profile, err := d.DoctorProfiles.FindByUserID(doctorID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		dept, err := d.Departments.FindByID(profile.SpecializationID)
		if err != nil {
			return nil, err
		}
		if dept != nil {
			record.Department = dept.Name
		}
	}
	return record, nil
}

func (d *DefaultDirectoryService) DepartmentExists(id int) (bool, error) {
	dept, err := d.Departments.FindByID(id)
	if err != nil {
		return false, err
	}
	return dept != nil, nil
}

func (d *DefaultDirectoryService) ListDepartments() ([]*DepartmentResponse, apierror.ErrorResponse) {
	depts, err := d.Departments.FindAll()
	if err != nil {
		log.Errorf("failed to fetch departments: %v", err)
		return nil, apierror.InternalServerError
	}

	responses := make([]*DepartmentResponse, len(depts))
	for i, dept := range depts {
		responses[i] = toDepartmentResponse(dept)
	}
	return responses, nil
}

// GetDepartment returns a department with its approved, unblocked
// doctors.
func (d *DefaultDirectoryService) GetDepartment(id int) (*DepartmentDetailResponse, apierror.ErrorResponse) {
	dept, err := d.Departments.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch department %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if dept == nil {
		return nil, apierror.NotFoundError
	}

	profiles, err := d.DoctorProfiles.FindBySpecialization(id)
	if err != nil {
		log.Errorf("failed to fetch doctors of department %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	var doctors []*DepartmentDoctor
	for _, profile := range profiles {
		user, err := d.Users.FindByID(profile.UserID)
		if err != nil {
			log.Errorf("failed to fetch doctor %d: %v", profile.UserID, err)
			return nil, apierror.InternalServerError
		}
		if user == nil || !user.Approved || user.Blocked {
			continue
		}
		doctors = append(doctors, &DepartmentDoctor{
			ID:         user.ID,
			Name:       user.Username,
			Experience: profile.Experience,
		})
	}

	return &DepartmentDetailResponse{
		Department: toDepartmentResponse(dept),
		Doctors:    doctors,
	}, nil
}

func toDepartmentResponse(dept *entity.Department) *DepartmentResponse {
	return &DepartmentResponse{ID: dept.ID, Name: dept.Name, Description: dept.Description}
}
