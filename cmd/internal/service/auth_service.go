package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"hms/cmd/internal/domain/entity"
	"hms/cmd/internal/token"
	"hms/cmd/internal/utils"
	"hms/cmd/internal/utils/apierror"
)

type UserRepository interface {
	FindByID(id int) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	ExistsByUsername(username string) (bool, error)
	FindByRole(role string) ([]*entity.User, error)
	CountByRole(role string) (int64, error)
	Save(user *entity.User) error
	Delete(user *entity.User) error
}

type DoctorProfileRepository interface {
	FindByUserID(userID int) (*entity.DoctorProfile, error)
	FindBySpecialization(departmentID int) ([]*entity.DoctorProfile, error)
	Save(profile *entity.DoctorProfile) error
	Delete(profile *entity.DoctorProfile) error
}

type PatientProfileRepository interface {
	FindByUserID(userID int) (*entity.PatientProfile, error)
	Save(profile *entity.PatientProfile) error
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=120"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=120,nospaces"`
	Password string `json:"password" validate:"required,min=8,max=64,hasspecial,hasdigit,hasupper,haslower"`
}

type DefaultAuthService struct {
	Users           UserRepository
	DoctorProfiles  DoctorProfileRepository
	PatientProfiles PatientProfileRepository
	Validate        *validator.Validate
	Tokens          *token.Issuer
}

func NewAuthService(users UserRepository, doctorProfiles DoctorProfileRepository, patientProfiles PatientProfileRepository, validate *validator.Validate, tokens *token.Issuer) *DefaultAuthService {
	return &DefaultAuthService{
		Users:           users,
		DoctorProfiles:  doctorProfiles,
		PatientProfiles: patientProfiles,
		Validate:        validate,
		Tokens:          tokens,
	}
}

// Login verifies the credentials against the local user record and
// issues a signed, time-bounded claims token. There is no server-side
// session: logout is the client discarding the token, which is why the
// token TTL is kept short.
func (s *DefaultAuthService) Login(req *LoginRequest) (*LoginResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, err := s.Users.FindByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to fetch user %q: %v", req.Username, err)
		return nil, apierror.InternalServerError
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apierror.InvalidCredentialsError
	}

	if user.Blocked {
		return nil, apierror.AccountBlockedError
	}
	if user.Role == entity.RoleDoctor && !user.Approved {
		return nil, apierror.PendingApprovalError
	}

	redirect, apierr := s.redirectFor(user)
	if apierr != nil {
		return nil, apierr
	}

	raw, err := s.Tokens.Issue(user.ID, user.Role, redirect)
	if err != nil {
		log.Errorf("failed to issue token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &LoginResponse{AccessToken: raw}, nil
}

// Register creates a patient account. Patients are the only
// self-registering role; doctors are created by an admin.
func (s *DefaultAuthService) Register(req *RegisterRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	found, err := s.Users.ExistsByUsername(req.Username)
	if err != nil {
		log.Errorf("failed to check if user %q exists: %v", req.Username, err)
		return apierror.InternalServerError
	}
	if found {
		return apierror.UserAlreadyExistsError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("failed to hash password for %q: %v", req.Username, err)
		return apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		Username:  req.Username,
		Password:  string(hash),
		Role:      entity.RolePatient,
		Approved:  true, // patients are auto-approved
		Blocked:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Users.Save(user); err != nil {
		log.Errorf("failed to create user %q: %v", req.Username, err)
		return apierror.InternalServerError
	}
	return nil
}

// redirectFor computes the post-login destination: the role dashboard,
// or profile completion when the role's profile row is absent. The hint
// is derived server-side from the user record, never trusted from
// client state.
func (s *DefaultAuthService) redirectFor(user *entity.User) (string, apierror.ErrorResponse) {
	switch user.Role {
	case entity.RoleAdmin:
		return "admin_dashboard", nil

	case entity.RoleDoctor:
		profile, err := s.DoctorProfiles.FindByUserID(user.ID)
		if err != nil {
			log.Errorf("failed to fetch doctor profile for user %d: %v", user.ID, err)
			return "", apierror.InternalServerError
		}
		if profile == nil {
			return "doctor_profile", nil
		}
		return "doctor_dashboard", nil

	case entity.RolePatient:
		profile, err := s.PatientProfiles.FindByUserID(user.ID)
		if err != nil {
			log.Errorf("failed to fetch patient profile for user %d: %v", user.ID, err)
			return "", apierror.InternalServerError
		}
		if profile == nil {
			return "patient_profile", nil
		}
		return "patient_dashboard", nil
	}

	log.Errorf("user %d has unknown role %q", user.ID, user.Role)
	return "", apierror.InternalServerError
}
