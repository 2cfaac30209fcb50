package routes

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"hms/cmd/internal/service"
	"hms/cmd/internal/utils/apierror"
)

type ProfileService interface {
	GetDoctorProfile(userID int) (*service.DoctorProfileResponse, apierror.ErrorResponse)
	SaveDoctorProfile(userID int, req *service.DoctorProfileRequest) apierror.ErrorResponse
	GetPatientProfile(userID int) (*service.PatientProfileResponse, apierror.ErrorResponse)
	SavePatientProfile(userID int, req *service.PatientProfileRequest) apierror.ErrorResponse
	ListTreatments(patientID int) ([]*service.TreatmentResponse, apierror.ErrorResponse)
	ExportTreatments(patientID int) ([]byte, string, apierror.ErrorResponse)
}

type DefaultProfileRoute struct {
	ProfileService ProfileService
}

func NewProfileDefault(profileService ProfileService) *DefaultProfileRoute {
	return &DefaultProfileRoute{ProfileService: profileService}
}

func (p *DefaultProfileRoute) GetDoctorProfile(c echo.Context) error {
	claims := ClaimsFrom(c)

	profile, apierr := p.ProfileService.GetDoctorProfile(claims.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}

func (p *DefaultProfileRoute) SaveDoctorProfile(c echo.Context) error {
	var req service.DoctorProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	claims := ClaimsFrom(c)
	apierr := p.ProfileService.SaveDoctorProfile(claims.UserID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully"})
}

func (p *DefaultProfileRoute) GetPatientProfile(c echo.Context) error {
	claims := ClaimsFrom(c)

	profile, apierr := p.ProfileService.GetPatientProfile(claims.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}

func (p *DefaultProfileRoute) SavePatientProfile(c echo.Context) error {
	var req service.PatientProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	claims := ClaimsFrom(c)
	apierr := p.ProfileService.SavePatientProfile(claims.UserID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "saved"})
}

func (p *DefaultProfileRoute) GetTreatments(c echo.Context) error {
	claims := ClaimsFrom(c)

	treatments, apierr := p.ProfileService.ListTreatments(claims.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"treatments": treatments}
	return c.JSON(http.StatusOK, &resp)
}

func (p *DefaultProfileRoute) ExportTreatments(c echo.Context) error {
	claims := ClaimsFrom(c)

	data, filename, apierr := p.ProfileService.ExportTreatments(claims.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv", data)
}
