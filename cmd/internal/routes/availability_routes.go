package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hms/cmd/internal/service"
	"hms/cmd/internal/utils/apierror"
)

type AvailabilityService interface {
	SetAvailability(doctorID int, req *service.SetAvailabilityRequest) apierror.ErrorResponse
	GetAvailability(doctorID int) (map[string]bool, apierror.ErrorResponse)
}

type DefaultAvailabilityRoute struct {
	AvailabilityService AvailabilityService
}

func NewAvailabilityDefault(availabilityService AvailabilityService) *DefaultAvailabilityRoute {
	return &DefaultAvailabilityRoute{AvailabilityService: availabilityService}
}

// GetOwnAvailability returns the calling doctor's raw ledger.
func (a *DefaultAvailabilityRoute) GetOwnAvailability(c echo.Context) error {
	claims := ClaimsFrom(c)

	availability, apierr := a.AvailabilityService.GetAvailability(claims.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"availability": availability}
	return c.JSON(http.StatusOK, &resp)
}

// SetAvailability writes the calling doctor's own ledger; the doctor id
// comes from the token, so nobody can write another doctor's days.
func (a *DefaultAvailabilityRoute) SetAvailability(c echo.Context) error {
	var req service.SetAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	claims := ClaimsFrom(c)
	apierr := a.AvailabilityService.SetAvailability(claims.UserID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Availability updated successfully"})
}
