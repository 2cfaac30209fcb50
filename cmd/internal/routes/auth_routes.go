package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hms/cmd/internal/service"
	"hms/cmd/internal/utils/apierror"
)

type AuthService interface {
	Login(req *service.LoginRequest) (*service.LoginResponse, apierror.ErrorResponse)
	Register(req *service.RegisterRequest) apierror.ErrorResponse
}

type DefaultAuthRoute struct {
	AuthService AuthService
}

func NewAuthDefault(authService AuthService) *DefaultAuthRoute {
	return &DefaultAuthRoute{AuthService: authService}
}

func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := a.AuthService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAuthRoute) Register(c echo.Context) error {
	var req service.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := a.AuthService.Register(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "registered"})
}

// GetClaims echoes back the verified claims so the client can restore
// its navigation state from the token alone.
func (a *DefaultAuthRoute) GetClaims(c echo.Context) error {
	claims := ClaimsFrom(c)
	resp := echo.Map{"claims": echo.Map{
		"user_id":  claims.UserID,
		"role":     claims.Role,
		"redirect": claims.Redirect,
	}}
	return c.JSON(http.StatusOK, &resp)
}
