package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"hms/cmd/internal/service"
	"hms/cmd/internal/utils/apierror"
)

type AdminService interface {
	Dashboard() (*service.DashboardResponse, apierror.ErrorResponse)
	CreateDoctor(req *service.CreateDoctorRequest) apierror.ErrorResponse
	ListDoctors() ([]*service.DoctorSummary, apierror.ErrorResponse)
	GetDoctor(id int) (*service.DoctorSummary, apierror.ErrorResponse)
	UpdateDoctor(id int, req *service.UpdateDoctorRequest) apierror.ErrorResponse
	DeleteDoctor(id int) apierror.ErrorResponse
	ListPatients() ([]*service.PatientSummary, apierror.ErrorResponse)
	ListAppointments() ([]*service.AppointmentResponse, apierror.ErrorResponse)
	ModerateUser(id int, req *service.ModerateUserRequest) apierror.ErrorResponse
	CreateDepartment(req *service.CreateDepartmentRequest) apierror.ErrorResponse
	ExportDoctorAppointments(doctorID int) ([]byte, string, apierror.ErrorResponse)
}

type DefaultAdminRoute struct {
	AdminService AdminService
}

func NewAdminDefault(adminService AdminService) *DefaultAdminRoute {
	return &DefaultAdminRoute{AdminService: adminService}
}

func (a *DefaultAdminRoute) Dashboard(c echo.Context) error {
	dashboard, apierr := a.AdminService.Dashboard()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, dashboard)
}

func (a *DefaultAdminRoute) CreateDoctor(c echo.Context) error {
	var req service.CreateDoctorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := a.AdminService.CreateDoctor(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Doctor created successfully"})
}

func (a *DefaultAdminRoute) ListDoctors(c echo.Context) error {
	doctors, apierr := a.AdminService.ListDoctors()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"doctors": doctors}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAdminRoute) GetDoctor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	doctor, apierr := a.AdminService.GetDoctor(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, doctor)
}

func (a *DefaultAdminRoute) UpdateDoctor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.UpdateDoctorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := a.AdminService.UpdateDoctor(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}

func (a *DefaultAdminRoute) DeleteDoctor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	apierr := a.AdminService.DeleteDoctor(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted"})
}

func (a *DefaultAdminRoute) ListPatients(c echo.Context) error {
	patients, apierr := a.AdminService.ListPatients()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"patients": patients}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAdminRoute) ListAppointments(c echo.Context) error {
	appts, apierr := a.AdminService.ListAppointments()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAdminRoute) ModerateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.ModerateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := a.AdminService.ModerateUser(id, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "done"})
}

func (a *DefaultAdminRoute) CreateDepartment(c echo.Context) error {
	var req service.CreateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	apierr := a.AdminService.CreateDepartment(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Department created successfully"})
}

func (a *DefaultAdminRoute) ExportDoctorAppointments(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	data, filename, apierr := a.AdminService.ExportDoctorAppointments(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv", data)
}
