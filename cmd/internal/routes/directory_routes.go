package routes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"hms/cmd/internal/service"
	"hms/cmd/internal/utils/apierror"
)

type DirectoryService interface {
	ListDepartments() ([]*service.DepartmentResponse, apierror.ErrorResponse)
	GetDepartment(id int) (*service.DepartmentDetailResponse, apierror.ErrorResponse)
}

type DefaultDirectoryRoute struct {
	DirectoryService DirectoryService
}

func NewDirectoryDefault(directoryService DirectoryService) *DefaultDirectoryRoute {
	return &DefaultDirectoryRoute{DirectoryService: directoryService}
}

func (d *DefaultDirectoryRoute) ListDepartments(c echo.Context) error {
	depts, apierr := d.DirectoryService.ListDepartments()
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"departments": depts}
	return c.JSON(http.StatusOK, &resp)
}

func (d *DefaultDirectoryRoute) GetDepartment(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	detail, apierr := d.DirectoryService.GetDepartment(id)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, detail)
}
