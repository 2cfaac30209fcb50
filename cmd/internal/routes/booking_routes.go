package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"hms/cmd/internal/service"
	"hms/cmd/internal/utils"
	"hms/cmd/internal/utils/apierror"
)

// Default window offered when the caller does not narrow the range.
const defaultSlotWindowDays = 13

type BookingService interface {
	ListBookableSlots(doctorID int, first, last string) ([]*service.DaySlots, apierror.ErrorResponse)
	Book(patientID int, req *service.BookAppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	Cancel(patientID, appointmentID int) apierror.ErrorResponse
	Complete(doctorID, appointmentID int, req *service.CompleteAppointmentRequest) apierror.ErrorResponse
	ListForDoctor(doctorID int) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	ListForPatient(patientID int) ([]*service.AppointmentResponse, apierror.ErrorResponse)
}

type DefaultBookingRoute struct {
	BookingService BookingService
}

func NewBookingDefault(bookingService BookingService) *DefaultBookingRoute {
	return &DefaultBookingRoute{BookingService: bookingService}
}

// GetBookableSlots serves GET /doctor/:id/availability — the bookable
// slot listing patients pick from. Optional from/to query params bound
// the range; the default window starts today.
func (b *DefaultBookingRoute) GetBookableSlots(c echo.Context) error {
	doctorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	first := c.QueryParam("from")
	if first == "" {
		first = utils.FormatDate(time.Now().UTC())
	}
	last := c.QueryParam("to")
	if last == "" {
		firstDay, perr := utils.ParseDate(first)
		if perr != nil {
			apierr := apierror.NewInvalidParamTypeError("from", "date (2006-01-02)")
			return c.JSON(apierr.Code(), apierr)
		}
		last = utils.FormatDate(firstDay.AddDate(0, 0, defaultSlotWindowDays))
	}

	days, apierr := b.BookingService.ListBookableSlots(doctorID, first, last)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"availability": days}
	return c.JSON(http.StatusOK, &resp)
}

// GetDoctorAppointments serves GET /doctor/:id/appointments — the
// booked history patients use to mark taken slots.
func (b *DefaultBookingRoute) GetDoctorAppointments(c echo.Context) error {
	doctorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	appts, apierr := b.BookingService.ListForDoctor(doctorID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookingRoute) GetOwnDoctorAppointments(c echo.Context) error {
	claims := ClaimsFrom(c)

	appts, apierr := b.BookingService.ListForDoctor(claims.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookingRoute) GetPatientAppointments(c echo.Context) error {
	claims := ClaimsFrom(c)

	appts, apierr := b.BookingService.ListForPatient(claims.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (b *DefaultBookingRoute) BookAppointment(c echo.Context) error {
	var req service.BookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	claims := ClaimsFrom(c)
	appt, apierr := b.BookingService.Book(claims.UserID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"message": "Appointment booked successfully", "appointment": appt}
	return c.JSON(http.StatusCreated, &resp)
}

func (b *DefaultBookingRoute) CancelAppointment(c echo.Context) error {
	appointmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	claims := ClaimsFrom(c)
	apierr := b.BookingService.Cancel(claims.UserID, appointmentID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cancelled"})
}

func (b *DefaultBookingRoute) CompleteAppointment(c echo.Context) error {
	appointmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apierr := apierror.NewInvalidParamTypeError("id", "int32")
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.CompleteAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	claims := ClaimsFrom(c)
	apierr := b.BookingService.Complete(claims.UserID, appointmentID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Appointment completed and treatment saved"})
}
