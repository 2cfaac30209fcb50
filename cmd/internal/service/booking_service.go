package service

import (
	"errors"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"hms/cmd/internal/domain/entity"
	"hms/cmd/internal/utils"
	"hms/cmd/internal/utils/apierror"
)

// A date range longer than this is rejected rather than scanned.
const maxSlotRangeDays = 62

type AppointmentRepository interface {
	Create(appt *entity.Appointment) error
	FindByID(id int) (*entity.Appointment, error)
	FindByDoctor(doctorID int) ([]*entity.Appointment, error)
	FindByDoctorDateRange(doctorID int, first, last string) ([]*entity.Appointment, error)
	FindByPatient(patientID int) ([]*entity.Appointment, error)
	FindAll() ([]*entity.Appointment, error)
	CountAll() (int64, error)
	CountFromDate(date string) (int64, error)
	Save(appt *entity.Appointment) error
}

type TreatmentRepository interface {
	Save(treatment *entity.Treatment) error
	FindByPatient(patientID int) ([]*entity.Treatment, error)
}

// SlotSource yields the candidate times for a doctor/date before booked
// history is subtracted.
type SlotSource interface {
	CandidateSlots(doctorID int, date string) ([]string, error)
}

// Directory supplies doctor identity and validity to the booking
// engine.
type Directory interface {
	DoctorIsBookable(doctorID int) (bool, error)
	DoctorIdentity(doctorID int) (*DoctorRecord, error)
}

// DoctorRecord is the identity snapshot stored on each appointment so
// history survives doctor deletion.
type DoctorRecord struct {
	Name       string
	Department string
}

type BookAppointmentRequest struct {
	DoctorID int    `json:"doctor_id" validate:"required,gt=0"`
	Date     string `json:"date" validate:"required,isodate"`
	Time     string `json:"time" validate:"required,clocktime"`
}

type CompleteAppointmentRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"max=2000"`
	Prescription string `json:"prescription" validate:"max=2000"`
	Notes        string `json:"notes" validate:"max=2000"`
}

type AppointmentResponse struct {
	ID             int     `json:"id"`
	DoctorID       int     `json:"doctor_id"`
	PatientID      int     `json:"patient_id"`
	DoctorName     string  `json:"doctor_name"`
	DepartmentName string  `json:"department_name,omitempty"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Status         string  `json:"status"`
	Remarks        *string `json:"remarks"`
	CanCancel      bool    `json:"can_cancel"`
}

type DaySlots struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type DefaultBookingService struct {
	Appointments AppointmentRepository
	Treatments   TreatmentRepository
	Slots        SlotSource
	Directory    Directory
	Validate     *validator.Validate
}

func NewBookingService(appointments AppointmentRepository, treatments TreatmentRepository, slots SlotSource, directory Directory, validate *validator.Validate) *DefaultBookingService {
	return &DefaultBookingService{
		Appointments: appointments,
		Treatments:   treatments,
		Slots:        slots,
		Directory:    directory,
		Validate:     validate,
	}
}

// ListBookableSlots returns, per date in [first, last], the candidate
// times minus every time for which an appointment row exists in ANY
// status. A slot that was ever booked is never offered again, even
// after cancellation; this is the invariant the rest of the booking
// engine is built around.
func (b *DefaultBookingService) ListBookableSlots(doctorID int, first, last string) ([]*DaySlots, apierror.ErrorResponse) {
	firstDay, err := utils.ParseDate(first)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError("from", "date (2006-01-02)")
	}
	lastDay, err := utils.ParseDate(last)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError("to", "date (2006-01-02)")
	}
	if lastDay.Before(firstDay) {
		return nil, apierror.NewSimple(400, apierror.KindValidation, "Date range is reversed")
	}
	if lastDay.Sub(firstDay).Hours() > 24*maxSlotRangeDays {
		return nil, apierror.NewSimple(400, apierror.KindValidation, "Date range is too large")
	}

	appts, err := b.Appointments.FindByDoctorDateRange(doctorID, first, last)
	if err != nil {
		log.Errorf("failed to fetch appointments for doctor %d: %v", doctorID, err)
		return nil, apierror.InternalServerError
	}

	taken := make(map[string]map[string]bool)
	for _, appt := range appts {
		if taken[appt.Date] == nil {
			taken[appt.Date] = make(map[string]bool)
		}
		taken[appt.Date][appt.Time] = true
	}

	var days []*DaySlots
	for _, date := range utils.DatesBetween(firstDay, lastDay) {
		candidates, err := b.Slots.CandidateSlots(doctorID, date)
		if err != nil {
			log.Errorf("failed to derive slots for doctor %d on %s: %v", doctorID, date, err)
			return nil, apierror.InternalServerError
		}

		var free []string
		for _, t := range candidates {
			if !taken[date][t] {
				free = append(free, t)
			}
		}
		if len(free) > 0 {
			days = append(days, &DaySlots{Date: date, Slots: free})
		}
	}
	return days, nil
}

// Book reserves a slot for the patient. The final arbiter is the
// storage layer's unique index on (doctor_id, date, time): of any
// number of concurrent calls for the same triple exactly one insert
// commits and the rest surface as SlotUnavailable. The candidate check
// beforehand only filters times outside the doctor's offer.
func (b *DefaultBookingService) Book(patientID int, req *BookAppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := b.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	bookable, err := b.Directory.DoctorIsBookable(req.DoctorID)
	if err != nil {
		log.Errorf("failed to check doctor %d: %v", req.DoctorID, err)
		return nil, apierror.InternalServerError
	}
	if !bookable {
		return nil, apierror.DoctorNotBookableError
	}

	candidates, err := b.Slots.CandidateSlots(req.DoctorID, req.Date)
	if err != nil {
		log.Errorf("failed to derive slots for doctor %d on %s: %v", req.DoctorID, req.Date, err)
		return nil, apierror.InternalServerError
	}
	if !slices.Contains(candidates, req.Time) {
		return nil, apierror.SlotUnavailableError
	}

	doctor, err := b.Directory.DoctorIdentity(req.DoctorID)
	if err != nil {
		log.Errorf("failed to fetch identity of doctor %d: %v", req.DoctorID, err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	appt := &entity.Appointment{
		DoctorID:       req.DoctorID,
		PatientID:      patientID,
		Date:           req.Date,
		Time:           req.Time,
		Status:         entity.StatusBooked,
		DoctorName:     doctor.Name,
		DepartmentName: doctor.Department,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := b.Appointments.Create(appt); err != nil {
		if errors.Is(err, entity.ErrSlotTaken) {
			return nil, apierror.SlotUnavailableError
		}
		log.Errorf("failed to save appointment: %v", err)
		return nil, apierror.InternalServerError
	}
	return toAppointmentResponse(appt), nil
}

// Cancel moves a Booked appointment to Cancelled. The row is kept:
// cancelled slots are never re-offered.
func (b *DefaultBookingService) Cancel(patientID, appointmentID int) apierror.ErrorResponse {
	appt, err := b.Appointments.FindByID(appointmentID)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", appointmentID, err)
		return apierror.InternalServerError
	}

	// Appointments of other patients are indistinguishable from absent
	// ones on purpose.
	if appt == nil || appt.PatientID != patientID {
		return apierror.NotFoundError
	}
	if appt.Status != entity.StatusBooked {
		return apierror.InvalidStateError
	}

	appt.Status = entity.StatusCancelled
	appt.UpdatedAt = utils.NowUTC()
	if err := b.Appointments.Save(appt); err != nil {
		log.Errorf("failed to cancel appointment %d: %v", appointmentID, err)
		return apierror.InternalServerError
	}
	return nil
}

// Complete moves a Booked appointment to Completed and records the
// treatment. Doctor-owned counterpart of Cancel.
func (b *DefaultBookingService) Complete(doctorID, appointmentID int, req *CompleteAppointmentRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := b.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	appt, err := b.Appointments.FindByID(appointmentID)
	if err != nil {
		log.Errorf("failed to fetch appointment %d: %v", appointmentID, err)
		return apierror.InternalServerError
	}
	if appt == nil || appt.DoctorID != doctorID {
		return apierror.NotFoundError
	}
	if appt.Status != entity.StatusBooked {
		return apierror.InvalidStateError
	}

	appt.Status = entity.StatusCompleted
	appt.UpdatedAt = utils.NowUTC()
	if err := b.Appointments.Save(appt); err != nil {
		log.Errorf("failed to complete appointment %d: %v", appointmentID, err)
		return apierror.InternalServerError
	}

	treatment := &entity.Treatment{
		AppointmentID: appt.ID,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		Notes:         req.Notes,
		CreatedAt:     utils.NowUTC(),
	}
	if err := b.Treatments.Save(treatment); err != nil {
		log.Errorf("failed to save treatment for appointment %d: %v", appointmentID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (b *DefaultBookingService) ListForDoctor(doctorID int) ([]*AppointmentResponse, apierror.ErrorResponse) {
	appts, err := b.Appointments.FindByDoctor(doctorID)
	if err != nil {
		log.Errorf("failed to fetch appointments for doctor %d: %v", doctorID, err)
		return nil, apierror.InternalServerError
	}
	sortByDateTime(appts)
	return toAppointmentResponses(appts), nil
}

func (b *DefaultBookingService) ListForPatient(patientID int) ([]*AppointmentResponse, apierror.ErrorResponse) {
	appts, err := b.Appointments.FindByPatient(patientID)
	if err != nil {
		log.Errorf("failed to fetch appointments for patient %d: %v", patientID, err)
		return nil, apierror.InternalServerError
	}
	sortByDateTime(appts)
	return toAppointmentResponses(appts), nil
}

// sortByDateTime orders by date then time-of-day ascending. The "03:04
// PM" wire format does not sort lexicographically, so the database
// ordering alone is not enough.
func sortByDateTime(appts []*entity.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		ti, _ := utils.ParseClock(appts[i].Time)
		tj, _ := utils.ParseClock(appts[j].Time)
		return ti.Before(tj)
	})
}

func toAppointmentResponses(appts []*entity.Appointment) []*AppointmentResponse {
	responses := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		responses[i] = toAppointmentResponse(appt)
	}
	return responses
}

func toAppointmentResponse(appt *entity.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             appt.ID,
		DoctorID:       appt.DoctorID,
		PatientID:      appt.PatientID,
		DoctorName:     appt.DoctorName,
		DepartmentName: appt.DepartmentName,
		Date:           appt.Date,
		Time:           appt.Time,
		Status:         appt.Status,
		Remarks:        appt.Remarks,
		CanCancel:      appt.Status == entity.StatusBooked,
	}
}
