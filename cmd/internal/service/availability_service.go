package service

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"hms/cmd/internal/domain/entity"
	"hms/cmd/internal/utils"
	"hms/cmd/internal/utils/apierror"
)

type AvailabilityRepository interface {
	FindByDoctor(doctorID int) ([]*entity.AvailabilityDay, error)
	FindByDoctorAndDate(doctorID int, date string) (*entity.AvailabilityDay, error)
	Upsert(days []*entity.AvailabilityDay) error
}

// SlotTemplate is the fixed daily list of offered times. It is
// configuration, not ledger data: the same template applies to every
// doctor and every date.
type SlotTemplate struct {
	StartHour   int
	EndHour     int
	StepMinutes int
}

// Times returns the template as an ordered list of "03:04 PM" strings,
// from StartHour inclusive to EndHour exclusive.
func (t SlotTemplate) Times() []string {
	start := time.Date(2000, 1, 1, t.StartHour, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, t.EndHour, 0, 0, 0, time.UTC)

	var times []string
	for cur := start; cur.Before(end); cur = cur.Add(time.Duration(t.StepMinutes) * time.Minute) {
		times = append(times, utils.FormatClock(cur))
	}
	return times
}

type SetAvailabilityRequest struct {
	Availability map[string]bool `json:"availability" validate:"required,min=1"`
}

type DefaultAvailabilityService struct {
	Availability AvailabilityRepository
	Validate     *validator.Validate
	Template     SlotTemplate
}

func NewAvailabilityService(availability AvailabilityRepository, validate *validator.Validate, template SlotTemplate) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{Availability: availability, Validate: validate, Template: template}
}

// SetAvailability overwrites exactly the supplied dates of the doctor's
// ledger. Dates not present in the request are left untouched.
func (s *DefaultAvailabilityService) SetAvailability(doctorID int, req *SetAvailabilityRequest) apierror.ErrorResponse {
	if err := s.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	now := utils.NowUTC()
	days := make([]*entity.AvailabilityDay, 0, len(req.Availability))
	for date, available := range req.Availability {
		if _, err := utils.ParseDate(date); err != nil {
			return apierror.NewInvalidParamTypeError(date, "date (2006-01-02)")
		}
		days = append(days, &entity.AvailabilityDay{
			DoctorID:  doctorID,
			Date:      date,
			Available: available,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	if err := s.Availability.Upsert(days); err != nil {
		log.Errorf("failed to save availability for doctor %d: %v", doctorID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultAvailabilityService) GetAvailability(doctorID int) (map[string]bool, apierror.ErrorResponse) {
	days, err := s.Availability.FindByDoctor(doctorID)
	if err != nil {
		log.Errorf("failed to fetch availability for doctor %d: %v", doctorID, err)
		return nil, apierror.InternalServerError
	}

	availability := make(map[string]bool, len(days))
	for _, day := range days {
		availability[day.Date] = day.Available
	}
	return availability, nil
}

// CandidateSlots derives the offered times for a doctor/date before
// booking history is subtracted. Default policy: a date with no ledger
// entry counts as available and yields the full daily template.
func (s *DefaultAvailabilityService) CandidateSlots(doctorID int, date string) ([]string, error) {
	day, err := s.Availability.FindByDoctorAndDate(doctorID, date)
	if err != nil {
		return nil, err
	}
	if day != nil && !day.Available {
		return nil, nil
	}
	return s.Template.Times(), nil
}
