package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"

	"hms/cmd/internal/domain/entity"
	"hms/cmd/internal/utils/validators"
)

func newTestValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	_ = validate.RegisterValidation("isodate", validators.IsISODate)
	_ = validate.RegisterValidation("clocktime", validators.IsClockTime)
	return validate
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*entity.User)}
}

func (f *fakeUserRepo) FindByID(id int) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	user, _ := f.FindByUsername(username)
	return user != nil, nil
}

func (f *fakeUserRepo) FindByRole(role string) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []*entity.User
	for _, user := range f.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) CountByRole(role string) (int64, error) {
	users, _ := f.FindByRole(role)
	return int64(len(users)), nil
}

func (f *fakeUserRepo) Save(user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, user.ID)
	return nil
}

type fakeDoctorProfileRepo struct {
	mu       sync.Mutex
	nextID   int
	profiles map[int]*entity.DoctorProfile // keyed by user id
}

func newFakeDoctorProfileRepo() *fakeDoctorProfileRepo {
	return &fakeDoctorProfileRepo{profiles: make(map[int]*entity.DoctorProfile)}
}

func (f *fakeDoctorProfileRepo) FindByUserID(userID int) (*entity.DoctorProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[userID], nil
}

func (f *fakeDoctorProfileRepo) FindBySpecialization(departmentID int) ([]*entity.DoctorProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var profiles []*entity.DoctorProfile
	for _, profile := range f.profiles {
		if profile.SpecializationID == departmentID {
			profiles = append(profiles, profile)
		}
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].UserID < profiles[j].UserID })
	return profiles, nil
}

func (f *fakeDoctorProfileRepo) Save(profile *entity.DoctorProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if profile.ID == 0 {
		f.nextID++
		profile.ID = f.nextID
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeDoctorProfileRepo) Delete(profile *entity.DoctorProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.profiles, profile.UserID)
	return nil
}

type fakePatientProfileRepo struct {
	mu       sync.Mutex
	nextID   int
	profiles map[int]*entity.PatientProfile
}

func newFakePatientProfileRepo() *fakePatientProfileRepo {
	return &fakePatientProfileRepo{profiles: make(map[int]*entity.PatientProfile)}
}

func (f *fakePatientProfileRepo) FindByUserID(userID int) (*entity.PatientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[userID], nil
}

func (f *fakePatientProfileRepo) Save(profile *entity.PatientProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if profile.ID == 0 {
		f.nextID++
		profile.ID = f.nextID
	}
	f.profiles[profile.UserID] = profile
	return nil
}

type fakeDepartmentRepo struct {
	mu     sync.Mutex
	nextID int
	depts  map[int]*entity.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{depts: make(map[int]*entity.Department)}
}

func (f *fakeDepartmentRepo) FindByID(id int) (*entity.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.depts[id], nil
}

func (f *fakeDepartmentRepo) FindAll() ([]*entity.Department, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var depts []*entity.Department
	for _, dept := range f.depts {
		depts = append(depts, dept)
	}
	sort.Slice(depts, func(i, j int) bool { return depts[i].Name < depts[j].Name })
	return depts, nil
}

func (f *fakeDepartmentRepo) Save(dept *entity.Department) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if dept.ID == 0 {
		f.nextID++
		dept.ID = f.nextID
	}
	f.depts[dept.ID] = dept
	return nil
}

type fakeAvailabilityRepo struct {
	mu     sync.Mutex
	nextID int
	days   map[string]*entity.AvailabilityDay // keyed by doctor|date
}

func newFakeAvailabilityRepo() *fakeAvailabilityRepo {
	return &fakeAvailabilityRepo{days: make(map[string]*entity.AvailabilityDay)}
}

func availabilityKey(doctorID int, date string) string {
	return fmt.Sprintf("%d|%s", doctorID, date)
}

func (f *fakeAvailabilityRepo) FindByDoctor(doctorID int) ([]*entity.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var days []*entity.AvailabilityDay
	for _, day := range f.days {
		if day.DoctorID == doctorID {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

func (f *fakeAvailabilityRepo) FindByDoctorAndDate(doctorID int, date string) (*entity.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.days[availabilityKey(doctorID, date)], nil
}

func (f *fakeAvailabilityRepo) Upsert(days []*entity.AvailabilityDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, day := range days {
		key := availabilityKey(day.DoctorID, day.Date)
		if existing, ok := f.days[key]; ok {
			existing.Available = day.Available
			existing.UpdatedAt = day.UpdatedAt
			continue
		}
		f.nextID++
		day.ID = f.nextID
		f.days[key] = day
	}
	return nil
}

// fakeAppointmentRepo mimics the unique index on (doctor_id, date,
// time): concurrent Create calls for the same triple are serialized by
// the mutex and all but the first fail with entity.ErrSlotTaken.
type fakeAppointmentRepo struct {
	mu     sync.Mutex
	nextID int
	appts  map[int]*entity.Appointment
	slots  map[string]int // doctor|date|time -> appointment id
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appts: make(map[int]*entity.Appointment),
		slots: make(map[string]int),
	}
}

func slotKey(doctorID int, date, timeOfDay string) string {
	return fmt.Sprintf("%d|%s|%s", doctorID, date, timeOfDay)
}

func (f *fakeAppointmentRepo) Create(appt *entity.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := slotKey(appt.DoctorID, appt.Date, appt.Time)
	if _, taken := f.slots[key]; taken {
		return entity.ErrSlotTaken
	}
	f.nextID++
	appt.ID = f.nextID
	f.appts[appt.ID] = appt
	f.slots[key] = appt.ID
	return nil
}

func (f *fakeAppointmentRepo) FindByID(id int) (*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appts[id], nil
}

func (f *fakeAppointmentRepo) FindByDoctor(doctorID int) ([]*entity.Appointment, error) {
	return f.filter(func(a *entity.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (f *fakeAppointmentRepo) FindByDoctorDateRange(doctorID int, first, last string) ([]*entity.Appointment, error) {
	return f.filter(func(a *entity.Appointment) bool {
		return a.DoctorID == doctorID && a.Date >= first && a.Date <= last
	}), nil
}

func (f *fakeAppointmentRepo) FindByPatient(patientID int) ([]*entity.Appointment, error) {
	return f.filter(func(a *entity.Appointment) bool { return a.PatientID == patientID }), nil
}

func (f *fakeAppointmentRepo) FindAll() ([]*entity.Appointment, error) {
	return f.filter(func(*entity.Appointment) bool { return true }), nil
}

func (f *fakeAppointmentRepo) CountAll() (int64, error) {
	appts, _ := f.FindAll()
	return int64(len(appts)), nil
}

func (f *fakeAppointmentRepo) CountFromDate(date string) (int64, error) {
	matches := f.filter(func(a *entity.Appointment) bool {
		return a.Date >= date && a.Status == entity.StatusBooked
	})
	return int64(len(matches)), nil
}

func (f *fakeAppointmentRepo) Save(appt *entity.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appts[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) filter(keep func(*entity.Appointment) bool) []*entity.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	var appts []*entity.Appointment
	for _, appt := range f.appts {
		if keep(appt) {
			appts = append(appts, appt)
		}
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].ID < appts[j].ID })
	return appts
}

type fakeTreatmentRepo struct {
	mu         sync.Mutex
	nextID     int
	treatments []*entity.Treatment
	patientOf  map[int]int // appointment id -> patient id
}

func newFakeTreatmentRepo() *fakeTreatmentRepo {
	return &fakeTreatmentRepo{patientOf: make(map[int]int)}
}

func (f *fakeTreatmentRepo) Save(treatment *entity.Treatment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	treatment.ID = f.nextID
	f.treatments = append(f.treatments, treatment)
	return nil
}

func (f *fakeTreatmentRepo) FindByPatient(patientID int) ([]*entity.Treatment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var treatments []*entity.Treatment
	for _, treatment := range f.treatments {
		if f.patientOf[treatment.AppointmentID] == patientID {
			treatments = append(treatments, treatment)
		}
	}
	return treatments, nil
}
