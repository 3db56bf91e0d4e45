package repofake

import (
	"context"
	"sort"
	"sync"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
)

var _ repositories.AttendanceRepository = (*FakeAttendanceRepo)(nil)

// FakeAttendanceRepo is an in-memory attendance store enforcing the same
// (employee, date) uniqueness as the database index.
type FakeAttendanceRepo struct {
	lock    sync.RWMutex
	records map[string]*models.AttendanceRecord // employeeID|date -> record
	nextID  int64

	// FindErr / CreateErr, when set, are returned instead of touching the store.
	FindErr   error
	CreateErr error
	// BeforeCreate runs before the insert; tests use it to interleave a competing write.
	BeforeCreate func()
	CreateCalls  int
}

func NewFakeAttendanceRepo() *FakeAttendanceRepo {
	return &FakeAttendanceRepo{records: make(map[string]*models.AttendanceRecord)}
}

func key(employeeID, date string) string {
	return employeeID + "|" + date
}

func (r *FakeAttendanceRepo) FindByEmployeeAndDate(_ context.Context, employeeID, date string) (*models.AttendanceRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.FindErr != nil {
		return nil, r.FindErr
	}
	rec, ok := r.records[key(employeeID, date)]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *FakeAttendanceRepo) Create(_ context.Context, record *models.AttendanceRecord) error {
	if r.BeforeCreate != nil {
		r.BeforeCreate()
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	r.CreateCalls++
	if r.CreateErr != nil {
		return r.CreateErr
	}
	k := key(record.EmployeeID, record.Date)
	if _, ok := r.records[k]; ok {
		return repositories.ErrAttendanceExists
	}
	r.nextID++
	record.ID = r.nextID
	cp := *record
	r.records[k] = &cp
	return nil
}

func (r *FakeAttendanceRepo) ListByEmployeeInRange(_ context.Context, employeeID, from, to string) ([]models.AttendanceRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := []models.AttendanceRecord{}
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Date >= from && rec.Date <= to {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *FakeAttendanceRepo) ListByDate(_ context.Context, date string) ([]models.AttendanceRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := []models.AttendanceRecord{}
	for _, rec := range r.records {
		if rec.Date == date {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

// Put stores a record directly, bypassing uniqueness checks.
func (r *FakeAttendanceRepo) Put(record models.AttendanceRecord) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	record.ID = r.nextID
	r.records[key(record.EmployeeID, record.Date)] = &record
}

// Count returns how many records the store holds.
func (r *FakeAttendanceRepo) Count() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.records)
}
