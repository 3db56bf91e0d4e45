package repofake

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
)

var _ repositories.EmployeeRepository = (*FakeEmployeeRepo)(nil)

type FakeEmployeeRepo struct {
	lock      sync.RWMutex
	employees map[string]*models.Employee // employeeID -> employee
	nextID    int64
}

func NewFakeEmployeeRepo() *FakeEmployeeRepo {
	return &FakeEmployeeRepo{employees: make(map[string]*models.Employee)}
}

func (r *FakeEmployeeRepo) CreateEmployee(_ context.Context, employee *models.Employee) (*models.Employee, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.employees[employee.EmployeeID]; ok {
		return nil, repositories.ErrEmployeeIDExists
	}
	for _, e := range r.employees {
		if strings.EqualFold(e.Email, employee.Email) {
			return nil, repositories.ErrEmployeeEmailExists
		}
	}
	r.nextID++
	employee.ID = r.nextID
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = employee.CreatedAt
	if employee.WorkDays == nil {
		employee.WorkDays = models.DefaultWorkDays
	}
	cp := *employee
	r.employees[employee.EmployeeID] = &cp
	return employee, nil
}

func (r *FakeEmployeeRepo) GetEmployees(_ context.Context, page, limit int, sortBy, sortOrder, search, accountStatus string) ([]models.Employee, int64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	matched := []models.Employee{}
	for _, e := range r.employees {
		if accountStatus != "" && e.AccountStatus != accountStatus {
			continue
		}
		if search != "" && !strings.Contains(e.FullName, search) && !strings.Contains(e.EmployeeID, search) && !strings.Contains(e.Email, search) {
			continue
		}
		matched = append(matched, *e)
	}
	less := func(a, b models.Employee) bool { return a.ID < b.ID }
	switch sortBy {
	case "employeeId":
		less = func(a, b models.Employee) bool { return a.EmployeeID < b.EmployeeID }
	case "fullName":
		less = func(a, b models.Employee) bool { return a.FullName < b.FullName }
	case "baseSalary":
		less = func(a, b models.Employee) bool { return a.BaseSalary < b.BaseSalary }
	}
	asc := strings.EqualFold(sortOrder, "asc")
	sort.SliceStable(matched, func(i, j int) bool {
		if asc {
			return less(matched[i], matched[j])
		}
		return less(matched[j], matched[i])
	})

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.Employee{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *FakeEmployeeRepo) ListByAccountStatus(_ context.Context, accountStatus string) ([]models.Employee, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := []models.Employee{}
	for _, e := range r.employees {
		if e.AccountStatus == accountStatus {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *FakeEmployeeRepo) GetEmployeeByEmployeeID(_ context.Context, employeeID string) (*models.Employee, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	e, ok := r.employees[employeeID]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *FakeEmployeeRepo) GetEmployeeByEmail(_ context.Context, email string) (*models.Employee, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, e := range r.employees {
		if strings.EqualFold(e.Email, email) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *FakeEmployeeRepo) UpdateEmployee(_ context.Context, employeeID string, updates map[string]interface{}) (*models.Employee, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	e, ok := r.employees[employeeID]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "full_name":
			e.FullName = value.(string)
		case "rank":
			e.Rank = value.(string)
		case "base_salary":
			e.BaseSalary = value.(float64)
		case "role":
			e.Role = value.(string)
		case "work_days":
			e.WorkDays = value.(models.WorkDays)
		case "account_status":
			e.AccountStatus = value.(string)
		case "start_date":
			e.StartDate = value.(string)
		}
	}
	e.UpdatedAt = time.Now()
	cp := *e
	return &cp, nil
}
