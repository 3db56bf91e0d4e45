package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hr_management/configs"
	"github.com/hr_management/internal/models"
	"github.com/hr_management/internal/repositories"
	"github.com/hr_management/pkg/db/dbtest"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	now    time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := configs.Configuration{
		JWTSecret:       "router-test-secret",
		JWTExpiration:   time.Hour,
		OrgTimezone:     "UTC",
		DefaultLocale:   "en",
		ClockInCooldown: 3 * time.Second,
		ScanSessionTTL:  10 * time.Minute,
		CORSOrigins:     []string{"*"},
	}
	configs.AppConfig = cfg

	conn := dbtest.Open(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repositories.NewGormEmployeeRepository(conn).CreateEmployee(context.Background(), &models.Employee{
		EmployeeID:    "ADM-001",
		FullName:      "Admin",
		Email:         "admin@example.com",
		PasswordHash:  string(hash),
		Role:          models.RoleAdmin,
		WorkDays:      models.DefaultWorkDays,
		AccountStatus: models.AccountStatusApproved,
		StartDate:     "2026-01-01",
	})
	require.NoError(t, err)

	s := &testServer{t: t, router: gin.New(), now: time.Date(2026, 10, 9, 9, 15, 0, 0, time.UTC)}
	SetupRoutes(s.router, Dependencies{DB: conn, Config: cfg, Now: func() time.Time { return s.now }})
	return s
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, status, env.Error)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(s.t, data.Token)
	return data.Token
}

func TestClockInEndToEnd(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, status)

	// 申请人注册，审批前不能登录
	status, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"employeeId": "EMP-100",
		"fullName":   "Amina Benali",
		"email":      "amina@example.com",
		"password":   "correct-horse",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	status, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "amina@example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusForbidden, status)

	admin := s.login("admin@example.com", "admin-password")
	status, env = s.do(http.MethodPost, "/api/v1/employees/EMP-100/approve", admin, map[string]interface{}{
		"rank":       "Engineer",
		"baseSalary": 3000,
		"role":       models.RoleEmployee,
		"startDate":  "2026-10-01",
	})
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Equal(t, "Amina Benali's account has been approved.", env.Message)

	employee := s.login("amina@example.com", "correct-horse")

	// 员工不能访问管理接口
	status, _ = s.do(http.MethodGet, "/api/v1/employees", employee, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodGet, "/api/v1/clock-in/code", employee, nil)
	require.Equal(t, http.StatusOK, status)
	var code struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &code))

	status, env = s.do(http.MethodPost, "/api/v1/clock-in/sessions", employee, nil)
	require.Equal(t, http.StatusCreated, status)
	var session struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))

	status, env = s.do(http.MethodPost, "/api/v1/clock-in/sessions/"+session.SessionID+"/scans", employee, map[string]string{"scanned": code.Token})
	require.Equal(t, http.StatusCreated, status, env.Error)

	// 管理员扫员工的二维码 => 身份不符
	adminSession := struct {
		SessionID string `json:"sessionId"`
	}{}
	_, env = s.do(http.MethodPost, "/api/v1/clock-in/sessions", admin, nil)
	require.NoError(t, json.Unmarshal(env.Data, &adminSession))
	status, _ = s.do(http.MethodPost, "/api/v1/clock-in/sessions/"+adminSession.SessionID+"/scans", admin, map[string]string{"scanned": code.Token})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodGet, "/api/v1/attendance/employees/EMP-100", employee, nil)
	require.Equal(t, http.StatusOK, status)
	var records []models.AttendanceRecord
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "2026-10-09", records[0].Date)

	status, _ = s.do(http.MethodGet, "/api/v1/attendance/employees/ADM-001", employee, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = s.do(http.MethodGet, "/api/v1/attendance/daily", employee, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, env = s.do(http.MethodGet, "/api/v1/attendance/daily", admin, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &records))
	assert.Len(t, records, 1)

	status, env = s.do(http.MethodPut, "/api/v1/settings", admin, map[string]interface{}{"payCutRate": 2})
	require.Equal(t, http.StatusOK, status, env.Error)

	status, env = s.do(http.MethodGet, "/api/v1/salary/EMP-100?month=2026-10", employee, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	var overview models.SalaryOverview
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, 7, overview.WorkDays)
	assert.Equal(t, 1, overview.DaysAttended)
	assert.Equal(t, 6, overview.DaysAbsent)
	assert.Equal(t, 360.0, overview.DeductionAmount)
	assert.Equal(t, 2640.0, overview.NetSalary)

	status, _ = s.do(http.MethodGet, "/api/v1/dashboard/summary", employee, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, env = s.do(http.MethodGet, "/api/v1/dashboard/summary", admin, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	var summary models.DashboardSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, "2026-10", summary.Month)
	assert.Equal(t, 2, summary.TotalEmployees)
	assert.Equal(t, 1, summary.ClockedInToday)
	// 管理员 6 个工作日未打卡 (当天未打卡不计)，员工缺勤 6 天
	assert.Equal(t, 12, summary.DaysMissed)
	assert.Equal(t, 7.7, summary.AttendanceRate)
	assert.Equal(t, 3000.0, summary.TotalBaseSalary)
	assert.Equal(t, 2640.0, summary.TotalSalaryCost)

	status, _ = s.do(http.MethodPost, "/api/v1/auth/logout", employee, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.do(http.MethodGet, "/api/v1/clock-in/code", employee, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestEmployeeManagementRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin@example.com", "admin-password")

	for _, id := range []string{"EMP-200", "EMP-201"} {
		status, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"employeeId": id, "fullName": "Applicant " + id, "email": id + "@example.com", "password": "correct-horse",
		})
		require.Equal(t, http.StatusCreated, status, env.Error)
	}
	status, _ := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"employeeId": "EMP-200", "fullName": "Dup", "email": "dup@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, env := s.do(http.MethodGet, "/api/v1/employees?accountStatus=Pending", admin, nil)
	require.Equal(t, http.StatusOK, status)
	var page struct {
		Items      []models.Employee `json:"items"`
		Pagination struct {
			TotalItems int64 `json:"totalItems"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.EqualValues(t, 2, page.Pagination.TotalItems)

	status, _ = s.do(http.MethodPost, "/api/v1/employees/EMP-201/reject", admin, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.do(http.MethodPost, "/api/v1/employees/EMP-201/reject", admin, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, env = s.do(http.MethodPost, "/api/v1/employees/EMP-200/update?lang=fr", admin, map[string]interface{}{"workDays": []int{1, 2, 3}})
	require.Equal(t, http.StatusOK, status, env.Error)
	var updated models.Employee
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, models.WorkDays{1, 2, 3}, updated.WorkDays)

	status, _ = s.do(http.MethodGet, "/api/v1/employees/NOPE", admin, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// 管理员直接创建已审批员工
	newHire := map[string]interface{}{
		"employeeId": "EMP-300",
		"fullName":   "Yacine Haddad",
		"email":      "yacine@example.com",
		"password":   "correct-horse",
		"rank":       "Accountant",
		"baseSalary": 2500,
		"role":       models.RoleEmployee,
		"workDays":   []int{0, 1, 2, 3, 4},
	}
	status, env = s.do(http.MethodPost, "/api/v1/employees", admin, newHire)
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.Equal(t, "Yacine Haddad has been added as a new employee.", env.Message)
	var created models.Employee
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, models.AccountStatusApproved, created.AccountStatus)
	assert.Equal(t, "2026-10-09", created.StartDate)

	hire := s.login("yacine@example.com", "correct-horse")
	status, _ = s.do(http.MethodPost, "/api/v1/employees", hire, newHire)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = s.do(http.MethodPost, "/api/v1/employees", admin, newHire)
	assert.Equal(t, http.StatusConflict, status)
	newHire["employeeId"], newHire["email"], newHire["startDate"] = "EMP-301", "other@example.com", "09/10/2026"
	status, _ = s.do(http.MethodPost, "/api/v1/employees", admin, newHire)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(http.MethodGet, "/api/v1/employees?sortBy=employeeId&sortOrder=asc", admin, nil)
	require.Equal(t, http.StatusOK, status, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	ids := make([]string, 0, len(page.Items))
	for _, e := range page.Items {
		ids = append(ids, e.EmployeeID)
	}
	assert.Equal(t, []string{"ADM-001", "EMP-200", "EMP-201", "EMP-300"}, ids)

	status, _ = s.do(http.MethodGet, "/api/v1/employees?sortOrder=sideways", admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSwaggerDocIsServed(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/clock-in/sessions/{sessionId}/scans")
}
