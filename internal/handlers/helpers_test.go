package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hr_management/internal/auth"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// asCaller 用请求头模拟 JWTMiddleware 写入的身份
func asCaller(c *gin.Context) {
	c.Set(auth.ContextEmployeeID, c.GetHeader("X-Test-Employee"))
	c.Set(auth.ContextRole, c.GetHeader("X-Test-Role"))
	c.Next()
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func doRequest(t *testing.T, r http.Handler, method, path, employeeID, role string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-Employee", employeeID)
	req.Header.Set("X-Test-Role", role)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func errorKind(t *testing.T, resp apiResponse) string {
	t.Helper()
	var details struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(resp.Details, &details))
	return details.Kind
}
