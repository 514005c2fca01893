package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendance/internal/attendance"
	"go-attendance/internal/config"
	"go-attendance/internal/leave"
	"go-attendance/internal/observability"
	"go-attendance/internal/profile"
	"go-attendance/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Ok   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&user.User{}, &attendance.Attendance{}, &leave.LeaveRequest{}, &profile.Profile{}))

	cfg := config.Config{
		HTTP: config.HTTPConfig{
			AllowedOrigin:  "http://localhost:3000",
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
	}
	router := NewRouter(cfg, Dependencies{
		GormDB: db,
		SQLDB:  sqlDB,
		Prom:   observability.NewProm(prometheus.NewRegistry()),
	}, zap.NewNop())

	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, body string) (int, envelope) {
	s.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestRouter_LeaveWorkflowEndToEnd(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/api/users", `{"name":"Maya","email":"maya@example.com","password":"pw","role":"manager"}`)
	require.Equal(t, http.StatusOK, status)
	manager := decode[user.UserResponse](t, env.Data)
	assert.Equal(t, user.RoleManager, manager.Role)

	status, env = s.do(http.MethodPost, "/api/users",
		`{"name":"Eli","email":"eli@example.com","password":"pw","role":"EMPLOYEE","manager":{"id":"`+manager.ID+`"}}`)
	require.Equal(t, http.StatusOK, status)
	employee := decode[user.UserResponse](t, env.Data)
	require.NotNil(t, employee.Manager)
	assert.Equal(t, manager.ID, employee.Manager.ID)

	status, _ = s.do(http.MethodPost, "/api/users", `{"name":"Dup","email":"eli@example.com","role":"MANAGER"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, env = s.do(http.MethodGet, "/api/users/manager/"+manager.ID+"/employees", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.Meta.Total)

	status, env = s.do(http.MethodPost, "/api/leaves/apply/"+employee.ID,
		`{"startDate":"2026-03-10","endDate":"2026-03-12","reason":"Family","status":"APPROVED"}`)
	require.Equal(t, http.StatusOK, status, env)

	status, env = s.do(http.MethodGet, "/api/leaves/pending/"+manager.ID, "")
	require.Equal(t, http.StatusOK, status)
	pending := decode[[]leave.LeaveResponse](t, env.Data)
	require.Len(t, pending, 1)
	assert.Equal(t, leave.StatusPending, pending[0].Status)
	assert.Equal(t, "2026-03-10", pending[0].StartDate)

	status, env = s.do(http.MethodPatch, "/api/leaves/"+pending[0].ID, `{"status":"MAYBE"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid status.", env.Error.Message)

	status, _ = s.do(http.MethodPatch, "/api/leaves/"+pending[0].ID, `{"status":"approved","feedback":"Enjoy"}`)
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(http.MethodGet, "/api/leaves/my-leaves/"+employee.ID, "")
	require.Equal(t, http.StatusOK, status)
	mine := decode[[]leave.LeaveResponse](t, env.Data)
	require.Len(t, mine, 1)
	assert.Equal(t, leave.StatusApproved, mine[0].Status)
	require.NotNil(t, mine[0].Feedback)
	assert.Equal(t, "Enjoy", *mine[0].Feedback)

	status, env = s.do(http.MethodGet, "/api/leaves/pending/"+manager.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, env.Meta.Total)
}

func TestRouter_AttendanceAndProfile(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/api/users", `{"name":"Maya","email":"maya@example.com","role":"MANAGER"}`)
	require.Equal(t, http.StatusOK, status)
	u := decode[user.UserResponse](t, env.Data)

	status, env = s.do(http.MethodPost, "/api/attendance/swipe/"+u.ID, `{"type":"IN"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Swipe successful."}`, string(env.Data))

	status, _ = s.do(http.MethodPost, "/api/attendance/swipe/"+u.ID, `{"type":"SIDEWAYS"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodPost, "/api/attendance/swipe/00000000-0000-0000-0000-000000000001", `{"type":"IN"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(http.MethodGet, "/api/attendance/history/"+u.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.Meta.Total)

	status, env = s.do(http.MethodGet, "/api/attendance/total-hours/"+u.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `0`, string(env.Data))
	assert.Zero(t, decode[float64](t, env.Data))

	status, _ = s.do(http.MethodGet, "/api/attendance/total-hours/00000000-0000-0000-0000-000000000001", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, env = s.do(http.MethodGet, "/api/profile/"+u.ID, "")
	require.Equal(t, http.StatusOK, status)
	created := decode[profile.ProfileResponse](t, env.Data)
	assert.Equal(t, u.ID, created.UserID)

	status, env = s.do(http.MethodPut, "/api/profile/"+u.ID, `{"phone":"555","emergencyPhone":"911"}`)
	require.Equal(t, http.StatusOK, status)
	updated := decode[profile.ProfileResponse](t, env.Data)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "911", updated.EmergencyPhone)

	status, _ = s.do(http.MethodGet, "/api/profile/00000000-0000-0000-0000-000000000001", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_Operational(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, status)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "attendance_http_requests_total")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "rid-7")
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "rid-7", w.Header().Get("X-Request-ID"))
}
