package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeAttendanceService struct {
	swipeFn      func(ctx context.Context, userID, swipeType string) (attendance.AttendanceResponse, error)
	totalHoursFn func(ctx context.Context, userID string) (attendance.TotalHoursResponse, error)
	historyFn    func(ctx context.Context, userID string) ([]attendance.AttendanceResponse, error)
	exportFn     func(ctx context.Context, userID string) ([]byte, error)
}

func (f *fakeAttendanceService) Swipe(ctx context.Context, userID, swipeType string) (attendance.AttendanceResponse, error) {
	return f.swipeFn(ctx, userID, swipeType)
}
func (f *fakeAttendanceService) TotalHours(ctx context.Context, userID string) (attendance.TotalHoursResponse, error) {
	return f.totalHoursFn(ctx, userID)
}
func (f *fakeAttendanceService) History(ctx context.Context, userID string) ([]attendance.AttendanceResponse, error) {
	return f.historyFn(ctx, userID)
}
func (f *fakeAttendanceService) ExportXLSX(ctx context.Context, userID string) ([]byte, error) {
	return f.exportFn(ctx, userID)
}

func newRouter(svc attendance.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	attendance.RegisterRoutes(r.Group("/api"), attendance.NewHandler(svc))
	return r
}

func TestAttendanceHandler_Swipe(t *testing.T) {
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			swipeFn: func(ctx context.Context, id, swipeType string) (attendance.AttendanceResponse, error) {
				assert.Equal(t, userID, id)
				assert.Equal(t, "in", swipeType)
				return attendance.AttendanceResponse{}, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/attendance/swipe/"+userID, strings.NewReader(`{"type":"in"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.JSONEq(t, `{"message":"Swipe successful."}`, string(env.Data))
	})

	t.Run("unknown user answers 400", func(t *testing.T) {
		svc := &fakeAttendanceService{
			swipeFn: func(ctx context.Context, id, swipeType string) (attendance.AttendanceResponse, error) {
				return attendance.AttendanceResponse{}, attendanceerrors.ErrUserNotFound
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/attendance/swipe/"+userID, strings.NewReader(`{"type":"IN"}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
		assert.Equal(t, "Invalid swipe type or user not found.", env.Error.Message)
	})

	t.Run("missing type", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/attendance/swipe/"+userID, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(&fakeAttendanceService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAttendanceHandler_Reads(t *testing.T) {
	userID := uuid.New().String()
	missing := uuid.New().String()

	svc := &fakeAttendanceService{
		totalHoursFn: func(ctx context.Context, id string) (attendance.TotalHoursResponse, error) {
			if id == missing {
				return attendance.TotalHoursResponse{}, attendanceerrors.ErrUserNotFound
			}
			return attendance.TotalHoursResponse{UserID: id, TotalHours: 7.5}, nil
		},
		historyFn: func(ctx context.Context, id string) ([]attendance.AttendanceResponse, error) {
			return []attendance.AttendanceResponse{{UserID: id, Type: "IN"}}, nil
		},
		exportFn: func(ctx context.Context, id string) ([]byte, error) {
			return []byte("xlsx"), nil
		},
	}
	router := newRouter(svc)

	t.Run("total hours", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/total-hours/"+userID, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w.Body.Bytes()).Data
		assert.JSONEq(t, `7.5`, string(data))
		var got float64
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 7.5, got)
	})

	t.Run("total hours unknown user", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/total-hours/"+missing, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("history", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/history/"+userID, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var got []attendance.AttendanceResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w.Body.Bytes()).Data, &got))
		assert.Len(t, got, 1)
	})

	t.Run("export", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance/export/"+userID, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
		assert.Contains(t, w.Header().Get("Content-Disposition"), userID)
		assert.Equal(t, "xlsx", w.Body.String())
	})
}
