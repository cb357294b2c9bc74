package vacation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-personnel/internal/shared/apperror"
	"go-personnel/internal/vacation"
	vacationerrors "go-personnel/internal/vacation/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeVacationService struct {
	addFn      func(ctx context.Context, userName string, req vacation.CreateVacationRequest) (vacation.VacationResponse, error)
	getFn      func(ctx context.Context, userName string, page, pageSize int) ([]vacation.VacationResponse, int64, error)
	deleteFn   func(ctx context.Context, userName, vacationID string) error
	activeAtFn func(ctx context.Context, personnelID string, at time.Time) (bool, error)
}

func (f *fakeVacationService) Add(ctx context.Context, userName string, req vacation.CreateVacationRequest) (vacation.VacationResponse, error) {
	return f.addFn(ctx, userName, req)
}
func (f *fakeVacationService) GetForUser(ctx context.Context, userName string, page, pageSize int) ([]vacation.VacationResponse, int64, error) {
	return f.getFn(ctx, userName, page, pageSize)
}
func (f *fakeVacationService) Delete(ctx context.Context, userName, vacationID string) error {
	return f.deleteFn(ctx, userName, vacationID)
}
func (f *fakeVacationService) ActiveAt(ctx context.Context, personnelID string, at time.Time) (bool, error) {
	return f.activeAtFn(ctx, personnelID, at)
}

func vacationRouter(svc vacation.Service, userName string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_name", userName)
		c.Next()
	})
	h := vacation.NewHandler(svc)
	r.POST("/vacations", h.Create)
	r.GET("/vacations", h.GetAll)
	r.DELETE("/vacations/:id", h.Delete)
	return r
}

func TestVacationHandler_Create(t *testing.T) {
	apperror.Init()

	t.Run("success scoped to authenticated user", func(t *testing.T) {
		svc := &fakeVacationService{
			addFn: func(ctx context.Context, userName string, req vacation.CreateVacationRequest) (vacation.VacationResponse, error) {
				assert.Equal(t, "alice", userName)
				assert.Equal(t, "2024-07-01", req.StartDate)
				return vacation.VacationResponse{
					ID:        uuid.New().String(),
					StartDate: req.StartDate,
					EndDate:   req.EndDate,
				}, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/vacations",
			strings.NewReader(`{"start_date":"2024-07-01","end_date":"2024-07-05"}`))
		req.Header.Set("Content-Type", "application/json")
		vacationRouter(svc, "alice").ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("missing end_date rejected", func(t *testing.T) {
		svc := &fakeVacationService{
			addFn: func(ctx context.Context, userName string, req vacation.CreateVacationRequest) (vacation.VacationResponse, error) {
				t.Fatal("service must not be called")
				return vacation.VacationResponse{}, nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/vacations",
			strings.NewReader(`{"start_date":"2024-07-01"}`))
		req.Header.Set("Content-Type", "application/json")
		vacationRouter(svc, "alice").ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("reversed range maps to 400", func(t *testing.T) {
		svc := &fakeVacationService{
			addFn: func(ctx context.Context, userName string, req vacation.CreateVacationRequest) (vacation.VacationResponse, error) {
				return vacation.VacationResponse{}, vacationerrors.ErrInvalidDateRange
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/vacations",
			strings.NewReader(`{"start_date":"2024-07-05","end_date":"2024-07-01"}`))
		req.Header.Set("Content-Type", "application/json")
		vacationRouter(svc, "alice").ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestVacationHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		vacationID := uuid.New().String()
		svc := &fakeVacationService{
			deleteFn: func(ctx context.Context, userName, gotID string) error {
				assert.Equal(t, "alice", userName)
				assert.Equal(t, vacationID, gotID)
				return nil
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/vacations/"+vacationID, nil)
		vacationRouter(svc, "alice").ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no match maps to 404", func(t *testing.T) {
		svc := &fakeVacationService{
			deleteFn: func(ctx context.Context, userName, gotID string) error {
				return vacationerrors.ErrVacationNotFound
			},
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/vacations/"+uuid.New().String(), nil)
		vacationRouter(svc, "alice").ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}

func TestVacationHandler_GetAll(t *testing.T) {
	svc := &fakeVacationService{
		getFn: func(ctx context.Context, userName string, page, pageSize int) ([]vacation.VacationResponse, int64, error) {
			assert.Equal(t, "alice", userName)
			assert.Equal(t, 2, page)
			assert.Equal(t, 5, pageSize)
			return []vacation.VacationResponse{
				{ID: uuid.New().String(), StartDate: "2024-07-01", EndDate: "2024-07-05"},
			}, 6, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/vacations?page=2&page_size=5", nil)
	vacationRouter(svc, "alice").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var rows []vacation.VacationResponse
	assert.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)
}
