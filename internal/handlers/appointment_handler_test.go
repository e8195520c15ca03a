package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/infra/lock"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/middleware"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

type testServer struct {
	r       *gin.Engine
	repo    *repository.MemoryRepository
	branch  shop.Branch
	service shop.Service
	staff   shop.StaffMember
}

// newTestServer: terça 10/03/2026 08:00 UTC, expediente 09:00–18:00.
func newTestServer(t *testing.T, who *actor.Actor) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository()
	s := &testServer{repo: repo}
	s.branch = repo.AddBranch(shop.Branch{Name: "Centro", Slug: "centro", Timezone: "UTC"})
	s.service = repo.AddService(shop.Service{BranchID: s.branch.ID, Name: "Corte", DurationMin: 30, Active: true})
	id := s.branch.ID
	s.staff = repo.AddStaff(shop.StaffMember{Name: "João", BranchID: &id, Role: actor.RoleRegular, Active: true})

	open, _ := schedule.ParseTimeOfDay("09:00")
	closing, _ := schedule.ParseTimeOfDay("18:00")
	require.NoError(t, repo.ReplaceDaySchedules(context.Background(), s.branch.ID, []schedule.DaySchedule{
		{Weekday: time.Tuesday, Active: true, Open: open, Close: closing},
	}))

	if who != nil && who.ID == 0 {
		who.ID = s.staff.ID
		who.BranchID = &id
	}

	deps := appointment.Deps{
		Repo:   repo,
		Locker: lock.NewLocalLocker(),
		Clock:  timezone.FixedClock{At: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)},
		Log:    zerolog.Nop(),
		Policy: appointment.Policy{LeadTime: 30 * time.Minute, PublicStrictOverlap: true},
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if who != nil {
			c.Set(middleware.ContextActor, who)
		}
		c.Next()
	})

	ah := NewAppointmentHandler(deps)
	bh := NewBoardHandler(deps)
	r.GET("/me/availability", ah.Availability)
	r.POST("/me/appointments", ah.Create)
	r.PATCH("/me/appointments/:id/cancel", ah.Cancel)
	r.GET("/me/board", bh.Get)
	r.POST("/me/board/move", bh.Move)

	s.r = r
	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func TestAvailabilityEndpoint(t *testing.T) {
	s := newTestServer(t, &actor.Actor{Role: actor.RoleRegular})

	w := s.do(t, http.MethodGet, "/me/availability?date=2026-03-10&duration_min=60", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out dto.AvailabilityDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Slots)
	assert.Equal(t, "09:00", out.Slots[0])
	assert.Equal(t, "17:00", out.Slots[len(out.Slots)-1])

	w = s.do(t, http.MethodGet, "/me/availability?date=2026-03-11&duration_min=60", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Empty(t, out.Slots)
	assert.Equal(t, "closed", out.Reason)

	w = s.do(t, http.MethodGet, "/me/availability?date=10/03/2026&duration_min=60", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEndpointWarnsThenStrictConflicts(t *testing.T) {
	s := newTestServer(t, &actor.Actor{Role: actor.RoleRegular})

	req := CreateAppointmentRequest{
		ClientName: "Ana", ServiceID: s.service.ID, Date: "2026-03-10", Time: "10:00",
	}
	w := s.do(t, http.MethodPost, "/me/appointments", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req.Time = "10:15"
	w = s.do(t, http.MethodPost, "/me/appointments", req)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Appointment    dto.AppointmentDTO     `json:"appointment"`
		OverlapWarning *dto.OverlapWarningDTO `json:"overlap_warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.OverlapWarning)
	assert.Len(t, body.OverlapWarning.AppointmentIDs, 1)

	req.Strict = true
	w = s.do(t, http.MethodPost, "/me/appointments", req)
	assert.Equal(t, http.StatusConflict, w.Code)

	req.Time = "07:00"
	w = s.do(t, http.MethodPost, "/me/appointments", req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBoardMoveEndpoint(t *testing.T) {
	s := newTestServer(t, &actor.Actor{Role: actor.RoleRegular})

	w := s.do(t, http.MethodPost, "/me/appointments", CreateAppointmentRequest{
		ClientName: "Ana", ServiceID: s.service.ID, Date: "2026-03-10", Time: "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Appointment dto.AppointmentDTO `json:"appointment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = s.do(t, http.MethodPost, "/me/board/move", MoveRequest{
		Date: "2026-03-10", AppointmentID: created.Appointment.ID, Target: "confirmed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/me/board?date=2026-03-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board dto.BoardDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	require.Len(t, board.Columns["confirmed"], 1)
	assert.Empty(t, board.Columns["pending"])

	w = s.do(t, http.MethodPost, "/me/board/move", MoveRequest{
		Date: "2026-03-10", AppointmentID: created.Appointment.ID, Target: "pending",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCancelEndpointRejectsOtherStaff(t *testing.T) {
	s := newTestServer(t, &actor.Actor{Role: actor.RoleRegular})

	w := s.do(t, http.MethodPost, "/me/appointments", CreateAppointmentRequest{
		ClientName: "Ana", ServiceID: s.service.ID, Date: "2026-03-10", Time: "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPatch, "/me/appointments/abc/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/me/appointments/999/cancel", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
