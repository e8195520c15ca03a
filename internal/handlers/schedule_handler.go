package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

// ScheduleHandler administra o expediente semanal da filial.
type ScheduleHandler struct {
	store domain.ScheduleStore
}

func NewScheduleHandler(store domain.ScheduleStore) *ScheduleHandler {
	return &ScheduleHandler{store: store}
}

type DayScheduleConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type ScheduleUpdateRequest struct {
	Days []DayScheduleConfig `json:"days" binding:"required,dive"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	branchID, ok := branchScope(c)
	if !ok {
		return
	}

	days, err := h.store.ListDaySchedules(c.Request.Context(), branchID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]DayScheduleConfig, 0, len(days))
	for _, d := range days {
		out = append(out, dayConfig(d))
	}
	c.JSON(http.StatusOK, gin.H{"branch_id": branchID, "days": out})
}

// Update troca os sete dias de uma vez, depois de validar o calendário inteiro.
func (h *ScheduleHandler) Update(c *gin.Context) {
	branchID, ok := branchScope(c)
	if !ok {
		return
	}

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	days := make([]schedule.DaySchedule, 0, len(req.Days))
	for _, cfg := range req.Days {
		d, err := daySchedule(cfg)
		if err != nil {
			httperr.BadRequest(c, "invalid_time", "Horário inválido.")
			return
		}
		days = append(days, d)
	}

	if _, err := schedule.NewCalendar(days); err != nil {
		httperr.BadRequest(c, "invalid_schedule", err.Error())
		return
	}

	if err := h.store.ReplaceDaySchedules(c.Request.Context(), branchID, days); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func daySchedule(cfg DayScheduleConfig) (schedule.DaySchedule, error) {
	d := schedule.DaySchedule{Weekday: time.Weekday(cfg.Weekday), Active: cfg.Active}
	if !cfg.Active && cfg.StartTime == "" {
		return d, nil
	}

	var err error
	if d.Open, err = schedule.ParseTimeOfDay(cfg.StartTime); err != nil {
		return d, err
	}
	if d.Close, err = schedule.ParseTimeOfDay(cfg.EndTime); err != nil {
		return d, err
	}
	if cfg.LunchStart != "" || cfg.LunchEnd != "" {
		ls, err := schedule.ParseTimeOfDay(cfg.LunchStart)
		if err != nil {
			return d, err
		}
		le, err := schedule.ParseTimeOfDay(cfg.LunchEnd)
		if err != nil {
			return d, err
		}
		d.LunchStart, d.LunchEnd = &ls, &le
	}
	return d, nil
}

func dayConfig(d schedule.DaySchedule) DayScheduleConfig {
	out := DayScheduleConfig{
		Weekday:   int(d.Weekday),
		Active:    d.Active,
		StartTime: d.Open.String(),
		EndTime:   d.Close.String(),
	}
	if d.HasLunch() {
		out.LunchStart = d.LunchStart.String()
		out.LunchEnd = d.LunchEnd.String()
	}
	return out
}
