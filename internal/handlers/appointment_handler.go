package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	availability *appointment.GetAvailability
	validate     *appointment.ValidateBookingCandidate
	create       *appointment.CreateAppointment
	edit         *appointment.EditAppointment
	status       *appointment.ChangeStatus
	listByDate   *appointment.ListAppointmentsByDate
	listByMonth  *appointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(deps appointment.Deps) *AppointmentHandler {
	return &AppointmentHandler{
		availability: appointment.NewGetAvailability(deps),
		validate:     appointment.NewValidateBookingCandidate(deps),
		create:       appointment.NewCreateAppointment(deps),
		edit:         appointment.NewEditAppointment(deps),
		status:       appointment.NewChangeStatus(deps),
		listByDate:   appointment.NewListAppointmentsByDate(deps.Repo),
		listByMonth:  appointment.NewListAppointmentsByMonth(deps.Repo),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BranchID      uint     `json:"branch_id"`
	StaffID       uint     `json:"staff_id"`
	ClientName    string   `json:"client_name" binding:"required"`
	ClientPhone   string   `json:"client_phone"`
	ClientEmail   string   `json:"client_email"`
	ServiceID     uint     `json:"service_id" binding:"required"`
	Date          string   `json:"date" binding:"required"`
	Time          string   `json:"time" binding:"required"`
	Notes         string   `json:"notes"`
	PriceOverride *float64 `json:"price_override"`
	Strict        bool     `json:"strict"`
}

type EditAppointmentRequest struct {
	Date          *string  `json:"date"`
	Time          *string  `json:"time"`
	StaffID       *uint    `json:"staff_id"`
	ServiceID     *uint    `json:"service_id"`
	Notes         *string  `json:"notes"`
	PriceOverride *float64 `json:"price_override"`
	Status        *string  `json:"status"`
	Strict        bool     `json:"strict"`
}

type ValidateCandidateRequest struct {
	BranchID  uint   `json:"branch_id"`
	StaffID   uint   `json:"staff_id"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	ExcludeID uint   `json:"exclude_id"`
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	branchID, ok := queryUint(c, "branch_id")
	if !ok {
		return
	}
	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		return
	}
	serviceID, ok := queryUint(c, "service_id")
	if !ok {
		return
	}
	duration, err := strconv.Atoi(c.DefaultQuery("duration_min", "0"))
	if err != nil {
		httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), appointment.AvailabilityInput{
		Actor:       currentActor(c),
		BranchID:    branchID,
		StaffID:     staffID,
		ServiceID:   serviceID,
		DurationMin: duration,
		Date:        c.Query("date"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, availabilityDTO(out))
}

func availabilityDTO(out *appointment.AvailabilityOutput) dto.AvailabilityDTO {
	return dto.AvailabilityDTO{
		Date:        schedule.FormatDate(out.Date),
		StaffID:     out.StaffID,
		DurationMin: out.DurationMin,
		Slots:       dto.Slots(out.Slots),
		Reason:      string(out.Reason),
	}
}

// ======================================================
// VALIDATE
// ======================================================

func (h *AppointmentHandler) Validate(c *gin.Context) {
	var req ValidateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.validate.Execute(c.Request.Context(), appointment.CandidateInput{
		Actor:     currentActor(c),
		BranchID:  req.BranchID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		ExcludeID: req.ExcludeID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":              res.OK,
		"reason":          res.Reason,
		"overlap_warning": overlapDTO(res.OverlapWarning),
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		Actor:         currentActor(c),
		BranchID:      req.BranchID,
		StaffID:       req.StaffID,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		PriceOverride: req.PriceOverride,
		Strict:        req.Strict,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment":     dto.FromAppointment(*out.Appointment),
		"overlap_warning": overlapDTO(out.OverlapWarning),
	})
}

// ======================================================
// EDIT
// ======================================================

func (h *AppointmentHandler) Edit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.edit.Execute(c.Request.Context(), appointment.EditAppointmentInput{
		Actor:         currentActor(c),
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		Notes:         req.Notes,
		PriceOverride: req.PriceOverride,
		Status:        req.Status,
		Strict:        req.Strict,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment":     dto.FromAppointment(*out.Appointment),
		"overlap_warning": overlapDTO(out.OverlapWarning),
	})
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, domain.StatusConfirmed)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, domain.StatusCompleted)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, domain.StatusCancelled)
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, target domain.Status) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), currentActor(c), id, target)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAppointment(*ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	branchID, ok := queryUint(c, "branch_id")
	if !ok {
		return
	}
	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), currentActor(c), branchID, staffID, dateStr)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	branchID, ok := queryUint(c, "branch_id")
	if !ok {
		return
	}
	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		return
	}

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), currentActor(c), branchID, staffID, year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": list,
	})
}

func overlapDTO(w *appointment.OverlapWarning) *dto.OverlapWarningDTO {
	if w == nil {
		return nil
	}
	return &dto.OverlapWarningDTO{
		Message:        "Horário sobreposto a outro agendamento.",
		AppointmentIDs: w.AppointmentIDs,
	}
}
