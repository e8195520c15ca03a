package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende o link de agendamento da filial (sem login).
type PublicHandler struct {
	db           *gorm.DB
	deps         appointment.Deps
	availability *appointment.GetAvailability
	create       *appointment.CreateAppointment
}

func NewPublicHandler(db *gorm.DB, deps appointment.Deps) *PublicHandler {
	return &PublicHandler{
		db:           db,
		deps:         deps,
		availability: appointment.NewGetAvailability(deps),
		create:       appointment.NewCreateAppointment(deps),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	StaffID     uint   `json:"staff_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

type publicStaff struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (h *PublicHandler) branch(c *gin.Context) (*shop.Branch, bool) {
	b, err := h.deps.Repo.GetBranchBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	return b, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	b, ok := h.branch(c)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Where("branch_id = ? AND active = true", b.ID)
	q = filterServices(q, c)

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"branch": gin.H{
			"id":       b.ID,
			"name":     b.Name,
			"slug":     b.Slug,
			"timezone": b.Timezone,
		},
		"services": services,
	})
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	b, ok := h.branch(c)
	if !ok {
		return
	}

	var staff []models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Where("branch_id = ? AND active = true", b.ID).
		Order("name ASC").
		Find(&staff).Error; err != nil {

		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar profissionais.")
		return
	}

	out := make([]publicStaff, 0, len(staff))
	for _, s := range staff {
		out = append(out, publicStaff{ID: s.ID, Name: s.Name})
	}
	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY (MESMO USE CASE DO PAINEL)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	b, ok := h.branch(c)
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
	if c.Query("date") == "" || serviceID == 0 || staffID == 0 {
		httperr.BadRequest(c, "missing_params", "Data, profissional e serviço obrigatórios.")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), appointment.AvailabilityInput{
		BranchID:  b.ID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      c.Query("date"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, availabilityDTO(out))
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (PÚBLICO → ESTRITO)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	b, ok := h.branch(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BranchID:    b.ID,
		StaffID:     req.StaffID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAppointment(*out.Appointment))
}
