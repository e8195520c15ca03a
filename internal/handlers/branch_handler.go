package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
)

type BranchHandler struct {
	db *gorm.DB
}

func NewBranchHandler(db *gorm.DB) *BranchHandler {
	return &BranchHandler{db: db}
}

type CreateBranchRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`
}

type UpdateBranchConfigRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

// List: admin vê todas; comum só a própria.
func (h *BranchHandler) List(c *gin.Context) {
	who := currentActor(c)
	q := h.db.WithContext(c.Request.Context())
	if !who.IsAdmin() {
		q = q.Where("id = ?", *who.BranchID)
	}

	var branches []models.Branch
	if err := q.Order("id ASC").Find(&branches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_branches", "Erro ao listar filiais.")
		return
	}
	httpresp.List(c, branches)
}

func (h *BranchHandler) Create(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	branch, err := newBranch(req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "slug_already_exists", "Slug já utilizado.")
			return
		}
		httperr.Internal(c, "failed_to_create_branch", "Erro ao criar filial.")
		return
	}

	httpresp.Created(c, branch)
}

func newBranch(req CreateBranchRequest) (models.Branch, error) {
	tz := strings.TrimSpace(req.Timezone)
	if tz != "" && !timezone.IsValid(tz) {
		return models.Branch{}, httperr.ErrValidation("invalid_timezone")
	}
	return models.Branch{
		Name:     strings.TrimSpace(req.Name),
		Slug:     strings.ToLower(strings.TrimSpace(req.Slug)),
		Phone:    req.Phone,
		Address:  req.Address,
		Timezone: tz,
	}, nil
}

func (h *BranchHandler) GetMe(c *gin.Context) {
	branchID, ok := branchScope(c)
	if !ok {
		return
	}

	var branch models.Branch
	if err := h.db.WithContext(c.Request.Context()).First(&branch, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "branch_not_found", "Filial não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_branch", "Erro ao buscar dados da filial.")
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) UpdateMe(c *gin.Context) {
	branchID, ok := branchScope(c)
	if !ok {
		return
	}

	var branch models.Branch
	if err := h.db.WithContext(c.Request.Context()).First(&branch, branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "branch_not_found", "Filial não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_get_branch", "Erro ao buscar dados da filial.")
		return
	}

	var req UpdateBranchConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		branch.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		branch.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		branch.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_branch", "Erro ao salvar as configurações da filial.")
		return
	}

	c.JSON(http.StatusOK, branch)
}
