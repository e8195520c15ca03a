package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/validators"
)

type StaffHandler struct {
	db          *gorm.DB
	checkDomain func(email string) bool
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db, checkDomain: validators.IsEmailDomainValid}
}

type CreateStaffRequest struct {
	BranchID   *uint  `json:"branch_id"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required,min=6"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	ServiceIDs []uint `json:"service_ids"`
}

type UpdateStaffRequest struct {
	Active     *bool   `json:"active"`
	ServiceIDs *[]uint `json:"service_ids"`
}

func (h *StaffHandler) List(c *gin.Context) {
	branchID, ok := branchScope(c)
	if !ok {
		return
	}

	var staff []models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services").
		Where("branch_id = ?", branchID).
		Order("name ASC").
		Find(&staff).Error; err != nil {

		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, staff)
}

// Create (admin): a senha vai com bcrypt; serviços vazios = atende todos.
func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	role := actor.Role(req.Role)
	if req.Role == "" {
		role = actor.RoleRegular
	}
	if !role.Valid() {
		httperr.BadRequest(c, "invalid_role", "Papel inválido.")
		return
	}
	if role == actor.RoleRegular && req.BranchID == nil {
		httperr.BadRequest(c, "missing_branch", "Profissional precisa de uma filial.")
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}
	if h.checkDomain != nil && !h.checkDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	services, err := h.branchServices(c, req.BranchID, req.ServiceIDs)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	member := models.Staff{
		BranchID:     req.BranchID,
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        validators.NormalizePhone(req.Phone),
		Role:         string(role),
		Active:       true,
		Services:     services,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "email_already_exists", "E-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_create_staff", "Erro ao criar profissional.")
		return
	}

	httpresp.Created(c, member)
}

// Update (admin) ativa/desativa e troca as especialidades.
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ctx := c.Request.Context()

	var member models.Staff
	if err := h.db.WithContext(ctx).First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "staff_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_staff", "Erro ao buscar profissional.")
		return
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Active != nil {
			if err := tx.Model(&member).Update("active", *req.Active).Error; err != nil {
				return err
			}
		}
		if req.ServiceIDs != nil {
			services, err := h.branchServices(c, member.BranchID, *req.ServiceIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&member).Association("Services").Replace(services); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.db.WithContext(ctx).Preload("Services").First(&member, id)
	c.JSON(http.StatusOK, member)
}

// branchServices garante que todos os serviços existem na filial.
func (h *StaffHandler) branchServices(c *gin.Context, branchID *uint, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if branchID == nil {
		return nil, httperr.ErrValidation("missing_branch")
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("branch_id = ? AND id IN ?", *branchID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	if len(services) != len(ids) {
		return nil, httperr.ErrValidation("invalid_service_ids")
	}
	return services, nil
}
