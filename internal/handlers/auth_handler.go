package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/config"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

// RegisterRequest cria a primeira filial e o primeiro admin.
type RegisterRequest struct {
	BranchName     string `json:"branch_name" binding:"required"`
	BranchSlug     string `json:"branch_slug" binding:"required"`
	BranchPhone    string `json:"branch_phone"`
	BranchAddress  string `json:"branch_address"`
	BranchTimezone string `json:"branch_timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register só funciona enquanto não existe nenhum profissional cadastrado;
// depois disso, novos profissionais entram pelo admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	branch, err := newBranch(CreateBranchRequest{
		Name:     req.BranchName,
		Slug:     req.BranchSlug,
		Phone:    req.BranchPhone,
		Address:  req.BranchAddress,
		Timezone: req.BranchTimezone,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var admin models.Staff
	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Staff{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrForbidden("already_bootstrapped")
		}

		if err := tx.Create(&branch).Error; err != nil {
			return err
		}

		admin = models.Staff{
			BranchID:     &branch.ID,
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        validators.NormalizePhone(req.Phone),
			Role:         string(actor.RoleAdmin),
			Active:       true,
		}
		return tx.Create(&admin).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "slug_already_exists", "Slug já utilizado.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	token, err := h.generateToken(&admin)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"staff":  staffPayload(&admin),
		"branch": branchPayload(&branch),
		"token":  token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var member models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Branch").
		Where("email = ?", validators.NormalizeEmail(req.Email)).
		First(&member).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Credenciais inválidas.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro inesperado.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Credenciais inválidas.")
		return
	}
	if !member.Active {
		httperr.Forbidden(c, "staff_inactive", "Profissional desativado.")
		return
	}

	token, err := h.generateToken(&member)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staff":  staffPayload(&member),
		"branch": branchPayload(member.Branch),
		"token":  token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(member *models.Staff) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  member.ID,
		"role": member.Role,
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	if member.BranchID != nil {
		claims["branchId"] = *member.BranchID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

// --------- Payloads ---------

func staffPayload(m *models.Staff) gin.H {
	return gin.H{
		"id":        m.ID,
		"name":      m.Name,
		"email":     m.Email,
		"phone":     m.Phone,
		"role":      m.Role,
		"branch_id": m.BranchID,
	}
}

func branchPayload(b *models.Branch) gin.H {
	if b == nil {
		return nil
	}
	return gin.H{
		"id":       b.ID,
		"name":     b.Name,
		"slug":     b.Slug,
		"phone":    b.Phone,
		"address":  b.Address,
		"timezone": b.Timezone,
	}
}
