package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	who := currentActor(c)
	if who == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Sessão inválida.")
		return
	}

	var member models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Branch").
		Preload("Services").
		First(&member, who.ID).Error; err != nil {

		httperr.FromError(c, err)
		return
	}

	serviceIDs := make([]uint, 0, len(member.Services))
	for _, s := range member.Services {
		serviceIDs = append(serviceIDs, s.ID)
	}

	staff := staffPayload(&member)
	staff["service_ids"] = serviceIDs

	c.JSON(http.StatusOK, gin.H{
		"staff":  staff,
		"branch": branchPayload(member.Branch),
	})
}
