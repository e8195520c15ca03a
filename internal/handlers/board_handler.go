package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/dto"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/appointment"
)

type BoardHandler struct {
	get  *appointment.GetBoard
	move *appointment.MoveStatus
}

func NewBoardHandler(deps appointment.Deps) *BoardHandler {
	return &BoardHandler{
		get:  appointment.NewGetBoard(deps),
		move: appointment.NewMoveStatus(deps),
	}
}

type MoveRequest struct {
	BranchID      uint   `json:"branch_id"`
	StaffID       uint   `json:"staff_id"`
	Date          string `json:"date" binding:"required"`
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Target        string `json:"target" binding:"required"`
	Position      *int   `json:"position"`
}

func (h *BoardHandler) Get(c *gin.Context) {
	branchID, ok := queryUint(c, "branch_id")
	if !ok {
		return
	}
	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		return
	}

	out, err := h.get.Execute(c.Request.Context(), appointment.BoardInput{
		Actor:    currentActor(c),
		BranchID: branchID,
		StaffID:  staffID,
		Date:     c.Query("date"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Board(schedule.FormatDate(out.Date), out.Columns))
}

// Move responde com o quadro resultante mesmo quando a gravação falha,
// para o cliente redesenhar o estado desfeito.
func (h *BoardHandler) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	position := -1
	if req.Position != nil {
		position = *req.Position
	}

	out, err := h.move.Execute(c.Request.Context(), appointment.MoveStatusInput{
		BoardInput: appointment.BoardInput{
			Actor:    currentActor(c),
			BranchID: req.BranchID,
			StaffID:  req.StaffID,
			Date:     req.Date,
		},
		AppointmentID: req.AppointmentID,
		Target:        req.Target,
		Position:      position,
	})

	if err != nil {
		if out == nil || !out.Result.RolledBack {
			httperr.FromError(c, err)
			return
		}
		c.JSON(httperr.StatusFor(err), gin.H{
			"error_code":  "commit_conflict",
			"message":     "Não foi possível mover, tente novamente.",
			"rolled_back": true,
			"board":       dto.Board(schedule.FormatDate(out.Board.Date), out.Board.Columns),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"committed": out.Result.Committed,
		"board":     dto.Board(schedule.FormatDate(out.Board.Date), out.Board.Columns),
	})
}
