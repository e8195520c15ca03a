package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httpresp"
	ucBlock "github.com/BruksfildServices01/barbershop-scheduling/internal/usecase/block"
)

type BlockHandler struct {
	create *ucBlock.CreateBlock
	list   *ucBlock.ListBlocks
	delete *ucBlock.DeleteBlock
}

func NewBlockHandler(deps ucBlock.Deps) *BlockHandler {
	return &BlockHandler{
		create: ucBlock.NewCreateBlock(deps),
		list:   ucBlock.NewListBlocks(deps.Repo),
		delete: ucBlock.NewDeleteBlock(deps),
	}
}

type CreateBlockRequest struct {
	StaffID  uint   `json:"staff_id"`
	Kind     string `json:"kind" binding:"required"`
	Date     string `json:"date"`
	Start    string `json:"start_time"`
	End      string `json:"end_time"`
	Weekdays []int  `json:"weekdays"`
	Reason   string `json:"reason"`
}

type BlockResponse struct {
	ID       uint   `json:"id"`
	StaffID  uint   `json:"staff_id"`
	Kind     string `json:"kind"`
	Date     string `json:"date,omitempty"`
	Start    string `json:"start_time,omitempty"`
	End      string `json:"end_time,omitempty"`
	Weekdays []int  `json:"weekdays,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func blockResponse(b block.Block) BlockResponse {
	out := BlockResponse{ID: b.ID, StaffID: b.StaffID, Kind: string(b.Kind), Reason: b.Reason}
	if !b.Date.IsZero() {
		out.Date = schedule.FormatDate(b.Date)
	}
	if b.Start != nil {
		out.Start = b.Start.String()
	}
	if b.End != nil {
		out.End = b.End.String()
	}
	for wd, on := range b.Weekdays.Days() {
		if on {
			out.Weekdays = append(out.Weekdays, wd)
		}
	}
	return out
}

func (h *BlockHandler) Create(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.create.Execute(c.Request.Context(), ucBlock.CreateBlockInput{
		Actor:    currentActor(c),
		StaffID:  req.StaffID,
		Kind:     req.Kind,
		Date:     req.Date,
		Start:    req.Start,
		End:      req.End,
		Weekdays: req.Weekdays,
		Reason:   req.Reason,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"block":                 blockResponse(*out.Block),
		"affected_appointments": out.Affected,
	})
}

func (h *BlockHandler) List(c *gin.Context) {
	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		return
	}

	blocks, err := h.list.Execute(c.Request.Context(), currentActor(c), staffID, c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockResponse(b))
	}
	httpresp.List(c, out)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), currentActor(c), id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
