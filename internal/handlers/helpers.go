package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/middleware"
)

// paramID lê um :id numérico; responde 400 e devolve false se inválido.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// queryUint trata ausência como zero.
func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido.")
		return 0, false
	}
	return uint(v), true
}

func currentActor(c *gin.Context) *actor.Actor {
	return middleware.ActorFrom(c)
}

// branchScope resolve a filial do ator a partir de ?branch_id.
func branchScope(c *gin.Context) (uint, bool) {
	requested, ok := queryUint(c, "branch_id")
	if !ok {
		return 0, false
	}
	who := currentActor(c)
	if who == nil {
		httperr.Unauthorized(c, "unauthenticated", "Sessão inválida.")
		return 0, false
	}
	id, err := who.ScopeBranch(requested)
	if err != nil {
		httperr.FromError(c, err)
		return 0, false
	}
	return id, true
}
