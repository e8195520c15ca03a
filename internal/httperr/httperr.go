package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// StatusFor traduz a taxonomia de erros em status HTTP.
func StatusFor(err error) int {
	if IsStoreConflict(err) {
		return http.StatusConflict
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound
	}

	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindOverlap, KindConflict:
		return http.StatusConflict
	case KindBusiness, KindClosedDay:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

var messages = map[Kind]string{
	KindValidation: "Dados inválidos.",
	KindForbidden:  "Acesso negado para esta filial ou profissional.",
	KindNotFound:   "Registro não encontrado.",
	KindOverlap:    "Conflito de horário com outro agendamento.",
	KindConflict:   "Não foi possível concluir, tente novamente.",
	KindBusiness:   "Operação não permitida.",
	KindClosedDay:  "Sem disponibilidade neste dia.",
}

// FromError escreve a resposta de erro; erros inesperados viram 500
// sem expor detalhes.
func FromError(c *gin.Context, err error) {
	status := StatusFor(err)

	var be BusinessError
	if errors.As(err, &be) {
		Write(c, status, be.Code, messages[be.Kind])
		return
	}

	switch status {
	case http.StatusConflict:
		Conflict(c, "commit_conflict", messages[KindConflict])
	case http.StatusNotFound:
		NotFound(c, "not_found", messages[KindNotFound])
	default:
		_ = c.Error(err)
		Internal(c, "internal_error", "Erro inesperado.")
	}
}
