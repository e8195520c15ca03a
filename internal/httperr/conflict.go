package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// IsExclusionConflict reconhece violações de constraint de exclusão
// (sobreposição de intervalos no postgres).
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}

// IsStoreConflict indica que a escrita foi recusada por concorrência
// e pode ser repetida pelo usuário.
func IsStoreConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgExclusionViolation, pgSerializationFailure, pgDeadlockDetected:
			return true
		}
	}
	return false
}

// IsConflict cobre tanto o CommitConflict de domínio quanto os do banco.
func IsConflict(err error) bool {
	return IsKind(err, KindConflict) || IsStoreConflict(err)
}
