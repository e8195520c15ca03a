package httperr

import "errors"

// Kind classifica os erros de domínio para o chamador decidir
// se repete, mostra aviso ou aborta.
type Kind string

const (
	KindBusiness   Kind = "business"
	KindValidation Kind = "validation"
	KindClosedDay  Kind = "closed_day"
	KindOverlap    Kind = "overlap"
	KindConflict   Kind = "commit_conflict"
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not_found"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindBusiness, Code: code}
}

func ErrValidation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrClosedDay(code string) error {
	return BusinessError{Kind: KindClosedDay, Code: code}
}

func ErrOverlap(code string) error {
	return BusinessError{Kind: KindOverlap, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func ErrForbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf devolve "" para erros inesperados (infra, banco fora do ar...).
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
