// Package actor descreve quem está operando a agenda. O ator é sempre
// passado explicitamente para os casos de uso, nunca lido de estado global.
package actor

import "github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleRegular Role = "regular"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRegular
}

type Actor struct {
	ID       uint
	Role     Role
	BranchID *uint
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ScopeBranch resolve a filial efetiva: profissionais comuns ficam presos à
// própria filial; admins escolhem (ou caem na própria, se tiverem).
func (a Actor) ScopeBranch(requested uint) (uint, error) {
	if a.IsAdmin() {
		if requested != 0 {
			return requested, nil
		}
		if a.BranchID != nil {
			return *a.BranchID, nil
		}
		return 0, httperr.ErrValidation("missing_branch")
	}

	if a.BranchID == nil {
		return 0, httperr.ErrForbidden("no_branch_assigned")
	}
	if requested != 0 && requested != *a.BranchID {
		return 0, httperr.ErrForbidden("branch_out_of_scope")
	}
	return *a.BranchID, nil
}

// ScopeStaff: profissionais comuns só operam a própria agenda.
func (a Actor) ScopeStaff(requested uint) (uint, error) {
	if a.IsAdmin() {
		if requested == 0 {
			return 0, httperr.ErrValidation("missing_staff")
		}
		return requested, nil
	}

	if requested != 0 && requested != a.ID {
		return 0, httperr.ErrForbidden("staff_out_of_scope")
	}
	return a.ID, nil
}
