package shop

import "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"

type Branch struct {
	ID                uint
	Name              string
	Slug              string
	Timezone          string
	MinAdvanceMinutes int
}

type Service struct {
	ID          uint
	BranchID    uint
	Name        string
	DurationMin int
	Price       float64
	Active      bool
}

type StaffMember struct {
	ID          uint
	Name        string
	BranchID    *uint
	Role        actor.Role
	Active      bool
	Specialties []uint
}

// CanPerform: sem especialidades cadastradas o profissional atende tudo.
func (s StaffMember) CanPerform(serviceID uint) bool {
	if len(s.Specialties) == 0 {
		return true
	}
	for _, id := range s.Specialties {
		if id == serviceID {
			return true
		}
	}
	return false
}

func (s StaffMember) WorksAt(branchID uint) bool {
	if s.BranchID == nil {
		return s.Role == actor.RoleAdmin
	}
	return *s.BranchID == branchID
}
