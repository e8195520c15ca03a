package appointment

import "github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	// StatusModified marca edição de horário/profissional/serviço para
	// nova notificação ao cliente.
	StatusModified Status = "modified"
)

var AllStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusModified,
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusModified:  {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusCompleted: nil,
	StatusCancelled: nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", httperr.ErrValidation("invalid_status")
	}
	return st, nil
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Occupies indica se o agendamento ocupa o horário do profissional.
// Concluídos e cancelados liberam a agenda.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusModified
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	if !to.Valid() {
		return httperr.ErrValidation("invalid_status")
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

// InitialStatus: todo agendamento novo nasce pendente.
func InitialStatus() Status {
	return StatusPending
}
