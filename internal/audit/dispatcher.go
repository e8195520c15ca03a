package audit

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

type Event struct {
	BranchID uint
	StaffID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder persiste um evento de auditoria.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	recorder Recorder
	log      zerolog.Logger
	queue    chan Event
	done     chan struct{}
	once     sync.Once
}

func NewDispatcher(recorder Recorder, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		log:      log,
		queue:    make(chan Event, 100),
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.recorder.Record(context.Background(), ev); err != nil {
			d.log.Error().
				Err(err).
				Str("action", ev.Action).
				Uint("branch_id", ev.BranchID).
				Msg("audit error")
		}
	}
}

// Dispatch nunca bloqueia a API: fila cheia descarta o evento.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
