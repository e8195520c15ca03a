package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
)

// Filter: campos nulos não filtram. From/To delimitam [From, To) por data.
type Filter struct {
	BranchID *uint
	StaffID  *uint
	Date     *time.Time
	From     *time.Time
	To       *time.Time
}

// As chamadas são atômicas por linha, mas não transacionais entre si.
type AppointmentStore interface {
	ListAppointments(ctx context.Context, f Filter) ([]Appointment, error)

	GetAppointment(ctx context.Context, id uint) (*Appointment, error)

	CreateAppointment(ctx context.Context, ap *Appointment) error

	// UpdateAppointment grava só se o status atual ainda for expected.
	UpdateAppointment(ctx context.Context, ap *Appointment, expected Status) error

	// UpdateAppointmentStatus é a escrita condicional do quadro: falha com
	// CommitConflict se o status já não for from.
	UpdateAppointmentStatus(
		ctx context.Context,
		id uint,
		from Status,
		to Status,
		now time.Time,
	) (*Appointment, error)
}

type BlockStore interface {
	ListBlocks(ctx context.Context, staffID uint, from, to time.Time) ([]block.Block, error)
	CreateBlock(ctx context.Context, b *block.Block) error
	GetBlock(ctx context.Context, id uint) (*block.Block, error)
	DeleteBlock(ctx context.Context, id uint) error
}

type ScheduleStore interface {
	ListDaySchedules(ctx context.Context, branchID uint) ([]schedule.DaySchedule, error)
	ReplaceDaySchedules(ctx context.Context, branchID uint, days []schedule.DaySchedule) error
}

type CatalogStore interface {
	GetBranchByID(ctx context.Context, id uint) (*shop.Branch, error)
	GetBranchBySlug(ctx context.Context, slug string) (*shop.Branch, error)
	GetService(ctx context.Context, branchID, serviceID uint) (*shop.Service, error)
	GetStaff(ctx context.Context, id uint) (*shop.StaffMember, error)
	GetOrCreateClient(ctx context.Context, branchID uint, name, phone, email string) (uint, error)
}

type Repository interface {
	AppointmentStore
	BlockStore
	ScheduleStore
	CatalogStore
}

// Locker serializa mutações por chave (profissional, data).
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
