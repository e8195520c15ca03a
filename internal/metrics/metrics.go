package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	slotQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "slot_queries_total",
			Help:      "Availability queries by empty-result reason (\"ok\" when slots were found).",
		},
		[]string{"reason"},
	)

	bookingCommits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "booking_commits_total",
			Help:      "Booking commit attempts by result.",
		},
		[]string{"result"},
	)

	overlapWarnings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "overlap_warnings_total",
			Help:      "Manual bookings accepted despite overlapping another appointment.",
		},
	)

	boardMoves = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barbershop",
			Name:      "board_moves_total",
			Help:      "Status board moves by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(slotQueries, bookingCommits, overlapWarnings, boardMoves)
	})
}

func IncSlotQuery(reason string) {
	if reason == "" {
		reason = "ok"
	}
	slotQueries.WithLabelValues(reason).Inc()
}

func IncBookingCommit(result string) {
	bookingCommits.WithLabelValues(result).Inc()
}

func IncOverlapWarning() {
	overlapWarnings.Inc()
}

func IncBoardMove(outcome string) {
	boardMoves.WithLabelValues(outcome).Inc()
}
