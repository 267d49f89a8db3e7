package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotelbooking_bookings_total",
			Help: "Total number of booking attempts by outcome",
		},
		[]string{"outcome"},
	)

	AvailabilityQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hotelbooking_availability_queries_total",
			Help: "Total number of room availability lookups",
		},
	)

	OccupancyQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hotelbooking_occupancy_queries_total",
			Help: "Total number of fully-occupied-dates queries",
		},
	)

	RoomsSyncedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hotelbooking_rooms_synced_total",
			Help: "Total number of room records upserted from the property service",
		},
	)
)

func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordAvailabilityQuery() {
	AvailabilityQueriesTotal.Inc()
}

func RecordOccupancyQuery() {
	OccupancyQueriesTotal.Inc()
}

func RecordRoomSync() {
	RoomsSyncedTotal.Inc()
}
