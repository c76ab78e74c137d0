package wizard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "queuepoint_bookings_confirmed_total",
		Help: "Bookings confirmed by the upstream queue backend.",
	})
	bookingFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "queuepoint_booking_failures_total",
		Help: "Booking submissions rejected or failed in transit.",
	})
)
