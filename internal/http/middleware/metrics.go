package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Total rejected authentication attempts by reason",
		},
		[]string{"reason"},
	)
	RentalsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rentals_created_total",
			Help: "Total successfully created rentals",
		},
	)
)

func init() {
	prometheus.MustRegister(RLRequests, RLBlocked, AuthFailures, RentalsCreated)
}
