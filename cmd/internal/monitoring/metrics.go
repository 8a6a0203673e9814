// Package monitoring exposes the service's Prometheus counters.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AppointmentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Total appointments created",
		},
	)

	NotificationsDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total notification messages handed to the dispatcher",
		},
	)

	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Total notification messages that could not be rendered or sent",
		},
	)
)
