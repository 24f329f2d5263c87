package observability

import "github.com/prometheus/client_golang/prometheus"

// activitiesLogged counts audit-trail rows written by the application
// workflows, labelled by event type (created, status_change, ...).
var activitiesLogged = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobtracker_activities_logged_total",
		Help: "Total number of application activities written.",
	},
	[]string{"event_type"},
)

// statusTransitions counts status transitions by target status.
var statusTransitions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jobtracker_status_transitions_total",
		Help: "Total number of application status changes by new status.",
	},
	[]string{"status"},
)

func init() {
	prometheus.MustRegister(activitiesLogged, statusTransitions)
}

// ActivityLogged records one activity row of the given event type.
func ActivityLogged(eventType string) {
	activitiesLogged.WithLabelValues(eventType).Inc()
}

// StatusChanged records a transition into status.
func StatusChanged(status string) {
	statusTransitions.WithLabelValues(status).Inc()
}
