package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking and follow-up flows.
type BookingMetrics struct {
	bookingsCreated  prometheus.Counter
	wizardRejections *prometheus.CounterVec
	followupsSent    *prometheus.CounterVec
	storeFallback    *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dentalclinic",
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Total appointments created through the wizard",
		}),
		wizardRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dentalclinic",
			Subsystem: "booking",
			Name:      "wizard_rejections_total",
			Help:      "Wizard step advances rejected by validation",
		}, []string{"step"}),
		followupsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dentalclinic",
			Subsystem: "followup",
			Name:      "sent_total",
			Help:      "Follow-up links generated, by template",
		}, []string{"template"}),
		storeFallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dentalclinic",
			Subsystem: "store",
			Name:      "fallback_total",
			Help:      "Record store operations served by the local fallback",
		}, []string{"op"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsCreated, m.wizardRejections, m.followupsSent, m.storeFallback)
	return m
}

func (m *BookingMetrics) ObserveBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

func (m *BookingMetrics) ObserveWizardRejection(step string) {
	if m == nil {
		return
	}
	m.wizardRejections.WithLabelValues(step).Inc()
}

func (m *BookingMetrics) ObserveFollowUpSent(template string) {
	if m == nil {
		return
	}
	m.followupsSent.WithLabelValues(template).Inc()
}

func (m *BookingMetrics) ObserveFallback(op string) {
	if m == nil {
		return
	}
	m.storeFallback.WithLabelValues(op).Inc()
}
