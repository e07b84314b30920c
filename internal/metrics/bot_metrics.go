package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BotMetrics содержит метрики диалогового движка и обработки заказов.
type BotMetrics struct {
	// Счётчики операций
	transitions        *prometheus.CounterVec
	validationFailures prometheus.Counter
	ordersCreated      prometheus.Counter
	statusUpdates      prometheus.Counter
	dispatchFailures   prometheus.Counter
	eventsPublished    prometheus.Counter

	// Гистограмма времени обработки входящего события
	transitionDuration prometheus.Histogram

	// Gauge для активных диалогов
	activeSessions prometheus.Gauge
}

// NewBotMetrics создаёт новый экземпляр метрик бота.
func NewBotMetrics() *BotMetrics {
	return newBotMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newBotMetricsWithRegisterer(registerer prometheus.Registerer) *BotMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &BotMetrics{
		transitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "torthouse_transitions_total",
			Help: "Total number of conversation transitions handled",
		}, []string{"event"}),
		validationFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "torthouse_validation_failures_total",
			Help: "Total number of rejected user inputs",
		}),
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "torthouse_orders_created_total",
			Help: "Total number of orders committed",
		}),
		statusUpdates: registerCounter(registerer, prometheus.CounterOpts{
			Name: "torthouse_order_status_updates_total",
			Help: "Total number of order status updates",
		}),
		dispatchFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "torthouse_dispatch_failures_total",
			Help: "Total number of failed order dispatch deliveries",
		}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "torthouse_order_events_published_total",
			Help: "Total number of order events published to kafka",
		}),
		transitionDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "torthouse_transition_duration_seconds",
			Help:    "Duration of conversation transition handling in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		activeSessions: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "torthouse_active_sessions",
			Help: "Number of conversations currently outside the idle state",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordTransition увеличивает счётчик обработанных переходов.
func (m *BotMetrics) RecordTransition(event string) {
	m.transitions.WithLabelValues(event).Inc()
}

// RecordValidationFailure увеличивает счётчик отклонённого ввода.
func (m *BotMetrics) RecordValidationFailure() {
	m.validationFailures.Inc()
}

// RecordOrderCreated увеличивает счётчик оформленных заказов.
func (m *BotMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordStatusUpdate увеличивает счётчик смен статуса заказа.
func (m *BotMetrics) RecordStatusUpdate() {
	m.statusUpdates.Inc()
}

// RecordDispatchFailure увеличивает счётчик неудачных доставок уведомлений.
func (m *BotMetrics) RecordDispatchFailure() {
	m.dispatchFailures.Inc()
}

// RecordEventPublished увеличивает счётчик опубликованных событий.
func (m *BotMetrics) RecordEventPublished() {
	m.eventsPublished.Inc()
}

// RecordTransitionDuration записывает время обработки входящего события.
func (m *BotMetrics) RecordTransitionDuration(duration time.Duration) {
	m.transitionDuration.Observe(duration.Seconds())
}

// SessionStarted увеличивает количество активных диалогов.
func (m *BotMetrics) SessionStarted() {
	m.activeSessions.Inc()
}

// SessionFinished уменьшает количество активных диалогов.
func (m *BotMetrics) SessionFinished() {
	m.activeSessions.Dec()
}
