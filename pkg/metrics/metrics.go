package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
	dbIdle            prometheus.Gauge
	dbWaitCount       prometheus.Gauge

	admissionDecisions *prometheus.CounterVec
	notifications      *prometheus.CounterVec
	emailDeliveries    *prometheus.CounterVec
	remindersSent      prometheus.Counter
}

// New создает и регистрирует метрики в переданном registerer
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		dbInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		dbIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		admissionDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "admission_decisions_total",
			Help:        "Booking admission decisions by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Persisted notifications by type",
			ConstLabels: constLabels,
		}, []string{"type"}),
		emailDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "email_deliveries_total",
			Help:        "Email delivery attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "reminders_sent_total",
			Help:        "Reminder notifications produced by the daily sweep",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.admissionDecisions,
		m.notifications,
		m.emailDeliveries,
		m.remindersSent,
	)

	return m
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAdmission учитывает решение по допуску бронирования ("accepted" или причина отказа)
func (m *Metrics) RecordAdmission(result string) {
	m.admissionDecisions.WithLabelValues(result).Inc()
}

// RecordNotification учитывает сохраненное уведомление
func (m *Metrics) RecordNotification(notificationType string) {
	m.notifications.WithLabelValues(notificationType).Inc()
}

// RecordEmailDelivery учитывает попытку отправки письма ("sent" / "failed")
func (m *Metrics) RecordEmailDelivery(result string) {
	m.emailDeliveries.WithLabelValues(result).Inc()
}

// RecordReminders учитывает отправленные напоминания
func (m *Metrics) RecordReminders(n int) {
	m.remindersSent.Add(float64(n))
}

// CollectDBStats периодически снимает статистику пула соединений до закрытия stop
func (m *Metrics) CollectDBStats(db *sql.DB, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.observeDBStats(db.Stats())
		select {
		case <-ticker.C:
		case <-stop:
			return
		}
	}
}

func (m *Metrics) observeDBStats(stats sql.DBStats) {
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUse.Set(float64(stats.InUse))
	m.dbIdle.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}
