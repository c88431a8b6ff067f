package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "service_booking"

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	BookingsCreated   *prometheus.CounterVec
	BookingsRejected  *prometheus.CounterVec
	BookingsCancelled prometheus.Counter
	StatusChanges     *prometheus.CounterVec
	CreateDuration    prometheus.Histogram
	EventsPublished   *prometheus.CounterVec
	RoomCacheEvicted  prometheus.Counter
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BookingsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Bookings confirmed, by payment method.",
		}, []string{"payment_method"}),

		BookingsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_rejected_total",
			Help:      "Booking attempts rejected, by error code.",
		}, []string{"code"}),

		BookingsCancelled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "Bookings cancelled by guests or admins.",
		}),

		StatusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_changes_total",
			Help:      "Admin status updates, by target status.",
		}, []string{"status"}),

		CreateDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_create_duration_seconds",
			Help:      "Time spent creating a booking, including the room lock.",
			Buckets:   prometheus.DefBuckets,
		}),

		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Domain events handed to the broker, by type and result.",
		}, []string{"type", "result"}),

		RoomCacheEvicted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_cache_evictions_total",
			Help:      "Room cache entries evicted after room events.",
		}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),

		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveCreate records a finished create attempt. code is empty on success.
func (m *Metrics) ObserveCreate(paymentMethod, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.CreateDuration.Observe(elapsed.Seconds())
	if code != "" {
		m.BookingsRejected.WithLabelValues(code).Inc()
		return
	}
	m.BookingsCreated.WithLabelValues(paymentMethod).Inc()
}

// IncCancelled counts a cancellation.
func (m *Metrics) IncCancelled() {
	if m == nil {
		return
	}
	m.BookingsCancelled.Inc()
}

// IncStatusChange counts an admin status update.
func (m *Metrics) IncStatusChange(status string) {
	if m == nil {
		return
	}
	m.StatusChanges.WithLabelValues(status).Inc()
}

// IncEvent counts a publish attempt.
func (m *Metrics) IncEvent(eventType string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.EventsPublished.WithLabelValues(eventType, result).Inc()
}

// IncRoomEviction counts a room cache eviction.
func (m *Metrics) IncRoomEviction() {
	if m == nil {
		return
	}
	m.RoomCacheEvicted.Inc()
}

// Middleware records request counts and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
