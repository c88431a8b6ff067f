package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCreate(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCreate("CASH", "", time.Millisecond)
	m.ObserveCreate("CASH", "", time.Millisecond)
	m.ObserveCreate("CARD", "SLOT_UNAVAILABLE", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("CASH")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BookingsCreated.WithLabelValues("CARD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsRejected.WithLabelValues("SLOT_UNAVAILABLE")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CreateDuration))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCreate("CASH", "", time.Second)
		m.IncCancelled()
		m.IncStatusChange("CHECKED_IN")
		m.IncEvent("booking.created", true)
		m.IncRoomEviction()
	})
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/rooms/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rooms/abc", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/rooms/:id", "418")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}
