package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newsfeed",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Количество HTTP-запросов по методу и статусу ответа.",
	}, []string{"method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "newsfeed",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Длительность обработки HTTP-запроса.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
)

// Metrics собирает счётчик запросов и гистограмму длительности.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}

			httpRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
