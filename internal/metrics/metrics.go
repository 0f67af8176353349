package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "horas", Name: "http_requests_total", Help: "HTTP requests by route and status",
	}, []string{"route", "status"})
	RecordDecisions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "horas", Name: "record_decisions_total", Help: "Hour record decisions by outcome",
	}, []string{"outcome"})
	RecordsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "horas", Name: "records_submitted_total", Help: "Hour records submitted",
	})
	PendingRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "horas", Name: "pending_records", Help: "Hour records waiting for a decision",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "horas", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, RecordDecisions, RecordsSubmitted, PendingRecords, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
