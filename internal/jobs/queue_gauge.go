package jobs

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/fundacion-horas/horas-backend/internal/ctxutil"
	"github.com/fundacion-horas/horas-backend/internal/db"
	"github.com/fundacion-horas/horas-backend/internal/metrics"
)

// Start registers the background jobs: the pending-queue gauge refresh and a
// periodic DB liveness probe.
func Start(ctx context.Context, database *sql.DB, log *zap.SugaredLogger) {
	r := New(ctx)
	r.Every(30*time.Second, "pending_gauge", func(c context.Context) error {
		return refreshPendingGauge(c, database, log)
	})
	r.Every(time.Minute, "db_ping", func(c context.Context) error {
		return pingDB(c, database, log)
	})
}

func refreshPendingGauge(ctx context.Context, database *sql.DB, log *zap.SugaredLogger) error {
	c, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	n, err := db.CountPendingRecords(c, database)
	if err != nil {
		log.Warnw("pending gauge refresh failed", "err", err)
		return err
	}
	metrics.PendingRecords.Set(float64(n))
	return nil
}

func pingDB(ctx context.Context, database *sql.DB, log *zap.SugaredLogger) error {
	c, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	start := time.Now()
	if err := database.PingContext(c); err != nil {
		log.Warnw("db ping failed", "err", err)
		return err
	}
	metrics.ObserveDBPing(time.Since(start))
	return nil
}
