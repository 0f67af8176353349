package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/fundacion-horas/horas-backend/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router assembles the full route tree. Health and metrics stay outside the
// auth middleware.
func Router(h *Handler, authCfg AuthConfig, database *sql.DB) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := database.PingContext(ctx); err != nil {
			http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(RequireAuth(authCfg))
		api.Use(newActorLimiter().serializeWrites)

		api.Route("/records", func(rr chi.Router) {
			rr.Post("/", h.submitRecord)
			rr.Get("/", h.listRecords)
			rr.With(RequireAdmin).Get("/pendientes", h.listPending)
			rr.With(RequireAdmin).Post("/{id}/decision", h.decideRecord)
			rr.Patch("/{id}", h.updateRecord)
			rr.Delete("/{id}", h.deleteRecord)
		})

		api.Route("/progress", func(pr chi.Router) {
			pr.Get("/mi-progreso", h.myProgress)
			pr.Get("/historial", h.myHistory)
			pr.With(RequireAdmin).Get("/general", h.fleetProgress)
		})

		api.Route("/activities", func(ar chi.Router) {
			ar.Get("/", h.listActivities)
			ar.Get("/catalogo", h.catalog)
			ar.Post("/", h.createActivity)
			ar.Get("/{id}", h.getActivity)
			ar.With(RequireAdmin).Patch("/{id}", h.updateActivity)
			ar.With(RequireAdmin).Delete("/{id}", h.deleteActivity)
			ar.With(RequireAdmin).Post("/{id}/desactivar", h.deactivateActivity)
			ar.With(RequireAdmin).Get("/{id}/asignaciones", h.listAssignedUsers)
			ar.With(RequireAdmin).Post("/{id}/asignaciones", h.assignUsers)
			ar.With(RequireAdmin).Delete("/{id}/asignaciones", h.unassignUsers)
		})

		api.Route("/users", func(ur chi.Router) {
			ur.Get("/mi-perfil", h.myProfile)
			ur.With(RequireAdmin).Get("/", h.listUsers)
			ur.With(RequireAdmin).Post("/", h.createUser)
			ur.With(RequireAdmin).Patch("/{id}/metas", h.updateGoals)
			ur.With(RequireAdmin).Delete("/{id}", h.deactivateUser)
			ur.With(RequireAdmin).Post("/{id}/asignaciones", h.assignActivities)
			ur.With(RequireAdmin).Delete("/{id}/asignaciones", h.unassignActivities)
		})

		api.Route("/export", func(er chi.Router) {
			er.With(RequireAdmin).Get("/progreso.xlsx", h.exportFleet)
			er.Get("/historial.xlsx", h.exportHistory)
		})

		api.Route("/admin", func(or chi.Router) {
			or.Use(RequireAdmin)
			or.Post("/backup", h.triggerBackup)
			or.Post("/restore-latest", h.restoreLatest)
		})
	})

	return r
}

// requestMetrics counts requests per route pattern and status.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
	})
}

type Server struct {
	srv *http.Server
}

// Start serves the router and shuts down cleanly when ctx is cancelled.
func Start(ctx context.Context, addr string, handler http.Handler) *Server {
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		_ = srv.ListenAndServe()
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &Server{srv: srv}
}
