package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/dayplan/internal/config"
	"github.com/crucial707/dayplan/internal/handlers"
	"github.com/crucial707/dayplan/internal/middleware"
	"github.com/crucial707/dayplan/internal/repo"
	"github.com/crucial707/dayplan/internal/snapshot"
)

func newLoader(db *sql.DB, cfg config.Config) *snapshot.Loader {
	return &snapshot.Loader{
		Schedules: repo.NewScheduleRepo(db),
		Tasks:     repo.NewTaskRepo(db),
		Settings:  repo.NewSettingsRepo(db),
		Defaults:  cfg.Planner,
		Loc:       cfg.Location(),
	}
}

// newRouter wires every route of the API on top of db.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	scheduleRepo := repo.NewScheduleRepo(db)
	taskRepo := repo.NewTaskRepo(db)
	settingsRepo := repo.NewSettingsRepo(db)
	noteRepo := repo.NewNoteRepo(db)
	userRepo := repo.NewUserRepo(db)
	auditRepo := repo.NewAuditRepo(db)
	loader := newLoader(db, cfg)

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Secret: []byte(cfg.JWTSecret), ExpireHours: cfg.JWTExpireHours}
	userHandler := &handlers.UserHandler{Repo: userRepo}
	scheduleHandler := &handlers.ScheduleHandler{Repo: scheduleRepo, AuditRepo: auditRepo, Loc: cfg.Location()}
	taskHandler := &handlers.TaskHandler{Repo: taskRepo, AuditRepo: auditRepo}
	settingsHandler := &handlers.SettingsHandler{Repo: settingsRepo, Loader: loader, AuditRepo: auditRepo}
	planHandler := &handlers.PlanHandler{Loader: loader, Notes: noteRepo}
	noteHandler := &handlers.NoteHandler{Repo: noteRepo, Loader: loader}
	calendarHandler := &handlers.CalendarHandler{Users: userRepo, Loader: loader}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ready"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.AuthRateLimiter().Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware([]byte(cfg.JWTSecret)))

		r.Get("/me", userHandler.Me)
		r.Get("/audit", auditHandler.ListAudit)

		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", scheduleHandler.ListSchedules)
			r.Post("/", scheduleHandler.CreateSchedule)
			r.Get("/{id}", scheduleHandler.GetSchedule)
			r.Put("/{id}", scheduleHandler.UpdateSchedule)
			r.Delete("/{id}", scheduleHandler.DeleteSchedule)
			r.Post("/{id}/split", scheduleHandler.SplitSchedule)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)
			r.Get("/{id}", taskHandler.GetTask)
			r.Put("/{id}", taskHandler.UpdateTask)
			r.Delete("/{id}", taskHandler.DeleteTask)
		})

		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.PutSettings)

		r.Route("/plan", func(r chi.Router) {
			r.Get("/day", planHandler.Day)
			r.Get("/occupancy", planHandler.Occupancy)
			r.Get("/slack", planHandler.Slack)
		})

		r.Get("/notes", noteHandler.ListNotes)
		r.Post("/notes", noteHandler.CreateNote)
		r.Delete("/notes/{id}", noteHandler.DeleteNote)

		r.Get("/calendar.ics", calendarHandler.Export)
	})

	return r
}
