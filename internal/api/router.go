package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "lending-engine/docs"

	"lending-engine/internal/api/handler"
	mw "lending-engine/internal/api/middleware"
	"lending-engine/internal/config"
	"lending-engine/internal/domain/billing"
	"lending-engine/internal/domain/job"
	"lending-engine/internal/domain/loan"
	"lending-engine/internal/pkg/clock"
)

// Dependencies carries everything the HTTP surface needs.
type Dependencies struct {
	LoanService     loan.LoanService
	PaymentService  loan.PaymentService
	BillingRepo     billing.Repository
	Tracker         job.ExecutionTracker
	SystemDateClock *clock.SystemDateClock
}

func SetupRouter(deps Dependencies, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, cfg, logger)
	setupLoanRoutes(router, deps, cfg, logger)
	setupRepaymentRoutes(router, deps, cfg, logger)
	setupBillingRoutes(router, deps, cfg, logger)
	setupJobRoutes(router, deps, cfg, logger)
	setupAdminRoutes(router, deps, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	authHandler := handler.NewAuthHandler(*cfg, logger)
	router.Route("/auth", func(r chi.Router) {
		r.Post("/token", authHandler.GenerateBearerToken)
	})
}

func setupLoanRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	loanHandler := handler.NewLoanHandler(deps.LoanService, logger)
	billingHandler := handler.NewBillingHandler(deps.Tracker, deps.BillingRepo, logger)

	router.Route("/loans", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", loanHandler.CreateLoan)
		r.Get("/", loanHandler.ListLoans)
		r.Route("/{loanID}", func(r chi.Router) {
			r.Get("/", loanHandler.GetLoan)
			r.Put("/", loanHandler.UpdateLoan)
			r.Delete("/", loanHandler.DeactivateLoan)
			r.Put("/approve", loanHandler.ApproveLoan)
			r.Delete("/purge", loanHandler.DeleteLoan)
			r.Get("/schedule", loanHandler.GetSchedule)
			r.Get("/outstanding", loanHandler.GetOutstanding)
			r.Get("/billings", billingHandler.ListBillingsByLoan)
		})
	})
}

func setupRepaymentRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	repaymentHandler := handler.NewRepaymentHandler(deps.PaymentService, logger)

	router.Route("/repayments", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Route("/{repaymentID}", func(r chi.Router) {
			r.Get("/", repaymentHandler.GetRepayment)
			r.Delete("/", repaymentHandler.DeleteRepayment)
			r.Post("/payments", repaymentHandler.ApplyPayment)
		})
	})
}

func setupBillingRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	billingHandler := handler.NewBillingHandler(deps.Tracker, deps.BillingRepo, logger)

	router.Route("/billing", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/run", billingHandler.RunBillingSweep)
	})
}

func setupJobRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	jobHandler := handler.NewJobHandler(deps.Tracker, logger)

	router.Route("/jobs", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/", jobHandler.ListJobDefinitions)
		r.Post("/{jobID}/run", jobHandler.RunJob)
		r.Get("/{jobID}/history", jobHandler.GetJobHistory)
	})
}

func setupAdminRoutes(router *chi.Mux, deps Dependencies, cfg *config.Config, logger *slog.Logger) {
	systemDateHandler := handler.NewSystemDateHandler(deps.SystemDateClock, logger)

	router.Route("/admin", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Get("/system-date", systemDateHandler.GetSystemDate)
		r.Put("/system-date", systemDateHandler.SetSystemDate)
		r.Post("/system-date/advance", systemDateHandler.AdvanceSystemDate)
	})
}
