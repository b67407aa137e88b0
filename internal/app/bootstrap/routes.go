// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	analyticsfeature "github.com/dalemusser/hackhub/internal/app/features/analytics"
	evaluationsfeature "github.com/dalemusser/hackhub/internal/app/features/evaluations"
	eventsfeature "github.com/dalemusser/hackhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/hackhub/internal/app/features/health"
	leaderboardfeature "github.com/dalemusser/hackhub/internal/app/features/leaderboard"
	loginfeature "github.com/dalemusser/hackhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/hackhub/internal/app/features/logout"
	notificationsfeature "github.com/dalemusser/hackhub/internal/app/features/notifications"
	registrationsfeature "github.com/dalemusser/hackhub/internal/app/features/registrations"
	submissionsfeature "github.com/dalemusser/hackhub/internal/app/features/submissions"
	userinfofeature "github.com/dalemusser/hackhub/internal/app/features/userinfo"
	"github.com/dalemusser/hackhub/internal/app/realtime"
	"github.com/dalemusser/hackhub/internal/app/scoring"
	"github.com/dalemusser/hackhub/internal/app/system/auth"
	"github.com/dalemusser/hackhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. The handler is a JSON API under
// /api, websocket endpoints under /ws, plus /health and /metrics.
//
// The realtime hub and the score recalculator are built here and shared
// across features: every scoring write path (submission reviews,
// evaluation upserts) funnels through the one recalculator, which
// signals the one hub.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	hub := realtime.NewHub(logger)
	var blockKey []byte
	if appCfg.TicketBlockKey != "" {
		blockKey = []byte(appCfg.TicketBlockKey)
	}
	tickets := realtime.NewTicketCodec([]byte(appCfg.SessionKey), blockKey)

	recalc := scoring.New(db, hub, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Authentication
	loginLimits := ratelimit.NewLoginLimiter(appCfg.LoginIPAttempts, appCfg.LoginEmailAttempts)
	loginHandler := loginfeature.NewHandler(db, loginLimits, logger)
	r.Mount("/api/login", loginfeature.Routes(loginHandler))
	r.Mount("/api/signup", loginfeature.SignupRoutes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(logger)
	r.Mount("/api/logout", logoutfeature.Routes(logoutHandler))

	userinfoHandler := userinfofeature.NewHandler()
	r.Mount("/api/user", userinfofeature.Routes(userinfoHandler))

	// Events and signups
	eventsHandler := eventsfeature.NewHandler(db, logger)
	r.Mount("/api/events", eventsfeature.Routes(eventsHandler))

	registrationsHandler := registrationsfeature.NewHandler(db, logger)
	r.Mount("/api/registrations", registrationsfeature.Routes(registrationsHandler))

	// Scoring write paths
	submissionsHandler := submissionsfeature.NewHandler(db, recalc, logger)
	r.Mount("/api/submissions", submissionsfeature.Routes(submissionsHandler))

	evaluationsHandler := evaluationsfeature.NewHandler(db, recalc, logger)
	r.Mount("/api/evaluations", evaluationsfeature.Routes(evaluationsHandler))

	// Derived reads
	analyticsHandler := analyticsfeature.NewHandler(db, logger)
	r.Mount("/api/analytics", analyticsfeature.Routes(analyticsHandler))

	leaderboardHandler := leaderboardfeature.NewHandler(db, tickets, logger)
	r.Mount("/api/leaderboard", leaderboardfeature.Routes(leaderboardHandler))

	// Notifications
	notificationsHandler := notificationsfeature.NewHandler(db, hub, logger)
	r.Mount("/api/notifications", notificationsfeature.Routes(notificationsHandler))

	// Websocket feeds. The leaderboard room is public, matching the HTTP
	// leaderboard; the user channel requires a ticket.
	r.Get("/ws/leaderboard/{eventID}", hub.LeaderboardHandler())
	r.Get("/ws/user", hub.UserHandler(tickets))

	return r, nil
}
