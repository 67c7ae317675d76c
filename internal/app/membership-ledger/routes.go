// Package membershipledger собирает приложение реестра абонементов и его маршруты.
package membershipledger

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/admin/advanceheight"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/admin/deposit"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/admin/pause"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/admin/setperiod"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/admin/setreceiver"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/admin/settierfee"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/admin/unpause"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/auth/login"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/auth/register"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/bank/balance"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/membership/health"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/membership/mint"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/membership/read"
	"github.com/Memetic-Block/membership-nfts/internal/http/handlers/membership/recharge"
	schedulelist "github.com/Memetic-Block/membership-nfts/internal/http/handlers/schedule/list"
	scheduleread "github.com/Memetic-Block/membership-nfts/internal/http/handlers/schedule/read"
	stateread "github.com/Memetic-Block/membership-nfts/internal/http/handlers/state/read"
	"github.com/Memetic-Block/membership-nfts/internal/http/middlewarectx"
	authservice "github.com/Memetic-Block/membership-nfts/internal/services/auth"
	membershipservice "github.com/Memetic-Block/membership-nfts/internal/services/membership"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, membershipService *membershipservice.MembershipService, authService *authservice.AuthService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/memberships/mint", mint.New(logger, membershipService).ServeHTTP)
			r.Post("/memberships/{id}/recharge", recharge.New(logger, membershipService).ServeHTTP)
			r.Get("/memberships/{id}", read.New(logger, membershipService).ServeHTTP)
			r.Get("/schedule", schedulelist.New(logger, membershipService).ServeHTTP)
			r.Get("/schedule/{tier}", scheduleread.New(logger, membershipService).ServeHTTP)
			r.Get("/state", stateread.New(logger, membershipService).ServeHTTP)
			r.Get("/bank/balance", balance.New(logger, membershipService).ServeHTTP)

			r.Put("/admin/schedule/{tier}", settierfee.New(logger, membershipService).ServeHTTP)
			r.Put("/admin/receiver", setreceiver.New(logger, membershipService).ServeHTTP)
			r.Put("/admin/period", setperiod.New(logger, membershipService).ServeHTTP)
			r.Post("/admin/pause", pause.New(logger, membershipService).ServeHTTP)
			r.Post("/admin/unpause", unpause.New(logger, membershipService).ServeHTTP)
			r.Post("/admin/height/advance", advanceheight.New(logger, membershipService).ServeHTTP)
			r.Post("/admin/bank/deposit", deposit.New(logger, membershipService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
