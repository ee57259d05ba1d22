package main

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vales/internal/config"
	"vales/internal/middleware"
	"vales/internal/modules/auth"
	"vales/internal/modules/cuadre"
	"vales/internal/modules/dashboard"
	"vales/internal/modules/realtime"
	"vales/internal/modules/users"
	"vales/internal/modules/voucher"
	"vales/internal/pkg/events"
	"vales/internal/pkg/jwt"
	"vales/internal/repository"
)

type app struct {
	router  *gin.Engine
	hub     *realtime.Hub
	limiter *middleware.IPRateLimiter
}

// newApp wires repositories, modules and routes. kafka may be nil.
func newApp(cfg *config.Config, db *gorm.DB, logg *zap.SugaredLogger, kafka *events.KafkaPublisher) *app {
	userRepo := repository.NewUserRepository(db)
	voucherRepo := repository.NewVoucherRepository(db)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	roles := users.NewRoleCache(userRepo, cfg.RoleCacheTTL)

	hub := realtime.NewHub(logg)
	dashboardService := dashboard.NewService(voucherRepo, cfg.DashboardCacheTTL, cfg.BusinessTZ, logg)
	sinks := []events.Publisher{hub, dashboardService}
	if kafka != nil {
		sinks = append(sinks, kafka)
	}
	publisher := events.NewFanout(sinks...)

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokens, logg))
	usersHandler := users.NewHandler(users.NewService(userRepo, roles, logg).WithSessions(hub))
	voucherHandler := voucher.NewHandler(voucher.NewService(voucherRepo, userRepo, publisher, cfg.BusinessTZ, logg))
	cuadreHandler := cuadre.NewHandler(cuadre.NewService(voucherRepo, cfg.BusinessTZ, logg))
	dashboardHandler := dashboard.NewHandler(dashboardService)
	realtimeHandler := realtime.NewHandler(hub, cfg.CORSAllowedOrigins)

	r := gin.New()
	r.Use(middleware.Recovery(logg))
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(middleware.RequestLogger(logg))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	a := &app{router: r, hub: hub}

	v1 := r.Group("/api/v1")
	{
		var loginGuards []gin.HandlerFunc
		if cfg.LoginRatePerMin > 0 {
			a.limiter = middleware.NewIPRateLimiter(cfg.LoginRatePerMin)
			loginGuards = append(loginGuards, a.limiter.Middleware())
		}
		authHandler.RegisterRoutes(v1, loginGuards...)

		ws := v1.Group("", middleware.JWTAuthWithQuery(tokens, roles))
		realtimeHandler.RegisterRoutes(ws)

		protected := v1.Group("", middleware.JWTAuth(tokens, roles))
		{
			usersHandler.RegisterProtectedRoutes(protected)
			voucherHandler.RegisterRoutes(protected)
			cuadreHandler.RegisterRoutes(protected)

			admin := protected.Group("", middleware.AdminOnly())
			dashboardHandler.RegisterRoutes(admin)
			usersHandler.RegisterAdminRoutes(admin.Group("/admin"))
		}
	}

	return a
}

func (a *app) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	a.hub.Close()
}
