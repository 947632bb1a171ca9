package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Cri010101/toelettatura-system/internal/auth"
	"github.com/Cri010101/toelettatura-system/internal/cache"
	"github.com/Cri010101/toelettatura-system/internal/config"
	"github.com/Cri010101/toelettatura-system/internal/handlers"
	"github.com/Cri010101/toelettatura-system/internal/httperr"
	infraRepo "github.com/Cri010101/toelettatura-system/internal/infra/repository"
	"github.com/Cri010101/toelettatura-system/internal/middleware"
	"github.com/Cri010101/toelettatura-system/internal/notify"
	ucAppointment "github.com/Cri010101/toelettatura-system/internal/usecase/appointment"
	ucAuth "github.com/Cri010101/toelettatura-system/internal/usecase/auth"
	ucCatalog "github.com/Cri010101/toelettatura-system/internal/usecase/catalog"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config

	// required, the caller closes it on shutdown
	Notifier *notify.Dispatcher

	// optional
	Cache  *cache.CatalogCache
	Tokens *auth.TokenManager
}

// NewNotifier starts the notification worker on top of the store. The
// caller owns it and must Close it on shutdown.
func NewNotifier(db *gorm.DB) *notify.Dispatcher {
	recorder := notify.NewRecorder(
		infraRepo.NewNotificationGormRepository(db),
		infraRepo.NewUserGormRepository(db),
	)
	return notify.NewDispatcher(recorder, 100)
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	if d.Notifier == nil {
		panic("routes: Deps.Notifier is required")
	}

	tokens := d.Tokens
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.JWTSecret)
	}
	notifier := d.Notifier

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.HandleMethodNotAllowed = true
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("invalid TRUSTED_PROXIES, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		gin.CustomRecovery(func(c *gin.Context, rec any) {
			log.Error().Interface("panic", rec).Str("path", c.Request.URL.Path).Msg("panic recovered")
			httperr.Internal(c)
		}),
		middleware.CORSMiddleware(),
		middleware.Timeout(cfg.DBTimeout),
	)
	r.NoRoute(httperr.RouteNotFound)
	r.NoMethod(httperr.RouteNotFound)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	validate := validator.New()
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerSec, cfg.LoginBurst)

	// ======================================================
	// USE CASES
	// ======================================================
	listServicesUC := newListServices(catalogRepo, d.Cache)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		validate,
		notifier,
	)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	getAppointmentUC := ucAppointment.NewGetAppointment(appointmentRepo)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		appointmentRepo,
		notifier,
	)

	loginUC := ucAuth.NewLogin(userRepo, tokens)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(
		cfg.AppEnv,
		cfg.TZName,
		handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := d.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		cachePinger(d.Cache),
	)
	authHandler := handlers.NewAuthHandler(loginUC)
	meHandler := handlers.NewMeHandler()
	publicHandler := handlers.NewPublicHandler(listServicesUC, createAppointmentUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		getAppointmentUC,
		updateStatusUC,
	)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/health/ready", healthHandler.Ready)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/test", healthHandler.Test)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.POST("/appointments", publicHandler.CreateAppointment)

		// ------------------------------
		// ADMIN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/auth/me", meHandler.GetMe)

			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)
		}
	}
}

// newListServices keeps a nil *CatalogCache from turning into a non-nil
// interface value.
func newListServices(repo *infraRepo.CatalogGormRepository, c *cache.CatalogCache) *ucCatalog.ListServices {
	if c == nil {
		return ucCatalog.NewListServices(repo, nil)
	}
	return ucCatalog.NewListServices(repo, c)
}

func cachePinger(c *cache.CatalogCache) handlers.Pinger {
	if c == nil {
		return nil
	}
	return c
}
