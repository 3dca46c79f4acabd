package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/field-scheduler/internal/audit"
	"github.com/BruksfildServices01/field-scheduler/internal/config"
	domain "github.com/BruksfildServices01/field-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/events"
	"github.com/BruksfildServices01/field-scheduler/internal/handlers"
	"github.com/BruksfildServices01/field-scheduler/internal/images"
	"github.com/BruksfildServices01/field-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/field-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/field-scheduler/internal/middleware"
	ucReservation "github.com/BruksfildServices01/field-scheduler/internal/usecase/reservation"
	"github.com/BruksfildServices01/field-scheduler/internal/validators"
)

// Deps carries the process-wide singletons. Redis, Events and Images are
// optional; nil disables the integration.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Audit       *audit.Dispatcher
	Redis       *redis.Client
	Events      events.Publisher
	Images      images.Store
	EmailDomain validators.DomainChecker
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA
	// ======================================================
	fieldRepo := infraRepo.NewFieldGormRepository(d.DB)
	reservationRepo := infraRepo.NewReservationGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	var (
		fieldSource domain.FieldRepository = fieldRepo
		invalidator cache.Invalidator      = cache.Nop{}
	)
	if d.Redis != nil {
		fieldCache := cache.NewFieldCache(d.Redis, fieldRepo, d.Config.FieldCacheTTL)
		fieldSource = fieldCache
		invalidator = fieldCache
	}

	// ======================================================
	// USE CASES — RESERVATIONS
	// ======================================================
	attemptBookingUC := ucReservation.NewAttemptBooking(
		fieldSource,
		reservationRepo,
		d.Audit,
		d.Events,
	)

	cancelBookingUC := ucReservation.NewCancelBooking(
		reservationRepo,
		d.Audit,
		d.Events,
	)

	listScheduleUC := ucReservation.NewListSchedule(
		fieldSource,
		reservationRepo,
	)

	getConfirmationUC := ucReservation.NewGetConfirmation(
		reservationRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.EmailDomain)
	meHandler := handlers.NewMeHandler(d.DB, userRepo, invalidator)
	fieldHandler := handlers.NewFieldHandler(fieldRepo, invalidator, d.Audit)
	fieldImageHandler := handlers.NewFieldImageHandler(fieldHandler, d.Images, d.Config.ImageMaxWidth)

	reservationHandler := handlers.NewReservationHandler(
		attemptBookingUC,
		cancelBookingUC,
		listScheduleUC,
		getConfirmationUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, fieldRepo)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/slots", reservationHandler.Slots)
		api.GET("/fields", fieldHandler.List)
		api.GET("/fields/:id", fieldHandler.Get)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.DELETE("/me", meHandler.DeleteMe)

			secured.GET("/me/schedule", reservationHandler.MySchedule)
			secured.GET("/fields/:id/schedule", reservationHandler.FieldSchedule)

			secured.POST("/fields/:id/reservations", reservationHandler.Create)
			secured.GET("/reservations/:id/confirmation", reservationHandler.Confirmation)
			secured.DELETE("/reservations/:id", reservationHandler.Cancel)
		}

		// ------------------------------
		// FIELD OWNERS
		// ------------------------------
		owner := api.Group("/me/fields")
		owner.Use(middleware.AuthMiddleware(d.Config), middleware.RequireFieldOwner())
		{
			owner.GET("", fieldHandler.ListMine)
			owner.POST("", fieldHandler.Create)
			owner.PATCH("/:id", fieldHandler.Update)
			owner.DELETE("/:id", fieldHandler.Delete)

			owner.GET("/:id/working-window", fieldHandler.GetWorkingWindow)
			owner.PUT("/:id/working-window", fieldHandler.PutWorkingWindow)
			owner.PUT("/:id/image", fieldImageHandler.Put)

			owner.GET("/:id/audit-logs", auditLogsHandler.List)
		}
	}
}
