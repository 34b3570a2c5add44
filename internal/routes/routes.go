package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/EssiesHairStudio/salon-scheduler/internal/audit"
	"github.com/EssiesHairStudio/salon-scheduler/internal/cache"
	"github.com/EssiesHairStudio/salon-scheduler/internal/config"
	"github.com/EssiesHairStudio/salon-scheduler/internal/handlers"
	infraRepo "github.com/EssiesHairStudio/salon-scheduler/internal/infra/repository"
	"github.com/EssiesHairStudio/salon-scheduler/internal/media"
	"github.com/EssiesHairStudio/salon-scheduler/internal/middleware"
	"github.com/EssiesHairStudio/salon-scheduler/internal/notify"
	"github.com/EssiesHairStudio/salon-scheduler/internal/payments"
	"github.com/EssiesHairStudio/salon-scheduler/internal/timezone"
	ucAppointment "github.com/EssiesHairStudio/salon-scheduler/internal/usecase/appointment"
	ucOrder "github.com/EssiesHairStudio/salon-scheduler/internal/usecase/order"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	orderRepo := infraRepo.NewOrderGormRepository(db)

	availCache := cache.NewAvailabilityCache(redisClient)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	mailer := notify.NewSendGridMailer(cfg.SendgridAPIKey, cfg.FromEmail, cfg.FromName)
	var mailDispatcher *notify.Dispatcher
	if mailer != nil {
		mailDispatcher = notify.NewDispatcher(mailer)
	}

	checkout, err := payments.NewCheckout(cfg.MPAccessToken)
	if err != nil {
		log.Printf("mercadopago disabled: %v", err)
		checkout = nil
	}

	uploader := media.NewUploader(cfg)

	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	appointmentUC := ucAppointment.NewService(
		scheduleRepo,
		cfg.Schedule,
		loc,
		availCache,
		auditDispatcher,
		mailDispatcher,
		cfg.AdminEmail,
	)

	orderUC := ucOrder.NewService(
		orderRepo,
		checkout,
		auditDispatcher,
		mailDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(db, appointmentUC, orderUC)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC)
	orderHandler := handlers.NewOrderHandler(orderUC)

	catalogHandler := handlers.NewCatalogHandler(db, auditDispatcher)
	uploadHandler := handlers.NewUploadHandler(uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/services/:id", publicHandler.GetService)
			publicAPI.GET("/services/:id/availability", publicHandler.Availability)
			publicAPI.GET("/services/:id/availability/by-subservice", publicHandler.AvailabilityBySubService)
			publicAPI.GET("/wigs", publicHandler.ListWigs)

			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments/:reference", publicHandler.GetAppointment)
			publicAPI.PATCH("/appointments/:reference/cancel", publicHandler.CancelAppointment)

			publicAPI.POST("/wig-orders", publicHandler.CreateWigOrder)
			publicAPI.POST("/product-orders", publicHandler.CreateProductOrder)
			publicAPI.GET("/payments/confirm", publicHandler.ConfirmPayment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA (EQUIPE)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// ORDERS
			// ------------------------------
			secured.GET("/me/wig-orders", orderHandler.ListWigOrders)
			secured.PATCH("/me/wig-orders/:id/confirm", orderHandler.ConfirmWigOrder)
			secured.PATCH("/me/wig-orders/:id/ship", orderHandler.ShipWigOrder)
			secured.PATCH("/me/wig-orders/:id/deliver", orderHandler.DeliverWigOrder)
			secured.PATCH("/me/wig-orders/:id/cancel", orderHandler.CancelWigOrder)

			secured.GET("/me/product-orders", orderHandler.ListProductOrders)
			secured.PATCH("/me/product-orders/:id/confirm", orderHandler.ConfirmProductOrder)
			secured.PATCH("/me/product-orders/:id/cancel", orderHandler.CancelProductOrder)

			// ------------------------------
			// CATÁLOGO (ADMIN)
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/me/catalog/services", catalogHandler.ListServices)
				admin.POST("/me/catalog/services", catalogHandler.CreateService)
				admin.PATCH("/me/catalog/services/:id", catalogHandler.UpdateService)

				admin.POST("/me/catalog/sub-services", catalogHandler.CreateSubService)
				admin.PATCH("/me/catalog/sub-services/:id", catalogHandler.UpdateSubService)

				admin.POST("/me/catalog/hair-styles", catalogHandler.CreateHairStyle)
				admin.PATCH("/me/catalog/hair-styles/:id", catalogHandler.UpdateHairStyle)

				admin.POST("/me/catalog/wigs", catalogHandler.CreateWig)
				admin.PATCH("/me/catalog/wigs/:id", catalogHandler.UpdateWig)

				admin.POST("/me/catalog/images", uploadHandler.UploadImage)

				admin.GET("/me/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
