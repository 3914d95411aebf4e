package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Tuksal-Software/barber-sub000/internal/audit"
	"github.com/Tuksal-Software/barber-sub000/internal/config"
	"github.com/Tuksal-Software/barber-sub000/internal/handlers"
	infraRepo "github.com/Tuksal-Software/barber-sub000/internal/infra/repository"
	"github.com/Tuksal-Software/barber-sub000/internal/middleware"
	"github.com/Tuksal-Software/barber-sub000/internal/notify"
	"github.com/Tuksal-Software/barber-sub000/internal/otp"
	ucbooking "github.com/Tuksal-Software/barber-sub000/internal/usecase/booking"
	ucselfcancel "github.com/Tuksal-Software/barber-sub000/internal/usecase/selfcancel"
	ucsubscription "github.com/Tuksal-Software/barber-sub000/internal/usecase/subscription"
)

// Deps is everything RegisterRoutes wires into handlers beyond the
// router itself.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Sender   notify.Sender
	OTPStore otp.Store
	Log      zerolog.Logger

	// Generate is shared with the cron scheduler.
	Generate *ucsubscription.GenerateOccurrences
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	settingsRepo := infraRepo.NewSettingsGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucbooking.NewGetAvailability(bookingRepo)
	createRequestUC := ucbooking.NewCreateRequest(bookingRepo)

	approveUC := ucbooking.NewApproveRequest(bookingRepo, d.Sender, auditDispatcher, d.Log)
	rejectUC := ucbooking.NewRejectRequest(bookingRepo, auditDispatcher)
	cancelUC := ucbooking.NewCancelRequest(bookingRepo, d.Sender, auditDispatcher, d.Log)

	overrideUC := ucbooking.NewCreateOverride(bookingRepo, d.Sender, settingsRepo, auditDispatcher, d.Log)

	deactivateUC := ucsubscription.NewDeactivateSubscription(bookingRepo, cancelUC, auditDispatcher)

	selfCancelSvc := ucselfcancel.New(bookingRepo, d.OTPStore, d.Sender, cancelUC, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	barberHandler := handlers.NewBarberHandler(d.DB)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB)
	requestHandler := handlers.NewRequestHandler(d.DB, approveUC, rejectUC, cancelUC)
	overrideHandler := handlers.NewOverrideHandler(d.DB, overrideUC)
	subscriptionHandler := handlers.NewSubscriptionHandler(d.DB, d.Generate, deactivateUC)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	publicHandler := handlers.NewPublicHandler(d.DB, availabilityUC, createRequestUC)
	selfCancelHandler := handlers.NewSelfCancelHandler(selfCancelSvc)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/requests", publicHandler.CreateRequest)
			publicAPI.GET("/requests/:reference", publicHandler.RequestStatus)

			publicAPI.POST("/cancellations/code", selfCancelHandler.Issue)
			publicAPI.POST("/cancellations/verify", selfCancelHandler.Verify)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// STAFF
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/barbers", barberHandler.List)
			secured.POST("/barbers", barberHandler.Create)
			secured.PATCH("/barbers/:id", barberHandler.Update)

			secured.GET("/barbers/:id/working-hours", workingHoursHandler.Get)
			secured.PUT("/barbers/:id/working-hours", workingHoursHandler.Update)

			secured.GET("/requests", requestHandler.ListByDate)
			secured.PATCH("/requests/:id/approve", requestHandler.Approve)
			secured.PATCH("/requests/:id/reject", requestHandler.Reject)
			secured.PATCH("/requests/:id/cancel", requestHandler.Cancel)

			secured.GET("/overrides", overrideHandler.ListByDate)
			secured.POST("/overrides", overrideHandler.Create)

			secured.GET("/subscriptions", subscriptionHandler.List)
			secured.POST("/subscriptions", subscriptionHandler.Create)
			secured.PATCH("/subscriptions/:id/deactivate", subscriptionHandler.Deactivate)
			secured.POST("/subscriptions/generate", subscriptionHandler.Generate)

			secured.GET("/settings", settingsHandler.Get)
			secured.PATCH("/settings", middleware.RequireOwner(), settingsHandler.Update)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
