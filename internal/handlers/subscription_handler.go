package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainsub "github.com/Tuksal-Software/barber-sub000/internal/domain/subscription"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/httpresp"
	"github.com/Tuksal-Software/barber-sub000/internal/middleware"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	ucsubscription "github.com/Tuksal-Software/barber-sub000/internal/usecase/subscription"
	"github.com/Tuksal-Software/barber-sub000/internal/validators"
)

type SubscriptionHandler struct {
	db         *gorm.DB
	generate   *ucsubscription.GenerateOccurrences
	deactivate *ucsubscription.DeactivateSubscription
}

func NewSubscriptionHandler(
	db *gorm.DB,
	generate *ucsubscription.GenerateOccurrences,
	deactivate *ucsubscription.DeactivateSubscription,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		db:         db,
		generate:   generate,
		deactivate: deactivate,
	}
}

// --------- Requests ---------

type CreateSubscriptionBody struct {
	BarberID        uint    `json:"barber_id" binding:"required"`
	CustomerName    string  `json:"customer_name" binding:"required"`
	CustomerPhone   string  `json:"customer_phone" binding:"required"`
	RecurrenceType  string  `json:"recurrence_type" binding:"required"`
	DayOfWeek       int     `json:"day_of_week" binding:"min=0,max=6"`
	WeekOfMonth     *int    `json:"week_of_month"`
	StartTime       string  `json:"start_time" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
	StartDate       string  `json:"start_date" binding:"required"`
	EndDate         *string `json:"end_date"`
}

// --------- Handlers ---------

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var body CreateSubscriptionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid subscription payload.")
		return
	}

	phone := validators.NormalizePhone(body.CustomerPhone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, body.BarberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	sub := models.Subscription{
		BarberID:        barber.ID,
		CustomerName:    body.CustomerName,
		CustomerPhone:   phone,
		RecurrenceType:  body.RecurrenceType,
		DayOfWeek:       body.DayOfWeek,
		WeekOfMonth:     body.WeekOfMonth,
		StartTime:       body.StartTime,
		DurationMinutes: body.DurationMinutes,
		StartDate:       body.StartDate,
		EndDate:         body.EndDate,
		IsActive:        true,
	}

	if err := domainsub.Validate(&sub); err != nil {
		respondBusiness(c, err)
		return
	}

	if err := h.db.Create(&sub).Error; err != nil {
		httperr.Internal(c, "failed_to_create_subscription", "Could not create subscription.")
		return
	}

	// The next scheduler tick materializes the first occurrence; an
	// immediate run avoids making the customer wait for it.
	go func() {
		_, _ = h.generate.Execute(context.Background())
	}()

	c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	q := h.db.Preload("Barber").Order("id ASC")

	if activeStr := c.Query("active"); activeStr == "true" {
		q = q.Where("is_active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("is_active = ?", false)
	}

	var subs []models.Subscription
	if err := q.Find(&subs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_subscriptions", "Could not list subscriptions.")
		return
	}

	httpresp.List(c, subs)
}

// Deactivate stops the rule and cancels its not-yet-honored
// occurrences.
func (h *SubscriptionHandler) Deactivate(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid subscription id.")
		return
	}

	cancelled, err := h.deactivate.Execute(c.Request.Context(), uint(id), staffID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             "deactivated",
		"cancelled_requests": cancelled,
	})
}

// Generate runs one expansion tick on demand.
func (h *SubscriptionHandler) Generate(c *gin.Context) {
	created, err := h.generate.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "generation_failed", "Could not generate occurrences.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}
