package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/httpresp"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	ucbooking "github.com/Tuksal-Software/barber-sub000/internal/usecase/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/validators"
)

// PublicHandler serves the unauthenticated customer surface:
// browsing barbers, checking availability and placing a request.
type PublicHandler struct {
	db           *gorm.DB
	availability *ucbooking.GetAvailability
	create       *ucbooking.CreateRequest
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucbooking.GetAvailability,
	create *ucbooking.CreateRequest,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
	}
}

// --------- Requests ---------

type PublicCreateRequestBody struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time"`
	Notes         string `json:"notes"`
}

// --------- Handlers ---------

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Could not list barbers.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barber id is required.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	duration := 0
	if d := c.Query("duration"); d != "" {
		duration, err = strconv.Atoi(d)
		if err != nil || duration < 0 {
			httperr.BadRequest(c, "invalid_duration", "Invalid duration.")
			return
		}
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:        uint(barberID),
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	if slots == nil {
		slots = []domain.TimeSlot{}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

// CreateRequest places a pending request. The slot stays open for
// other customers until staff approves it.
func (h *PublicHandler) CreateRequest(c *gin.Context) {
	var body PublicCreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking payload.")
		return
	}

	phone := validators.NormalizePhone(body.CustomerPhone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
		return
	}

	req, err := h.create.Execute(c.Request.Context(), ucbooking.CreateRequestInput{
		BarberID:      body.BarberID,
		CustomerName:  body.CustomerName,
		CustomerPhone: phone,
		Date:          body.Date,
		StartTime:     body.StartTime,
		EndTime:       body.EndTime,
		Notes:         body.Notes,
	})
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reference": req.Reference,
		"status":    req.Status,
		"date":      req.Date,
		"start":     req.RequestedStartTime,
	})
}

// RequestStatus lets a customer poll their request by its reference.
func (h *PublicHandler) RequestStatus(c *gin.Context) {
	ref := c.Param("reference")

	var req models.AppointmentRequest
	if err := h.db.Where("reference = ?", ref).First(&req).Error; err != nil {
		httperr.NotFound(c, "request_not_found", "Appointment request not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference": req.Reference,
		"status":    req.Status,
		"date":      req.Date,
		"start":     req.RequestedStartTime,
		"end":       req.RequestedEndTime,
	})
}
