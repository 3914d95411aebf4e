package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/Tuksal-Software/barber-sub000/internal/domain/booking"
	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/httpresp"
	"github.com/Tuksal-Software/barber-sub000/internal/middleware"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	"github.com/Tuksal-Software/barber-sub000/internal/timezone"
	ucbooking "github.com/Tuksal-Software/barber-sub000/internal/usecase/booking"
)

// RequestHandler exposes the staff side of the request lifecycle.
type RequestHandler struct {
	db      *gorm.DB
	approve *ucbooking.ApproveRequest
	reject  *ucbooking.RejectRequest
	cancel  *ucbooking.CancelRequest
}

func NewRequestHandler(
	db *gorm.DB,
	approve *ucbooking.ApproveRequest,
	reject *ucbooking.RejectRequest,
	cancel *ucbooking.CancelRequest,
) *RequestHandler {
	return &RequestHandler{
		db:      db,
		approve: approve,
		reject:  reject,
		cancel:  cancel,
	}
}

// --------- Requests ---------

type ApproveRequestBody struct {
	DurationMinutes int `json:"duration_minutes" binding:"required"`
}

// --------- Handlers ---------

func (h *RequestHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}
	if _, err := timezone.ParseDate(dateStr); err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	q := h.db.Where("date = ?", dateStr)
	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.AppointmentRequest
	if err := q.
		Preload("Barber").
		Order("requested_start_time ASC").
		Find(&requests).Error; err != nil {

		httperr.Internal(c, "failed_to_list_requests", "Could not list requests.")
		return
	}

	httpresp.List(c, requests)
}

func (h *RequestHandler) Approve(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid request id.")
		return
	}

	var body ApproveRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Duration is required.")
		return
	}

	req, slot, err := h.approve.Execute(c.Request.Context(), uint(id), body.DurationMinutes, staffID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request": req,
		"slot":    slot,
	})
}

func (h *RequestHandler) Reject(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid request id.")
		return
	}

	req, err := h.reject.Execute(c.Request.Context(), uint(id), staffID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *RequestHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid request id.")
		return
	}

	notify := c.DefaultQuery("notify", "true") != "false"

	req, err := h.cancel.Execute(c.Request.Context(), uint(id), domain.CancelledByStaff, notify)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}
