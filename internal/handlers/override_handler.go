package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	"github.com/Tuksal-Software/barber-sub000/internal/httpresp"
	"github.com/Tuksal-Software/barber-sub000/internal/middleware"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	ucbooking "github.com/Tuksal-Software/barber-sub000/internal/usecase/booking"
)

type OverrideHandler struct {
	db     *gorm.DB
	create *ucbooking.CreateOverride
}

func NewOverrideHandler(db *gorm.DB, create *ucbooking.CreateOverride) *OverrideHandler {
	return &OverrideHandler{db: db, create: create}
}

type CreateOverrideBody struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
	Notify    *bool  `json:"notify"`
}

// Create closes a window of a barber's day and cascades over anything
// already booked inside it.
func (h *OverrideHandler) Create(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	var body CreateOverrideBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid closure payload.")
		return
	}

	notify := true
	if body.Notify != nil {
		notify = *body.Notify
	}

	result, err := h.create.Execute(c.Request.Context(), ucbooking.CreateOverrideInput{
		BarberID:  body.BarberID,
		Date:      body.Date,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Reason:    body.Reason,
		Notify:    notify,
	}, staffID)
	if err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *OverrideHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	q := h.db.Where("date = ?", dateStr)
	if barberID := c.Query("barber_id"); barberID != "" {
		q = q.Where("barber_id = ?", barberID)
	}

	var overrides []models.WorkingHourOverride
	if err := q.Order("start_time ASC").Find(&overrides).Error; err != nil {
		httperr.Internal(c, "failed_to_list_overrides", "Could not list closures.")
		return
	}

	httpresp.List(c, overrides)
}
