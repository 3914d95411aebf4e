package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Tuksal-Software/barber-sub000/internal/httpresp"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
	"github.com/Tuksal-Software/barber-sub000/internal/timegrid"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	IsWorking bool   `json:"is_working"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID := c.Param("id")

	var hours []models.WorkingHour
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	httpresp.List(c, hours)
}

// Update replaces the barber's whole weekly schedule. At most one
// entry per weekday is accepted.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID := c.Param("id")

	var barber models.Barber
	if err := h.db.First(&barber, "id = ?", barberID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "barber_not_found"})
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	seen := make(map[int]bool)
	for _, d := range req.Days {
		if seen[d.DayOfWeek] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate_day_of_week"})
			return
		}
		seen[d.DayOfWeek] = true

		if !d.IsWorking {
			continue
		}
		start, err := timegrid.ToMinutes(d.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_format"})
			return
		}
		end, err := timegrid.ToMinutes(d.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_format"})
			return
		}
		if end <= start {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_before_start"})
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barber.ID).Delete(&models.WorkingHour{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkingHour
		for _, d := range req.Days {
			toCreate = append(toCreate, models.WorkingHour{
				BarberID:  barber.ID,
				DayOfWeek: d.DayOfWeek,
				IsWorking: d.IsWorking,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
			})
		}
		if len(toCreate) > 0 {
			return tx.Create(&toCreate).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
