package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	infraRepo "github.com/Tuksal-Software/barber-sub000/internal/infra/repository"
)

type SettingsHandler struct {
	repo *infraRepo.SettingsGormRepository
}

func NewSettingsHandler(repo *infraRepo.SettingsGormRepository) *SettingsHandler {
	return &SettingsHandler{repo: repo}
}

type UpdateSettingsBody struct {
	BusinessName              *string `json:"business_name,omitempty"`
	ClosedHoursMessage        *string `json:"closed_hours_message,omitempty"`
	CancellationPolicyMessage *string `json:"cancellation_policy_message,omitempty"`
	AdminNotificationPhone    *string `json:"admin_notification_phone,omitempty"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.repo.Get(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Could not load settings.")
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var body UpdateSettingsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid settings payload.")
		return
	}

	s, err := h.repo.Get(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Could not load settings.")
		return
	}

	if body.BusinessName != nil {
		s.BusinessName = *body.BusinessName
	}
	if body.ClosedHoursMessage != nil {
		s.ClosedHoursMessage = *body.ClosedHoursMessage
	}
	if body.CancellationPolicyMessage != nil {
		s.CancellationPolicyMessage = *body.CancellationPolicyMessage
	}
	if body.AdminNotificationPhone != nil {
		s.AdminNotificationPhone = *body.AdminNotificationPhone
	}

	if err := h.repo.Update(c.Request.Context(), s); err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Could not save settings.")
		return
	}

	c.JSON(http.StatusOK, s)
}
