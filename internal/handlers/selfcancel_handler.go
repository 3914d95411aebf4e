package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tuksal-Software/barber-sub000/internal/httperr"
	ucselfcancel "github.com/Tuksal-Software/barber-sub000/internal/usecase/selfcancel"
	"github.com/Tuksal-Software/barber-sub000/internal/validators"
)

type SelfCancelHandler struct {
	svc *ucselfcancel.Service
}

func NewSelfCancelHandler(svc *ucselfcancel.Service) *SelfCancelHandler {
	return &SelfCancelHandler{svc: svc}
}

type IssueCodeBody struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyCodeBody struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

func (h *SelfCancelHandler) Issue(c *gin.Context) {
	var body IssueCodeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Phone is required.")
		return
	}

	phone := validators.NormalizePhone(body.Phone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
		return
	}

	if err := h.svc.Issue(c.Request.Context(), phone); err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "code_sent"})
}

func (h *SelfCancelHandler) Verify(c *gin.Context) {
	var body VerifyCodeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Phone and code are required.")
		return
	}

	phone := validators.NormalizePhone(body.Phone)
	if phone == "" {
		httperr.BadRequest(c, "invalid_phone", "Invalid phone number.")
		return
	}

	if err := h.svc.Verify(c.Request.Context(), phone, body.Code); err != nil {
		respondBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
