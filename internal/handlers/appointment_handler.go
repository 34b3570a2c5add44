package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EssiesHairStudio/salon-scheduler/internal/httpresp"
	"github.com/EssiesHairStudio/salon-scheduler/internal/middleware"
	ucAppointment "github.com/EssiesHairStudio/salon-scheduler/internal/usecase/appointment"
)

// AppointmentHandler é a visão da equipe sobre a agenda.
type AppointmentHandler struct {
	appointments *ucAppointment.Service
}

func NewAppointmentHandler(appointments *ucAppointment.Service) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

func actorID(c *gin.Context) uint {
	id, _ := c.Get(middleware.ContextUserID)
	uid, _ := id.(uint)
	return uid
}

// GET /api/me/appointments?date=2026-09-14
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_date"})
		return
	}

	apps, err := h.appointments.ListByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, apps)
}

// GET /api/me/appointments/month?year=2026&month=9
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_year"})
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_month"})
		return
	}

	apps, err := h.appointments.ListByMonth(c.Request.Context(), year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	ap, err := h.appointments.Confirm(c.Request.Context(), uint(id), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	ap, err := h.appointments.Complete(c.Request.Context(), uint(id), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

type staffCancelRequest struct {
	Reason string `json:"reason"`
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	var req staffCancelRequest
	_ = c.ShouldBindJSON(&req) // motivo é opcional

	ap, err := h.appointments.CancelByStaff(c.Request.Context(), uint(id), actorID(c), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
