package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EssiesHairStudio/salon-scheduler/internal/httpresp"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
	ucAppointment "github.com/EssiesHairStudio/salon-scheduler/internal/usecase/appointment"
	ucOrder "github.com/EssiesHairStudio/salon-scheduler/internal/usecase/order"
)

// PublicHandler atende o site do salão: catálogo, disponibilidade,
// reserva e pedidos — tudo sem login.
type PublicHandler struct {
	db           *gorm.DB
	appointments *ucAppointment.Service
	orders       *ucOrder.Service
}

func NewPublicHandler(
	db *gorm.DB,
	appointments *ucAppointment.Service,
	orders *ucOrder.Service,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		appointments: appointments,
		orders:       orders,
	}
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("is_active = true").
		Order("name ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) GetService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND is_active = true", id).
		First(&svc).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var subServices []models.SubService
	h.db.Where("service_id = ? AND is_active = true", svc.ID).
		Order("position ASC, name ASC").
		Find(&subServices)

	var hairStyles []models.HairStyle
	h.db.Where("service_id = ? AND is_active = true", svc.ID).
		Order("name ASC").
		Find(&hairStyles)

	c.JSON(http.StatusOK, gin.H{
		"service":      svc,
		"sub_services": subServices,
		"hair_styles":  hairStyles,
	})
}

func (h *PublicHandler) ListWigs(c *gin.Context) {
	var wigs []models.Wig
	if err := h.db.
		Where("is_active = true").
		Order("name ASC").
		Find(&wigs).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	httpresp.List(c, wigs)
}

// --------------------------------------------------
// Disponibilidade
// --------------------------------------------------

// GET /api/public/services/:id/availability?date=2026-09-14&sub_service_id=3
func (h *PublicHandler) Availability(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_date"})
		return
	}

	var subServiceID *uint
	if raw := c.Query("sub_service_id"); raw != "" {
		id64, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_sub_service_id"})
			return
		}
		id := uint(id64)
		subServiceID = &id
	}

	slots, err := h.appointments.Availability(c.Request.Context(), uint(serviceID), date, subServiceID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// GET /api/public/services/:id/availability/by-subservice?date=2026-09-14
func (h *PublicHandler) AvailabilityBySubService(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_date"})
		return
	}

	slots, err := h.appointments.AvailabilityBySubService(c.Request.Context(), uint(serviceID), date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available_slots": slots})
}

// --------------------------------------------------
// Reserva
// --------------------------------------------------

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var input ucAppointment.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.appointments.Book(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Conflict != nil {
		// horário ocupado não é erro de sistema: 409 + sugestões
		c.JSON(http.StatusConflict, gin.H{
			"error":       "time_conflict",
			"conflict":    result.Conflict,
			"suggestions": result.Suggestions,
		})
		return
	}

	c.JSON(http.StatusCreated, result.Appointment)
}

func (h *PublicHandler) GetAppointment(c *gin.Context) {
	ap, err := h.appointments.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

type customerCancelRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Reason string `json:"reason"`
}

func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	var req customerCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	ap, err := h.appointments.CancelByReference(
		c.Request.Context(),
		c.Param("reference"),
		req.Phone,
		req.Reason,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// --------------------------------------------------
// Pedidos
// --------------------------------------------------

func (h *PublicHandler) CreateWigOrder(c *gin.Context) {
	var input ucOrder.WigOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.orders.OrderWig(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *PublicHandler) CreateProductOrder(c *gin.Context) {
	var input ucOrder.ProductOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.orders.OrderProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ConfirmPayment é o retorno do checkout (external_reference do MP).
// GET /api/public/payments/confirm?type=wig&reference=...
func (h *PublicHandler) ConfirmPayment(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_reference"})
		return
	}

	switch c.Query("type") {
	case "wig":
		o, err := h.orders.ConfirmWigPayment(c.Request.Context(), reference)
		if err != nil {
			respondError(c, err)
			return
		}
		httpresp.OK(c, o)

	case "product":
		o, err := h.orders.ConfirmProductPayment(c.Request.Context(), reference)
		if err != nil {
			respondError(c, err)
			return
		}
		httpresp.OK(c, o)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_type"})
	}
}
