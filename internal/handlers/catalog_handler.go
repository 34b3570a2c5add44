package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/EssiesHairStudio/salon-scheduler/internal/audit"
	"github.com/EssiesHairStudio/salon-scheduler/internal/httpresp"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

// CatalogHandler é o CRUD administrativo: serviços, subserviços,
// penteados e perucas.
type CatalogHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCatalogHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *CatalogHandler {
	return &CatalogHandler{db: db, audit: auditDispatcher}
}

func (h *CatalogHandler) logChange(c *gin.Context, action, entity string, entityID uint) {
	if h.audit == nil {
		return
	}
	uid := actorID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &uid,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
	})
}

// --------------------------------------------------
// Services
// --------------------------------------------------

type serviceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ServiceType string `json:"service_type"`
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("name ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = models.ServiceTypeBooking
	}
	if serviceType != models.ServiceTypeBooking && serviceType != models.ServiceTypeOrder {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_service_type"})
		return
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		ServiceType: serviceType,
		IsActive:    true,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	h.logChange(c, "service_created", "service", svc.ID)
	c.JSON(http.StatusCreated, svc)
}

type serviceUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var req serviceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.db.Save(&svc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	h.logChange(c, "service_updated", "service", svc.ID)
	httpresp.OK(c, svc)
}

// --------------------------------------------------
// SubServices
// --------------------------------------------------

type subServiceRequest struct {
	ServiceID   uint    `json:"service_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `json:"price"`
	DurationMin *int    `json:"duration_min"`
	Stock       int     `json:"stock"`
	Position    int     `json:"position"`
}

func (h *CatalogHandler) CreateSubService(c *gin.Context) {
	var req subServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	if req.DurationMin != nil && *req.DurationMin <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_duration"})
		return
	}

	sub := models.SubService{
		ServiceID:   svc.ID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Stock:       req.Stock,
		Position:    req.Position,
		IsActive:    true,
	}

	if err := h.db.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_subservice"})
		return
	}

	h.logChange(c, "subservice_created", "sub_service", sub.ID)
	c.JSON(http.StatusCreated, sub)
}

type subServiceUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Price       *float64 `json:"price"`
	DurationMin *int     `json:"duration_min"`
	Stock       *int     `json:"stock"`
	Position    *int     `json:"position"`
	IsActive    *bool    `json:"is_active"`
}

func (h *CatalogHandler) UpdateSubService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var sub models.SubService
	if err := h.db.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "subservice_not_found"})
		return
	}

	var req subServiceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	if req.Name != nil {
		sub.Name = *req.Name
	}
	if req.Description != nil {
		sub.Description = *req.Description
	}
	if req.ImageURL != nil {
		sub.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		sub.Price = *req.Price
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_duration"})
			return
		}
		sub.DurationMin = req.DurationMin
	}
	if req.Stock != nil {
		sub.Stock = *req.Stock
	}
	if req.Position != nil {
		sub.Position = *req.Position
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}

	if err := h.db.Save(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_subservice"})
		return
	}

	h.logChange(c, "subservice_updated", "sub_service", sub.ID)
	httpresp.OK(c, sub)
}

// --------------------------------------------------
// HairStyles
// --------------------------------------------------

type hairStyleRequest struct {
	ServiceID   uint   `json:"service_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (h *CatalogHandler) CreateHairStyle(c *gin.Context) {
	var req hairStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	style := models.HairStyle{
		ServiceID:   svc.ID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}

	if err := h.db.Create(&style).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_hairstyle"})
		return
	}

	h.logChange(c, "hairstyle_created", "hair_style", style.ID)
	c.JSON(http.StatusCreated, style)
}

type hairStyleUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

func (h *CatalogHandler) UpdateHairStyle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var style models.HairStyle
	if err := h.db.First(&style, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "hairstyle_not_found"})
		return
	}

	var req hairStyleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	if req.Name != nil {
		style.Name = *req.Name
	}
	if req.Description != nil {
		style.Description = *req.Description
	}
	if req.ImageURL != nil {
		style.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		style.IsActive = *req.IsActive
	}

	if err := h.db.Save(&style).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_hairstyle"})
		return
	}

	h.logChange(c, "hairstyle_updated", "hair_style", style.ID)
	httpresp.OK(c, style)
}

// --------------------------------------------------
// Wigs
// --------------------------------------------------

type wigRequest struct {
	ServiceID   uint    `json:"service_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
}

func (h *CatalogHandler) CreateWig(c *gin.Context) {
	var req wigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	wig := models.Wig{
		ServiceID:   svc.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    true,
	}

	if err := h.db.Create(&wig).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_wig"})
		return
	}

	h.logChange(c, "wig_created", "wig", wig.ID)
	c.JSON(http.StatusCreated, wig)
}

type wigUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"is_active"`
}

func (h *CatalogHandler) UpdateWig(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var wig models.Wig
	if err := h.db.First(&wig, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "wig_not_found"})
		return
	}

	var req wigUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": err.Error()})
		return
	}

	if req.Name != nil {
		wig.Name = *req.Name
	}
	if req.Description != nil {
		wig.Description = *req.Description
	}
	if req.Price != nil {
		wig.Price = *req.Price
	}
	if req.ImageURL != nil {
		wig.ImageURL = *req.ImageURL
	}
	if req.Stock != nil {
		wig.Stock = *req.Stock
	}
	if req.IsActive != nil {
		wig.IsActive = *req.IsActive
	}

	if err := h.db.Save(&wig).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_wig"})
		return
	}

	h.logChange(c, "wig_updated", "wig", wig.ID)
	httpresp.OK(c, wig)
}
