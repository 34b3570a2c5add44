package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/EssiesHairStudio/salon-scheduler/internal/httpresp"
	ucOrder "github.com/EssiesHairStudio/salon-scheduler/internal/usecase/order"
)

type OrderHandler struct {
	orders *ucOrder.Service
}

func NewOrderHandler(orders *ucOrder.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id"})
		return 0, false
	}
	return uint(id), true
}

// --------------------------------------------------
// Wig orders
// --------------------------------------------------

// GET /api/me/wig-orders?status=pending
func (h *OrderHandler) ListWigOrders(c *gin.Context) {
	orders, err := h.orders.ListWigOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, orders)
}

func (h *OrderHandler) ConfirmWigOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.orders.ConfirmWigOrder(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) ShipWigOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.orders.ShipWigOrder(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) DeliverWigOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.orders.DeliverWigOrder(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) CancelWigOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.orders.CancelWigOrder(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, o)
}

// --------------------------------------------------
// Product orders
// --------------------------------------------------

func (h *OrderHandler) ListProductOrders(c *gin.Context) {
	orders, err := h.orders.ListProductOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, orders)
}

func (h *OrderHandler) ConfirmProductOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.orders.ConfirmProductOrder(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, o)
}

func (h *OrderHandler) CancelProductOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.orders.CancelProductOrder(c.Request.Context(), id, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.OK(c, o)
}
