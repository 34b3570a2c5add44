package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
)

// respondError traduz erros de negócio para status HTTP. Qualquer coisa
// fora da tabela vira 500 sem vazar detalhe interno.
func respondError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		httperr.Internal(c, "internal_error", "something went wrong")
		return
	}

	switch be.Code {
	case "service_not_found",
		"subservice_not_found",
		"appointment_not_found",
		"wig_not_found",
		"product_not_found",
		"order_not_found":
		httperr.NotFound(c, be.Code, "resource not found")

	case "past_time",
		"outside_hours",
		"invalid_date",
		"invalid_datetime",
		"invalid_payment_method":
		httperr.BadRequest(c, be.Code, "invalid request")

	case "invalid_state",
		"out_of_stock":
		httperr.Conflict(c, be.Code, "operation not allowed in current state")

	default:
		httperr.Write(c, http.StatusBadRequest, be.Code, "request rejected")
	}
}
