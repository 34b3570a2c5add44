package schedule

import (
	"time"

	"github.com/EssiesHairStudio/salon-scheduler/internal/httperr"
	"github.com/EssiesHairStudio/salon-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ActiveStatuses participam da checagem de conflito.
// cancelled e completed são terminais e ficam fora para sempre.
var ActiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

func IsActive(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if !IsActive(Status(ap.Status)) {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time, actor, reason string) error {
	if !IsActive(Status(ap.Status)) {
		return httperr.ErrBusiness("invalid_state")
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancelledBy = actor
	ap.CancelReason = reason
	return nil
}
