package models

import "time"

const (
	ServiceTypeBooking = "booking"
	ServiceTypeOrder   = "order"
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// booking = agenda horários | order = vende produtos
	ServiceType string `gorm:"size:10;default:'booking'" json:"service_type"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
