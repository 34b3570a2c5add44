package models

import "time"

const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Referência pública usada pelo cliente (cancelamento sem login)
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:15;not null" json:"customer_phone"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	SubServiceID *uint       `json:"sub_service_id"`
	SubService   *SubService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"sub_service"`

	HairStyleID     *uint      `json:"hair_style_id"`
	HairStyle       *HairStyle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"hair_style"`
	CustomHairStyle string     `gorm:"size:100" json:"custom_hair_style"`

	StartTime time.Time `gorm:"index" json:"start_time"`

	// Usada apenas quando o subserviço não tem duração configurada
	EstimatedDurationMin *int `json:"estimated_duration_min"`

	Notes  string `gorm:"size:255" json:"notes"`
	Status string `gorm:"size:10;default:'pending';index" json:"status"`

	PaymentMethod string `gorm:"size:20;default:'cash'" json:"payment_method"`
	PaymentStatus string `gorm:"size:10;default:'pending'" json:"payment_status"`

	ConfirmedAt  *time.Time `json:"confirmed_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CancelledBy  string     `gorm:"size:20" json:"cancelled_by"`
	CancelReason string     `gorm:"size:255" json:"cancel_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
