package models

import "time"

type WigOrder struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	WigID uint `json:"wig_id"`
	Wig   Wig  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"wig"`

	CustomerName    string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone   string `gorm:"size:15;not null" json:"customer_phone"`
	CustomerEmail   string `gorm:"size:100" json:"customer_email"`
	CustomerAddress string `gorm:"type:text" json:"customer_address"`

	Quantity   int     `gorm:"default:1" json:"quantity"`
	TotalPrice float64 `json:"total_price"`

	PaymentMethod string `gorm:"size:20;default:'cash'" json:"payment_method"`
	PaymentStatus string `gorm:"size:10;default:'pending'" json:"payment_status"`

	// pending -> confirmed -> shipped -> delivered | cancelled
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
