package models

import "time"

type SubService struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name        string  `gorm:"size:200;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	ImageURL    string  `gorm:"size:255" json:"image_url"`
	Price       float64 `json:"price"`

	// Serviços de agenda: duração configurada (nulo = usa o padrão)
	DurationMin *int `json:"duration_min"`

	// Serviços de venda: estoque
	Stock int `gorm:"default:0" json:"stock"`

	IsActive bool `gorm:"default:true" json:"is_active"`
	Position int  `gorm:"default:0" json:"position"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *SubService) HasDuration() bool {
	return s.DurationMin != nil && *s.DurationMin > 0
}

func (s *SubService) InStock() bool {
	return s.Stock > 0
}
