package models

import "time"

type Product struct {
	ID            uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string   `gorm:"not null" json:"name"`
	Description   string   `json:"description"`
	Price         float64  `gorm:"not null" json:"price"`
	CategoryID    uint     `gorm:"index" json:"category_id"`
	Category      Category `gorm:"foreignKey:CategoryID" json:"-"`
	ImageURL      string   `json:"image_url"`
	StockQuantity int      `gorm:"not null;default:0" json:"stock_quantity"`
	IsFeatured    bool     `gorm:"default:false" json:"is_featured"`
	Rating        float64  `gorm:"default:0" json:"rating"` // aggregate, out of 5

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
