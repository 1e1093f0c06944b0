package models

type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"unique;not null" json:"name"`
	ImageURL string `json:"image_url"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}
