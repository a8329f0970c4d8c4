package model

import (
	"time"

	"gorm.io/gorm"
)

// カタログの商品
// JSONは商品ページが読む ProductRecord の形
type Product struct {
	ID          string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Price       int64          `gorm:"not null" json:"price"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"type:varchar(512);column:image_url" json:"imageUrl"`
	AltTxt      string         `gorm:"type:varchar(255);column:alt_txt" json:"altTxt"`
	Colors      []string       `gorm:"serializer:json;type:text;not null" json:"colors"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"-"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
