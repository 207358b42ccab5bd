package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	RestaurantID uint `gorm:"index;not null" json:"restaurant_id"`
	// CategoryID may point at a deleted category; deleting a category does
	// not cascade here, dangling references render as "Autre".
	CategoryID  *uint          `gorm:"index" json:"category_id,omitempty"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Price       float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    *string        `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	CookingTime *int           `json:"cooking_time,omitempty"`
	Tags        datatypes.JSON `json:"tags,omitempty"`
	IsAvailable bool           `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (p *Product) SetTags(tags []string) error {
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	p.Tags = datatypes.JSON(raw)
	return nil
}

func (p *Product) GetTags() []string {
	if len(p.Tags) == 0 {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(p.Tags, &tags); err != nil {
		return nil
	}
	return tags
}
