package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// DayHours is one weekday entry of the opening-hours map.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// OpeningHours maps weekday names ("monday".."sunday") to hours. Days may be
// absent.
type OpeningHours map[string]DayHours

type Restaurant struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OwnerID      uint           `gorm:"uniqueIndex;not null" json:"owner_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug         string         `gorm:"type:varchar(255);index;not null" json:"slug"`
	LogoURL      *string        `gorm:"type:varchar(500)" json:"logo_url,omitempty"`
	CoverURL     *string        `gorm:"type:varchar(500)" json:"cover_url,omitempty"`
	Phone        *string        `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Whatsapp     *string        `gorm:"type:varchar(50)" json:"whatsapp,omitempty"`
	City         *string        `gorm:"type:varchar(100)" json:"city,omitempty"`
	OpeningHours datatypes.JSON `json:"opening_hours,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (r *Restaurant) SetOpeningHours(hours OpeningHours) error {
	raw, err := json.Marshal(hours)
	if err != nil {
		return err
	}
	r.OpeningHours = datatypes.JSON(raw)
	return nil
}

func (r *Restaurant) GetOpeningHours() OpeningHours {
	if len(r.OpeningHours) == 0 {
		return nil
	}
	var hours OpeningHours
	if err := json.Unmarshal(r.OpeningHours, &hours); err != nil {
		return nil
	}
	return hours
}
