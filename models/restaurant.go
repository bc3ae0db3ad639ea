package models

import "time"

type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"restaurant_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Location    string    `gorm:"type:varchar(255);not null" json:"location"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
