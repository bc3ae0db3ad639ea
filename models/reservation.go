package models

import (
	"fmt"
	"time"
)

const (
	ReservationActive    = "active"
	ReservationCancelled = "cancelled"
)

type Reservation struct {
	ID           uint       `gorm:"primaryKey" json:"reservation_id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Date         string     `gorm:"type:varchar(10);not null" json:"date"`
	Time         string     `gorm:"type:varchar(8);not null" json:"time"`
	PeopleCount  int        `gorm:"not null" json:"people_count"`
	Status       string     `gorm:"type:varchar(15);not null;default:'active'" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ScheduledAt combines the stored date and time into a single local instant.
// Accepts HH:MM and HH:MM:SS time values.
func (r *Reservation) ScheduledAt() (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, r.Date+" "+r.Time, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid reservation date/time %q %q", r.Date, r.Time)
}
