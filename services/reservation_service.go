package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nkoutsos/reservation-app/models"
	"github.com/nkoutsos/reservation-app/utils"
)

// ReservationService owns the reservation lifecycle: creation, listing,
// partial update (including cancellation) and deletion, each gated by
// ownership and by whether the reservation's scheduled time has passed.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// ReservationPatch carries the subset of fields a PUT may change.
// Nil pointers mean "leave as is".
type ReservationPatch struct {
	Date        *string
	Time        *string
	PeopleCount *int
	Status      *string
}

func (p ReservationPatch) empty() bool {
	return p.Date == nil && p.Time == nil && p.PeopleCount == nil && p.Status == nil
}

// ReservationDetail is a reservation row enriched with restaurant info,
// as returned by ListForUser.
type ReservationDetail struct {
	ReservationID      uint   `json:"reservation_id"`
	UserID             uint   `json:"user_id"`
	RestaurantID       uint   `json:"restaurant_id"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	PeopleCount        int    `json:"people_count"`
	Status             string `json:"status"`
	RestaurantName     string `json:"restaurant_name"`
	RestaurantLocation string `json:"restaurant_location"`
}

// Create inserts a new active reservation for ownerID. The restaurant must
// exist; nothing prevents two reservations at the same restaurant/date/time.
func (s *ReservationService) Create(ownerID, restaurantID uint, date, timeOfDay string, peopleCount int) (*models.Reservation, error) {
	if peopleCount <= 0 {
		return nil, utils.NewValidationError("people_count must be a positive integer")
	}

	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("restaurant not found")
		}
		return nil, err
	}

	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	timeOfDay, err = normalizeTime(timeOfDay)
	if err != nil {
		return nil, err
	}

	reservation := models.Reservation{
		UserID:       ownerID,
		RestaurantID: restaurantID,
		Date:         date,
		Time:         timeOfDay,
		PeopleCount:  peopleCount,
		Status:       models.ReservationActive,
	}

	if err := s.DB.Create(&reservation).Error; err != nil {
		return nil, err
	}

	return &reservation, nil
}

// ListForUser returns all of ownerID's reservations joined with restaurant
// name and location, most recent date/time first. Never returns nil.
func (s *ReservationService) ListForUser(ownerID uint) ([]ReservationDetail, error) {
	details := make([]ReservationDetail, 0)

	err := s.DB.Table("reservations").
		Select("reservations.id AS reservation_id, reservations.user_id, reservations.restaurant_id, "+
			"reservations.date, reservations.time, reservations.people_count, reservations.status, "+
			"restaurants.name AS restaurant_name, restaurants.location AS restaurant_location").
		Joins("JOIN restaurants ON restaurants.id = reservations.restaurant_id").
		Where("reservations.user_id = ?", ownerID).
		Order("reservations.date DESC, reservations.time DESC").
		Scan(&details).Error
	if err != nil {
		return nil, err
	}

	return details, nil
}

// Update applies patch to the reservation if it exists and belongs to
// ownerID. A reservation whose scheduled time has passed can no longer be
// modified, with one exception: cancelling it is always allowed.
//
// A missing reservation and one owned by somebody else produce the same
// NotFoundError, so callers cannot probe for other users' bookings.
func (s *ReservationService) Update(reservationID, ownerID uint, patch ReservationPatch) error {
	reservation, err := s.findOwned(reservationID, ownerID)
	if err != nil {
		return err
	}

	if scheduledAt, err := reservation.ScheduledAt(); err == nil && scheduledAt.Before(time.Now()) {
		if patch.Status == nil || *patch.Status != models.ReservationCancelled {
			return utils.NewValidationError("cannot modify past reservation")
		}
	}

	if patch.empty() {
		return utils.NewValidationError("no fields to update")
	}

	updates := make(map[string]interface{})
	if patch.Date != nil {
		date, err := normalizeDate(*patch.Date)
		if err != nil {
			return err
		}
		updates["date"] = date
	}
	if patch.Time != nil {
		timeOfDay, err := normalizeTime(*patch.Time)
		if err != nil {
			return err
		}
		updates["time"] = timeOfDay
	}
	if patch.PeopleCount != nil {
		if *patch.PeopleCount <= 0 {
			return utils.NewValidationError("people_count must be a positive integer")
		}
		updates["people_count"] = *patch.PeopleCount
	}
	if patch.Status != nil {
		if *patch.Status != models.ReservationActive && *patch.Status != models.ReservationCancelled {
			return utils.NewValidationError("status must be 'active' or 'cancelled'")
		}
		updates["status"] = *patch.Status
	}

	return s.DB.Model(&models.Reservation{}).
		Where("id = ?", reservation.ID).
		Updates(updates).Error
}

// Delete removes the reservation if it exists, belongs to ownerID, and its
// scheduled time has not passed. Past reservations are never deletable,
// whatever their status.
func (s *ReservationService) Delete(reservationID, ownerID uint) error {
	reservation, err := s.findOwned(reservationID, ownerID)
	if err != nil {
		return err
	}

	if scheduledAt, err := reservation.ScheduledAt(); err == nil && scheduledAt.Before(time.Now()) {
		return utils.NewValidationError("cannot delete past reservation")
	}

	return s.DB.Delete(&models.Reservation{}, reservation.ID).Error
}

// normalizeDate re-renders a calendar date in the canonical YYYY-MM-DD
// column format. time.Parse is lenient about zero padding ("2099-1-1"), and
// the columns sort lexicographically, so unpadded values must never reach
// the database.
func normalizeDate(date string) (string, error) {
	parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return "", utils.NewValidationError("invalid date format, expected YYYY-MM-DD")
	}
	return parsed.Format("2006-01-02"), nil
}

// normalizeTime re-renders a time of day as HH:MM:SS, for the same
// lexicographic-ordering reason as normalizeDate.
func normalizeTime(timeOfDay string) (string, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, timeOfDay); err == nil {
			return parsed.Format("15:04:05"), nil
		}
	}
	return "", utils.NewValidationError("invalid time format, expected HH:MM or HH:MM:SS")
}

func (s *ReservationService) findOwned(reservationID, ownerID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.Where("id = ? AND user_id = ?", reservationID, ownerID).First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFoundError("reservation not found")
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}
