package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nkoutsos/reservation-app/services"
	"github.com/nkoutsos/reservation-app/utils"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{Service: services.NewReservationService(db)}
}

// CreateReservation
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		Date         string `json:"date" binding:"required"`
		Time         string `json:"time" binding:"required"`
		PeopleCount  int    `json:"people_count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("please fill in all fields"))
		return
	}

	reservation, err := rc.Service.Create(userID, req.RestaurantID, req.Date, req.Time, req.PeopleCount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d created by user %d (restaurant=%d %s %s)",
		reservation.ID, userID, reservation.RestaurantID, reservation.Date, reservation.Time)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// GetUserReservations -> the caller's reservations, enriched with
// restaurant name/location, newest first.
func (rc *ReservationController) GetUserReservations(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	reservations, err := rc.Service.ListForUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User reservations", reservations)
}

// UpdateReservation
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	reservationID, err := parseReservationID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Date        *string `json:"date"`
		Time        *string `json:"time"`
		PeopleCount *int    `json:"people_count"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	patch := services.ReservationPatch{
		Date:        req.Date,
		Time:        req.Time,
		PeopleCount: req.PeopleCount,
		Status:      req.Status,
	}

	if err := rc.Service.Update(reservationID, userID, patch); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d updated by user %d", reservationID, userID)
	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully", nil)
}

// DeleteReservation
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	reservationID, err := parseReservationID(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := rc.Service.Delete(reservationID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d deleted by user %d", reservationID, userID)
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted successfully", nil)
}

func parseReservationID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("reservation_id"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid reservation id")
	}
	return uint(id), nil
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything untyped is a storage failure and surfaces as a generic 500.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *utils.ValidationError
	var notFoundErr *utils.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &notFoundErr):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.ErrorLogger.Printf("Reservation storage error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
