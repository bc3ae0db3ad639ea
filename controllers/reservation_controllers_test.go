package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nkoutsos/reservation-app/controllers"
	"github.com/nkoutsos/reservation-app/middlewares"
	"github.com/nkoutsos/reservation-app/models"
	"github.com/nkoutsos/reservation-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.Reservation{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// setupReservationRouter registers the reservation endpoints behind the real
// auth middleware, the way the main router does.
func setupReservationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	reservationCtrl := controllers.NewReservationController(db)

	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	auth.POST("/reservations", reservationCtrl.CreateReservation)
	auth.GET("/reservations/user", reservationCtrl.GetUserReservations)
	auth.PUT("/reservations/:reservation_id", reservationCtrl.UpdateReservation)
	auth.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)

	return r
}

func seedUser(t *testing.T, db *gorm.DB, email string) (uint, string) {
	user := models.User{Name: "Test User", Email: email, Password: "irrelevant"}
	assert.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID)
	assert.NoError(t, err)

	return user.ID, token
}

func seedRestaurant(t *testing.T, db *gorm.DB) uint {
	restaurant := models.Restaurant{Name: "Ouzeri Meltemi", Location: "Thessaloniki"}
	assert.NoError(t, db.Create(&restaurant).Error)
	return restaurant.ID
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateReservationEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)
	_, token := seedUser(t, db, "maria@example.com")
	restaurantID := seedRestaurant(t, db)

	w := doJSON(r, "POST", "/api/reservations", token, gin.H{
		"restaurant_id": restaurantID,
		"date":          "2099-01-01",
		"time":          "19:00",
		"people_count":  4,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["status"])

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, "2099-01-01", data["date"])
	assert.Equal(t, "19:00:00", data["time"])
	assert.Equal(t, float64(4), data["people_count"])
	assert.NotNil(t, data["reservation_id"])
}

func TestCreateReservationMissingFields(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)
	_, token := seedUser(t, db, "maria@example.com")

	w := doJSON(r, "POST", "/api/reservations", token, gin.H{
		"date": "2099-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservationUnknownRestaurant(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)
	_, token := seedUser(t, db, "maria@example.com")

	w := doJSON(r, "POST", "/api/reservations", token, gin.H{
		"restaurant_id": 9999,
		"date":          "2099-01-01",
		"time":          "19:00",
		"people_count":  4,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)

	w := doJSON(r, "POST", "/api/reservations", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, "GET", "/api/reservations/user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserReservationsEnriched(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)
	_, token := seedUser(t, db, "maria@example.com")
	_, otherToken := seedUser(t, db, "nikos@example.com")
	restaurantID := seedRestaurant(t, db)

	w := doJSON(r, "POST", "/api/reservations", token, gin.H{
		"restaurant_id": restaurantID,
		"date":          "2099-01-01",
		"time":          "19:00",
		"people_count":  2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "GET", "/api/reservations/user", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	assert.Len(t, items, 1)

	item := items[0].(map[string]interface{})
	assert.Equal(t, "Ouzeri Meltemi", item["restaurant_name"])
	assert.Equal(t, "Thessaloniki", item["restaurant_location"])

	// the other user sees nothing
	w = doJSON(r, "GET", "/api/reservations/user", otherToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["data"].([]interface{}), 0)
}

func TestUpdateReservationEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)
	userID, token := seedUser(t, db, "maria@example.com")
	_, otherToken := seedUser(t, db, "nikos@example.com")
	restaurantID := seedRestaurant(t, db)

	reservation := models.Reservation{
		UserID:       userID,
		RestaurantID: restaurantID,
		Date:         "2099-01-01",
		Time:         "19:00",
		PeopleCount:  4,
		Status:       models.ReservationActive,
	}
	assert.NoError(t, db.Create(&reservation).Error)

	path := fmt.Sprintf("/api/reservations/%d", reservation.ID)

	// another user gets a 404, not a 403
	w := doJSON(r, "PUT", path, otherToken, gin.H{"people_count": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// empty patch
	w = doJSON(r, "PUT", path, token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// owner updates party size
	w = doJSON(r, "PUT", path, token, gin.H{"people_count": 2})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Reservation
	assert.NoError(t, db.First(&stored, reservation.ID).Error)
	assert.Equal(t, 2, stored.PeopleCount)
}

func TestPastReservationRulesOverHTTP(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)
	userID, token := seedUser(t, db, "maria@example.com")
	restaurantID := seedRestaurant(t, db)

	reservation := models.Reservation{
		UserID:       userID,
		RestaurantID: restaurantID,
		Date:         "2000-01-01",
		Time:         "19:00",
		PeopleCount:  4,
		Status:       models.ReservationActive,
	}
	assert.NoError(t, db.Create(&reservation).Error)

	path := fmt.Sprintf("/api/reservations/%d", reservation.ID)

	// no rescheduling of a past reservation
	w := doJSON(r, "PUT", path, token, gin.H{"date": "2099-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// no deleting either
	w = doJSON(r, "DELETE", path, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// cancelling is fine
	w = doJSON(r, "PUT", path, token, gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusOK, w.Code)

	// the row survives it all
	var stored models.Reservation
	assert.NoError(t, db.First(&stored, reservation.ID).Error)
	assert.Equal(t, models.ReservationCancelled, stored.Status)
}

func TestDeleteReservationEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupReservationRouter(db)
	userID, token := seedUser(t, db, "maria@example.com")
	restaurantID := seedRestaurant(t, db)

	reservation := models.Reservation{
		UserID:       userID,
		RestaurantID: restaurantID,
		Date:         "2099-01-01",
		Time:         "19:00",
		PeopleCount:  4,
		Status:       models.ReservationActive,
	}
	assert.NoError(t, db.Create(&reservation).Error)

	w := doJSON(r, "DELETE", fmt.Sprintf("/api/reservations/%d", reservation.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// deleting again -> 404
	w = doJSON(r, "DELETE", fmt.Sprintf("/api/reservations/%d", reservation.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
