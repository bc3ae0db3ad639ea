package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nkoutsos/reservation-app/models"
	"github.com/nkoutsos/reservation-app/utils"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

// GetAllRestaurants -> list, optionally filtered by ?name= and ?location=
// substring match.
func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	query := rc.DB.Model(&models.Restaurant{})

	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}

	restaurants := make([]models.Restaurant, 0)
	if err := query.Find(&restaurants).Error; err != nil {
		utils.ErrorLogger.Printf("Restaurant listing failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

// GetRestaurantByID
func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, c.Param("restaurant_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// CreateRestaurant -> restaurants are managed out-of-band from the booking
// flow, so this sits behind auth.
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Location    string `json:"location" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant := models.Restaurant{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	}

	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.ErrorLogger.Printf("Restaurant insert failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
		return
	}

	utils.InfoLogger.Printf("New restaurant created: %s (%s)", restaurant.Name, restaurant.Location)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}
