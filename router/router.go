package router

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nkoutsos/reservation-app/controllers"
	"github.com/nkoutsos/reservation-app/middlewares"
	"github.com/nkoutsos/reservation-app/utils"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// 50 requests per second per IP across the whole API; registered before
	// any route so every handler chain picks it up
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	reservationCtrl := controllers.NewReservationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.GET("/diagnostics", func(c *gin.Context) {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
		}

		database := "not initialized"
		if shared := utils.GetDB(); shared != nil {
			database = "ok"
			if sqlDB, err := shared.DB(); err != nil || sqlDB.Ping() != nil {
				database = "unreachable"
			}
		}

		c.JSON(200, gin.H{
			"status":      "ok",
			"timestamp":   time.Now().Format(time.RFC3339),
			"environment": env,
			"database":    database,
		})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------

	// Rate limiter for login/register
	authPublic := api.Group("/auth")
	authPublic.Use(middlewares.NewStrictRateLimiter())
	{
		authPublic.POST("/register", userCtrl.Register)
		authPublic.POST("/login", userCtrl.Login)
	}

	// Browsing restaurants needs no account
	api.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	api.GET("/restaurants/:restaurant_id", restaurantCtrl.GetRestaurantByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	auth.POST("/restaurants", restaurantCtrl.CreateRestaurant)

	// RESERVATIONS
	auth.POST("/reservations", reservationCtrl.CreateReservation)
	auth.GET("/reservations/user", reservationCtrl.GetUserReservations)
	auth.PUT("/reservations/:reservation_id", reservationCtrl.UpdateReservation)
	auth.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)

	return r
}
