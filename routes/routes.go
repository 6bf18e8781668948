package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"saltbay-backend/controllers"
	"saltbay-backend/middleware"
	"saltbay-backend/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles every controller the router wires up.
type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Rooms         *controllers.RoomController
	Categories    *controllers.RoomCategoryController
	Reservations  *controllers.ReservationController
	CheckIn       *controllers.CheckInController
	TravelCompany *controllers.TravelCompanyController
	Billing       *controllers.BillingController
	Reports       *controllers.ReportController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	staffOnly := middleware.RequireRoles(models.RoleClerk, models.RoleManager)
	managerOnly := middleware.RequireRoles(models.RoleManager)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctl.Auth.Register)
			auth.POST("/login", ctl.Auth.Login)
			auth.POST("/refresh", ctl.Auth.Refresh)
		}

		secured := api.Group("")
		secured.Use(middleware.RequireAuth())
		{
			users := secured.Group("/users")
			{
				users.GET("/me", ctl.Users.Me)
				users.GET("", staffOnly, ctl.Users.FindAll)
				users.GET("/:id", staffOnly, ctl.Users.FindOne)
				users.POST("", managerOnly, ctl.Users.Create)
				users.PATCH("/:id", managerOnly, ctl.Users.Update)
				users.DELETE("/:id", managerOnly, ctl.Users.Delete)
			}

			categories := secured.Group("/room-categories")
			{
				categories.GET("", ctl.Categories.GetAll)
				categories.GET("/:id", ctl.Categories.GetByID)
				categories.POST("", managerOnly, ctl.Categories.Create)
				categories.PATCH("/:id", managerOnly, ctl.Categories.Update)
				categories.DELETE("/:id", managerOnly, ctl.Categories.Delete)
			}

			rooms := secured.Group("/rooms")
			{
				rooms.GET("", ctl.Rooms.GetAll)
				rooms.GET("/:id", ctl.Rooms.GetByID)
				rooms.POST("", managerOnly, ctl.Rooms.Create)
				rooms.PATCH("/:id", staffOnly, ctl.Rooms.Update)
				rooms.DELETE("/:id", managerOnly, ctl.Rooms.Delete)
			}

			reservations := secured.Group("/reservations")
			{
				reservations.POST("", middleware.RequireRoles(models.RoleCustomer), ctl.Reservations.Create)
				reservations.GET("/my", ctl.Reservations.FindMine)
				reservations.GET("", staffOnly, ctl.Reservations.FindAll)
				reservations.PATCH("/:id", ctl.Reservations.Update)
				reservations.DELETE("/:id", ctl.Reservations.Remove)
				reservations.POST("/:id/checkout", ctl.Reservations.Checkout)
				reservations.PATCH("/:id/checkout-date", ctl.Reservations.UpdateCheckoutDate)
			}

			checkin := secured.Group("/checkin")
			{
				checkin.POST("/self", middleware.RequireRoles(models.RoleCustomer), ctl.CheckIn.Self)
				checkin.POST("/by-email", staffOnly, ctl.CheckIn.ByEmail)
				checkin.POST("/pending", staffOnly, ctl.CheckIn.Pending)
				checkin.POST("/manual", staffOnly, ctl.CheckIn.Manual)
				checkin.POST("/:id", staffOnly, ctl.CheckIn.ByID)
			}

			travel := secured.Group("/travel-company/reservations")
			{
				travel.POST("", middleware.RequireRoles(models.RoleTravelCompany), ctl.TravelCompany.Submit)
				travel.GET("", staffOnly, ctl.TravelCompany.List)
				travel.POST("/:id/confirm", staffOnly, ctl.TravelCompany.Confirm)
				travel.POST("/:id/cancel", staffOnly, ctl.TravelCompany.Cancel)
			}

			billing := secured.Group("/billing")
			billing.Use(staffOnly)
			{
				billing.POST("", ctl.Billing.Create)
				billing.GET("", ctl.Billing.GetAll)
				billing.GET("/:id", ctl.Billing.GetByID)
				billing.GET("/reservation/:id", ctl.Billing.GetByReservation)
			}

			reports := secured.Group("/reports")
			reports.Use(managerOnly)
			{
				reports.GET("/revenue", ctl.Reports.Revenue)
				reports.GET("/occupancy", ctl.Reports.Occupancy)
			}
		}
	}

	return r
}
