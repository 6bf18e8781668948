package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"saltbay-backend/config"
	"saltbay-backend/controllers"
	"saltbay-backend/routes"
	"saltbay-backend/scheduler"
	"saltbay-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	// Token signing key is required; refuse to start without it.
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set. Cannot issue tokens.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	// Services
	authService := services.NewAuthService(db)
	userService := services.NewUserService(db)
	roomService := services.NewRoomService(db)
	categoryService := services.NewRoomCategoryService(db)
	reservationService := services.NewReservationService(db)
	checkInService := services.NewCheckInService(db)
	billingService := services.NewBillingService(db)
	travelCompanyService := services.NewTravelCompanyService(db, billingService)
	reportService := services.NewReportService(db)
	sweeperService := services.NewSweeperService(db)

	// Daily 7 PM sweep of payment-less pending reservations
	sweep := scheduler.New(sweeperService)
	sweep.Start()

	router := routes.SetupRouter(routes.Controllers{
		Auth:          controllers.NewAuthController(authService),
		Users:         controllers.NewUserController(userService),
		Rooms:         controllers.NewRoomController(roomService),
		Categories:    controllers.NewRoomCategoryController(categoryService),
		Reservations:  controllers.NewReservationController(reservationService),
		CheckIn:       controllers.NewCheckInController(checkInService),
		TravelCompany: controllers.NewTravelCompanyController(travelCompanyService),
		Billing:       controllers.NewBillingController(billingService),
		Reports:       controllers.NewReportController(reportService),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	sweep.Stop()

	log.Println("Server stopped gracefully")
}
