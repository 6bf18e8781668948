package routes

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"saltbay-backend/controllers"
	"saltbay-backend/models"
	"saltbay-backend/services"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "saltbay.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.RoomCategory{},
		&models.Room{},
		&models.Reservation{},
		&models.BillingRecord{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	billing := services.NewBillingService(db)
	router := SetupRouter(Controllers{
		Auth:          controllers.NewAuthController(services.NewAuthService(db)),
		Users:         controllers.NewUserController(services.NewUserService(db)),
		Rooms:         controllers.NewRoomController(services.NewRoomService(db)),
		Categories:    controllers.NewRoomCategoryController(services.NewRoomCategoryService(db)),
		Reservations:  controllers.NewReservationController(services.NewReservationService(db)),
		CheckIn:       controllers.NewCheckInController(services.NewCheckInService(db)),
		TravelCompany: controllers.NewTravelCompanyController(services.NewTravelCompanyService(db, billing)),
		Billing:       controllers.NewBillingController(billing),
		Reports:       controllers.NewReportController(services.NewReportService(db)),
	})
	return router, db
}

func bearerFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.SignAccessToken(user.ID, user.Email, user.Role.String(), utils.JWTSecret(), time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + token
}

func doRequest(router *gin.Engine, method, target, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGroupCancelRoute_StaffOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, db := newTestRouter(t)

	customer := models.User{Email: "guest@example.com", Role: models.RoleCustomer}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}
	clerk := models.User{Email: "clerk@example.com", Role: models.RoleClerk}
	if err := db.Create(&clerk).Error; err != nil {
		t.Fatalf("failed to create clerk: %v", err)
	}

	target := "/api/travel-company/reservations/1/cancel"

	if w := doRequest(router, http.MethodPost, target, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without a token, got %d", w.Code)
	}

	// A customer must not be able to cancel group bookings and release rooms.
	if w := doRequest(router, http.MethodPost, target, bearerFor(t, &customer)); w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a customer, got %d", w.Code)
	}

	// A clerk passes the guard; reservation 1 does not exist yet.
	if w := doRequest(router, http.MethodPost, target, bearerFor(t, &clerk)); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for a clerk with a missing reservation, got %d", w.Code)
	}
}

func TestGroupConfirmRoute_StaffOnly(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router, db := newTestRouter(t)

	company := models.User{Email: "agency@example.com", Role: models.RoleTravelCompany}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("failed to create travel company: %v", err)
	}

	// The submitting company itself cannot approve its own booking.
	w := doRequest(router, http.MethodPost, "/api/travel-company/reservations/1/confirm", bearerFor(t, &company))
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for a travel company, got %d", w.Code)
	}
}
