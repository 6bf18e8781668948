package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"saltbay-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "saltbay_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

// SeedDatabase inserts the default room tiers, a small block of rooms per
// tier and a default manager account. Safe to run repeatedly.
func SeedDatabase() {
	// ---------------- Manager ----------------
	var managerCount int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleManager).Count(&managerCount)
	if managerCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("manager123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default manager password: %v", err)
		} else {
			manager := models.User{
				Name:     "Saltbay Manager",
				Email:    "manager@saltbay.local",
				Password: string(hash),
				Role:     models.RoleManager,
			}
			if err := DB.Create(&manager).Error; err != nil {
				log.Printf("warning: failed to create default manager: %v", err)
			} else {
				log.Println("Default manager seeded")
			}
		}
	}

	// ---------------- RoomCategories ----------------
	var catCount int64
	DB.Model(&models.RoomCategory{}).Count(&catCount)
	if catCount == 0 {
		categories := []models.RoomCategory{
			{Name: "STANDARD", Price: 120, Capacity: 2, BedType: "Queen", Description: "Standard Room"},
			{Name: "DELUXE", Price: 180, Capacity: 3, BedType: "King", Description: "Deluxe Room"},
			{Name: "SUITE", Price: 300, Capacity: 4, BedType: "King", Description: "Suite"},
			{Name: "RESIDENTIAL_SUITE", Price: 450, Capacity: 6, BedType: "Twin King", Description: "Residential Suite"},
		}
		if err := DB.Create(&categories).Error; err != nil {
			log.Printf("warning: failed to seed room categories: %v", err)
		} else {
			log.Println("Room categories seeded")
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		var categories []models.RoomCategory
		if err := DB.Order("id").Find(&categories).Error; err != nil {
			log.Printf("warning: failed to load categories for room seeding: %v", err)
			return
		}
		rooms := make([]models.Room, 0, len(categories)*5)
		for i, cat := range categories {
			for n := 1; n <= 5; n++ {
				rooms = append(rooms, models.Room{
					Number:         fmt.Sprintf("%d%02d", i+1, n),
					RoomCategoryID: cat.ID,
					Status:         models.RoomAvailable,
					Floor:          fmt.Sprintf("%d", i+1),
				})
			}
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Printf("Seeded %d rooms", len(rooms))
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.RoomCategory{},
		&models.Room{},
		&models.Reservation{},
		&models.BillingRecord{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
