package database

import (
	"fmt"
	"log"

	config "github.com/tutoria-app/backend/configs"
	"github.com/tutoria-app/backend/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.TutorCode{},
		&models.TutorProfile{},
		&models.Session{},
		&models.Payment{},
		&models.Earning{},
		&models.Notification{},
		&models.Material{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// SeedManager bootstraps the first manager account from the environment
// so payouts can be approved on a fresh install.
func SeedManager() {
	managerEmail := config.Config("MANAGER_EMAIL")
	managerPassword := config.Config("MANAGER_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", managerEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for manager user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Manager user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(managerPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash manager password: %v", err)
		return
	}

	managerUser := models.User{
		FullName:  config.Config("MANAGER_FULL_NAME"),
		Email:     managerEmail,
		Password:  string(hashedPassword),
		IsManager: true,
	}

	if err := DB.Create(&managerUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed manager user: %v", err)
		return
	}

	log.Println("✅ Manager user seeded successfully")
}
