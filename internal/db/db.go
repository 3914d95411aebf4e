package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Tuksal-Software/barber-sub000/internal/config"
	"github.com/Tuksal-Software/barber-sub000/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.WorkingHour{},
		&models.WorkingHourOverride{},
		&models.AppointmentRequest{},
		&models.AppointmentSlot{},
		&models.Subscription{},
		&models.Settings{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Make sure the settings row exists.
	db.Exec(`
        INSERT INTO settings (id, closed_hours_message, created_at, updated_at)
        SELECT 1, 'We are closed during your appointment time. Please book another slot.', NOW(), NOW()
        WHERE NOT EXISTS (SELECT 1 FROM settings WHERE id = 1)
    `)

	return db
}
