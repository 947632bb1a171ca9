package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Cri010101/toelettatura-system/internal/auth"
	"github.com/Cri010101/toelettatura-system/internal/models"
)

type Seed struct {
	AdminEmail    string
	AdminPassword string
}

// DefaultServices is the catalog a fresh database starts with.
func DefaultServices() []models.Service {
	return []models.Service{
		{Name: "Bagno e asciugatura", Duration: 60, Price: 35, Description: "Bagno completo con shampoo specifico e asciugatura", Active: true},
		{Name: "Taglio completo", Duration: 90, Price: 50, Description: "Bagno, taglio a forbice o macchinetta e rifinitura", Active: true},
		{Name: "Taglio unghie", Duration: 15, Price: 10, Description: "Taglio e limatura delle unghie", Active: true},
		{Name: "Pulizia orecchie", Duration: 15, Price: 10, Description: "Pulizia delicata del padiglione auricolare", Active: true},
		{Name: "Trattamento antiparassitario", Duration: 30, Price: 25, Description: "Bagno antiparassitario contro pulci e zecche", Active: true},
	}
}

func migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Appointment{},
		&models.Notification{},
	)
}

// Bootstrap brings the schema up to date. The catalog and the admin are
// seeded only when the users table does not exist yet, so an existing
// database is never reseeded.
func Bootstrap(ctx context.Context, gdb *gorm.DB, seed Seed) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	gdb = gdb.WithContext(ctx)

	if gdb.Migrator().HasTable(&models.User{}) {
		if err := migrate(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("schema up to date")
		return nil
	}

	hash, err := auth.HashPassword(seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := migrate(tx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		services := DefaultServices()
		if err := tx.Create(&services).Error; err != nil {
			return fmt.Errorf("seed services: %w", err)
		}

		admin := models.User{
			Email:        seed.AdminEmail,
			PasswordHash: hash,
			Role:         "admin",
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Str("admin", seed.AdminEmail).Msg("database initialised and seeded")
	return nil
}
