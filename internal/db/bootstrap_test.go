package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Cri010101/toelettatura-system/internal/auth"
	"github.com/Cri010101/toelettatura-system/internal/models"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func TestBootstrap_SeedsOnce(t *testing.T) {
	gdb := openMemory(t)
	ctx := context.Background()
	seed := Seed{AdminEmail: "admin@toelettatura.com", AdminPassword: "admin123"}

	require.NoError(t, Bootstrap(ctx, gdb, seed))

	var services []models.Service
	require.NoError(t, gdb.Order("id").Find(&services).Error)
	require.Len(t, services, len(DefaultServices()))
	for _, s := range services {
		assert.True(t, s.Active)
		assert.Positive(t, s.Duration)
	}

	var admin models.User
	require.NoError(t, gdb.Where("email = ?", seed.AdminEmail).First(&admin).Error)
	assert.Equal(t, "admin", admin.Role)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "admin123"))

	// a second start never reseeds
	require.NoError(t, gdb.Model(&models.Service{}).Where("id = ?", services[0].ID).Update("active", false).Error)
	require.NoError(t, Bootstrap(ctx, gdb, Seed{AdminEmail: "other@toelettatura.com", AdminPassword: "x"}))

	var count int64
	require.NoError(t, gdb.Model(&models.Service{}).Count(&count).Error)
	assert.EqualValues(t, len(DefaultServices()), count)
	require.NoError(t, gdb.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBootstrap_CreatesAllTables(t *testing.T) {
	gdb := openMemory(t)
	require.NoError(t, Bootstrap(context.Background(), gdb, Seed{AdminEmail: "a@b.it", AdminPassword: "x"}))

	m := gdb.Migrator()
	for _, model := range []any{&models.User{}, &models.Service{}, &models.Appointment{}, &models.Notification{}} {
		assert.True(t, m.HasTable(model))
	}
}
