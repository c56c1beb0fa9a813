package services

import (
	"fmt"
	"testing"

	"github.com/haulmatch/loadboard/config"
	"github.com/haulmatch/loadboard/db"
	"github.com/haulmatch/loadboard/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *db.GormDB {
	t.Helper()
	// A named shared-cache database keeps every pooled connection on
	// the same in-memory store, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return &db.GormDB{DB: gdb}
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

func seedUser(t *testing.T, gdb *db.GormDB, email, roleName string, approved bool) *models.User {
	t.Helper()
	var role models.Role
	require.NoError(t, gdb.DB.Where("name = ?", roleName).First(&role).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Fullname:       "Test " + email,
		Email:          email,
		HashedPassword: string(hashed),
		RoleID:         role.ID,
		Approved:       approved,
	}
	require.NoError(t, gdb.DB.Create(user).Error)
	user.Role = role
	return user
}
