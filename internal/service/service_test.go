package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dkirsanov/inventorypro/internal/models"
	"github.com/dkirsanov/inventorypro/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Order{},
	))
	return db
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	return &repo.GormRepo{DB: newTestDB(t)}
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:     newTestRepo(t),
		Secret:   []byte("test-jwt-secret"),
		TokenTTL: 30 * time.Minute,
	}
}

func seedProduct(t *testing.T, r *repo.GormRepo, name string, price float64, stock int, category string) models.Product {
	t.Helper()
	p := models.Product{
		Name:        name,
		Description: "seeded",
		Price:       price,
		Stock:       stock,
		Category:    category,
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return p
}

func seedUser(t *testing.T, r *repo.GormRepo, username string) models.User {
	t.Helper()
	u := models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
		Role:         models.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, r.DB.Create(&u).Error)
	return u
}
