package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dkirsanov/inventorypro/internal/models"
	"github.com/dkirsanov/inventorypro/internal/repo"
	"github.com/dkirsanov/inventorypro/internal/service"
	"github.com/dkirsanov/inventorypro/internal/storage"
)

var testSecret = []byte("test-jwt-secret")

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
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

	r := &repo.GormRepo{DB: db}

	disk, err := storage.Open(context.Background(), storage.Options{
		Driver: "local",
		Dir:    t.TempDir(),
	})
	require.NoError(t, err)

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{Svc: &service.AuthService{
			Repo:     r,
			Secret:   testSecret,
			TokenTTL: 30 * time.Minute,
		}},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{
			Repo:   r,
			Policy: service.PolicyInsert,
		}},
		OrderHandler: &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		FilesHandler: &FilesHTTP{Disk: disk},
		JWTSecret:    testSecret,
	})

	return &testEnv{T: t, E: e, Repo: r}
}

func (env *testEnv) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(username string) {
	env.T.Helper()
	rec := env.doJSON(http.MethodPost, "/auth/register", map[string]string{
		"email":    username + "@example.com",
		"username": username,
		"password": "password1",
	}, "")
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())
}

func (env *testEnv) login(username string) string {
	env.T.Helper()
	rec := env.doJSON(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": "password1",
	}, "")
	require.Equal(env.T, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.AccessToken)
	require.Equal(env.T, "bearer", resp.TokenType)
	return resp.AccessToken
}

func (env *testEnv) seedProduct(name string, price float64, stock int, category string) models.Product {
	env.T.Helper()
	p := models.Product{Name: name, Price: price, Stock: stock, Category: category}
	require.NoError(env.T, env.Repo.DB.Create(&p).Error)
	return p
}
