package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkirsanov/inventorypro/internal/metrics"
	authmw "github.com/dkirsanov/inventorypro/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	OrderHandler   *OrderHTTP
	FilesHandler   *FilesHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/metrics", metrics.Handler())

	mw := authmw.New(d.JWTSecret)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.GET("/me", d.AuthHandler.Me, mw.RequireAuth)
	auth.PUT("/me/address", d.AuthHandler.UpsertAddress, mw.RequireAuth)

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct, mw.RequireAuth)
	products.PATCH("/:id", d.CatalogHandler.PatchProduct, mw.RequireAuth)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, mw.RequireAuth)

	orders := e.Group("/orders", mw.RequireAuth)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.PATCH("/:id/cancel", d.OrderHandler.CancelOrder)

	files := e.Group("/files", mw.RequireAuth)
	files.POST("/upload", d.FilesHandler.Upload)
}
