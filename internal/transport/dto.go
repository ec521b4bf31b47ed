package transport

import "github.com/dkirsanov/inventorypro/internal/models"

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

type ProfileResponse struct {
	ID       uint            `json:"id"`
	Email    string          `json:"email"`
	Username string          `json:"username"`
	Role     string          `json:"role"`
	IsActive bool            `json:"is_active"`
	Address  *models.Address `json:"address"`
	Orders   []models.Order  `json:"orders"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Specs       string  `json:"specs"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
}

// PatchProductRequest carries only the fields the client actually sent;
// nil means "leave untouched".
type PatchProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Specs       *string  `json:"specs"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
}

type CreateOrderRequest struct {
	ProductIDs []uint `json:"product_ids"`
}

type OrderSummary struct {
	OrderID uint    `json:"order_id"`
	Total   float64 `json:"total"`
}
