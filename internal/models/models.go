package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	OrderStatusProcessing = "Processing"
	OrderStatusCancelled  = "Cancelled"
	OrderStatusShipped    = "Shipped"
)

type User struct {
	ID           uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string   `gorm:"uniqueIndex;not null"     json:"email"`
	Username     string   `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string   `gorm:"not null"                 json:"-"`
	Role         string   `gorm:"not null;default:user"    json:"role"`
	IsActive     bool     `gorm:"not null;default:true"    json:"is_active"`
	Address      *Address `json:"address,omitempty"`
	Orders       []Order  `json:"orders,omitempty"`
}

type Address struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint   `gorm:"uniqueIndex;not null"     json:"user_id"`
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"index;not null"           json:"name"`
	Description string  `json:"description"`
	Specs       string  `json:"specs,omitempty"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Stock       int     `gorm:"not null"                 json:"stock"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `gorm:"index"                    json:"category"`
}

type Order struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null"           json:"user_id"`
	TotalPrice float64   `gorm:"not null"                 json:"total_price"`
	Status     string    `gorm:"not null;default:Processing" json:"status"`
	CreatedAt  time.Time `gorm:"not null"                 json:"created_at"`
}
