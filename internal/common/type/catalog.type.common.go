package types

import "time"

type Category struct {
	CategoryID  string     `json:"categoryId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	BgColor     string     `json:"bgColor"`
	ImageURL    string     `json:"imgUrl"`
	Items       int        `json:"items"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"max=500"`
	BgColor     string `json:"bgColor"`
}

type Item struct {
	ItemID       string     `json:"itemId"`
	Name         string     `json:"name"`
	Price        float64    `json:"price"`
	CategoryID   string     `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"imgUrl"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type ItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0.01"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	Description string  `json:"description" validate:"max=500"`
}

type User struct {
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type UserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

// CatalogSnapshot is what a terminal needs to render its menu.
type CatalogSnapshot struct {
	Categories []Category `json:"categories"`
	Items      []Item     `json:"items"`
}
