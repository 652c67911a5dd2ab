package dto

import "github.com/google/uuid"

type CreateProductRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CategoryID  uuid.UUID `json:"category_id"`
	Contact     string    `json:"contact"`
	Images      []string  `json:"images"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Contact     *string    `json:"contact"`
	Images      []string   `json:"images"`
}

type ProductQuery struct {
	Page       int
	Limit      int
	CategoryID *uuid.UUID
	SellerID   *uuid.UUID
	Status     string
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string // created_at | price | view_count
	SortOrder  string // asc | desc
}

type CreateCommentRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Content   string    `json:"content"`
}

type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
	Content    string    `json:"content"`
}
