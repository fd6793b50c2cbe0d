package models

import "time"

type Item struct {
	ID                int       `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Description       string    `json:"description" db:"description"`
	StockQuantity     float64   `json:"stock_quantity" db:"stock_quantity"`
	LowStockThreshold float64   `json:"low_stock_threshold" db:"low_stock_threshold"`
	Unit              string    `json:"unit" db:"unit"`
	Price             float64   `json:"price" db:"price"`
	ForSale           bool      `json:"for_sale" db:"for_sale"`
	CategoryID        int       `json:"category_id" db:"category_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type CreateItemRequest struct {
	Name              string  `json:"name" binding:"required"`
	Description       string  `json:"description"`
	StockQuantity     float64 `json:"stock_quantity" binding:"gte=0"`
	LowStockThreshold float64 `json:"low_stock_threshold" binding:"gte=0"`
	Unit              string  `json:"unit" binding:"required"`
	Price             float64 `json:"price" binding:"gte=0"`
	ForSale           bool    `json:"for_sale"`
	CategoryID        int     `json:"category_id" binding:"required"`
}

type UpdateItemRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	StockQuantity     *float64 `json:"stock_quantity"`
	LowStockThreshold *float64 `json:"low_stock_threshold"`
	Unit              *string  `json:"unit"`
	Price             *float64 `json:"price"`
	ForSale           *bool    `json:"for_sale"`
	CategoryID        *int     `json:"category_id"`
}

func (r *UpdateItemRequest) HasChanges() bool {
	return r.Name != nil || r.Description != nil || r.StockQuantity != nil ||
		r.LowStockThreshold != nil || r.Unit != nil || r.Price != nil ||
		r.ForSale != nil || r.CategoryID != nil
}
