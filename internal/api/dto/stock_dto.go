package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// StockCreateRequest payload for creating a stock item.
type StockCreateRequest struct {
	IceCreamID *int64   `json:"IceCreamID" validate:"required"`
	Name       string   `json:"Name" validate:"required,max=256"`
	Allergens  []string `json:"Allergens" validate:"omitempty,dive,required"`
	Price      float64  `json:"Price" validate:"gte=0"`
	IsStock    bool     `json:"IsStock"`
}

// StockUpdateRequest payload for updating a stock item.
type StockUpdateRequest struct {
	Name      string   `json:"Name" validate:"required,max=256"`
	Allergens []string `json:"Allergens" validate:"omitempty,dive,required"`
	Price     float64  `json:"Price" validate:"gte=0"`
	IsStock   bool     `json:"IsStock"`
}

// StockResponse is the public view of a stock item. It never carries the owner.
type StockResponse struct {
	IceCreamID int64     `json:"IceCreamID"`
	Name       string    `json:"Name"`
	Allergens  []string  `json:"Allergens"`
	Price      float64   `json:"Price"`
	IsStock    bool      `json:"IsStock"`
	CreatedAt  time.Time `json:"CreatedAt"`
	UpdatedAt  time.Time `json:"UpdatedAt"`
}

// NewStockResponse maps a domain stock item to its public view.
func NewStockResponse(s *domain.StockItem) StockResponse {
	return StockResponse{
		IceCreamID: s.IceCreamID,
		Name:       s.Name,
		Allergens:  s.Allergens,
		Price:      s.Price,
		IsStock:    s.InStock,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// NewStockListResponse maps a slice of stock items.
func NewStockListResponse(items []*domain.StockItem) []StockResponse {
	out := make([]StockResponse, 0, len(items))
	for _, s := range items {
		out = append(out, NewStockResponse(s))
	}
	return out
}
