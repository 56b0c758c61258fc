package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// CustomerCreateRequest payload for creating a customer.
type CustomerCreateRequest struct {
	CustomerID         *int64   `json:"CustomerID" validate:"required"`
	Name               string   `json:"Name" validate:"required,max=256"`
	Allergies          []string `json:"Allergies" validate:"omitempty,dive,required"`
	FavouriteIcecreams []int64  `json:"FavouriteIcecreams"`
}

// CustomerUpdateRequest payload for updating a customer.
type CustomerUpdateRequest struct {
	Allergies          []string `json:"Allergies" validate:"omitempty,dive,required"`
	FavouriteIcecreams []int64  `json:"FavouriteIcecreams"`
}

// CustomerResponse is the public view of a customer. It never carries the owner.
type CustomerResponse struct {
	CustomerID         int64     `json:"CustomerID"`
	Name               string    `json:"Name"`
	Allergies          []string  `json:"Allergies"`
	FavouriteIcecreams []int64   `json:"FavouriteIcecreams"`
	CreatedAt          time.Time `json:"CreatedAt"`
	UpdatedAt          time.Time `json:"UpdatedAt"`
}

// NewCustomerResponse maps a domain customer to its public view.
func NewCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:         c.CustomerID,
		Name:               c.Name,
		Allergies:          c.Allergies,
		FavouriteIcecreams: c.FavouriteIcecreams,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// NewCustomerListResponse maps a slice of customers.
func NewCustomerListResponse(customers []*domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}
