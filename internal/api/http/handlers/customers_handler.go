package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/catalog-service/internal/api/dto"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/service"
)

// CustomerService is the customer catalog used by CustomersHandler.
type CustomerService interface {
	Get(ctx context.Context, customerID int64, name string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Create(ctx context.Context, credential string, input service.CustomerCreateInput) (*domain.Customer, error)
	Update(ctx context.Context, credential string, customerID int64, name string, patch domain.CustomerPatch) (*domain.Customer, error)
	Delete(ctx context.Context, credential string, customerID int64, name string) error
}

// CustomersHandler exposes the customer catalog.
type CustomersHandler struct {
	customers CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customers CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

// List handles GET /customer.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.customers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerListResponse(customers)})
}

// Get handles GET /customer/:customerID/:name.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	customerID, name, err := customerKey(c)
	if err != nil {
		return err
	}
	customer, err := h.customers.Get(c.UserContext(), customerID, name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerResponse(customer)})
}

// Create handles POST /customer.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	var req dto.CustomerCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	customer, err := h.customers.Create(c.UserContext(), auth.CredentialFromContext(c), service.CustomerCreateInput{
		CustomerID:         *req.CustomerID,
		Name:               req.Name,
		Allergies:          req.Allergies,
		FavouriteIcecreams: req.FavouriteIcecreams,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCustomerResponse(customer)})
}

// Update handles PUT /customer/:customerID/:name.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	customerID, name, err := customerKey(c)
	if err != nil {
		return err
	}
	var req dto.CustomerUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	customer, err := h.customers.Update(c.UserContext(), auth.CredentialFromContext(c), customerID, name, domain.CustomerPatch{
		Allergies:          req.Allergies,
		FavouriteIcecreams: req.FavouriteIcecreams,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerResponse(customer)})
}

// Delete handles DELETE /customer/:customerID/:name.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	customerID, name, err := customerKey(c)
	if err != nil {
		return err
	}
	if err := h.customers.Delete(c.UserContext(), auth.CredentialFromContext(c), customerID, name); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func customerKey(c *fiber.Ctx) (int64, string, error) {
	customerID, err := paramInt64(c, "customerID")
	if err != nil {
		return 0, "", err
	}
	name, err := paramString(c, "name")
	if err != nil {
		return 0, "", err
	}
	return customerID, name, nil
}
