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

// StockService is the stock catalog used by StockHandler.
type StockService interface {
	Get(ctx context.Context, iceCreamID int64) (*domain.StockItem, error)
	List(ctx context.Context) ([]*domain.StockItem, error)
	Create(ctx context.Context, credential string, input service.StockCreateInput) (*domain.StockItem, error)
	Update(ctx context.Context, credential string, iceCreamID int64, patch domain.StockPatch) (*domain.StockItem, error)
	Delete(ctx context.Context, credential string, iceCreamID int64) error
}

// StockHandler exposes the stock catalog.
type StockHandler struct {
	stock StockService
}

// NewStockHandler constructs handler.
func NewStockHandler(stock StockService) *StockHandler {
	return &StockHandler{stock: stock}
}

// List handles GET /stock.
func (h *StockHandler) List(c *fiber.Ctx) error {
	items, err := h.stock.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStockListResponse(items)})
}

// Get handles GET /stock/:iceCreamID.
func (h *StockHandler) Get(c *fiber.Ctx) error {
	iceCreamID, err := paramInt64(c, "iceCreamID")
	if err != nil {
		return err
	}
	item, err := h.stock.Get(c.UserContext(), iceCreamID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStockResponse(item)})
}

// Create handles POST /stock.
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var req dto.StockCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	item, err := h.stock.Create(c.UserContext(), auth.CredentialFromContext(c), service.StockCreateInput{
		IceCreamID: *req.IceCreamID,
		Name:       req.Name,
		Allergens:  req.Allergens,
		Price:      req.Price,
		InStock:    req.IsStock,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStockResponse(item)})
}

// Update handles PUT /stock/:iceCreamID.
func (h *StockHandler) Update(c *fiber.Ctx) error {
	iceCreamID, err := paramInt64(c, "iceCreamID")
	if err != nil {
		return err
	}
	var req dto.StockUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	item, err := h.stock.Update(c.UserContext(), auth.CredentialFromContext(c), iceCreamID, domain.StockPatch{
		Name:      req.Name,
		Allergens: req.Allergens,
		Price:     req.Price,
		InStock:   req.IsStock,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStockResponse(item)})
}

// Delete handles DELETE /stock/:iceCreamID.
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	iceCreamID, err := paramInt64(c, "iceCreamID")
	if err != nil {
		return err
	}
	if err := h.stock.Delete(c.UserContext(), auth.CredentialFromContext(c), iceCreamID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
