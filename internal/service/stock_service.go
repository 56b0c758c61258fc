package service

import (
	"context"
	"errors"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// StockService coordinates stock catalog workflows.
type StockService struct {
	stock repository.StockRepository
	guard Authorizer
}

// StockCreateInput describes stock creation payload.
type StockCreateInput struct {
	IceCreamID int64
	Name       string
	Allergens  []string
	Price      float64
	InStock    bool
}

// NewStockService constructs the service.
func NewStockService(stock repository.StockRepository, guard Authorizer) *StockService {
	return &StockService{stock: stock, guard: guard}
}

// Get returns one stock item.
func (s *StockService) Get(ctx context.Context, iceCreamID int64) (*domain.StockItem, error) {
	item, err := s.stock.Get(ctx, iceCreamID)
	if err != nil {
		return nil, stockLookupError(err, iceCreamID)
	}
	return item, nil
}

// List returns every stock item.
func (s *StockService) List(ctx context.Context) ([]*domain.StockItem, error) {
	return s.stock.List(ctx)
}

// Create stores a new stock item owned by the caller.
func (s *StockService) Create(ctx context.Context, credential string, input StockCreateInput) (*domain.StockItem, error) {
	decision, err := s.guard.Authorize(ctx, auth.OperationCreate, credential, nil)
	if err != nil {
		return nil, err
	}

	item := domain.NewStockItem(input.IceCreamID, input.Name, input.Allergens, input.Price, input.InStock, decision.Subject)
	if err := s.stock.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, apperrors.NewConflict("stock item already exists", map[string]any{"ice_cream_id": input.IceCreamID})
		}
		return nil, err
	}
	return item, nil
}

// Update changes a stock item the caller owns.
func (s *StockService) Update(ctx context.Context, credential string, iceCreamID int64, patch domain.StockPatch) (*domain.StockItem, error) {
	if err := requireCredential(credential); err != nil {
		return nil, err
	}
	item, err := s.Get(ctx, iceCreamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.Authorize(ctx, auth.OperationUpdate, credential, item.Owner()); err != nil {
		return nil, err
	}

	item.Apply(patch)
	if err := s.stock.Update(ctx, item); err != nil {
		return nil, stockLookupError(err, iceCreamID)
	}
	return item, nil
}

// Delete removes a stock item the caller owns.
func (s *StockService) Delete(ctx context.Context, credential string, iceCreamID int64) error {
	if err := requireCredential(credential); err != nil {
		return err
	}
	item, err := s.Get(ctx, iceCreamID)
	if err != nil {
		return err
	}
	if _, err := s.guard.Authorize(ctx, auth.OperationDelete, credential, item.Owner()); err != nil {
		return err
	}
	if err := s.stock.Delete(ctx, iceCreamID); err != nil {
		return stockLookupError(err, iceCreamID)
	}
	return nil
}

func stockLookupError(err error, iceCreamID int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("stock item", map[string]any{"ice_cream_id": iceCreamID})
	}
	return err
}
