package service

import (
	"context"
	"errors"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/repository"
	apperrors "github.com/spec-kit/catalog-service/pkg/util/errorutil"
)

// CustomerService coordinates customer catalog workflows.
type CustomerService struct {
	customers repository.CustomerRepository
	guard     Authorizer
}

// CustomerCreateInput describes customer creation payload.
type CustomerCreateInput struct {
	CustomerID         int64
	Name               string
	Allergies          []string
	FavouriteIcecreams []int64
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository, guard Authorizer) *CustomerService {
	return &CustomerService{customers: customers, guard: guard}
}

// Get returns one customer.
func (s *CustomerService) Get(ctx context.Context, customerID int64, name string) (*domain.Customer, error) {
	customer, err := s.customers.Get(ctx, customerID, name)
	if err != nil {
		return nil, customerLookupError(err, customerID, name)
	}
	return customer, nil
}

// List returns every customer.
func (s *CustomerService) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.customers.List(ctx)
}

// Create stores a new customer owned by the caller.
func (s *CustomerService) Create(ctx context.Context, credential string, input CustomerCreateInput) (*domain.Customer, error) {
	decision, err := s.guard.Authorize(ctx, auth.OperationCreate, credential, nil)
	if err != nil {
		return nil, err
	}

	customer := domain.NewCustomer(input.CustomerID, input.Name, input.Allergies, input.FavouriteIcecreams, decision.Subject)
	if err := s.customers.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, apperrors.NewConflict("customer already exists", map[string]any{
				"customer_id": input.CustomerID,
				"name":        input.Name,
			})
		}
		return nil, err
	}
	return customer, nil
}

// Update changes the mutable attributes of a customer the caller owns.
func (s *CustomerService) Update(ctx context.Context, credential string, customerID int64, name string, patch domain.CustomerPatch) (*domain.Customer, error) {
	if err := requireCredential(credential); err != nil {
		return nil, err
	}
	customer, err := s.Get(ctx, customerID, name)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.Authorize(ctx, auth.OperationUpdate, credential, customer.Owner()); err != nil {
		return nil, err
	}

	customer.Apply(patch)
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, customerLookupError(err, customerID, name)
	}
	return customer, nil
}

// Delete removes a customer the caller owns.
func (s *CustomerService) Delete(ctx context.Context, credential string, customerID int64, name string) error {
	if err := requireCredential(credential); err != nil {
		return err
	}
	customer, err := s.Get(ctx, customerID, name)
	if err != nil {
		return err
	}
	if _, err := s.guard.Authorize(ctx, auth.OperationDelete, credential, customer.Owner()); err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, customerID, name); err != nil {
		return customerLookupError(err, customerID, name)
	}
	return nil
}

func customerLookupError(err error, customerID int64, name string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("customer", map[string]any{"customer_id": customerID, "name": name})
	}
	return err
}
