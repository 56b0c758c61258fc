package service

import (
	"context"
	_ "embed"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/catalog-service/internal/domain"
)

//go:embed seed/catalog.yaml
var defaultCatalog []byte

// CatalogSeed is the on-disk shape of the seed file.
type CatalogSeed struct {
	Customers []struct {
		CustomerID         int64    `yaml:"customer_id"`
		Name               string   `yaml:"name"`
		Allergies          []string `yaml:"allergies"`
		FavouriteIcecreams []int64  `yaml:"favourite_icecreams"`
	} `yaml:"customers"`
	Stock []struct {
		IceCreamID int64    `yaml:"ice_cream_id"`
		Name       string   `yaml:"name"`
		Allergens  []string `yaml:"allergens"`
		Price      float64  `yaml:"price"`
		InStock    bool     `yaml:"in_stock"`
	} `yaml:"stock"`
}

type customerSeeder interface {
	InsertIfAbsent(ctx context.Context, customer *domain.Customer) (bool, error)
}

type stockSeeder interface {
	InsertIfAbsent(ctx context.Context, item *domain.StockItem) (bool, error)
}

// SeedService loads the initial catalog. Seeded rows carry no owner.
type SeedService struct {
	customers customerSeeder
	stock     stockSeeder
	logger    *zap.Logger
}

// NewSeedService constructs the service.
func NewSeedService(customers customerSeeder, stock stockSeeder, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{customers: customers, stock: stock, logger: logger}
}

// ParseCatalogSeed decodes a seed document.
func ParseCatalogSeed(data []byte) (*CatalogSeed, error) {
	var seed CatalogSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse catalog seed: %w", err)
	}
	return &seed, nil
}

// SeedDefault applies the embedded catalog.
func (s *SeedService) SeedDefault(ctx context.Context) error {
	seed, err := ParseCatalogSeed(defaultCatalog)
	if err != nil {
		return err
	}
	return s.Seed(ctx, seed)
}

// Seed inserts every entry that does not exist yet. Existing rows are left
// untouched, so re-running is safe.
func (s *SeedService) Seed(ctx context.Context, seed *CatalogSeed) error {
	var insertedCustomers, insertedStock int
	for _, c := range seed.Customers {
		customer := domain.RestoreCustomer(domain.Customer{
			CustomerID:         c.CustomerID,
			Name:               c.Name,
			Allergies:          nonNil(c.Allergies),
			FavouriteIcecreams: nonNil(c.FavouriteIcecreams),
		}, "", false)
		inserted, err := s.customers.InsertIfAbsent(ctx, customer)
		if err != nil {
			return fmt.Errorf("seed customer %d/%s: %w", c.CustomerID, c.Name, err)
		}
		if inserted {
			insertedCustomers++
		}
	}
	for _, st := range seed.Stock {
		item := domain.RestoreStockItem(domain.StockItem{
			IceCreamID: st.IceCreamID,
			Name:       st.Name,
			Allergens:  nonNil(st.Allergens),
			Price:      st.Price,
			InStock:    st.InStock,
		}, "", false)
		inserted, err := s.stock.InsertIfAbsent(ctx, item)
		if err != nil {
			return fmt.Errorf("seed stock %d: %w", st.IceCreamID, err)
		}
		if inserted {
			insertedStock++
		}
	}

	s.logger.Info("catalog seeded",
		zap.Int("customers_inserted", insertedCustomers),
		zap.Int("stock_inserted", insertedStock))
	return nil
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
