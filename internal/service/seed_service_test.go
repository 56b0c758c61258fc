package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func TestParseCatalogSeed_Embedded(t *testing.T) {
	seed, err := ParseCatalogSeed(defaultCatalog)
	require.NoError(t, err)

	require.Len(t, seed.Customers, 2)
	assert.Equal(t, "Evan Hearne", seed.Customers[0].Name)
	assert.Equal(t, []int64{1, 2, 3}, seed.Customers[0].FavouriteIcecreams)
	assert.Equal(t, []string{"peanuts"}, seed.Customers[1].Allergies)

	require.Len(t, seed.Stock, 2)
	assert.Equal(t, "Chocolate", seed.Stock[1].Name)
	assert.Equal(t, 6.0, seed.Stock[1].Price)
	assert.True(t, seed.Stock[1].InStock)
}

func TestParseCatalogSeed_Invalid(t *testing.T) {
	_, err := ParseCatalogSeed([]byte("customers: [oops"))
	assert.Error(t, err)
}

func TestSeedService_InsertsUntaggedRowsOnce(t *testing.T) {
	ctx := context.Background()
	customers := newMemoryCustomers()
	stock := newMemoryStock()
	svc := NewSeedService(customers, stock, nil)

	require.NoError(t, svc.SeedDefault(ctx))
	require.NoError(t, svc.SeedDefault(ctx))

	all, err := customers.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	evan, err := customers.Get(ctx, 1, "Evan Hearne")
	require.NoError(t, err)
	assert.Nil(t, evan.Owner())
	assert.Equal(t, []string{}, evan.Allergies)

	vanilla, err := stock.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, vanilla.Owner())
	assert.Equal(t, 5.5, vanilla.Price)
}

func TestSeedService_KeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	customers := newMemoryCustomers()
	require.NoError(t, customers.Create(ctx, domain.NewCustomer(1, "Evan Hearne", []string{"soy"}, nil, "u1")))

	require.NoError(t, NewSeedService(customers, newMemoryStock(), nil).SeedDefault(ctx))

	evan, err := customers.Get(ctx, 1, "Evan Hearne")
	require.NoError(t, err)
	assert.Equal(t, []string{"soy"}, evan.Allergies)
	assert.Equal(t, domain.SubjectIdentity("u1"), *evan.Owner())
}
