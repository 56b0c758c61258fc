package domain

import "time"

// StockItem is a record in the stock catalog, keyed by IceCreamID.
type StockItem struct {
	IceCreamID int64
	Name       string
	Allergens  []string
	Price      float64
	InStock    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	owner ownerTag
}

// StockPatch carries the mutable stock attributes.
type StockPatch struct {
	Name      string
	Allergens []string
	Price     float64
	InStock   bool
}

// NewStockItem builds a stock item tagged with its creator.
func NewStockItem(iceCreamID int64, name string, allergens []string, price float64, inStock bool, owner SubjectIdentity) *StockItem {
	return &StockItem{
		IceCreamID: iceCreamID,
		Name:       name,
		Allergens:  nonNilStrings(allergens),
		Price:      price,
		InStock:    inStock,
		owner:      ownerTag{subject: owner, set: true},
	}
}

// RestoreStockItem rehydrates a stored stock item.
func RestoreStockItem(s StockItem, owner SubjectIdentity, tagged bool) *StockItem {
	s.owner = ownerTag{subject: owner, set: tagged}
	return &s
}

// Owner returns the creator's subject, or nil for untagged rows.
func (s *StockItem) Owner() *SubjectIdentity {
	return s.owner.get()
}

// Apply overwrites the mutable attributes.
func (s *StockItem) Apply(p StockPatch) {
	s.Name = p.Name
	s.Allergens = nonNilStrings(p.Allergens)
	s.Price = p.Price
	s.InStock = p.InStock
}
