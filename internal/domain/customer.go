package domain

import "time"

// Customer is a record in the customer catalog, keyed by (CustomerID, Name).
type Customer struct {
	CustomerID         int64
	Name               string
	Allergies          []string
	FavouriteIcecreams []int64
	CreatedAt          time.Time
	UpdatedAt          time.Time

	owner ownerTag
}

// CustomerPatch carries the mutable customer attributes.
type CustomerPatch struct {
	Allergies          []string
	FavouriteIcecreams []int64
}

// NewCustomer builds a customer tagged with its creator.
func NewCustomer(customerID int64, name string, allergies []string, favourites []int64, owner SubjectIdentity) *Customer {
	return &Customer{
		CustomerID:         customerID,
		Name:               name,
		Allergies:          nonNilStrings(allergies),
		FavouriteIcecreams: nonNilInts(favourites),
		owner:              ownerTag{subject: owner, set: true},
	}
}

// RestoreCustomer rehydrates a stored customer. tagged is false for rows
// written before ownership tagging existed.
func RestoreCustomer(c Customer, owner SubjectIdentity, tagged bool) *Customer {
	c.owner = ownerTag{subject: owner, set: tagged}
	return &c
}

// Owner returns the creator's subject, or nil for untagged rows.
func (c *Customer) Owner() *SubjectIdentity {
	return c.owner.get()
}

// Apply overwrites the mutable attributes. Missing lists become empty.
func (c *Customer) Apply(p CustomerPatch) {
	c.Allergies = nonNilStrings(p.Allergies)
	c.FavouriteIcecreams = nonNilInts(p.FavouriteIcecreams)
}
