package repository

import (
	"context"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// CustomerRepository encapsulates customer catalog persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Get(ctx context.Context, customerID int64, name string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, customerID int64, name string) error
	// InsertIfAbsent writes the customer unless the key is taken and reports
	// whether a row was written.
	InsertIfAbsent(ctx context.Context, customer *domain.Customer) (bool, error)
}

type customerRepository struct {
	db DBTX
}

// NewCustomerRepository instantiates repository.
func NewCustomerRepository(db DBTX) CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `customer_id, name, allergies, favourite_icecreams, owner_subject, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (customer_id, name, allergies, favourite_icecreams, owner_subject)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Allergies,
		customer.FavouriteIcecreams,
		ownerColumn(customer.Owner()),
	).Scan(&customer.CreatedAt, &customer.UpdatedAt)
	return translate(err)
}

func (r *customerRepository) InsertIfAbsent(ctx context.Context, customer *domain.Customer) (bool, error) {
	const query = `
        INSERT INTO customers (customer_id, name, allergies, favourite_icecreams, owner_subject)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (customer_id, name) DO NOTHING`
	cmd, err := r.db.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Allergies,
		customer.FavouriteIcecreams,
		ownerColumn(customer.Owner()),
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *customerRepository) Get(ctx context.Context, customerID int64, name string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id=$1 AND name=$2`
	return scanCustomer(r.db.QueryRow(ctx, query, customerID, name))
}

func (r *customerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY customer_id, name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*domain.Customer, 0)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

// Update writes the mutable attributes only; owner_subject is never part of it.
func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET allergies=$1, favourite_icecreams=$2, updated_at=NOW()
        WHERE customer_id=$3 AND name=$4
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		customer.Allergies,
		customer.FavouriteIcecreams,
		customer.CustomerID,
		customer.Name,
	).Scan(&customer.UpdatedAt)
	return translate(err)
}

func (r *customerRepository) Delete(ctx context.Context, customerID int64, name string) error {
	const query = `DELETE FROM customers WHERE customer_id=$1 AND name=$2`
	cmd, err := r.db.Exec(ctx, query, customerID, name)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var (
		customer domain.Customer
		owner    *string
	)
	if err := row.Scan(
		&customer.CustomerID,
		&customer.Name,
		&customer.Allergies,
		&customer.FavouriteIcecreams,
		&owner,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	subject, tagged := ownerFromColumn(owner)
	return domain.RestoreCustomer(customer, subject, tagged), nil
}

func ownerColumn(owner *domain.SubjectIdentity) *string {
	if owner == nil {
		return nil
	}
	v := owner.String()
	return &v
}

func ownerFromColumn(v *string) (domain.SubjectIdentity, bool) {
	if v == nil {
		return "", false
	}
	return domain.SubjectIdentity(*v), true
}
