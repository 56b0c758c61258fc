package repository

import (
	"context"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// StockRepository encapsulates stock catalog persistence.
type StockRepository interface {
	Create(ctx context.Context, item *domain.StockItem) error
	Get(ctx context.Context, iceCreamID int64) (*domain.StockItem, error)
	List(ctx context.Context) ([]*domain.StockItem, error)
	Update(ctx context.Context, item *domain.StockItem) error
	Delete(ctx context.Context, iceCreamID int64) error
	InsertIfAbsent(ctx context.Context, item *domain.StockItem) (bool, error)
}

type stockRepository struct {
	db DBTX
}

// NewStockRepository instantiates repository.
func NewStockRepository(db DBTX) StockRepository {
	return &stockRepository{db: db}
}

const stockColumns = `ice_cream_id, name, allergens, price, in_stock, owner_subject, created_at, updated_at`

func (r *stockRepository) Create(ctx context.Context, item *domain.StockItem) error {
	const query = `
        INSERT INTO stock (ice_cream_id, name, allergens, price, in_stock, owner_subject)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		item.IceCreamID,
		item.Name,
		item.Allergens,
		item.Price,
		item.InStock,
		ownerColumn(item.Owner()),
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	return translate(err)
}

func (r *stockRepository) InsertIfAbsent(ctx context.Context, item *domain.StockItem) (bool, error) {
	const query = `
        INSERT INTO stock (ice_cream_id, name, allergens, price, in_stock, owner_subject)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (ice_cream_id) DO NOTHING`
	cmd, err := r.db.Exec(ctx, query,
		item.IceCreamID,
		item.Name,
		item.Allergens,
		item.Price,
		item.InStock,
		ownerColumn(item.Owner()),
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *stockRepository) Get(ctx context.Context, iceCreamID int64) (*domain.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE ice_cream_id=$1`
	return scanStockItem(r.db.QueryRow(ctx, query, iceCreamID))
}

func (r *stockRepository) List(ctx context.Context) ([]*domain.StockItem, error) {
	query := `SELECT ` + stockColumns + ` FROM stock ORDER BY ice_cream_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.StockItem, 0)
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *stockRepository) Update(ctx context.Context, item *domain.StockItem) error {
	const query = `
        UPDATE stock SET name=$1, allergens=$2, price=$3, in_stock=$4, updated_at=NOW()
        WHERE ice_cream_id=$5
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		item.Name,
		item.Allergens,
		item.Price,
		item.InStock,
		item.IceCreamID,
	).Scan(&item.UpdatedAt)
	return translate(err)
}

func (r *stockRepository) Delete(ctx context.Context, iceCreamID int64) error {
	const query = `DELETE FROM stock WHERE ice_cream_id=$1`
	cmd, err := r.db.Exec(ctx, query, iceCreamID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanStockItem(row rowScanner) (*domain.StockItem, error) {
	var (
		item  domain.StockItem
		owner *string
	)
	if err := row.Scan(
		&item.IceCreamID,
		&item.Name,
		&item.Allergens,
		&item.Price,
		&item.InStock,
		&owner,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, translate(err)
	}
	subject, tagged := ownerFromColumn(owner)
	return domain.RestoreStockItem(item, subject, tagged), nil
}
