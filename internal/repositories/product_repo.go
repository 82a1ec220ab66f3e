package repositories

import (
	"context"

	"github.com/google/uuid"

	"infocomm/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetByReference(ctx context.Context, reference string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]models.Product, error)
	CategoryCounts(ctx context.Context) (map[string]int, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, reference, name, price, category, quantity, supplier, model, notes, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.Reference, product.Name, product.Price, product.Category, product.Quantity, product.Supplier, product.Model, product.Notes)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, reference, name, price, category, quantity, supplier, model, notes, is_deleted, created_at, updated_at
		FROM products
		WHERE id = $1 AND is_deleted = FALSE
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.Reference, &product.Name, &product.Price, &product.Category, &product.Quantity, &product.Supplier, &product.Model, &product.Notes, &product.IsDeleted, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) GetByReference(ctx context.Context, reference string) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, reference, name, price, category, quantity, supplier, model, notes, is_deleted, created_at, updated_at
		FROM products
		WHERE reference = $1 AND is_deleted = FALSE
	`
	err := r.db.QueryRow(ctx, query, reference).Scan(&product.ID, &product.Reference, &product.Name, &product.Price, &product.Category, &product.Quantity, &product.Supplier, &product.Model, &product.Notes, &product.IsDeleted, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET reference = $1, name = $2, price = $3, category = $4, quantity = $5, supplier = $6, model = $7, notes = $8, updated_at = NOW()
		WHERE id = $9 AND is_deleted = FALSE
	`
	_, err := r.db.Exec(ctx, query, product.Reference, product.Name, product.Price, product.Category, product.Quantity, product.Supplier, product.Model, product.Notes, product.ID)
	return err
}

// SoftDelete marks the product deleted; the row stays for history.
func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE products
		SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND is_deleted = FALSE
	`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// ListActive returns every non-deleted product in insertion order. The query
// engine does its own filtering and sorting in memory, so this deliberately
// takes no filter arguments.
func (r *productRepo) ListActive(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, reference, name, price, category, quantity, supplier, model, notes, is_deleted, created_at, updated_at
		FROM products
		WHERE is_deleted = FALSE
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Reference, &p.Name, &p.Price, &p.Category, &p.Quantity, &p.Supplier, &p.Model, &p.Notes, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepo) CategoryCounts(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT category, COUNT(*)
		FROM products
		WHERE is_deleted = FALSE
		GROUP BY category
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}
