package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"infocomm/internal/models"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *models.StockAlert) error
	ListRecent(ctx context.Context, limit int) ([]models.StockAlert, error)
	LatestForProduct(ctx context.Context, productID uuid.UUID) (*models.StockAlert, error)
}

type alertRepo struct {
	db Database
}

func NewAlertRepo(db Database) AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) Create(ctx context.Context, alert *models.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, product_id, product_name, alert_type, quantity, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, alert.ID, alert.ProductID, alert.ProductName, alert.Type, alert.Quantity, alert.Message)
	return err
}

func (r *alertRepo) ListRecent(ctx context.Context, limit int) ([]models.StockAlert, error) {
	query := `
		SELECT id, product_id, product_name, alert_type, quantity, message, created_at
		FROM stock_alerts
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.StockAlert
	for rows.Next() {
		var a models.StockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.Type, &a.Quantity, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// LatestForProduct returns the most recent alert for a product, or nil when
// the product has never alerted.
func (r *alertRepo) LatestForProduct(ctx context.Context, productID uuid.UUID) (*models.StockAlert, error) {
	alert := &models.StockAlert{}
	query := `
		SELECT id, product_id, product_name, alert_type, quantity, message, created_at
		FROM stock_alerts
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, productID).Scan(&alert.ID, &alert.ProductID, &alert.ProductName, &alert.Type, &alert.Quantity, &alert.Message, &alert.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return alert, nil
}
