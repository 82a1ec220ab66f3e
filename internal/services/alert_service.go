package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"infocomm/internal/apperr"
	"infocomm/internal/inventory"
	"infocomm/internal/models"
	"infocomm/internal/repositories"
)

// AlertService records stock level transitions as alerts and serves the
// recent alert feed.
type AlertService interface {
	// RecordTransition compares a product's stock status before and after a
	// write and records an alert when the status changed. before is nil for
	// newly created products.
	RecordTransition(ctx context.Context, before, after *models.Product) error
	Recent(ctx context.Context, limit int) ([]models.StockAlert, error)
	// ScanLowStock walks the active catalog and alerts on any product whose
	// latest alert no longer matches its stock status.
	ScanLowStock(ctx context.Context) error
}

type alertService struct {
	alertRepo   repositories.AlertRepository
	productRepo repositories.ProductRepository
	classifier  inventory.Classifier
}

func NewAlertService(alertRepo repositories.AlertRepository, productRepo repositories.ProductRepository, classifier inventory.Classifier) AlertService {
	return &alertService{
		alertRepo:   alertRepo,
		productRepo: productRepo,
		classifier:  classifier,
	}
}

func (s *alertService) RecordTransition(ctx context.Context, before, after *models.Product) error {
	afterStatus, err := s.classifier.Classify(after.Quantity)
	if err != nil {
		return err
	}

	if before != nil {
		beforeStatus, err := s.classifier.Classify(before.Quantity)
		if err != nil {
			return err
		}
		if beforeStatus == afterStatus {
			return nil
		}
		// Restock only counts when coming back from low or empty.
		if afterStatus == inventory.StatusNormal {
			return s.create(ctx, after, models.AlertRestocked)
		}
	}

	switch afterStatus {
	case inventory.StatusOutOfStock:
		return s.create(ctx, after, models.AlertOutOfStock)
	case inventory.StatusLow:
		return s.create(ctx, after, models.AlertLowStock)
	default:
		return nil
	}
}

func (s *alertService) Recent(ctx context.Context, limit int) ([]models.StockAlert, error) {
	if limit <= 0 {
		limit = 20
	}
	alerts, err := s.alertRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, "list alerts", err)
	}
	return alerts, nil
}

func (s *alertService) ScanLowStock(ctx context.Context) error {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindRetrieval, "scan stock levels", err)
	}

	for _, p := range products {
		status, err := s.classifier.Classify(p.Quantity)
		if err != nil {
			slog.Warn("skipping product with invalid quantity", "reference", p.Reference, "quantity", p.Quantity)
			continue
		}

		var alertType models.AlertType
		switch status {
		case inventory.StatusOutOfStock:
			alertType = models.AlertOutOfStock
		case inventory.StatusLow:
			alertType = models.AlertLowStock
		default:
			continue
		}

		latest, err := s.alertRepo.LatestForProduct(ctx, p.ID)
		if err != nil {
			slog.Warn("failed to load latest alert", "reference", p.Reference, "error", err)
			continue
		}
		if latest != nil && latest.Type == alertType {
			continue // already alerted at this level
		}

		if err := s.create(ctx, &p, alertType); err != nil {
			slog.Warn("failed to record alert", "reference", p.Reference, "error", err)
		}
	}
	return nil
}

func (s *alertService) create(ctx context.Context, p *models.Product, alertType models.AlertType) error {
	alert := &models.StockAlert{
		ID:          uuid.New(),
		Type:        alertType,
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    p.Quantity,
		Message:     alertMessage(p, alertType),
	}
	return s.alertRepo.Create(ctx, alert)
}

func alertMessage(p *models.Product, alertType models.AlertType) string {
	switch alertType {
	case models.AlertOutOfStock:
		return fmt.Sprintf("%s est en rupture de stock", p.Name)
	case models.AlertLowStock:
		return fmt.Sprintf("%s est en stock faible (%d restants)", p.Name, p.Quantity)
	case models.AlertRestocked:
		return fmt.Sprintf("%s a été réapprovisionné (%d en stock)", p.Name, p.Quantity)
	default:
		return p.Name
	}
}
