package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertType mirrors the alert vocabulary of the console UI.
type AlertType string

const (
	AlertOutOfStock AlertType = "rupture"
	AlertLowStock   AlertType = "faible"
	AlertRestocked  AlertType = "reapprovisionne"
)

type StockAlert struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Type        AlertType `json:"type" db:"type"`
	ProductID   uuid.UUID `json:"product_id" db:"product_id"`
	ProductName string    `json:"product_name" db:"product_name"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Message     string    `json:"message" db:"message"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
