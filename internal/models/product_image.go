package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	ObjectKey string    `json:"object_key" db:"object_key"`
	AltText   *string   `json:"alt_text,omitempty" db:"alt_text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
