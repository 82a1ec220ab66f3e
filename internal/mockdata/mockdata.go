// Package mockdata carries the demo catalog and accounts used until the
// console is pointed at a real backend.
package mockdata

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"infocomm/internal/models"
	"infocomm/internal/repositories"
)

// DemoPassword is shared by both demo accounts.
const DemoPassword = "password"

func strPtr(s string) *string { return &s }

// Products returns the demonstration catalog. IDs are fixed so repeated
// seeding stays idempotent.
func Products() []models.Product {
	return []models.Product{
		{
			ID:        uuid.MustParse("6f1d0a11-0000-4000-8000-000000000001"),
			Reference: "ABC12345678",
			Name:      "Écran Samsung",
			Price:     125.99,
			Category:  "Écran",
			Quantity:  10,
			Supplier:  "Samsung",
			Model:     "SyncMaster 2243",
			Notes:     strPtr("Lorem ipsum dolor sit amet, consectetur adipiscing elit."),
		},
		{
			ID:        uuid.MustParse("6f1d0a11-0000-4000-8000-000000000002"),
			Reference: "ABC87654321",
			Name:      "Écran Dell",
			Price:     135.99,
			Category:  "Écran",
			Quantity:  45,
			Supplier:  "Dell",
			Model:     "P2419H",
		},
		{
			ID:        uuid.MustParse("6f1d0a11-0000-4000-8000-000000000003"),
			Reference: "DEF12345678",
			Name:      "Ordinateur Asus",
			Price:     899.99,
			Category:  "Ordinateur",
			Quantity:  0,
			Supplier:  "Asus",
			Model:     "ROG G15",
			Notes:     strPtr("Rupture de stock - Commander rapidement"),
		},
		{
			ID:        uuid.MustParse("6f1d0a11-0000-4000-8000-000000000004"),
			Reference: "GHI12345678",
			Name:      "Clavier Logitech",
			Price:     79.99,
			Category:  "Peripherique",
			Quantity:  62,
			Supplier:  "Logitech",
			Model:     "K380",
		},
	}
}

// Users returns the demo accounts without password hashes; Seed fills those
// in so no hash constant lives in the source.
func Users() []models.User {
	return []models.User{
		{
			ID:       uuid.MustParse("9a2b7c00-0000-4000-8000-000000000001"),
			Username: "admin",
			Email:    "admin@services-infocomm.com",
			Role:     "admin",
			Status:   "active",
		},
		{
			ID:       uuid.MustParse("9a2b7c00-0000-4000-8000-000000000002"),
			Username: "user",
			Email:    "user@example.com",
			Role:     "user",
			Status:   "active",
		},
	}
}

// Seed loads the demo accounts and catalog. Existing rows are left alone, so
// it is safe to run on every startup.
func Seed(ctx context.Context, userRepo repositories.UserRepository, productRepo repositories.ProductRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for _, u := range Users() {
		existing, err := userRepo.GetByUsername(ctx, u.Username)
		if err == nil && existing != nil {
			continue
		}
		u.PasswordHash = string(hash)
		if err := userRepo.Create(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	for _, p := range Products() {
		existing, err := productRepo.GetByReference(ctx, p.Reference)
		if err == nil && existing != nil {
			continue
		}
		if err := productRepo.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Reference, err)
		}
	}
	return nil
}
