package models

// Category groups products; the set is fixed for the console and seeded at
// install time, so names double as identifiers.
type Category struct {
	ID           int    `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	ProductCount int    `json:"product_count" db:"product_count"`
}

var CategoryNames = []string{"Écran", "Ordinateur", "Imprimante", "Peripherique"}

func IsValidCategory(name string) bool {
	for _, c := range CategoryNames {
		if c == name {
			return true
		}
	}
	return false
}
