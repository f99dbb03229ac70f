package domain

// Category classifies transactions under a fixed income/expense kind.
// The registry is seeded once at first initialization and is read-only
// through the public surface.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// CategoryRepository defines the interface for the category registry.
type CategoryRepository interface {
	// List returns category names in alphabetical order, optionally
	// restricted to one kind.
	List(kindFilter *Kind) ([]*Category, error)
	GetByName(name string) (*Category, error)
}
