package domain

import "context"

// CatalogRepository provides read access to the product catalog
type CatalogRepository interface {
	All(ctx context.Context) ([]Product, error)
	FindByName(ctx context.Context, name string) (Product, error)
}

// SessionStore holds per-session UI state.
// Update applies fn atomically; a missing or expired session starts from NewSessionState.
type SessionStore interface {
	Get(ctx context.Context, id string) (SessionState, error)
	Update(ctx context.Context, id string, fn func(*SessionState) error) (SessionState, error)
	Delete(ctx context.Context, id string) error
}
