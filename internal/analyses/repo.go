package analyses

import "context"

// Repo defines persistence operations for analysis history.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	// ListByUser returns records newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Record, error)
	// ListAllByUser returns every record oldest first.
	ListAllByUser(ctx context.Context, userID string) ([]Record, error)
	// DeleteByUser removes all of a user's records and returns the number
	// deleted along with the image keys they referenced.
	DeleteByUser(ctx context.Context, userID string) (int, []string, error)
}
