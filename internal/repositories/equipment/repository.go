// Package equipment provides persistence for guardian armor pieces.
package equipment

import (
	"context"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
)

// Repository stores armor pieces keyed by their inventory ID.
type Repository interface {
	// Save persists an armor piece, overwriting any existing record
	// with the same ID.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves an armor piece by ID.
	// Returns errors.NotFound if no piece exists with that ID.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns every persisted armor piece, sorted by ID.
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes an armor piece by ID.
	// Returns errors.NotFound if no piece exists with that ID.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// SaveInput contains the armor piece to persist.
type SaveInput struct {
	Equipment *destiny.Equipment
}

// SaveOutput is empty but reserved for future fields.
type SaveOutput struct{}

// GetInput identifies an armor piece by ID.
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved armor piece.
type GetOutput struct {
	Equipment *destiny.Equipment
}

// ListInput is empty but reserved for future filters.
type ListInput struct{}

// ListOutput contains all persisted armor pieces.
type ListOutput struct {
	Equipment []*destiny.Equipment
}

// DeleteInput identifies the armor piece to remove.
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty but reserved for future fields.
type DeleteOutput struct{}
