// Package build provides persistence for saved loadout configurations.
package build

import (
	"context"
	"time"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/optimizer"
)

// SavedBuild is a named search result pinned by a player, together with
// the inputs that produced it.
type SavedBuild struct {
	ID               string                        `json:"id"`
	Name             string                        `json:"name"`
	Class            destiny.GuardianClass         `json:"class"`
	TargetAttributes map[destiny.Attribute]float64 `json:"target_attributes"`
	PreferredAttr    destiny.Attribute             `json:"preferred_attr,omitempty"`
	Exotic           *destiny.Exotic               `json:"exotic,omitempty"`
	Result           *optimizer.SearchOutput       `json:"result,omitempty"`
	CreatedAt        time.Time                     `json:"created_at"`
	UpdatedAt        time.Time                     `json:"updated_at"`
}

// Repository stores saved builds keyed by ID.
type Repository interface {
	// Save persists a build, overwriting any existing record with the
	// same ID.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a build by ID.
	// Returns errors.NotFound if no build exists with that ID.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns every saved build, sorted by creation time then ID.
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a build by ID.
	// Returns errors.NotFound if no build exists with that ID.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// SaveInput contains the build to persist.
type SaveInput struct {
	Build *SavedBuild
}

// SaveOutput is empty but reserved for future fields.
type SaveOutput struct{}

// GetInput identifies a build by ID.
type GetInput struct {
	ID string
}

// GetOutput contains the retrieved build.
type GetOutput struct {
	Build *SavedBuild
}

// ListInput is empty but reserved for future filters.
type ListInput struct{}

// ListOutput contains all saved builds.
type ListOutput struct {
	Builds []*SavedBuild
}

// DeleteInput identifies the build to remove.
type DeleteInput struct {
	ID string
}

// DeleteOutput is empty but reserved for future fields.
type DeleteOutput struct{}
