package loadout

import (
	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/optimizer"
	buildrepo "github.com/guardianforge/loadout-api/internal/repositories/build"
)

// ExoticInput is a caller-described exotic piece before normalization.
type ExoticInput struct {
	Name       string
	Type       destiny.EquipmentType
	Tag        destiny.Tag
	Attributes map[destiny.Attribute]float64
	Level      int
}

// ConfigureBuildInput describes a target-matching build request.
type ConfigureBuildInput struct {
	Class            destiny.GuardianClass
	TargetAttributes map[destiny.Attribute]float64

	// MaxItems caps the combination size; zero means the configured
	// default.
	MaxItems int

	// PreferredAttr is optional.
	PreferredAttr destiny.Attribute

	// Exotic is optional; it is normalized before the search.
	Exotic *ExoticInput
}

// ConfigureBuildOutput carries the search result.
type ConfigureBuildOutput struct {
	Result *optimizer.SearchOutput
}

// SaveBuildInput names and pins a configured build.
type SaveBuildInput struct {
	Name             string
	Class            destiny.GuardianClass
	TargetAttributes map[destiny.Attribute]float64
	PreferredAttr    destiny.Attribute
	Exotic           *ExoticInput
	Result           *optimizer.SearchOutput
}

// SaveBuildOutput contains the persisted record.
type SaveBuildOutput struct {
	Build *buildrepo.SavedBuild
}

// ListBuildsInput optionally narrows the listing to one class.
type ListBuildsInput struct {
	Class destiny.GuardianClass
}

// ListBuildsOutput contains saved builds ordered by creation time.
type ListBuildsOutput struct {
	Builds []*buildrepo.SavedBuild
}

// DeleteBuildInput identifies the build to remove.
type DeleteBuildInput struct {
	ID string
}

// DeleteBuildOutput is empty but reserved for future fields.
type DeleteBuildOutput struct{}
