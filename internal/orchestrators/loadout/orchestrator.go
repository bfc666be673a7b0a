// Package loadout implements the build configuration orchestrator.
package loadout

import (
	"context"
	"log/slog"
	"strings"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/errors"
	"github.com/guardianforge/loadout-api/internal/optimizer"
	"github.com/guardianforge/loadout-api/internal/pkg/clock"
	"github.com/guardianforge/loadout-api/internal/pkg/idgen"
	buildrepo "github.com/guardianforge/loadout-api/internal/repositories/build"
)

// minExoticNonZero is the minimum number of explicit non-zero attribute
// values an exotic must carry before the rest default to the supplement
// maximum.
const minExoticNonZero = 3

// Searcher is the slice of the optimizer this orchestrator drives.
type Searcher interface {
	Search(input *optimizer.SearchInput) (*optimizer.SearchOutput, error)
}

// Service defines the interface for build operations
type Service interface {
	// ConfigureBuild runs a target-matching search over the class
	// inventory.
	ConfigureBuild(ctx context.Context, input *ConfigureBuildInput) (*ConfigureBuildOutput, error)

	// SaveBuild persists a named build. Names are unique per class.
	SaveBuild(ctx context.Context, input *SaveBuildInput) (*SaveBuildOutput, error)

	// ListBuilds returns saved builds, optionally for one class.
	ListBuilds(ctx context.Context, input *ListBuildsInput) (*ListBuildsOutput, error)

	// DeleteBuild removes a saved build by ID.
	DeleteBuild(ctx context.Context, input *DeleteBuildInput) (*DeleteBuildOutput, error)
}

// Config holds the dependencies for the build orchestrator
type Config struct {
	Optimizer   Searcher
	BuildRepo   buildrepo.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Optimizer == nil {
		vb.RequiredField("Optimizer")
	}
	if c.BuildRepo == nil {
		vb.RequiredField("BuildRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	searcher Searcher
	repo     buildrepo.Repository
	idGen    idgen.Generator
	clock    clock.Clock
}

// NewOrchestrator creates a new build orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &orchestrator{
		searcher: cfg.Optimizer,
		repo:     cfg.BuildRepo,
		idGen:    cfg.IDGenerator,
		clock:    cfg.Clock,
	}, nil
}

func (o *orchestrator) ConfigureBuild(_ context.Context, input *ConfigureBuildInput) (*ConfigureBuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	exotic, err := normalizeExotic(input.Exotic)
	if err != nil {
		return nil, err
	}

	result, err := o.searcher.Search(&optimizer.SearchInput{
		Class:            input.Class,
		TargetAttributes: input.TargetAttributes,
		MaxItems:         input.MaxItems,
		Exotic:           exotic,
		PreferredAttr:    input.PreferredAttr,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("build configured",
		"class", input.Class,
		"found", result.Found,
		"items", len(result.Combination))

	return &ConfigureBuildOutput{Result: result}, nil
}

func (o *orchestrator) SaveBuild(ctx context.Context, input *SaveBuildInput) (*SaveBuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Name", input.Name, vb)
	if !destiny.IsValidClass(input.Class) {
		vb.InvalidField("Class", "unknown class "+string(input.Class))
	}
	if input.Result == nil {
		vb.RequiredField("Result")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	existing, err := o.repo.List(ctx, buildrepo.ListInput{})
	if err != nil {
		return nil, err
	}
	for _, b := range existing.Builds {
		if b.Class == input.Class && strings.EqualFold(b.Name, input.Name) {
			return nil, errors.AlreadyExistsf("build %q already exists for %s", input.Name, input.Class)
		}
	}

	exotic, err := normalizeExotic(input.Exotic)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	saved := &buildrepo.SavedBuild{
		ID:               o.idGen.Generate(),
		Name:             input.Name,
		Class:            input.Class,
		TargetAttributes: input.TargetAttributes,
		PreferredAttr:    input.PreferredAttr,
		Exotic:           exotic,
		Result:           input.Result,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := o.repo.Save(ctx, buildrepo.SaveInput{Build: saved}); err != nil {
		return nil, err
	}

	slog.Info("build saved", "id", saved.ID, "name", saved.Name, "class", saved.Class)

	return &SaveBuildOutput{Build: saved}, nil
}

func (o *orchestrator) ListBuilds(ctx context.Context, input *ListBuildsInput) (*ListBuildsOutput, error) {
	if input == nil {
		input = &ListBuildsInput{}
	}
	if input.Class != "" && !destiny.IsValidClass(input.Class) {
		return nil, errors.InvalidArgumentf("unknown class %s", input.Class)
	}

	out, err := o.repo.List(ctx, buildrepo.ListInput{})
	if err != nil {
		return nil, err
	}

	if input.Class == "" {
		return &ListBuildsOutput{Builds: out.Builds}, nil
	}

	filtered := make([]*buildrepo.SavedBuild, 0, len(out.Builds))
	for _, b := range out.Builds {
		if b.Class == input.Class {
			filtered = append(filtered, b)
		}
	}

	return &ListBuildsOutput{Builds: filtered}, nil
}

func (o *orchestrator) DeleteBuild(ctx context.Context, input *DeleteBuildInput) (*DeleteBuildOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("build ID cannot be empty")
	}

	if _, err := o.repo.Delete(ctx, buildrepo.DeleteInput{ID: input.ID}); err != nil {
		return nil, err
	}

	slog.Info("build deleted", "id", input.ID)

	return &DeleteBuildOutput{}, nil
}

// normalizeExotic turns a caller-described exotic into its max-level
// shape: at least three attributes must be explicitly non-zero, every
// other attribute defaults to the supplement maximum, and the level is
// clamped into range.
func normalizeExotic(in *ExoticInput) (*destiny.Exotic, error) {
	if in == nil {
		return nil, nil
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Exotic.Name", in.Name, vb)
	if !destiny.IsValidEquipmentType(in.Type) {
		vb.InvalidField("Exotic.Type", "unknown equipment type "+string(in.Type))
	}
	if in.Tag != "" && !destiny.IsValidTag(in.Tag) {
		vb.InvalidField("Exotic.Tag", "unknown tag "+string(in.Tag))
	}
	for a := range in.Attributes {
		if !destiny.IsValidAttribute(a) {
			vb.InvalidField("Exotic.Attributes", "unknown attribute "+string(a))
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	nonZero := 0
	for _, v := range in.Attributes {
		if v > 0 {
			nonZero++
		}
	}
	if nonZero < minExoticNonZero {
		return nil, errors.InvalidArgumentf(
			"exotic needs at least %d non-zero attributes, got %d", minExoticNonZero, nonZero)
	}

	attrs := destiny.NewAttributeMap()
	for _, a := range destiny.Attributes() {
		if v := in.Attributes[a]; v > 0 {
			attrs[a] = v
		} else {
			attrs[a] = destiny.MaxSupplement
		}
	}

	level := in.Level
	if level < 0 {
		level = 0
	}
	if level > destiny.MaxUpgradeLevel {
		level = destiny.MaxUpgradeLevel
	}

	return &destiny.Exotic{
		Name:       in.Name,
		Type:       in.Type,
		Tag:        in.Tag,
		Attributes: attrs,
		Level:      level,
	}, nil
}
