// Package armory implements the equipment management orchestrator.
package armory

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/errors"
	"github.com/guardianforge/loadout-api/internal/inventory"
	"github.com/guardianforge/loadout-api/internal/pkg/idgen"
	equipmentrepo "github.com/guardianforge/loadout-api/internal/repositories/equipment"
)

const idSuffixWidth = 3

// Service defines the interface for equipment management operations
type Service interface {
	// AddEquipment creates an armor piece from a tag and random stat,
	// persists it, and places it in the class inventory.
	AddEquipment(ctx context.Context, input *AddEquipmentInput) (*AddEquipmentOutput, error)

	// ListEquipment returns the inventory contents for one class, or
	// for every class when no class is given.
	ListEquipment(ctx context.Context, input *ListEquipmentInput) (*ListEquipmentOutput, error)

	// RemoveEquipment deletes a piece from storage and from the
	// inventories holding it.
	RemoveEquipment(ctx context.Context, input *RemoveEquipmentInput) (*RemoveEquipmentOutput, error)

	// GetCatalogs enumerates classes, equipment types, tags, and
	// attributes.
	GetCatalogs(ctx context.Context, input *GetCatalogsInput) (*GetCatalogsOutput, error)

	// Hydrate loads persisted equipment into the inventory manager and
	// restores the ID counters. Called once at startup.
	Hydrate(ctx context.Context) error
}

// Config holds the dependencies for the armory orchestrator
type Config struct {
	EquipmentRepo equipmentrepo.Repository
	Inventory     *inventory.Manager
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EquipmentRepo == nil {
		vb.RequiredField("EquipmentRepo")
	}
	if c.Inventory == nil {
		vb.RequiredField("Inventory")
	}

	return vb.Build()
}

type orchestrator struct {
	repo      equipmentrepo.Repository
	inventory *inventory.Manager

	mu       sync.Mutex
	counters map[string]*idgen.SequentialGenerator
}

// NewOrchestrator creates a new armory orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &orchestrator{
		repo:      cfg.EquipmentRepo,
		inventory: cfg.Inventory,
		counters:  make(map[string]*idgen.SequentialGenerator),
	}, nil
}

func (o *orchestrator) AddEquipment(ctx context.Context, input *AddEquipmentInput) (*AddEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if !destiny.IsValidClass(input.Class) {
		vb.InvalidField("Class", "unknown class "+string(input.Class))
	}
	if !destiny.IsValidEquipmentType(input.Type) {
		vb.InvalidField("Type", "unknown equipment type "+string(input.Type))
	}
	def, tagOK := destiny.LookupTag(input.Tag)
	if !tagOK {
		vb.InvalidField("Tag", "unknown tag "+string(input.Tag))
	}
	if !destiny.IsValidAttribute(input.RandomStat) {
		vb.InvalidField("RandomStat", "unknown attribute "+string(input.RandomStat))
	} else if tagOK && (input.RandomStat == def.Main || input.RandomStat == def.Sub) {
		vb.InvalidField("RandomStat", fmt.Sprintf("random stat %s collides with tag %s", input.RandomStat, input.Tag))
	}
	if input.LockedAttr != "" && !destiny.IsValidAttribute(input.LockedAttr) {
		vb.InvalidField("LockedAttr", "unknown attribute "+string(input.LockedAttr))
	}
	errors.ValidateRange("Level", input.Level, 0, destiny.MaxUpgradeLevel, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for _, existing := range o.inventory.GetAll(input.Class) {
		if existing.Type == input.Type &&
			existing.Tag == input.Tag &&
			existing.RandomStat() == input.RandomStat &&
			existing.LockedAttr == input.LockedAttr {
			return nil, errors.AlreadyExistsf(
				"equivalent %s already in %s inventory: %s",
				input.Type, input.Class, existing.ID)
		}
	}

	id := o.nextIDLocked(input.Class, input.Type)
	name := input.Name
	if name == "" {
		name = id
	}

	piece, err := destiny.New(&destiny.Config{
		ID:   id,
		Name: name,
		Type: input.Type,
		Tag:  input.Tag,
		Attributes: map[destiny.Attribute]float64{
			def.Main:         destiny.BaseMain,
			def.Sub:          destiny.BaseSub,
			input.RandomStat: destiny.BaseRandom,
		},
		ClassRestriction: []destiny.GuardianClass{input.Class},
		SetName:          input.SetName,
		Level:            input.Level,
		LockedAttr:       input.LockedAttr,
	})
	if err != nil {
		return nil, err
	}

	if _, err := o.repo.Save(ctx, equipmentrepo.SaveInput{Equipment: piece}); err != nil {
		return nil, err
	}
	if err := o.inventory.Add(piece); err != nil {
		return nil, err
	}

	slog.Info("equipment added",
		"id", piece.ID,
		"class", input.Class,
		"type", input.Type,
		"tag", input.Tag)

	return &AddEquipmentOutput{Equipment: piece}, nil
}

func (o *orchestrator) ListEquipment(_ context.Context, input *ListEquipmentInput) (*ListEquipmentOutput, error) {
	if input == nil {
		input = &ListEquipmentInput{}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	byClass := make(map[destiny.GuardianClass][]*destiny.Equipment)
	if input.Class != "" {
		if !destiny.IsValidClass(input.Class) {
			return nil, errors.InvalidArgumentf("unknown class %s", input.Class)
		}
		byClass[input.Class] = o.inventory.GetAll(input.Class)
	} else {
		for _, class := range destiny.Classes() {
			byClass[class] = o.inventory.GetAll(class)
		}
	}

	return &ListEquipmentOutput{ByClass: byClass}, nil
}

func (o *orchestrator) RemoveEquipment(ctx context.Context, input *RemoveEquipmentInput) (*RemoveEquipmentOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("equipment ID cannot be empty")
	}
	if input.Class != "" && !destiny.IsValidClass(input.Class) {
		return nil, errors.InvalidArgumentf("unknown class %s", input.Class)
	}

	if _, err := o.repo.Delete(ctx, equipmentrepo.DeleteInput{ID: input.ID}); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if input.Class != "" {
		o.inventory.Remove(input.Class, input.ID)
	} else {
		o.inventory.RemoveEverywhere(input.ID)
	}

	slog.Info("equipment removed", "id", input.ID)

	return &RemoveEquipmentOutput{}, nil
}

func (o *orchestrator) GetCatalogs(_ context.Context, _ *GetCatalogsInput) (*GetCatalogsOutput, error) {
	return &GetCatalogsOutput{
		Classes:        destiny.ClassNames(),
		EquipmentTypes: destiny.EquipmentTypeNames(),
		Tags:           destiny.TagCatalog(),
		Attributes:     destiny.AttributeNames(),
	}, nil
}

func (o *orchestrator) Hydrate(ctx context.Context) error {
	out, err := o.repo.List(ctx, equipmentrepo.ListInput{})
	if err != nil {
		return errors.Wrap(err, "failed to load persisted equipment")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for _, piece := range out.Equipment {
		if err := o.inventory.Add(piece); err != nil {
			return errors.Wrapf(err, "failed to restore equipment %s", piece.ID)
		}
		o.restoreCounterLocked(piece.ID)
	}

	slog.Info("armory hydrated", "pieces", len(out.Equipment))

	return nil
}

func (o *orchestrator) nextIDLocked(class destiny.GuardianClass, typ destiny.EquipmentType) string {
	key := fmt.Sprintf("%s_%s", class, typ)
	gen, ok := o.counters[key]
	if !ok {
		gen = idgen.NewSequentialPadded(key, idSuffixWidth)
		o.counters[key] = gen
	}
	return gen.Generate()
}

// restoreCounterLocked advances the counter for a persisted ID of the form
// {class}_{type}_NNN so new IDs never collide with loaded ones. IDs in
// other shapes are left alone.
func (o *orchestrator) restoreCounterLocked(id string) {
	idx := strings.LastIndex(id, "_")
	if idx <= 0 || idx == len(id)-1 {
		return
	}
	n, err := strconv.ParseUint(id[idx+1:], 10, 64)
	if err != nil {
		return
	}

	key := id[:idx]
	gen, ok := o.counters[key]
	if !ok {
		gen = idgen.NewSequentialPadded(key, idSuffixWidth)
		o.counters[key] = gen
	}
	gen.SetAtLeast(n)
}
