// Package calculator aggregates the max-level attributes of an equipment
// combination and applies set bonuses.
package calculator

import (
	"fmt"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/errors"
)

// Calculator evaluates equipment combinations against a read-only
// inventory snapshot. Unknown IDs are recorded as warnings, never errors.
type Calculator struct {
	inventory InventoryReader

	// set name -> required piece count -> attribute bonus
	setBonuses map[string]map[int]map[destiny.Attribute]float64
}

// Config holds the dependencies for the calculator
type Config struct {
	Inventory InventoryReader
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Inventory == nil {
		return errors.InvalidArgument("inventory reader cannot be nil")
	}
	return nil
}

// New creates a calculator over the given inventory snapshot
func New(cfg *Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{
		inventory:  cfg.Inventory,
		setBonuses: make(map[string]map[int]map[destiny.Attribute]float64),
	}, nil
}

// AddSetBonus registers a bonus tier for a named set. When evaluating, the
// tier with the largest piece requirement not exceeding the owned count
// applies.
func (c *Calculator) AddSetBonus(setName string, pieceCount int, bonus map[destiny.Attribute]float64) error {
	if setName == "" {
		return errors.InvalidArgument("set name cannot be empty")
	}
	if pieceCount < 1 {
		return errors.OutOfRange("piece count must be at least 1")
	}
	for a := range bonus {
		if !destiny.IsValidAttribute(a) {
			return errors.InvalidArgumentf("unknown attribute: %s", a)
		}
	}

	tiers, ok := c.setBonuses[setName]
	if !ok {
		tiers = make(map[int]map[destiny.Attribute]float64)
		c.setBonuses[setName] = tiers
	}
	copied := make(map[destiny.Attribute]float64, len(bonus))
	for a, v := range bonus {
		copied[a] = v
	}
	tiers[pieceCount] = copied
	return nil
}

// Calculate aggregates a combination. Every included item contributes its
// max-level projection; set bonuses apply at the highest tier each owned
// count reaches. The call never mutates inventory or item state.
func (c *Calculator) Calculate(input *Input) (*Result, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !destiny.IsValidClass(input.Class) {
		return nil, errors.InvalidArgumentf("unknown class: %s", input.Class)
	}

	result := &Result{
		Class:           input.Class,
		EquipmentIDs:    append([]string(nil), input.EquipmentIDs...),
		TotalAttributes: destiny.NewAttributeMap(),
		StatTypeTotals:  newStatTypeTotals(),
		SetBonuses:      make(map[string]map[destiny.Attribute]float64),
		SetCounts:       make(map[string]int),
	}

	for _, id := range input.EquipmentIDs {
		eq, ok := c.inventory.Get(input.Class, id)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("equipment %s not found in %s inventory", id, input.Class))
			continue
		}

		projected := eq.MaxLevelAttributes(input.PenaltyOverrides[id])
		for a, v := range projected {
			result.TotalAttributes[a] += v
			result.StatTypeTotals[eq.StatSlots[a]][a] += v
		}

		result.EquipmentDetails = append(result.EquipmentDetails, EquipmentDetail{
			ID:         eq.ID,
			Name:       eq.Name,
			Type:       eq.Type,
			SetName:    eq.SetName,
			Attributes: projected,
		})
		result.EquipmentCount++

		if eq.SetName != "" {
			result.SetCounts[eq.SetName]++
		}
	}

	if input.Exotic != nil {
		projected := input.Exotic.MaxLevelAttributes()
		for a, v := range projected {
			result.TotalAttributes[a] += v
		}
		result.EquipmentDetails = append(result.EquipmentDetails, EquipmentDetail{
			ID:         "exotic",
			Name:       input.Exotic.Name,
			Type:       input.Exotic.Type,
			Attributes: projected,
		})
		result.EquipmentCount++
	}

	c.applySetBonuses(result)

	for _, v := range result.TotalAttributes {
		result.TotalSum += v
	}

	return result, nil
}

// applySetBonuses resolves, per owned set, the highest tier whose piece
// requirement is met, and folds its bonus into the totals.
func (c *Calculator) applySetBonuses(result *Result) {
	for setName, count := range result.SetCounts {
		tiers, ok := c.setBonuses[setName]
		if !ok {
			continue
		}

		bestTier := 0
		for required := range tiers {
			if required <= count && required > bestTier {
				bestTier = required
			}
		}
		if bestTier == 0 {
			continue
		}

		bonus := tiers[bestTier]
		label := fmt.Sprintf("%s(%dpc)", setName, bestTier)
		applied := make(map[destiny.Attribute]float64, len(bonus))
		for a, v := range bonus {
			result.TotalAttributes[a] += v
			applied[a] = v
		}
		result.SetBonuses[label] = applied
	}
}

func newStatTypeTotals() map[destiny.StatSlot]map[destiny.Attribute]float64 {
	out := make(map[destiny.StatSlot]map[destiny.Attribute]float64)
	for _, slot := range destiny.StatSlots() {
		out[slot] = destiny.NewAttributeMap()
	}
	return out
}
