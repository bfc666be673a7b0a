// Package inventory holds the in-memory per-class equipment inventories and
// the manager that routes items to them.
package inventory

import (
	"sort"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/errors"
)

// Inventory owns the equipment of a single guardian class, keyed by ID
type Inventory struct {
	class destiny.GuardianClass
	items map[string]*destiny.Equipment
}

// NewInventory creates an empty inventory for a class
func NewInventory(class destiny.GuardianClass) *Inventory {
	return &Inventory{
		class: class,
		items: make(map[string]*destiny.Equipment),
	}
}

// Class returns the owning class
func (i *Inventory) Class() destiny.GuardianClass {
	return i.class
}

// Add inserts an item. Items restricted to other classes are rejected.
func (i *Inventory) Add(eq *destiny.Equipment) error {
	if eq == nil {
		return errors.InvalidArgument("equipment cannot be nil")
	}
	if !eq.EligibleFor(i.class) {
		return errors.FailedPreconditionf(
			"equipment %s is not eligible for class %s", eq.ID, i.class)
	}
	i.items[eq.ID] = eq
	return nil
}

// Remove deletes an item by ID; removing an absent ID is a no-op
func (i *Inventory) Remove(id string) {
	delete(i.items, id)
}

// Get returns the item with the given ID
func (i *Inventory) Get(id string) (*destiny.Equipment, bool) {
	eq, ok := i.items[id]
	return eq, ok
}

// All returns every item, sorted by ID for deterministic iteration
func (i *Inventory) All() []*destiny.Equipment {
	out := make([]*destiny.Equipment, 0, len(i.items))
	for _, eq := range i.items {
		out = append(out, eq)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}

// Len returns the number of items held
func (i *Inventory) Len() int {
	return len(i.items)
}
