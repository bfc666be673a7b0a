package inventory

import (
	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/errors"
)

// Manager routes equipment into per-class inventories. Unrestricted items
// land in every class inventory; restricted items in exactly the classes
// they name. The manager is constructed explicitly and passed by reference;
// there is no process-wide instance.
type Manager struct {
	inventories map[destiny.GuardianClass]*Inventory
}

// NewManager creates a manager with one empty inventory per class
func NewManager() *Manager {
	inventories := make(map[destiny.GuardianClass]*Inventory)
	for _, gc := range destiny.Classes() {
		inventories[gc] = NewInventory(gc)
	}
	return &Manager{inventories: inventories}
}

// Add routes an item into every eligible class inventory
func (m *Manager) Add(eq *destiny.Equipment) error {
	if eq == nil {
		return errors.InvalidArgument("equipment cannot be nil")
	}

	if len(eq.ClassRestriction) == 0 {
		for _, gc := range destiny.Classes() {
			if err := m.inventories[gc].Add(eq); err != nil {
				return err
			}
		}
		return nil
	}

	for _, gc := range eq.ClassRestriction {
		inv, ok := m.inventories[gc]
		if !ok {
			return errors.InvalidArgumentf("unknown class: %s", gc)
		}
		if err := inv.Add(eq); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes an item from a single class inventory
func (m *Manager) Remove(class destiny.GuardianClass, id string) {
	if inv, ok := m.inventories[class]; ok {
		inv.Remove(id)
	}
}

// RemoveEverywhere deletes an item from every class inventory that holds it
func (m *Manager) RemoveEverywhere(id string) {
	for _, inv := range m.inventories {
		inv.Remove(id)
	}
}

// Inventory returns the inventory for a class
func (m *Manager) Inventory(class destiny.GuardianClass) (*Inventory, bool) {
	inv, ok := m.inventories[class]
	return inv, ok
}

// GetAll returns every item in a class inventory, sorted by ID
func (m *Manager) GetAll(class destiny.GuardianClass) []*destiny.Equipment {
	inv, ok := m.inventories[class]
	if !ok {
		return nil
	}
	return inv.All()
}

// Get returns a single item from a class inventory
func (m *Manager) Get(class destiny.GuardianClass, id string) (*destiny.Equipment, bool) {
	inv, ok := m.inventories[class]
	if !ok {
		return nil, false
	}
	return inv.Get(id)
}
