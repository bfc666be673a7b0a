package armory

import (
	"github.com/guardianforge/loadout-api/internal/entities/destiny"
)

// AddEquipmentInput describes a simplified armor add: the stat layout is
// derived from the tag and the chosen random stat rather than supplied as
// raw values.
type AddEquipmentInput struct {
	Class      destiny.GuardianClass
	Type       destiny.EquipmentType
	Tag        destiny.Tag
	RandomStat destiny.Attribute

	// Name is optional; defaults to the generated ID.
	Name string

	// LockedAttr is optional.
	LockedAttr destiny.Attribute

	// SetName is optional; groups the piece for set bonuses.
	SetName string

	// Level is the upgrade level, 0 through 5.
	Level int
}

// AddEquipmentOutput contains the created armor piece.
type AddEquipmentOutput struct {
	Equipment *destiny.Equipment
}

// ListEquipmentInput optionally narrows the listing to one class.
type ListEquipmentInput struct {
	Class destiny.GuardianClass
}

// ListEquipmentOutput groups armor pieces by class. Unrestricted pieces
// appear under every class they are eligible for.
type ListEquipmentOutput struct {
	ByClass map[destiny.GuardianClass][]*destiny.Equipment
}

// RemoveEquipmentInput identifies the piece to remove. Class is optional;
// when empty the piece is removed from every class inventory.
type RemoveEquipmentInput struct {
	Class destiny.GuardianClass
	ID    string
}

// RemoveEquipmentOutput is empty but reserved for future fields.
type RemoveEquipmentOutput struct{}

// GetCatalogsInput is empty but reserved for future fields.
type GetCatalogsInput struct{}

// GetCatalogsOutput enumerates the fixed game catalogs.
type GetCatalogsOutput struct {
	Classes        []string
	EquipmentTypes []string
	Tags           []destiny.TagDefinition
	Attributes     []string
}
