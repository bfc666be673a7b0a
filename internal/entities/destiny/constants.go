package destiny

// GuardianClass identifies which character class owns an inventory
type GuardianClass string

// Guardian class constants
const (
	ClassTitan   GuardianClass = "titan"
	ClassHunter  GuardianClass = "hunter"
	ClassWarlock GuardianClass = "warlock"
)

var classOrder = []GuardianClass{ClassTitan, ClassHunter, ClassWarlock}

// Classes returns all guardian classes
func Classes() []GuardianClass {
	out := make([]GuardianClass, len(classOrder))
	copy(out, classOrder)
	return out
}

// IsValidClass reports whether c names a guardian class
func IsValidClass(c GuardianClass) bool {
	for _, gc := range classOrder {
		if gc == c {
			return true
		}
	}
	return false
}

// ClassNames returns the class names as strings, for enum validation
func ClassNames() []string {
	out := make([]string, len(classOrder))
	for i, c := range classOrder {
		out[i] = string(c)
	}
	return out
}

// EquipmentType is an armor slot
type EquipmentType string

// Equipment type constants, in slot order
const (
	TypeHelmet    EquipmentType = "helmet"
	TypeGauntlets EquipmentType = "gauntlets"
	TypeChest     EquipmentType = "chest"
	TypeLegs      EquipmentType = "legs"
	TypeClassItem EquipmentType = "class_item"
)

var typeOrder = []EquipmentType{TypeHelmet, TypeGauntlets, TypeChest, TypeLegs, TypeClassItem}

// EquipmentTypes returns all equipment types in slot order
func EquipmentTypes() []EquipmentType {
	out := make([]EquipmentType, len(typeOrder))
	copy(out, typeOrder)
	return out
}

// IsValidEquipmentType reports whether t names an armor slot
func IsValidEquipmentType(t EquipmentType) bool {
	for _, et := range typeOrder {
		if et == t {
			return true
		}
	}
	return false
}

// EquipmentTypeNames returns the slot names as strings, for enum validation
func EquipmentTypeNames() []string {
	out := make([]string, len(typeOrder))
	for i, t := range typeOrder {
		out[i] = string(t)
	}
	return out
}

// Rarity is a display label; it carries no rules of its own
type Rarity string

// Rarity constants
const (
	RarityLegendary Rarity = "legendary"
	RarityExotic    Rarity = "exotic"
)

// Stat values fixed by the armor system
const (
	// MaxUpgradeLevel caps item upgrades and supplement stat growth
	MaxUpgradeLevel = 5

	// BaseMain, BaseSub and BaseRandom are the fixed base values of the
	// three primary stat slots
	BaseMain   = 30.0
	BaseSub    = 25.0
	BaseRandom = 20.0

	// MaxSupplement is the value every supplement slot reaches at max level
	MaxSupplement = 5.0

	// LockBonus is added to a locked attribute at max level; PenaltyMalus
	// is subtracted from the paired penalty attribute, floored at zero
	LockBonus    = 5.0
	PenaltyMalus = 5.0
)
