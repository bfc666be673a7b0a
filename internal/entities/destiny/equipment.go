package destiny

import (
	"math"

	"github.com/guardianforge/loadout-api/internal/errors"
)

// statValueTolerance absorbs float drift when classifying base values
const statValueTolerance = 0.01

// Equipment is a single armor piece. Base attribute values never include
// lock or penalty adjustments; those only appear in the max-level
// projection.
type Equipment struct {
	ID               string
	Name             string
	Type             EquipmentType
	Rarity           Rarity
	Tag              Tag
	Attributes       map[Attribute]float64
	StatSlots        map[Attribute]StatSlot
	ClassRestriction []GuardianClass
	SetName          string
	Level            int
	LockedAttr       Attribute
	PenaltyAttr      Attribute
}

// Config carries the inputs for constructing an Equipment
type Config struct {
	ID               string
	Name             string
	Type             EquipmentType
	Rarity           Rarity
	Tag              Tag
	Attributes       map[Attribute]float64
	ClassRestriction []GuardianClass
	SetName          string
	Level            int
	LockedAttr       Attribute
	PenaltyAttr      Attribute
}

// New constructs a validated Equipment. The stat layout is derived from the
// base values: exactly one attribute must roll 30 (main), one 25 (sub), one
// 20 (random); the remaining three are supplements bounded by the current
// upgrade level. A tag, when present, pins which attributes may roll main
// and sub.
func New(cfg *Config) (*Equipment, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", cfg.ID, vb)
	errors.ValidateRequired("Name", cfg.Name, vb)
	if !IsValidEquipmentType(cfg.Type) {
		vb.InvalidField("Type", "unknown equipment type "+string(cfg.Type))
	}
	errors.ValidateRange("Level", cfg.Level, 0, MaxUpgradeLevel, vb)
	if cfg.Tag != "" && !IsValidTag(cfg.Tag) {
		vb.InvalidField("Tag", "unknown tag "+string(cfg.Tag))
	}
	if cfg.LockedAttr != "" && !IsValidAttribute(cfg.LockedAttr) {
		vb.InvalidField("LockedAttr", "unknown attribute "+string(cfg.LockedAttr))
	}
	if cfg.PenaltyAttr != "" {
		if !IsValidAttribute(cfg.PenaltyAttr) {
			vb.InvalidField("PenaltyAttr", "unknown attribute "+string(cfg.PenaltyAttr))
		} else if cfg.PenaltyAttr == cfg.LockedAttr {
			vb.InvalidField("PenaltyAttr", "penalty attribute cannot equal locked attribute")
		}
	}
	for _, gc := range cfg.ClassRestriction {
		if !IsValidClass(gc) {
			vb.InvalidField("ClassRestriction", "unknown class "+string(gc))
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	attrs, err := normalizeAttributes(cfg.Attributes)
	if err != nil {
		return nil, err
	}

	slots, err := deriveStatSlots(attrs, cfg.Tag, cfg.Level)
	if err != nil {
		return nil, err
	}

	rarity := cfg.Rarity
	if rarity == "" {
		rarity = RarityLegendary
	}

	var restriction []GuardianClass
	if len(cfg.ClassRestriction) > 0 {
		restriction = make([]GuardianClass, len(cfg.ClassRestriction))
		copy(restriction, cfg.ClassRestriction)
	}

	return &Equipment{
		ID:               cfg.ID,
		Name:             cfg.Name,
		Type:             cfg.Type,
		Rarity:           rarity,
		Tag:              cfg.Tag,
		Attributes:       attrs,
		StatSlots:        slots,
		ClassRestriction: restriction,
		SetName:          cfg.SetName,
		Level:            cfg.Level,
		LockedAttr:       cfg.LockedAttr,
		PenaltyAttr:      cfg.PenaltyAttr,
	}, nil
}

// normalizeAttributes copies the input into a dense six-attribute map and
// rejects unknown attribute names and negative values.
func normalizeAttributes(in map[Attribute]float64) (map[Attribute]float64, error) {
	out := NewAttributeMap()
	for a, v := range in {
		if !IsValidAttribute(a) {
			return nil, errors.InvalidArgumentf("unknown attribute: %s", a)
		}
		if v < 0 {
			return nil, errors.InvalidArgumentf("attribute %s cannot be negative", a)
		}
		out[a] = v
	}
	return out, nil
}

// deriveStatSlots classifies every attribute by its base value and checks
// the fixed 1 main / 1 sub / 1 random / 3 supplement layout.
func deriveStatSlots(attrs map[Attribute]float64, tag Tag, level int) (map[Attribute]StatSlot, error) {
	slots := make(map[Attribute]StatSlot, len(attrs))
	counts := map[StatSlot]int{}

	for _, a := range attributeOrder {
		v := attrs[a]
		var slot StatSlot
		switch {
		case math.Abs(v-BaseMain) <= statValueTolerance:
			slot = SlotMain
		case math.Abs(v-BaseSub) <= statValueTolerance:
			slot = SlotSub
		case math.Abs(v-BaseRandom) <= statValueTolerance:
			slot = SlotRandom
		default:
			slot = SlotSupplement
		}
		slots[a] = slot
		counts[slot]++
	}

	if counts[SlotMain] != 1 || counts[SlotSub] != 1 || counts[SlotRandom] != 1 {
		return nil, errors.InvalidArgumentf(
			"base attributes must contain exactly one 30, one 25 and one 20 roll; got %d main, %d sub, %d random",
			counts[SlotMain], counts[SlotSub], counts[SlotRandom])
	}

	for _, a := range attributeOrder {
		if slots[a] != SlotSupplement {
			continue
		}
		if v := attrs[a]; v > float64(level)+statValueTolerance {
			return nil, errors.InvalidArgumentf(
				"supplement attribute %s has value %.2f which exceeds upgrade level %d", a, v, level)
		}
	}

	if tag != "" {
		def, ok := LookupTag(tag)
		if !ok {
			return nil, errors.InvalidArgumentf("unknown tag: %s", tag)
		}
		if slots[def.Main] != SlotMain {
			return nil, errors.InvalidArgumentf(
				"tag %s requires %s as the main stat", tag, def.Main)
		}
		if slots[def.Sub] != SlotSub {
			return nil, errors.InvalidArgumentf(
				"tag %s requires %s as the sub stat", tag, def.Sub)
		}
	}

	return slots, nil
}

// RandomStat returns the attribute occupying the random slot
func (e *Equipment) RandomStat() Attribute {
	for _, a := range attributeOrder {
		if e.StatSlots[a] == SlotRandom {
			return a
		}
	}
	return ""
}

// EligibleFor reports whether the item may enter the given class inventory.
// A nil restriction list means universal.
func (e *Equipment) EligibleFor(class GuardianClass) bool {
	if len(e.ClassRestriction) == 0 {
		return true
	}
	for _, gc := range e.ClassRestriction {
		if gc == class {
			return true
		}
	}
	return false
}

// SetLevel updates the upgrade level
func (e *Equipment) SetLevel(level int) error {
	if level < 0 || level > MaxUpgradeLevel {
		return errors.OutOfRangef("level must be between 0 and %d", MaxUpgradeLevel)
	}
	e.Level = level
	return nil
}

// SetPenalty assigns the penalty attribute. The penalty pairs with the
// locked attribute and may be chosen well after construction.
func (e *Equipment) SetPenalty(a Attribute) error {
	if a == "" {
		e.PenaltyAttr = ""
		return nil
	}
	if !IsValidAttribute(a) {
		return errors.InvalidArgumentf("unknown attribute: %s", a)
	}
	if a == e.LockedAttr {
		return errors.InvalidArgument("penalty attribute cannot equal locked attribute")
	}
	e.PenaltyAttr = a
	return nil
}

// MaxLevelAttributes projects the item to its fully upgraded state: main,
// sub and random slots keep their base values, every supplement slot
// reaches MaxSupplement, and the lock/penalty pair is applied when both are
// set. The penalty argument overrides the stored penalty attribute so
// callers can evaluate candidate assignments without mutating the item; pass
// the zero value to use the stored one. The receiver is never modified.
func (e *Equipment) MaxLevelAttributes(penalty Attribute) map[Attribute]float64 {
	out := NewAttributeMap()
	for _, a := range attributeOrder {
		if e.StatSlots[a] == SlotSupplement {
			out[a] = MaxSupplement
		} else {
			out[a] = e.Attributes[a]
		}
	}

	if penalty == "" {
		penalty = e.PenaltyAttr
	}
	if e.LockedAttr != "" && penalty != "" && penalty != e.LockedAttr {
		out[e.LockedAttr] += LockBonus
		out[penalty] = math.Max(0, out[penalty]-PenaltyMalus)
	}

	return out
}

// TotalPower sums the base attribute values
func (e *Equipment) TotalPower() float64 {
	var sum float64
	for _, v := range e.Attributes {
		sum += v
	}
	return sum
}
