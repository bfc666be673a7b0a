package v1

import (
	"time"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/optimizer"
	buildrepo "github.com/guardianforge/loadout-api/internal/repositories/build"
)

// searchResult is the wire shape of a search outcome. The optimizer
// output already carries its own JSON layout.
type searchResult = optimizer.SearchOutput

// equipmentModel is the wire shape of an armor piece.
type equipmentModel struct {
	ID               string                                 `json:"id"`
	Name             string                                 `json:"name"`
	Type             destiny.EquipmentType                  `json:"type"`
	Rarity           destiny.Rarity                         `json:"rarity"`
	Tag              destiny.Tag                            `json:"tag,omitempty"`
	Attributes       map[destiny.Attribute]float64          `json:"attributes"`
	StatSlots        map[destiny.Attribute]destiny.StatSlot `json:"stat_slots"`
	ClassRestriction []destiny.GuardianClass                `json:"class_restriction,omitempty"`
	SetName          string                                 `json:"set_name,omitempty"`
	Level            int                                    `json:"level"`
	LockedAttr       destiny.Attribute                      `json:"locked_attr,omitempty"`
	PenaltyAttr      destiny.Attribute                      `json:"penalty_attr,omitempty"`
}

func toEquipmentModel(e *destiny.Equipment) equipmentModel {
	return equipmentModel{
		ID:               e.ID,
		Name:             e.Name,
		Type:             e.Type,
		Rarity:           e.Rarity,
		Tag:              e.Tag,
		Attributes:       e.Attributes,
		StatSlots:        e.StatSlots,
		ClassRestriction: e.ClassRestriction,
		SetName:          e.SetName,
		Level:            e.Level,
		LockedAttr:       e.LockedAttr,
		PenaltyAttr:      e.PenaltyAttr,
	}
}

func toEquipmentModels(pieces []*destiny.Equipment) []equipmentModel {
	out := make([]equipmentModel, 0, len(pieces))
	for _, e := range pieces {
		out = append(out, toEquipmentModel(e))
	}
	return out
}

// tagModel is the wire shape of an archetype tag.
type tagModel struct {
	Tag  destiny.Tag       `json:"tag"`
	Main destiny.Attribute `json:"main"`
	Sub  destiny.Attribute `json:"sub"`
}

// exoticRequest is the caller-described exotic piece.
type exoticRequest struct {
	Name       string                        `json:"name"`
	Type       destiny.EquipmentType         `json:"type"`
	Tag        destiny.Tag                   `json:"tag,omitempty"`
	Attributes map[destiny.Attribute]float64 `json:"attributes"`
	Level      int                           `json:"level"`
}

// addEquipmentRequest is the body of POST /api/equipment/add.
type addEquipmentRequest struct {
	Class      destiny.GuardianClass `json:"class"`
	Type       destiny.EquipmentType `json:"type"`
	Tag        destiny.Tag           `json:"tag"`
	RandomStat destiny.Attribute     `json:"random_stat"`
	Name       string                `json:"name,omitempty"`
	LockedAttr destiny.Attribute     `json:"locked_attr,omitempty"`
	SetName    string                `json:"set_name,omitempty"`
	Level      int                   `json:"level,omitempty"`
}

// deleteEquipmentRequest is the body of POST /api/equipment/delete.
type deleteEquipmentRequest struct {
	ID    string                `json:"id"`
	Class destiny.GuardianClass `json:"class,omitempty"`
}

// configureBuildRequest is the body of POST /api/build/configure.
type configureBuildRequest struct {
	Class            destiny.GuardianClass         `json:"class"`
	TargetAttributes map[destiny.Attribute]float64 `json:"target_attributes"`
	MaxItems         int                           `json:"max_items,omitempty"`
	PreferredAttr    destiny.Attribute             `json:"preferred_attr,omitempty"`
	Exotic           *exoticRequest                `json:"exotic,omitempty"`
}

// saveBuildRequest is the body of POST /api/build/save.
type saveBuildRequest struct {
	Name             string                        `json:"name"`
	Class            destiny.GuardianClass         `json:"class"`
	TargetAttributes map[destiny.Attribute]float64 `json:"target_attributes,omitempty"`
	PreferredAttr    destiny.Attribute             `json:"preferred_attr,omitempty"`
	Exotic           *exoticRequest                `json:"exotic,omitempty"`
	Result           *saveBuildResult              `json:"result,omitempty"`
}

// saveBuildResult mirrors the search output a client echoes back when
// pinning a configured build.
type saveBuildResult = searchResult

// deleteBuildRequest is the body of POST /api/build/delete.
type deleteBuildRequest struct {
	ID string `json:"id"`
}

// buildModel is the wire shape of a saved build.
type buildModel struct {
	ID               string                        `json:"id"`
	Name             string                        `json:"name"`
	Class            destiny.GuardianClass         `json:"class"`
	TargetAttributes map[destiny.Attribute]float64 `json:"target_attributes,omitempty"`
	PreferredAttr    destiny.Attribute             `json:"preferred_attr,omitempty"`
	Exotic           *destiny.Exotic               `json:"exotic,omitempty"`
	Result           *searchResult                 `json:"result,omitempty"`
	CreatedAt        time.Time                     `json:"created_at"`
	UpdatedAt        time.Time                     `json:"updated_at"`
}

func toBuildModel(b *buildrepo.SavedBuild) buildModel {
	return buildModel{
		ID:               b.ID,
		Name:             b.Name,
		Class:            b.Class,
		TargetAttributes: b.TargetAttributes,
		PreferredAttr:    b.PreferredAttr,
		Exotic:           b.Exotic,
		Result:           b.Result,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
