package calculator

import (
	"github.com/guardianforge/loadout-api/internal/entities/destiny"
)

// InventoryReader is the read-only view of equipment the calculator needs.
// The inventory manager implements it; the calculator never writes through
// it.
type InventoryReader interface {
	GetAll(class destiny.GuardianClass) []*destiny.Equipment
	Get(class destiny.GuardianClass, id string) (*destiny.Equipment, bool)
}

// Input defines a combination to evaluate
type Input struct {
	Class        destiny.GuardianClass
	EquipmentIDs []string

	// Exotic, when set, joins the combination at max level. It never
	// counts toward a set.
	Exotic *destiny.Exotic

	// PenaltyOverrides maps equipment IDs to a trial penalty attribute.
	// Overrides feed the max-level projection directly, so evaluating a
	// candidate assignment leaves shared item state untouched.
	PenaltyOverrides map[string]destiny.Attribute
}

// EquipmentDetail reports one included item's max-level contribution
type EquipmentDetail struct {
	ID         string                         `json:"id"`
	Name       string                         `json:"name"`
	Type       destiny.EquipmentType          `json:"type"`
	SetName    string                         `json:"set_name,omitempty"`
	Attributes map[destiny.Attribute]float64  `json:"attributes"`
}

// Result is the aggregated outcome of a combination
type Result struct {
	Class            destiny.GuardianClass                                `json:"class"`
	EquipmentIDs     []string                                             `json:"equipment_ids"`
	EquipmentCount   int                                                  `json:"equipment_count"`
	EquipmentDetails []EquipmentDetail                                    `json:"equipment_details"`
	TotalAttributes  map[destiny.Attribute]float64                        `json:"total_attributes"`
	StatTypeTotals   map[destiny.StatSlot]map[destiny.Attribute]float64   `json:"stat_type_totals"`
	SetBonuses       map[string]map[destiny.Attribute]float64             `json:"set_bonuses"`
	SetCounts        map[string]int                                       `json:"set_counts"`
	TotalSum         float64                                              `json:"total_sum"`
	Warnings         []string                                             `json:"warnings,omitempty"`
}
