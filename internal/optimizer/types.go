package optimizer

import (
	"github.com/guardianforge/loadout-api/internal/calculator"
	"github.com/guardianforge/loadout-api/internal/entities/destiny"
)

// Combiner is the slice of the calculator the optimizer drives. Narrowing
// it to an interface lets tests count evaluations.
type Combiner interface {
	Calculate(input *calculator.Input) (*calculator.Result, error)
}

// SearchInput defines a target-matching search
type SearchInput struct {
	Class            destiny.GuardianClass
	TargetAttributes map[destiny.Attribute]float64

	// MaxItems caps the combination size; zero means the configured
	// default.
	MaxItems int

	// Exotic, when set, joins every evaluated combination.
	Exotic *destiny.Exotic

	// PreferredAttr biases both bonus-point allocation and the choice
	// among combinations that meet every target.
	PreferredAttr destiny.Attribute
}

// SearchOutput reports the best combination found, or the gap analysis
// when no combination meets the target.
type SearchOutput struct {
	Found              bool                          `json:"found"`
	Combination        []string                      `json:"combination,omitempty"`
	Result             *calculator.Result            `json:"result,omitempty"`
	BonusAllocation    map[destiny.Attribute]int     `json:"bonus_allocation,omitempty"`
	PenaltyConfigs     map[string]destiny.Attribute  `json:"penalty_configs,omitempty"`
	FinalAttributes    map[destiny.Attribute]float64 `json:"final_attributes,omitempty"`
	MissingAttributes  map[destiny.Attribute]float64 `json:"missing_attributes,omitempty"`
	RequiredEquipments []RecommendedItem             `json:"required_equipments,omitempty"`
	Message            string                        `json:"message"`
}

// RecommendedItem is a hypothetical armor piece synthesized to close an
// attribute gap. It is not drawn from any inventory.
type RecommendedItem struct {
	Name       string                        `json:"name"`
	Type       destiny.EquipmentType         `json:"type"`
	Tag        destiny.Tag                   `json:"tag"`
	LockedAttr destiny.Attribute             `json:"locked_attr,omitempty"`
	TargetAttr destiny.Attribute             `json:"target_attr"`
	Attributes map[destiny.Attribute]float64 `json:"attributes"`
	Score      float64                       `json:"score"`
}
