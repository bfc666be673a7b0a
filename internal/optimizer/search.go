// Package optimizer searches inventory combinations for a target attribute
// profile. It enumerates subsets size-ascending, trials penalty assignments
// for locked items as immutable projection overrides, layers the bonus-point
// allocation on top, and falls back to gap recommendations when nothing
// reaches the target.
package optimizer

import (
	"github.com/guardianforge/loadout-api/internal/calculator"
	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/errors"
)

const (
	// DefaultMaxItems caps combination size unless the caller asks for less
	DefaultMaxItems = 5

	// DefaultMaxLockedItems bounds the penalty-assignment Cartesian
	// product: subsets holding more locked-without-penalty items than this
	// are skipped, since each such item multiplies the trial count by five.
	DefaultMaxLockedItems = 3

	// overshootWeight is the mild per-point cost of exceeding a target
	overshootWeight = 0.1
)

// Optimizer drives the calculator over candidate subsets
type Optimizer struct {
	calc           Combiner
	inventory      calculator.InventoryReader
	maxItems       int
	maxLockedItems int
}

// Config holds the dependencies for the optimizer
type Config struct {
	Calculator Combiner
	Inventory  calculator.InventoryReader

	// MaxItems and MaxLockedItems default to DefaultMaxItems and
	// DefaultMaxLockedItems when zero.
	MaxItems       int
	MaxLockedItems int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.Calculator == nil {
		vb.RequiredField("Calculator")
	}
	if c.Inventory == nil {
		vb.RequiredField("Inventory")
	}
	return vb.Build()
}

// New creates an optimizer with the provided dependencies
func New(cfg *Config) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	maxItems := cfg.MaxItems
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	maxLocked := cfg.MaxLockedItems
	if maxLocked <= 0 {
		maxLocked = DefaultMaxLockedItems
	}

	return &Optimizer{
		calc:           cfg.Calculator,
		inventory:      cfg.Inventory,
		maxItems:       maxItems,
		maxLockedItems: maxLocked,
	}, nil
}

// evaluation is one scored candidate configuration
type evaluation struct {
	ids       []string
	overrides map[string]destiny.Attribute
	result    *calculator.Result
	alloc     map[destiny.Attribute]int
	final     map[destiny.Attribute]float64
	score     float64
	allMet    bool
}

// Search enumerates inventory subsets to meet the target attribute profile.
// Combinations that satisfy every target beat any that do not; among
// satisfying ones a named preferred attribute breaks ties, then the lower
// score. The first exact match (all targets met, zero overshoot on target
// attributes) ends the search immediately.
func (o *Optimizer) Search(input *SearchInput) (*SearchOutput, error) {
	if err := validateSearchInput(input); err != nil {
		return nil, err
	}

	target := input.TargetAttributes
	candidates := o.filterCandidates(input.Class, target)
	if len(candidates) == 0 {
		return &SearchOutput{
			Found:              false,
			RequiredEquipments: []RecommendedItem{},
			Message:            "no equipment contributes to the target attributes",
		}, nil
	}

	maxItems := input.MaxItems
	if maxItems <= 0 || maxItems > o.maxItems {
		maxItems = o.maxItems
	}
	if maxItems > len(candidates) {
		maxItems = len(candidates)
	}

	var best *evaluation
	var searchErr error

	ids := make([]string, 0, maxItems)
	for size := 1; size <= maxItems; size++ {
		stopped := forEachCombination(len(candidates), size, func(idx []int) bool {
			ids = ids[:0]
			subset := make([]*destiny.Equipment, 0, size)
			for _, i := range idx {
				subset = append(subset, candidates[i])
				ids = append(ids, candidates[i].ID)
			}

			stop := false
			err := o.forEachPenaltyConfig(subset, func(overrides map[string]destiny.Attribute) (bool, error) {
				eval, err := o.evaluate(input, ids, overrides)
				if err != nil {
					return true, err
				}
				if better(eval, best, input.PreferredAttr) {
					best = eval
				}
				if eval.allMet && eval.score == 0 {
					stop = true
					return true, nil
				}
				return false, nil
			})
			if err != nil {
				searchErr = err
				return true
			}
			return stop
		})
		if searchErr != nil {
			return nil, searchErr
		}
		if stopped {
			break
		}
	}

	if best == nil {
		// Every subset exceeded the locked-item bound
		return &SearchOutput{
			Found:              false,
			RequiredEquipments: []RecommendedItem{},
			Message:            "no combination could be evaluated within the locked-equipment limit",
		}, nil
	}

	out := &SearchOutput{
		Combination:     best.ids,
		Result:          best.result,
		BonusAllocation: best.alloc,
		PenaltyConfigs:  best.overrides,
		FinalAttributes: best.final,
	}

	if best.allMet {
		out.Found = true
		if best.score == 0 {
			out.Message = "found combination meeting all target attributes exactly"
		} else {
			out.Message = "found combination meeting all target attributes; some exceed the target"
		}
		return out, nil
	}

	missing := make(map[destiny.Attribute]float64)
	for _, a := range destiny.Attributes() {
		if t, ok := target[a]; ok {
			if gap := t - best.final[a]; gap > 0 {
				missing[a] = gap
			}
		}
	}

	var exoticType destiny.EquipmentType
	if input.Exotic != nil {
		exoticType = input.Exotic.Type
	}

	out.Found = false
	out.MissingAttributes = missing
	out.RequiredEquipments = o.recommend(target, missing, exoticType)
	out.Message = "no combination meets the target attributes; see recommended equipment"
	return out, nil
}

func validateSearchInput(input *SearchInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if !destiny.IsValidClass(input.Class) {
		vb.InvalidField("Class", "unknown class "+string(input.Class))
	}
	if len(input.TargetAttributes) == 0 {
		vb.Field("TargetAttributes", "at least one target attribute is required")
	}
	for a, v := range input.TargetAttributes {
		if !destiny.IsValidAttribute(a) {
			vb.InvalidField("TargetAttributes", "unknown attribute "+string(a))
		}
		if v < 0 {
			vb.InvalidField("TargetAttributes", "target for "+string(a)+" cannot be negative")
		}
	}
	if input.PreferredAttr != "" && !destiny.IsValidAttribute(input.PreferredAttr) {
		vb.InvalidField("PreferredAttr", "unknown attribute "+string(input.PreferredAttr))
	}
	return vb.Build()
}

// filterCandidates keeps items whose max-level projection contributes to at
// least one target attribute. The inventory returns items sorted by ID, so
// enumeration order is deterministic.
func (o *Optimizer) filterCandidates(class destiny.GuardianClass, target map[destiny.Attribute]float64) []*destiny.Equipment {
	var out []*destiny.Equipment
	for _, eq := range o.inventory.GetAll(class) {
		projected := eq.MaxLevelAttributes("")
		for a := range target {
			if projected[a] > 0 {
				out = append(out, eq)
				break
			}
		}
	}
	return out
}

// forEachPenaltyConfig enumerates every penalty assignment for the subset's
// locked-without-penalty items as a Cartesian product. Items already
// carrying a penalty, or without a lock, contribute no choice. The visit
// callback returns (stop, err).
func (o *Optimizer) forEachPenaltyConfig(subset []*destiny.Equipment, visit func(map[string]destiny.Attribute) (bool, error)) error {
	var open []*destiny.Equipment
	for _, eq := range subset {
		if eq.LockedAttr != "" && eq.PenaltyAttr == "" {
			open = append(open, eq)
		}
	}

	if len(open) > o.maxLockedItems {
		// Five choices per open item; skip rather than explode.
		return nil
	}

	if len(open) == 0 {
		_, err := visit(nil)
		return err
	}

	overrides := make(map[string]destiny.Attribute, len(open))
	var walk func(depth int) (bool, error)
	walk = func(depth int) (bool, error) {
		if depth == len(open) {
			return visit(overrides)
		}
		eq := open[depth]
		for _, a := range destiny.Attributes() {
			if a == eq.LockedAttr {
				continue
			}
			overrides[eq.ID] = a
			stop, err := walk(depth + 1)
			if stop || err != nil {
				return stop, err
			}
		}
		delete(overrides, eq.ID)
		return false, nil
	}
	_, err := walk(0)
	return err
}

// evaluate scores one candidate configuration
func (o *Optimizer) evaluate(input *SearchInput, ids []string, overrides map[string]destiny.Attribute) (*evaluation, error) {
	var overridesCopy map[string]destiny.Attribute
	if len(overrides) > 0 {
		overridesCopy = make(map[string]destiny.Attribute, len(overrides))
		for id, a := range overrides {
			overridesCopy[id] = a
		}
	}

	result, err := o.calc.Calculate(&calculator.Input{
		Class:            input.Class,
		EquipmentIDs:     ids,
		Exotic:           input.Exotic,
		PenaltyOverrides: overridesCopy,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to evaluate combination")
	}

	alloc := Allocate(result.TotalAttributes, input.TargetAttributes, input.PreferredAttr)
	final := Apply(result.TotalAttributes, alloc)
	score, allMet := scoreAttributes(final, input.TargetAttributes)

	return &evaluation{
		ids:       append([]string(nil), ids...),
		overrides: overridesCopy,
		result:    result,
		alloc:     alloc,
		final:     final,
		score:     score,
		allMet:    allMet,
	}, nil
}

// scoreAttributes charges a quadratic penalty per point under target and a
// mild linear one per point over. allMet is true iff nothing is under.
func scoreAttributes(final, target map[destiny.Attribute]float64) (float64, bool) {
	score := 0.0
	allMet := true
	for _, a := range destiny.Attributes() {
		t, ok := target[a]
		if !ok {
			continue
		}
		actual := final[a]
		if actual < t {
			gap := t - actual
			score += gap * gap
			allMet = false
		} else {
			score += (actual - t) * overshootWeight
		}
	}
	return score, allMet
}

// better reports whether cand should replace best
func better(cand, best *evaluation, preferred destiny.Attribute) bool {
	if best == nil {
		return true
	}
	if cand.allMet != best.allMet {
		return cand.allMet
	}
	if cand.allMet && preferred != "" {
		if cand.final[preferred] != best.final[preferred] {
			return cand.final[preferred] > best.final[preferred]
		}
	}
	return cand.score < best.score
}

// forEachCombination visits every k-subset of n indices in lexicographic
// order. The visit callback returns true to stop; the function reports
// whether it stopped early.
func forEachCombination(n, k int, visit func(idx []int) bool) bool {
	if k <= 0 || k > n {
		return false
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if visit(idx) {
			return true
		}
		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			return false
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
