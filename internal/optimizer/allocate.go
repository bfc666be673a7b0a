package optimizer

import (
	"math"
	"sort"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
)

// Bonus point pool: five discrete units, each worth +10 to one attribute
const (
	BonusUnits     = 5
	BonusUnitValue = 10.0
)

// Allocate distributes the five bonus units against the target, given the
// attribute totals a combination already provides. The heuristic: cover
// each shortfall with ceil(shortfall/10) units when the pool suffices,
// otherwise seed one unit per lacking attribute and hand out the rest by
// descending shortfall. Surplus units go to the preferred attribute when one
// is named. Ties always break on canonical attribute order, so the result
// is deterministic.
func Allocate(base, target map[destiny.Attribute]float64, preferred destiny.Attribute) map[destiny.Attribute]int {
	targetAttrs := targetOrder(target)
	if len(targetAttrs) == 0 {
		if preferred != "" {
			return map[destiny.Attribute]int{preferred: BonusUnits}
		}
		return map[destiny.Attribute]int{}
	}

	shortfall := make(map[destiny.Attribute]float64, len(targetAttrs))
	hasShortfall := false
	for _, a := range targetAttrs {
		if gap := target[a] - base[a]; gap > 0 {
			shortfall[a] = gap
			hasShortfall = true
		}
	}

	if !hasShortfall {
		if preferred != "" {
			return map[destiny.Attribute]int{preferred: BonusUnits}
		}
		// Split as evenly as possible, remainder to the first target
		// attributes in canonical order.
		alloc := make(map[destiny.Attribute]int, len(targetAttrs))
		each := BonusUnits / len(targetAttrs)
		rem := BonusUnits % len(targetAttrs)
		for i, a := range targetAttrs {
			units := each
			if i < rem {
				units++
			}
			if units > 0 {
				alloc[a] = units
			}
		}
		return alloc
	}

	needed := make(map[destiny.Attribute]int, len(shortfall))
	totalNeeded := 0
	for a, gap := range shortfall {
		units := int(math.Ceil(gap / BonusUnitValue))
		needed[a] = units
		totalNeeded += units
	}

	alloc := make(map[destiny.Attribute]int, len(shortfall))
	byShortfall := shortfallOrder(shortfall)

	if totalNeeded <= BonusUnits {
		for a, units := range needed {
			alloc[a] = units
		}
		remaining := BonusUnits - totalNeeded
		if remaining > 0 {
			if preferred != "" {
				alloc[preferred] += remaining
			} else {
				distribute(alloc, byShortfall, remaining)
			}
		}
		return alloc
	}

	// The pool cannot cover every shortfall. Seed one unit per lacking
	// attribute when that fits, otherwise the descending-shortfall pass
	// hands out all five.
	if len(shortfall) <= BonusUnits {
		for a := range shortfall {
			alloc[a] = 1
		}
		distribute(alloc, byShortfall, BonusUnits-len(shortfall))
	} else {
		distribute(alloc, byShortfall, BonusUnits)
	}
	return alloc
}

// Apply folds an allocation into a copy of the given totals
func Apply(base map[destiny.Attribute]float64, alloc map[destiny.Attribute]int) map[destiny.Attribute]float64 {
	out := destiny.NewAttributeMap()
	for a, v := range base {
		out[a] = v
	}
	for a, units := range alloc {
		out[a] += float64(units) * BonusUnitValue
	}
	return out
}

// targetOrder returns the target's attributes in canonical order
func targetOrder(target map[destiny.Attribute]float64) []destiny.Attribute {
	out := make([]destiny.Attribute, 0, len(target))
	for _, a := range destiny.Attributes() {
		if _, ok := target[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// shortfallOrder sorts lacking attributes by descending shortfall, ties by
// canonical attribute order
func shortfallOrder(shortfall map[destiny.Attribute]float64) []destiny.Attribute {
	out := make([]destiny.Attribute, 0, len(shortfall))
	for _, a := range destiny.Attributes() {
		if shortfall[a] > 0 {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return shortfall[out[i]] > shortfall[out[j]]
	})
	return out
}

// distribute hands out units one at a time, cycling over the given order
func distribute(alloc map[destiny.Attribute]int, order []destiny.Attribute, units int) {
	if len(order) == 0 {
		return
	}
	for i := 0; units > 0; i++ {
		alloc[order[i%len(order)]]++
		units--
	}
}
