package optimizer

import (
	"fmt"
	"sort"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
)

// maxRecommendations bounds the hypothetical items synthesized for a gap
const maxRecommendations = 3

// recommend synthesizes hypothetical armor pieces that would close the
// remaining gap: one per lacking attribute (largest gap first), each on a
// distinct armor slot, using whichever catalog archetype serves that
// attribute best. Leftover slots repeat the archetype for the largest
// shortfall until three recommendations exist or slots run out.
func (o *Optimizer) recommend(target, missing map[destiny.Attribute]float64, exoticType destiny.EquipmentType) []RecommendedItem {
	lacking := shortfallOrder(missing)
	if len(lacking) == 0 {
		return []RecommendedItem{}
	}

	var slots []destiny.EquipmentType
	for _, t := range destiny.EquipmentTypes() {
		if t != exoticType {
			slots = append(slots, t)
		}
	}

	recs := make([]RecommendedItem, 0, maxRecommendations)
	for i := 0; i < len(lacking) && len(recs) < maxRecommendations && len(recs) < len(slots); i++ {
		recs = append(recs, buildRecommendation(lacking[i], slots[len(recs)], target))
	}

	// Fill remaining slots against the single largest shortfall
	for len(recs) < maxRecommendations && len(recs) < len(slots) {
		recs = append(recs, buildRecommendation(lacking[0], slots[len(recs)], target))
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// buildRecommendation shapes one hypothetical item that maximizes the given
// attribute on the given slot. The first catalog archetype with the
// attribute as its main stat wins (main 30 beats sub 25); locking the
// attribute lifts a main roll to 35.
func buildRecommendation(attr destiny.Attribute, slot destiny.EquipmentType, target map[destiny.Attribute]float64) RecommendedItem {
	def, asMain := bestTagFor(attr)

	attrs := destiny.NewAttributeMap()
	var locked destiny.Attribute
	if asMain {
		locked = attr
		attrs[def.Main] = destiny.BaseMain + destiny.LockBonus
	} else {
		attrs[def.Main] = destiny.BaseMain
	}
	attrs[def.Sub] = destiny.BaseSub

	random := randomStatFor(def)
	attrs[random] = destiny.BaseRandom

	for _, a := range destiny.Attributes() {
		if attrs[a] == 0 {
			attrs[a] = destiny.MaxSupplement
		}
	}

	score := 0.0
	for a := range target {
		score += attrs[a]
	}

	return RecommendedItem{
		Name:       fmt.Sprintf("%s %s (suggested)", def.Tag, slot),
		Type:       slot,
		Tag:        def.Tag,
		LockedAttr: locked,
		TargetAttr: attr,
		Attributes: attrs,
		Score:      score,
	}
}

// bestTagFor picks the catalog archetype that gives the attribute its
// highest main/sub contribution; catalog order breaks ties. The second
// return reports whether the attribute landed as the main stat.
func bestTagFor(attr destiny.Attribute) (destiny.TagDefinition, bool) {
	for _, def := range destiny.TagCatalog() {
		if def.Main == attr {
			return def, true
		}
	}
	for _, def := range destiny.TagCatalog() {
		if def.Sub == attr {
			return def, false
		}
	}
	// Every attribute is some archetype's main stat, so this is
	// unreachable with the current catalog.
	return destiny.TagCatalog()[0], false
}

// randomStatFor returns the first attribute in canonical order disjoint
// from the archetype's main and sub stats
func randomStatFor(def destiny.TagDefinition) destiny.Attribute {
	for _, a := range destiny.Attributes() {
		if a != def.Main && a != def.Sub {
			return a
		}
	}
	return ""
}
