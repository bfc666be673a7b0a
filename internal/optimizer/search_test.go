package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/guardianforge/loadout-api/internal/calculator"
	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/inventory"
	"github.com/guardianforge/loadout-api/internal/optimizer"
)

// countingCombiner counts calculator invocations so tests can verify the
// exact-match short-circuit.
type countingCombiner struct {
	calc  *calculator.Calculator
	calls int
}

func (c *countingCombiner) Calculate(input *calculator.Input) (*calculator.Result, error) {
	c.calls++
	return c.calc.Calculate(input)
}

type SearchTestSuite struct {
	suite.Suite
	manager  *inventory.Manager
	combiner *countingCombiner
	opt      *optimizer.Optimizer
}

func (s *SearchTestSuite) SetupTest() {
	s.manager = inventory.NewManager()

	calc, err := calculator.New(&calculator.Config{Inventory: s.manager})
	s.Require().NoError(err)
	s.combiner = &countingCombiner{calc: calc}

	opt, err := optimizer.New(&optimizer.Config{
		Calculator: s.combiner,
		Inventory:  s.manager,
	})
	s.Require().NoError(err)
	s.opt = opt
}

func (s *SearchTestSuite) addItem(id string, tag destiny.Tag, random destiny.Attribute, locked destiny.Attribute) {
	def, ok := destiny.LookupTag(tag)
	s.Require().True(ok)

	eq, err := destiny.New(&destiny.Config{
		ID:   id,
		Name: string(tag) + " piece",
		Type: destiny.TypeHelmet,
		Tag:  tag,
		Attributes: map[destiny.Attribute]float64{
			def.Main: 30,
			def.Sub:  25,
			random:   20,
		},
		ClassRestriction: []destiny.GuardianClass{destiny.ClassTitan},
		LockedAttr:       locked,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.manager.Add(eq))
}

func (s *SearchTestSuite) TestEmptyInventoryReportsNotFound() {
	out, err := s.opt.Search(&optimizer.SearchInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{destiny.AttributeMelee: 50},
	})
	s.Require().NoError(err)

	s.False(out.Found)
	s.NotNil(out.RequiredEquipments)
	s.Empty(out.RequiredEquipments)
	s.Zero(s.combiner.calls, "nothing to evaluate without candidates")
}

func (s *SearchTestSuite) TestExactMatchShortCircuits() {
	// Max-level projections:
	//   001 brawler:   melee 30, health 25, super 20, rest 5
	//   002 grenadier: grenade 30, super 25, melee 20, rest 5
	//   003 paragon:   super 30, melee 25, grenade 20, rest 5
	//   004 gunner:    weapons 30, grenade 25, class 20, rest 5
	s.addItem("titan_helmet_001", destiny.TagBrawler, destiny.AttributeSuper, "")
	s.addItem("titan_helmet_002", destiny.TagGrenadier, destiny.AttributeMelee, "")
	s.addItem("titan_helmet_003", destiny.TagParagon, destiny.AttributeGrenade, "")
	s.addItem("titan_helmet_004", destiny.TagGunner, destiny.AttributeClass, "")

	// 001+002+003 totals melee 75, grenade 55, super 75; the shortfalls
	// 30/10/10 consume exactly five bonus units, landing on the target
	// with zero overshoot.
	out, err := s.opt.Search(&optimizer.SearchInput{
		Class: destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{
			destiny.AttributeMelee:   105,
			destiny.AttributeGrenade: 65,
			destiny.AttributeSuper:   85,
		},
	})
	s.Require().NoError(err)

	s.True(out.Found)
	s.Equal([]string{"titan_helmet_001", "titan_helmet_002", "titan_helmet_003"}, out.Combination)
	s.Equal(map[destiny.Attribute]int{
		destiny.AttributeMelee:   3,
		destiny.AttributeGrenade: 1,
		destiny.AttributeSuper:   1,
	}, out.BonusAllocation)
	s.Equal(105.0, out.FinalAttributes[destiny.AttributeMelee])
	s.Equal(65.0, out.FinalAttributes[destiny.AttributeGrenade])
	s.Equal(85.0, out.FinalAttributes[destiny.AttributeSuper])
	s.Contains(out.Message, "exactly")

	// Sizes 1 and 2 evaluate 4 and 6 subsets; the first size-3 subset is
	// the exact match. Nothing after it may be evaluated.
	s.Equal(4+6+1, s.combiner.calls)
}

func (s *SearchTestSuite) TestPreferredAttributeBreaksTiesAmongMet() {
	// 001 brawler: melee 30; 002 grenadier: melee 20 random, super 25 sub
	s.addItem("titan_helmet_001", destiny.TagBrawler, destiny.AttributeGrenade, "")
	s.addItem("titan_helmet_002", destiny.TagGrenadier, destiny.AttributeMelee, "")

	target := map[destiny.Attribute]float64{destiny.AttributeMelee: 22}

	// Without a preference the grenadier alone wins: all five forced
	// units land on melee either way, and 20 base overshoots less than
	// 30.
	out, err := s.opt.Search(&optimizer.SearchInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: target,
	})
	s.Require().NoError(err)
	s.True(out.Found)
	s.Equal([]string{"titan_helmet_002"}, out.Combination)
	s.Equal(70.0, out.FinalAttributes[destiny.AttributeMelee])

	// Preferring super: the pair totals super 30 and parks all five
	// bonus units there (80), beating either single item despite the
	// worse melee overshoot.
	out, err = s.opt.Search(&optimizer.SearchInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: target,
		PreferredAttr:    destiny.AttributeSuper,
	})
	s.Require().NoError(err)
	s.True(out.Found)
	s.Equal([]string{"titan_helmet_001", "titan_helmet_002"}, out.Combination)
	s.Equal(80.0, out.FinalAttributes[destiny.AttributeSuper])
}

func (s *SearchTestSuite) TestPenaltyAssignmentSearchForLockedItems() {
	s.addItem("titan_helmet_001", destiny.TagBrawler, destiny.AttributeGrenade, destiny.AttributeMelee)

	out, err := s.opt.Search(&optimizer.SearchInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{destiny.AttributeMelee: 35},
	})
	s.Require().NoError(err)

	s.True(out.Found)
	s.Equal([]string{"titan_helmet_001"}, out.Combination)
	// Every penalty choice scores identically here, so the first in
	// canonical attribute order sticks.
	s.Equal(map[string]destiny.Attribute{"titan_helmet_001": destiny.AttributeHealth},
		out.PenaltyConfigs)
	s.Equal(85.0, out.FinalAttributes[destiny.AttributeMelee], "35 locked main plus five bonus units")

	// Five penalty options, each a separate evaluation
	s.Equal(5, s.combiner.calls)

	// The trial assignments never leak into shared item state
	eq, ok := s.manager.Get(destiny.ClassTitan, "titan_helmet_001")
	s.Require().True(ok)
	s.Equal(destiny.Attribute(""), eq.PenaltyAttr)
}

func (s *SearchTestSuite) TestUnreachableTargetYieldsGapAnalysis() {
	s.addItem("titan_helmet_001", destiny.TagBrawler, destiny.AttributeGrenade, "")

	out, err := s.opt.Search(&optimizer.SearchInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{destiny.AttributeWeapons: 200},
	})
	s.Require().NoError(err)

	s.False(out.Found)
	// Supplements give 5 weapons, plus the full bonus pool: 55 of 200
	s.InDelta(145.0, out.MissingAttributes[destiny.AttributeWeapons], 0.001)

	s.Require().Len(out.RequiredEquipments, 3)
	seen := map[destiny.EquipmentType]bool{}
	for _, rec := range out.RequiredEquipments {
		s.Equal(destiny.TagGunner, rec.Tag, "gunner rolls weapons as main")
		s.Equal(destiny.AttributeWeapons, rec.TargetAttr)
		s.Equal(destiny.AttributeWeapons, rec.LockedAttr)
		s.Equal(35.0, rec.Attributes[destiny.AttributeWeapons], "locked main projects to 35")
		s.False(seen[rec.Type], "each recommendation takes a distinct slot")
		seen[rec.Type] = true
	}
}

func (s *SearchTestSuite) TestExoticJoinsEveryCombination() {
	s.addItem("titan_helmet_001", destiny.TagBulwark, destiny.AttributeMelee, "")

	exotic := &destiny.Exotic{
		Name: "One-Eyed Mask",
		Type: destiny.TypeChest,
		Attributes: map[destiny.Attribute]float64{
			destiny.AttributeHealth:  30,
			destiny.AttributeMelee:   25,
			destiny.AttributeGrenade: 20,
		},
	}

	out, err := s.opt.Search(&optimizer.SearchInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{destiny.AttributeHealth: 55},
		Exotic:           exotic,
	})
	s.Require().NoError(err)

	s.True(out.Found)
	s.Equal([]string{"titan_helmet_001"}, out.Combination, "exotic never appears among inventory IDs")
	s.Require().NotNil(out.Result)
	s.Equal(2, out.Result.EquipmentCount)
}

func (s *SearchTestSuite) TestInputValidation() {
	_, err := s.opt.Search(nil)
	s.Error(err)

	_, err = s.opt.Search(&optimizer.SearchInput{
		Class:            "exo",
		TargetAttributes: map[destiny.Attribute]float64{destiny.AttributeMelee: 10},
	})
	s.Error(err)

	_, err = s.opt.Search(&optimizer.SearchInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{},
	})
	s.Error(err)

	_, err = s.opt.Search(&optimizer.SearchInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{"luck": 10},
	})
	s.Error(err)
}

func TestSearchTestSuite(t *testing.T) {
	suite.Run(t, new(SearchTestSuite))
}
