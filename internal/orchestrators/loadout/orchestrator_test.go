package loadout_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/errors"
	"github.com/guardianforge/loadout-api/internal/optimizer"
	"github.com/guardianforge/loadout-api/internal/orchestrators/loadout"
	"github.com/guardianforge/loadout-api/internal/pkg/clock"
	"github.com/guardianforge/loadout-api/internal/pkg/idgen"
	buildrepo "github.com/guardianforge/loadout-api/internal/repositories/build"
	"github.com/guardianforge/loadout-api/internal/testutils"
)

// fakeSearcher records the last search input and returns a canned result.
type fakeSearcher struct {
	lastInput *optimizer.SearchInput
	result    *optimizer.SearchOutput
	err       error
}

func (f *fakeSearcher) Search(input *optimizer.SearchInput) (*optimizer.SearchOutput, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	service  loadout.Service
	searcher *fakeSearcher
	repo     buildrepo.Repository
	now      time.Time
	ctx      context.Context
	cleanup  func()
}

func (s *OrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	repo, err := buildrepo.NewRedis(&buildrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo

	s.searcher = &fakeSearcher{
		result: &optimizer.SearchOutput{
			Found:       true,
			Combination: []string{"titan_helmet_001"},
			Message:     "target met",
		},
	}

	svc, err := loadout.NewOrchestrator(&loadout.Config{
		Optimizer:   s.searcher,
		BuildRepo:   repo,
		IDGenerator: idgen.NewSequential("build"),
		Clock:       &clock.Fixed{T: s.now},
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *OrchestratorTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *OrchestratorTestSuite) TestConfigureBuildDrivesSearch() {
	out, err := s.service.ConfigureBuild(s.ctx, &loadout.ConfigureBuildInput{
		Class: destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{
			destiny.AttributeMelee: 100,
		},
		PreferredAttr: destiny.AttributeMelee,
		MaxItems:      4,
	})
	s.Require().NoError(err)
	s.True(out.Result.Found)

	s.Require().NotNil(s.searcher.lastInput)
	s.Equal(destiny.ClassTitan, s.searcher.lastInput.Class)
	s.Equal(4, s.searcher.lastInput.MaxItems)
	s.Equal(destiny.AttributeMelee, s.searcher.lastInput.PreferredAttr)
	s.Nil(s.searcher.lastInput.Exotic)
}

func (s *OrchestratorTestSuite) TestConfigureBuildNormalizesExotic() {
	_, err := s.service.ConfigureBuild(s.ctx, &loadout.ConfigureBuildInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{destiny.AttributeMelee: 100},
		Exotic: &loadout.ExoticInput{
			Name: "One-Eyed Mask",
			Type: destiny.TypeHelmet,
			Attributes: map[destiny.Attribute]float64{
				destiny.AttributeMelee:  30,
				destiny.AttributeHealth: 25,
				destiny.AttributeSuper:  20,
			},
			Level: 9,
		},
	})
	s.Require().NoError(err)

	exotic := s.searcher.lastInput.Exotic
	s.Require().NotNil(exotic)
	s.Equal(30.0, exotic.Attributes[destiny.AttributeMelee])
	// unset attributes default to the supplement maximum
	s.Equal(destiny.MaxSupplement, exotic.Attributes[destiny.AttributeGrenade])
	s.Equal(destiny.MaxSupplement, exotic.Attributes[destiny.AttributeClass])
	s.Equal(destiny.MaxSupplement, exotic.Attributes[destiny.AttributeWeapons])
	// level is clamped into range
	s.Equal(destiny.MaxUpgradeLevel, exotic.Level)
}

func (s *OrchestratorTestSuite) TestConfigureBuildRejectsSparseExotic() {
	_, err := s.service.ConfigureBuild(s.ctx, &loadout.ConfigureBuildInput{
		Class:            destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{destiny.AttributeMelee: 100},
		Exotic: &loadout.ExoticInput{
			Name: "One-Eyed Mask",
			Type: destiny.TypeHelmet,
			Attributes: map[destiny.Attribute]float64{
				destiny.AttributeMelee:  30,
				destiny.AttributeHealth: 25,
			},
		},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSaveBuild() {
	out, err := s.service.SaveBuild(s.ctx, &loadout.SaveBuildInput{
		Name:             "raid melee",
		Class:            destiny.ClassTitan,
		TargetAttributes: map[destiny.Attribute]float64{destiny.AttributeMelee: 100},
		Result:           s.searcher.result,
	})
	s.Require().NoError(err)
	s.Equal("build_1", out.Build.ID)
	s.True(out.Build.CreatedAt.Equal(s.now))
	s.True(out.Build.UpdatedAt.Equal(s.now))

	got, err := s.repo.Get(s.ctx, buildrepo.GetInput{ID: "build_1"})
	s.Require().NoError(err)
	s.Equal("raid melee", got.Build.Name)
	s.Require().NotNil(got.Build.Result)
	s.Equal([]string{"titan_helmet_001"}, got.Build.Result.Combination)
}

func (s *OrchestratorTestSuite) TestSaveBuildNameUniquePerClass() {
	_, err := s.service.SaveBuild(s.ctx, &loadout.SaveBuildInput{
		Name:   "raid melee",
		Class:  destiny.ClassTitan,
		Result: s.searcher.result,
	})
	s.Require().NoError(err)

	// same name, same class: rejected regardless of case
	_, err = s.service.SaveBuild(s.ctx, &loadout.SaveBuildInput{
		Name:   "Raid Melee",
		Class:  destiny.ClassTitan,
		Result: s.searcher.result,
	})
	s.True(errors.IsAlreadyExists(err))

	// same name, different class: allowed
	_, err = s.service.SaveBuild(s.ctx, &loadout.SaveBuildInput{
		Name:   "raid melee",
		Class:  destiny.ClassHunter,
		Result: s.searcher.result,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestSaveBuildValidation() {
	_, err := s.service.SaveBuild(s.ctx, &loadout.SaveBuildInput{
		Class:  destiny.ClassTitan,
		Result: s.searcher.result,
	})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.service.SaveBuild(s.ctx, &loadout.SaveBuildInput{
		Name:  "raid melee",
		Class: destiny.ClassTitan,
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListBuildsFiltersByClass() {
	for _, in := range []*loadout.SaveBuildInput{
		{Name: "titan one", Class: destiny.ClassTitan, Result: s.searcher.result},
		{Name: "hunter one", Class: destiny.ClassHunter, Result: s.searcher.result},
	} {
		_, err := s.service.SaveBuild(s.ctx, in)
		s.Require().NoError(err)
	}

	all, err := s.service.ListBuilds(s.ctx, &loadout.ListBuildsInput{})
	s.Require().NoError(err)
	s.Len(all.Builds, 2)

	titan, err := s.service.ListBuilds(s.ctx, &loadout.ListBuildsInput{Class: destiny.ClassTitan})
	s.Require().NoError(err)
	s.Require().Len(titan.Builds, 1)
	s.Equal("titan one", titan.Builds[0].Name)

	_, err = s.service.ListBuilds(s.ctx, &loadout.ListBuildsInput{Class: "wizard"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestDeleteBuild() {
	out, err := s.service.SaveBuild(s.ctx, &loadout.SaveBuildInput{
		Name:   "raid melee",
		Class:  destiny.ClassTitan,
		Result: s.searcher.result,
	})
	s.Require().NoError(err)

	_, err = s.service.DeleteBuild(s.ctx, &loadout.DeleteBuildInput{ID: out.Build.ID})
	s.Require().NoError(err)

	_, err = s.service.DeleteBuild(s.ctx, &loadout.DeleteBuildInput{ID: out.Build.ID})
	s.True(errors.IsNotFound(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
