package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"

	"github.com/guardianforge/loadout-api/internal/calculator"
	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	v1 "github.com/guardianforge/loadout-api/internal/handlers/loadout/v1"
	"github.com/guardianforge/loadout-api/internal/inventory"
	"github.com/guardianforge/loadout-api/internal/optimizer"
	"github.com/guardianforge/loadout-api/internal/orchestrators/armory"
	"github.com/guardianforge/loadout-api/internal/orchestrators/loadout"
	"github.com/guardianforge/loadout-api/internal/pkg/clock"
	"github.com/guardianforge/loadout-api/internal/pkg/idgen"
	buildrepo "github.com/guardianforge/loadout-api/internal/repositories/build"
	equipmentrepo "github.com/guardianforge/loadout-api/internal/repositories/equipment"
	"github.com/guardianforge/loadout-api/internal/testutils"
)

// HandlerTestSuite runs the HTTP layer against the real orchestrators over
// miniredis.
type HandlerTestSuite struct {
	suite.Suite
	router  *mux.Router
	cleanup func()
}

func (s *HandlerTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	eqRepo, err := equipmentrepo.NewRedis(&equipmentrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	bRepo, err := buildrepo.NewRedis(&buildrepo.RedisConfig{Client: client})
	s.Require().NoError(err)

	inv := inventory.NewManager()
	calc, err := calculator.New(&calculator.Config{Inventory: inv})
	s.Require().NoError(err)
	opt, err := optimizer.New(&optimizer.Config{Calculator: calc, Inventory: inv})
	s.Require().NoError(err)

	armorySvc, err := armory.NewOrchestrator(&armory.Config{
		EquipmentRepo: eqRepo,
		Inventory:     inv,
	})
	s.Require().NoError(err)

	buildSvc, err := loadout.NewOrchestrator(&loadout.Config{
		Optimizer:   opt,
		BuildRepo:   bRepo,
		IDGenerator: idgen.NewSequential("build"),
		Clock:       &clock.Fixed{T: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	})
	s.Require().NoError(err)

	s.Require().NoError(armorySvc.Hydrate(context.Background()))

	handler, err := v1.NewHandler(&v1.Config{
		ArmoryService: armorySvc,
		BuildService:  buildSvc,
	})
	s.Require().NoError(err)

	s.router = mux.NewRouter()
	handler.Register(s.router)
}

func (s *HandlerTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *HandlerTestSuite) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func (s *HandlerTestSuite) addEquipment(class, typ, tag, randomStat string) map[string]any {
	rec, body := s.do(http.MethodPost, "/api/equipment/add", map[string]any{
		"class":       class,
		"type":        typ,
		"tag":         tag,
		"random_stat": randomStat,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)
	s.Require().Equal(true, body["success"])
	return body["equipment"].(map[string]any)
}

func (s *HandlerTestSuite) TestHealthz() {
	rec, body := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(true, body["success"])
	s.Equal("ok", body["status"])
}

func (s *HandlerTestSuite) TestCatalogEndpoints() {
	rec, body := s.do(http.MethodGet, "/api/classes", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Len(body["classes"], 3)

	_, body = s.do(http.MethodGet, "/api/equipment-types", nil)
	s.Len(body["equipment_types"], 5)

	_, body = s.do(http.MethodGet, "/api/equipment-tags", nil)
	tags := body["equipment_tags"].([]any)
	s.Require().Len(tags, 6)
	first := tags[0].(map[string]any)
	s.Equal("brawler", first["tag"])
	s.Equal("melee", first["main"])
	s.Equal("health", first["sub"])

	_, body = s.do(http.MethodGet, "/api/attributes", nil)
	s.Len(body["attributes"], 6)
}

func (s *HandlerTestSuite) TestAddListDeleteEquipment() {
	created := s.addEquipment("titan", "helmet", "brawler", "super")
	s.Equal("titan_helmet_001", created["id"])

	rec, body := s.do(http.MethodGet, "/api/equipment/list?class=titan", nil)
	s.Equal(http.StatusOK, rec.Code)
	byClass := body["equipment"].(map[string]any)
	s.Len(byClass["titan"], 1)

	rec, body = s.do(http.MethodPost, "/api/equipment/delete", map[string]any{"id": "titan_helmet_001"})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("titan_helmet_001", body["deleted"])

	rec, body = s.do(http.MethodPost, "/api/equipment/delete", map[string]any{"id": "titan_helmet_001"})
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(false, body["success"])
	s.NotEmpty(body["error"])
}

func (s *HandlerTestSuite) TestAddEquipmentRejectsBadInput() {
	rec, body := s.do(http.MethodPost, "/api/equipment/add", map[string]any{
		"class":       "wizard",
		"type":        "helmet",
		"tag":         "brawler",
		"random_stat": "super",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(false, body["success"])

	rec, _ = s.do(http.MethodPost, "/api/equipment/add", map[string]any{
		"class":       "titan",
		"type":        "helmet",
		"tag":         "brawler",
		"random_stat": "super",
	})
	s.Equal(http.StatusCreated, rec.Code)

	// equivalent duplicate
	rec, _ = s.do(http.MethodPost, "/api/equipment/add", map[string]any{
		"class":       "titan",
		"type":        "helmet",
		"tag":         "brawler",
		"random_stat": "super",
	})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *HandlerTestSuite) TestConfigureBuild() {
	s.addEquipment("titan", "helmet", "brawler", "super")
	s.addEquipment("titan", "legs", "brawler", "grenade")

	rec, body := s.do(http.MethodPost, "/api/build/configure", map[string]any{
		"class": "titan",
		"target_attributes": map[string]float64{
			"melee": 80,
		},
	})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(true, body["success"])

	result := body["result"].(map[string]any)
	s.Equal(true, result["found"])
	s.NotEmpty(result["combination"])
}

func (s *HandlerTestSuite) TestSaveListDeleteBuild() {
	result := map[string]any{
		"found":       true,
		"combination": []string{"titan_helmet_001"},
		"message":     "target met",
	}

	rec, body := s.do(http.MethodPost, "/api/build/save", map[string]any{
		"name":   "raid melee",
		"class":  "titan",
		"result": result,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)
	build := body["build"].(map[string]any)
	s.Equal("build_1", build["id"])
	s.Equal("raid melee", build["name"])

	rec, body = s.do(http.MethodGet, "/api/build/list?class=titan", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Len(body["builds"], 1)

	rec, _ = s.do(http.MethodPost, "/api/build/save", map[string]any{
		"name":   "raid melee",
		"class":  "titan",
		"result": result,
	})
	s.Equal(http.StatusConflict, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/build/delete", map[string]any{"id": build["id"]})
	s.Equal(http.StatusOK, rec.Code)

	rec, body = s.do(http.MethodGet, "/api/build/list", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Empty(body["builds"])
}

func (s *HandlerTestSuite) TestMalformedBodyRejected() {
	req := httptest.NewRequest(http.MethodPost, "/api/equipment/add", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
