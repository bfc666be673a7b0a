// Package v1 exposes the loadout API over HTTP with JSON payloads.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/guardianforge/loadout-api/internal/entities/destiny"
	"github.com/guardianforge/loadout-api/internal/errors"
	"github.com/guardianforge/loadout-api/internal/orchestrators/armory"
	"github.com/guardianforge/loadout-api/internal/orchestrators/loadout"
)

// Handler serves the loadout HTTP API
type Handler struct {
	armory armory.Service
	builds loadout.Service
}

// Config holds the dependencies for the handler
type Config struct {
	ArmoryService armory.Service
	BuildService  loadout.Service
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ArmoryService == nil {
		vb.RequiredField("ArmoryService")
	}
	if c.BuildService == nil {
		vb.RequiredField("BuildService")
	}

	return vb.Build()
}

// NewHandler creates a new HTTP handler with the provided dependencies
func NewHandler(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		armory: cfg.ArmoryService,
		builds: cfg.BuildService,
	}, nil
}

// Register mounts all routes on the router
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/classes", h.handleClasses).Methods(http.MethodGet)
	api.HandleFunc("/equipment-types", h.handleEquipmentTypes).Methods(http.MethodGet)
	api.HandleFunc("/equipment-tags", h.handleEquipmentTags).Methods(http.MethodGet)
	api.HandleFunc("/attributes", h.handleAttributes).Methods(http.MethodGet)

	api.HandleFunc("/equipment/add", h.handleAddEquipment).Methods(http.MethodPost)
	api.HandleFunc("/equipment/list", h.handleListEquipment).Methods(http.MethodGet)
	api.HandleFunc("/equipment/delete", h.handleDeleteEquipment).Methods(http.MethodPost)

	api.HandleFunc("/build/configure", h.handleConfigureBuild).Methods(http.MethodPost)
	api.HandleFunc("/build/save", h.handleSaveBuild).Methods(http.MethodPost)
	api.HandleFunc("/build/list", h.handleListBuilds).Methods(http.MethodGet)
	api.HandleFunc("/build/delete", h.handleDeleteBuild).Methods(http.MethodPost)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) handleClasses(w http.ResponseWriter, r *http.Request) {
	out, err := h.armory.GetCatalogs(r.Context(), &armory.GetCatalogsInput{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"classes": out.Classes})
}

func (h *Handler) handleEquipmentTypes(w http.ResponseWriter, r *http.Request) {
	out, err := h.armory.GetCatalogs(r.Context(), &armory.GetCatalogsInput{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"equipment_types": out.EquipmentTypes})
}

func (h *Handler) handleEquipmentTags(w http.ResponseWriter, r *http.Request) {
	out, err := h.armory.GetCatalogs(r.Context(), &armory.GetCatalogsInput{})
	if err != nil {
		writeError(w, err)
		return
	}

	tags := make([]tagModel, 0, len(out.Tags))
	for _, def := range out.Tags {
		tags = append(tags, tagModel{Tag: def.Tag, Main: def.Main, Sub: def.Sub})
	}
	writeSuccess(w, http.StatusOK, map[string]any{"equipment_tags": tags})
}

func (h *Handler) handleAttributes(w http.ResponseWriter, r *http.Request) {
	out, err := h.armory.GetCatalogs(r.Context(), &armory.GetCatalogsInput{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"attributes": out.Attributes})
}

func (h *Handler) handleAddEquipment(w http.ResponseWriter, r *http.Request) {
	var req addEquipmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.armory.AddEquipment(r.Context(), &armory.AddEquipmentInput{
		Class:      req.Class,
		Type:       req.Type,
		Tag:        req.Tag,
		RandomStat: req.RandomStat,
		Name:       req.Name,
		LockedAttr: req.LockedAttr,
		SetName:    req.SetName,
		Level:      req.Level,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"equipment": toEquipmentModel(out.Equipment)})
}

func (h *Handler) handleListEquipment(w http.ResponseWriter, r *http.Request) {
	out, err := h.armory.ListEquipment(r.Context(), &armory.ListEquipmentInput{
		Class: destiny.GuardianClass(r.URL.Query().Get("class")),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	byClass := make(map[destiny.GuardianClass][]equipmentModel, len(out.ByClass))
	for class, pieces := range out.ByClass {
		byClass[class] = toEquipmentModels(pieces)
	}
	writeSuccess(w, http.StatusOK, map[string]any{"equipment": byClass})
}

func (h *Handler) handleDeleteEquipment(w http.ResponseWriter, r *http.Request) {
	var req deleteEquipmentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := h.armory.RemoveEquipment(r.Context(), &armory.RemoveEquipmentInput{
		Class: req.Class,
		ID:    req.ID,
	}); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": req.ID})
}

func (h *Handler) handleConfigureBuild(w http.ResponseWriter, r *http.Request) {
	var req configureBuildRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.builds.ConfigureBuild(r.Context(), &loadout.ConfigureBuildInput{
		Class:            req.Class,
		TargetAttributes: req.TargetAttributes,
		MaxItems:         req.MaxItems,
		PreferredAttr:    req.PreferredAttr,
		Exotic:           toExoticInput(req.Exotic),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"result": out.Result})
}

func (h *Handler) handleSaveBuild(w http.ResponseWriter, r *http.Request) {
	var req saveBuildRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.builds.SaveBuild(r.Context(), &loadout.SaveBuildInput{
		Name:             req.Name,
		Class:            req.Class,
		TargetAttributes: req.TargetAttributes,
		PreferredAttr:    req.PreferredAttr,
		Exotic:           toExoticInput(req.Exotic),
		Result:           req.Result,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"build": toBuildModel(out.Build)})
}

func (h *Handler) handleListBuilds(w http.ResponseWriter, r *http.Request) {
	out, err := h.builds.ListBuilds(r.Context(), &loadout.ListBuildsInput{
		Class: destiny.GuardianClass(r.URL.Query().Get("class")),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	builds := make([]buildModel, 0, len(out.Builds))
	for _, b := range out.Builds {
		builds = append(builds, toBuildModel(b))
	}
	writeSuccess(w, http.StatusOK, map[string]any{"builds": builds})
}

func (h *Handler) handleDeleteBuild(w http.ResponseWriter, r *http.Request) {
	var req deleteBuildRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if _, err := h.builds.DeleteBuild(r.Context(), &loadout.DeleteBuildInput{ID: req.ID}); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": req.ID})
}

func toExoticInput(req *exoticRequest) *loadout.ExoticInput {
	if req == nil {
		return nil
	}
	return &loadout.ExoticInput{
		Name:       req.Name,
		Type:       req.Type,
		Tag:        req.Tag,
		Attributes: req.Attributes,
		Level:      req.Level,
	}
}

// decodeBody parses a JSON request body, writing an error response on
// failure. Returns false when the caller should stop.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, errors.InvalidArgumentf("invalid request body: %v", err))
		return false
	}
	return true
}

func writeSuccess(w http.ResponseWriter, status int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	writeJSON(w, status, body)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, code.HTTPStatus(), map[string]any{
		"success": false,
		"error":   errors.GetMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
