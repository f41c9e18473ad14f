package client

import (
	"context"
	"encoding/json"
	"fmt"

	internalhttp "github.com/liquid-state/pathways-client/internal/http"
	"github.com/liquid-state/pathways-client/internal/paths"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// ListPathways lists pathway definitions. WithRules defaults to true
// when unset, matching the service default.
func (a *Admin) ListPathways(ctx context.Context, opts pathways.PathwayListOptions) (*pathways.ListResponse[pathways.RawPathway], error) {
	query := pageQuery(opts.Page)

	if opts.IsDeleted != nil {
		query.SetBool("is_deleted", *opts.IsDeleted)
	}

	withRules := true
	if opts.WithRules != nil {
		withRules = *opts.WithRules
	}

	query.SetBool("with_rules", withRules)

	if opts.OwnerID != "" {
		query.Set("owner_id", opts.OwnerID)
	}

	return getList[pathways.RawPathway](ctx, a, paths.ListPathways, nil, query, "unable to get list of pathways")
}

// GetPathway fetches one pathway definition.
func (a *Admin) GetPathway(ctx context.Context, pathwayID int, withRules bool) (*pathways.RawPathway, error) {
	query := pathways.NewParams()
	query.SetBool("with_rules", withRules)

	return getOne[pathways.RawPathway](ctx, a, paths.GetPathway, map[string]string{"pathwayId": itoa(pathwayID)}, query, fmt.Sprintf("unable to get data for pathway %d", pathwayID))
}

// CreatePathway creates a pathway definition. Metadata is serialized to
// a JSON string form field.
func (a *Admin) CreatePathway(ctx context.Context, data pathways.PathwayData) (*pathways.RawPathway, error) {
	form := internalhttp.NewForm()
	form.Set("name", data.Name)
	form.Set("description", data.Description)
	form.SetBool("is_active", data.IsActive)
	form.Set("metadata", encodeJSONField(data.Metadata))

	if data.OwnerID != "" {
		form.Set("owner_id", data.OwnerID)
	}

	if data.ExternalID != "" {
		form.Set("external_id", data.ExternalID)
	}

	return postOne[pathways.RawPathway](ctx, a, paths.CreatePathway, nil, form, "unable to create pathway")
}

// PatchPathway updates a pathway definition. Metadata is omitted from
// the request when nil.
func (a *Admin) PatchPathway(ctx context.Context, pathwayID int, update pathways.PathwayUpdate) (*pathways.RawPathway, error) {
	form := internalhttp.NewForm()
	form.Set("name", update.Name)
	form.Set("description", update.Description)
	form.SetBool("is_active", update.IsActive)
	form.SetBool("is_deleted", update.IsDeleted)

	if update.Metadata != nil {
		form.Set("metadata", encodeJSONField(update.Metadata))
	}

	return patchOne[pathways.RawPathway](ctx, a, paths.PatchPathway, map[string]string{"pathwayId": itoa(pathwayID)}, form, "unable to update pathway")
}

// DeletePathway removes a pathway definition.
func (a *Admin) DeletePathway(ctx context.Context, pathwayID int) (bool, error) {
	return a.delete(ctx, paths.DeletePathway, map[string]string{"pathwayId": itoa(pathwayID)}, "unable to delete pathway")
}

// DuplicatePathway copies a pathway, optionally overriding metadata and
// owner on the copy, and returns the new pathway.
func (a *Admin) DuplicatePathway(ctx context.Context, pathwayID int, updatedMetadata pathways.JSONObject, ownerID string) (*pathways.RawPathway, error) {
	form := internalhttp.NewForm()

	if updatedMetadata != nil {
		form.Set("updated_metadata", encodeJSONField(updatedMetadata))
	}

	if ownerID != "" {
		form.Set("updated_owner_id", ownerID)
	}

	return postOne[pathways.RawPathway](ctx, a, paths.DuplicatePathway, map[string]string{"pathwayId": itoa(pathwayID)}, form, "unable to duplicate pathway")
}

// ListPathwayStages lists a pathway's stages.
func (a *Admin) ListPathwayStages(ctx context.Context, pathwayID, page int) (*pathways.ListResponse[pathways.RawStage], error) {
	return getList[pathways.RawStage](ctx, a, paths.ListPathwayStages, map[string]string{"pathwayId": itoa(pathwayID)}, pageQuery(page), "unable to get list of pathway stages")
}

// CreatePathwayStage adds a stage to a pathway. Rule ids are serialized
// as a JSON array form field.
func (a *Admin) CreatePathwayStage(ctx context.Context, pathwayID int, data pathways.StageData) (*pathways.RawStage, error) {
	form := stageForm(data)

	return postOne[pathways.RawStage](ctx, a, paths.CreatePathwayStage, map[string]string{"pathwayId": itoa(pathwayID)}, form, "unable to create pathway stage")
}

// PatchPathwayStage updates a stage. is_deleted is only sent when set,
// so a plain update never undeletes a stage.
func (a *Admin) PatchPathwayStage(ctx context.Context, pathwayID, stageID int, data pathways.StageData) (*pathways.RawStage, error) {
	form := stageForm(data)
	if data.IsDeleted {
		form.SetBool("is_deleted", true)
	}

	params := map[string]string{"pathwayId": itoa(pathwayID), "stageId": itoa(stageID)}

	return patchOne[pathways.RawStage](ctx, a, paths.PatchPathwayStage, params, form, "unable to update pathway stage")
}

// DeletePathwayStage removes a stage from a pathway.
func (a *Admin) DeletePathwayStage(ctx context.Context, pathwayID, stageID int) (bool, error) {
	params := map[string]string{"pathwayId": itoa(pathwayID), "stageId": itoa(stageID)}

	return a.delete(ctx, paths.DeletePathwayStage, params, "unable to delete pathway stage")
}

// ListPathwayIndexEvents lists a pathway's index event bindings.
func (a *Admin) ListPathwayIndexEvents(ctx context.Context, pathwayID, page int) (*pathways.ListResponse[pathways.RawPathwayIndexEvent], error) {
	return getList[pathways.RawPathwayIndexEvent](ctx, a, paths.ListPathwayIndexEvents, map[string]string{"pathwayId": itoa(pathwayID)}, pageQuery(page), "unable to get list of pathway index events")
}

// CreatePathwayIndexEvent binds an index event type to a pathway. The
// rules field is omitted entirely when ruleIDs is nil.
func (a *Admin) CreatePathwayIndexEvent(ctx context.Context, pathwayID int, eventTypeSlug string, ruleIDs *pathways.RuleIDList) (*pathways.RawPathwayIndexEvent, error) {
	form := internalhttp.NewForm()
	form.Set("event_type_slug", eventTypeSlug)

	if ruleIDs != nil {
		form.Set("rules", ruleIDs.Encode())
	}

	return postOne[pathways.RawPathwayIndexEvent](ctx, a, paths.CreatePathwayIndexEvent, map[string]string{"pathwayId": itoa(pathwayID)}, form, "unable to create pathway index event")
}

// PatchPathwayIndexEvent updates a binding; empty or nil fields are
// omitted.
func (a *Admin) PatchPathwayIndexEvent(ctx context.Context, pathwayID, indexEventID int, eventTypeSlug string, ruleIDs *pathways.RuleIDList) (*pathways.RawPathwayIndexEvent, error) {
	form := internalhttp.NewForm()

	if eventTypeSlug != "" {
		form.Set("event_type_slug", eventTypeSlug)
	}

	if ruleIDs != nil {
		form.Set("rules", ruleIDs.Encode())
	}

	params := map[string]string{"pathwayId": itoa(pathwayID), "indexEventId": itoa(indexEventID)}

	return patchOne[pathways.RawPathwayIndexEvent](ctx, a, paths.PatchPathwayIndexEvent, params, form, "unable to update pathway index event")
}

// DeletePathwayIndexEvent removes a binding.
func (a *Admin) DeletePathwayIndexEvent(ctx context.Context, pathwayID, indexEventID int) (bool, error) {
	params := map[string]string{"pathwayId": itoa(pathwayID), "indexEventId": itoa(indexEventID)}

	return a.delete(ctx, paths.DeletePathwayIndexEvent, params, "unable to delete pathway index event")
}

func stageForm(data pathways.StageData) *internalhttp.Form {
	form := internalhttp.NewForm()
	form.SetInt("number", data.Number)
	form.Set("name", data.Name)
	form.Set("slug", data.Slug)
	form.Set("description", data.Description)
	form.SetBool("is_adhoc", data.IsAdhoc)
	form.Set("rules", pathways.RuleIDs(data.RuleIDs...).Encode())

	return form
}

func encodeJSONField(obj pathways.JSONObject) string {
	if obj == nil {
		return "{}"
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return "{}"
	}

	return string(data)
}
