package client

import (
	"context"

	internalhttp "github.com/liquid-state/pathways-client/internal/http"
	"github.com/liquid-state/pathways-client/internal/paths"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// ListAppUsers lists app users. Both filters are optional; page is
// emitted first when set, matching the order callers observe on the
// wire.
func (a *Admin) ListAppUsers(ctx context.Context, page int, identityID string) (*pathways.ListResponse[pathways.RawAppUser], error) {
	query := pageQuery(page)
	if identityID != "" {
		query.Set("identity_id", identityID)
	}

	return getList[pathways.RawAppUser](ctx, a, paths.ListAppUsers, nil, query, "unable to get list of app users")
}

// CreateAppUser registers an app user for the given identity.
func (a *Admin) CreateAppUser(ctx context.Context, identityID string) (*pathways.RawAppUser, error) {
	form := internalhttp.NewForm()
	form.Set("identity_id", identityID)

	return postOne[pathways.RawAppUser](ctx, a, paths.CreateAppUser, nil, form, "unable to create app user")
}

// ListAppUserJourneys lists an app user's journeys.
func (a *Admin) ListAppUserJourneys(ctx context.Context, appUserID string, page int) (*pathways.ListResponse[pathways.RawAppUserJourney], error) {
	return getList[pathways.RawAppUserJourney](ctx, a, paths.ListAppUserJourneys, map[string]string{"appUserId": appUserID}, pageQuery(page), "unable to get list of app user journeys")
}

// CreateAppUserJourney starts a journey for an app user.
func (a *Admin) CreateAppUserJourney(ctx context.Context, appUserID, startDate string) (*pathways.RawAppUserJourney, error) {
	form := internalhttp.NewForm()
	form.Set("start_date", startDate)

	return postOne[pathways.RawAppUserJourney](ctx, a, paths.CreateAppUserJourney, map[string]string{"appUserId": appUserID}, form, "unable to create app user journey")
}

// UpdateAppUserJourney updates a journey's start and end dates. Empty
// values are omitted and left unchanged.
func (a *Admin) UpdateAppUserJourney(ctx context.Context, appUserID string, journeyID int, startDate, endDate string) (*pathways.RawAppUserJourney, error) {
	form := internalhttp.NewForm()
	if startDate != "" {
		form.Set("start_date", startDate)
	}

	if endDate != "" {
		form.Set("end_date", endDate)
	}

	params := map[string]string{"appUserId": appUserID, "journeyId": itoa(journeyID)}

	return patchOne[pathways.RawAppUserJourney](ctx, a, paths.PatchAppUserJourney, params, form, "unable to update app user journey")
}

// ListJourneyIndexEvents lists the index events recorded on a journey.
func (a *Admin) ListJourneyIndexEvents(ctx context.Context, appUserID string, journeyID, page int) (*pathways.ListResponse[pathways.RawJourneyIndexEvent], error) {
	params := map[string]string{"appUserId": appUserID, "journeyId": itoa(journeyID)}

	return getList[pathways.RawJourneyIndexEvent](ctx, a, paths.ListAppUserJourneyIndexEvents, params, nil, "unable to get list of index events")
}

// CreateJourneyIndexEvent records a new index event on a journey.
func (a *Admin) CreateJourneyIndexEvent(ctx context.Context, appUserID string, journeyID int, eventTypeSlug, value string) (*pathways.RawJourneyIndexEvent, error) {
	form := internalhttp.NewForm()
	form.Set("event_type_slug", eventTypeSlug)
	form.Set("value", value)

	params := map[string]string{"appUserId": appUserID, "journeyId": itoa(journeyID)}

	return postOne[pathways.RawJourneyIndexEvent](ctx, a, paths.CreateAppUserJourneyIndexEvent, params, form, "unable to create index event")
}

// UpdateJourneyIndexEvent replaces an index event's type and value.
func (a *Admin) UpdateJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int, eventTypeSlug, value string) (*pathways.RawJourneyIndexEvent, error) {
	form := internalhttp.NewForm()
	form.Set("event_type_slug", eventTypeSlug)
	form.Set("value", value)

	params := map[string]string{
		"appUserId":    appUserID,
		"journeyId":    itoa(journeyID),
		"indexEventId": itoa(indexEventID),
	}

	return putOne[pathways.RawJourneyIndexEvent](ctx, a, paths.UpdateAppUserJourneyIndexEvent, params, form, "unable to update index event")
}

// PatchJourneyIndexEvent updates only an index event's value.
func (a *Admin) PatchJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int, value string) (*pathways.RawJourneyIndexEvent, error) {
	form := internalhttp.NewForm()
	form.Set("value", value)

	params := map[string]string{
		"appUserId":    appUserID,
		"journeyId":    itoa(journeyID),
		"indexEventId": itoa(indexEventID),
	}

	return patchOne[pathways.RawJourneyIndexEvent](ctx, a, paths.PatchAppUserJourneyIndexEvent, params, form, "unable to update index event")
}

// DeleteJourneyIndexEvent removes an index event from a journey.
func (a *Admin) DeleteJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int) (bool, error) {
	params := map[string]string{
		"appUserId":    appUserID,
		"journeyId":    itoa(journeyID),
		"indexEventId": itoa(indexEventID),
	}

	return a.delete(ctx, paths.DeleteAppUserJourneyIndexEvent, params, "unable to delete index event")
}

// ListJourneyEntries fetches one page of a journey's timeline.
func (a *Admin) ListJourneyEntries(ctx context.Context, appUserID string, journeyID, page int) (*pathways.ListResponse[pathways.RawJourneyEntry], error) {
	params := map[string]string{"appUserId": appUserID, "journeyId": itoa(journeyID)}

	return getList[pathways.RawJourneyEntry](ctx, a, paths.ListAppUserJourneyEntries, params, pageQuery(page), "unable to list entries for journey")
}

// ListAppUserPathways lists an app user's pathway enrollments.
func (a *Admin) ListAppUserPathways(ctx context.Context, appUserID string, page int) (*pathways.ListResponse[pathways.RawAppUserPathway], error) {
	return getList[pathways.RawAppUserPathway](ctx, a, paths.ListAppUserPathways, map[string]string{"appUserId": appUserID}, pageQuery(page), "unable to get list of app user pathways")
}

// CreateAppUserPathway enrolls an app user in a pathway. Disabled rule
// ids are always serialized as a JSON array, whichever form the caller
// supplied.
func (a *Admin) CreateAppUserPathway(ctx context.Context, appUserID string, data pathways.AppUserPathwayData) (*pathways.RawAppUserPathway, error) {
	form := internalhttp.NewForm()
	form.SetInt("journey_id", data.JourneyID)
	form.SetInt("original_pathway_id", data.OriginalPathwayID)
	form.Set("current_stage_slug", data.CurrentStageSlug)
	form.Set("disabled_rule_ids", data.DisabledRuleIDs.Encode())

	if data.OwnerID != "" {
		form.Set("owner_id", data.OwnerID)
	}

	if data.ExternalID != "" {
		form.Set("external_id", data.ExternalID)
	}

	return postOne[pathways.RawAppUserPathway](ctx, a, paths.CreateAppUserPathway, map[string]string{"appUserId": appUserID}, form, "unable to create app user pathway")
}

// UpdateAppUserPathway partially updates an enrollment; nil fields are
// left unchanged.
func (a *Admin) UpdateAppUserPathway(ctx context.Context, appUserID string, appUserPathwayID int, update pathways.AppUserPathwayUpdate) (*pathways.RawAppUserPathway, error) {
	form := internalhttp.NewForm()

	if update.CurrentStageSlug != nil {
		form.Set("current_stage_slug", *update.CurrentStageSlug)
	}

	if update.DisabledRuleIDs != nil {
		form.Set("disabled_rule_ids", update.DisabledRuleIDs.Encode())
	}

	if update.IsActive != nil {
		form.SetBool("is_active", *update.IsActive)
	}

	if update.OwnerID != nil {
		form.Set("owner_id", *update.OwnerID)
	}

	if update.ExternalID != nil {
		form.Set("external_id", *update.ExternalID)
	}

	params := map[string]string{"appUserId": appUserID, "appUserPathwayId": itoa(appUserPathwayID)}

	return patchOne[pathways.RawAppUserPathway](ctx, a, paths.PatchAppUserPathway, params, form, "unable to update app user pathway")
}

// ProcessAppUserPathway asks the service to evaluate an enrollment's
// rules now. The response is a plain-text acknowledgement.
func (a *Admin) ProcessAppUserPathway(ctx context.Context, appUserID string, appUserPathwayID int) (string, error) {
	params := map[string]string{"appUserId": appUserID, "appUserPathwayId": itoa(appUserPathwayID)}

	return a.postText(ctx, paths.ProcessAppUserPathway, params, nil, "unable to process app user pathway")
}

// TransitionAppUserToPathwayStage moves an enrollment to the named
// stage. The response is a plain-text acknowledgement.
func (a *Admin) TransitionAppUserToPathwayStage(ctx context.Context, appUserID string, appUserPathwayID int, stageSlug string) (string, error) {
	form := internalhttp.NewForm()
	form.Set("new_stage_slug", stageSlug)

	params := map[string]string{"appUserId": appUserID, "appUserPathwayId": itoa(appUserPathwayID)}

	return a.postText(ctx, paths.TransitionAppUserToPathwayStage, params, form, "unable to transition app user to pathway stage")
}

// TriggerAdhocRule fires an adhoc rule against an enrollment.
func (a *Admin) TriggerAdhocRule(ctx context.Context, appUserID string, appUserPathwayID, ruleID int) (pathways.JSONObject, error) {
	form := internalhttp.NewForm()
	form.SetInt("rule_id", ruleID)

	params := map[string]string{"appUserId": appUserID, "appUserPathwayId": itoa(appUserPathwayID)}

	result, err := postOne[pathways.JSONObject](ctx, a, paths.TriggerAdhocRule, params, form, "unable to trigger adhoc rule")
	if err != nil {
		return nil, err
	}

	return *result, nil
}
