package client

import (
	"context"

	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// AdminService wraps a raw admin client and converts its wire records
// into domain records. Operations without a record body delegate
// unchanged.
type AdminService struct {
	client pathways.AdminClient
}

// NewAdminService creates a mapping service over the given raw client.
func NewAdminService(client pathways.AdminClient) (*AdminService, error) {
	if client == nil {
		return nil, pathways.ErrMissingAdminClient
	}

	return &AdminService{client: client}, nil
}

func mapList[R any, D any](raw *pathways.ListResponse[R], mapOne func(R) D) *pathways.ListResponse[D] {
	if raw == nil {
		return nil
	}

	results := make([]D, len(raw.Results))
	for i, r := range raw.Results {
		results[i] = mapOne(r)
	}

	return &pathways.ListResponse[D]{
		Count:    raw.Count,
		Next:     raw.Next,
		Previous: raw.Previous,
		Results:  results,
	}
}

func mapOne[R any, D any](raw *R, err error, mapFn func(R) D) (*D, error) {
	if err != nil {
		return nil, err
	}

	mapped := mapFn(*raw)

	return &mapped, nil
}

// ListAppUsers lists app users as domain records.
func (s *AdminService) ListAppUsers(ctx context.Context, page int, identityID string) (*pathways.ListResponse[pathways.AppUser], error) {
	raw, err := s.client.ListAppUsers(ctx, page, identityID)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawAppUser), nil
}

// CreateAppUser registers an app user and returns the mapped record.
func (s *AdminService) CreateAppUser(ctx context.Context, identityID string) (*pathways.AppUser, error) {
	raw, err := s.client.CreateAppUser(ctx, identityID)

	return mapOne(raw, err, pathways.MapRawAppUser)
}

// ListAppUserJourneys lists an app user's journeys as domain records.
func (s *AdminService) ListAppUserJourneys(ctx context.Context, appUserID string, page int) (*pathways.ListResponse[pathways.AppUserJourney], error) {
	raw, err := s.client.ListAppUserJourneys(ctx, appUserID, page)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawAppUserJourney), nil
}

// CreateAppUserJourney starts a journey and returns the mapped record.
func (s *AdminService) CreateAppUserJourney(ctx context.Context, appUserID, startDate string) (*pathways.AppUserJourney, error) {
	raw, err := s.client.CreateAppUserJourney(ctx, appUserID, startDate)

	return mapOne(raw, err, pathways.MapRawAppUserJourney)
}

// UpdateAppUserJourney updates a journey and returns the mapped record.
func (s *AdminService) UpdateAppUserJourney(ctx context.Context, appUserID string, journeyID int, startDate, endDate string) (*pathways.AppUserJourney, error) {
	raw, err := s.client.UpdateAppUserJourney(ctx, appUserID, journeyID, startDate, endDate)

	return mapOne(raw, err, pathways.MapRawAppUserJourney)
}

// ListJourneyIndexEvents lists a journey's index events as domain
// records.
func (s *AdminService) ListJourneyIndexEvents(ctx context.Context, appUserID string, journeyID, page int) (*pathways.ListResponse[pathways.JourneyIndexEvent], error) {
	raw, err := s.client.ListJourneyIndexEvents(ctx, appUserID, journeyID, page)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawJourneyIndexEvent), nil
}

// CreateJourneyIndexEvent records an index event and returns the mapped
// record.
func (s *AdminService) CreateJourneyIndexEvent(ctx context.Context, appUserID string, journeyID int, eventTypeSlug, value string) (*pathways.JourneyIndexEvent, error) {
	raw, err := s.client.CreateJourneyIndexEvent(ctx, appUserID, journeyID, eventTypeSlug, value)

	return mapOne(raw, err, pathways.MapRawJourneyIndexEvent)
}

// UpdateJourneyIndexEvent replaces an index event and returns the mapped
// record.
func (s *AdminService) UpdateJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int, eventTypeSlug, value string) (*pathways.JourneyIndexEvent, error) {
	raw, err := s.client.UpdateJourneyIndexEvent(ctx, appUserID, journeyID, indexEventID, eventTypeSlug, value)

	return mapOne(raw, err, pathways.MapRawJourneyIndexEvent)
}

// PatchJourneyIndexEvent updates an index event's value and returns the
// mapped record.
func (s *AdminService) PatchJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int, value string) (*pathways.JourneyIndexEvent, error) {
	raw, err := s.client.PatchJourneyIndexEvent(ctx, appUserID, journeyID, indexEventID, value)

	return mapOne(raw, err, pathways.MapRawJourneyIndexEvent)
}

// DeleteJourneyIndexEvent removes an index event.
func (s *AdminService) DeleteJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int) (bool, error) {
	return s.client.DeleteJourneyIndexEvent(ctx, appUserID, journeyID, indexEventID)
}

// ListJourneyEntries fetches one page of a journey's timeline as domain
// records.
func (s *AdminService) ListJourneyEntries(ctx context.Context, appUserID string, journeyID, page int) (*pathways.ListResponse[pathways.JourneyEntry], error) {
	raw, err := s.client.ListJourneyEntries(ctx, appUserID, journeyID, page)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawJourneyEntry), nil
}

// ListEntriesForJourney exhausts the journey's entries hyperlink chain
// and maps every entry in order.
func (s *AdminService) ListEntriesForJourney(ctx context.Context, journey *pathways.AppUserJourney) ([]pathways.JourneyEntry, error) {
	raw, err := s.client.ListEntriesForJourney(ctx, journey.EntriesURL)
	if err != nil {
		return nil, err
	}

	entries := make([]pathways.JourneyEntry, len(raw))
	for i, r := range raw {
		entries[i] = pathways.MapRawJourneyEntry(r)
	}

	return entries, nil
}

// ListIndexEventsForJourney fetches the journey's index events through
// its hyperlink. Journeys whose index events arrived inline are answered
// locally without a request.
func (s *AdminService) ListIndexEventsForJourney(ctx context.Context, journey *pathways.AppUserJourney) ([]pathways.JourneyIndexEvent, error) {
	if journey.IndexEventsURL == "" {
		return journey.IndexEvents, nil
	}

	raw, err := s.client.ListIndexEventsForJourney(ctx, journey.IndexEventsURL)
	if err != nil {
		return nil, err
	}

	events := make([]pathways.JourneyIndexEvent, len(raw))
	for i, r := range raw {
		events[i] = pathways.MapRawJourneyIndexEvent(r)
	}

	return events, nil
}

// ListAppUserPathways lists an app user's enrollments as domain records.
func (s *AdminService) ListAppUserPathways(ctx context.Context, appUserID string, page int) (*pathways.ListResponse[pathways.AppUserPathway], error) {
	raw, err := s.client.ListAppUserPathways(ctx, appUserID, page)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawAppUserPathway), nil
}

// CreateAppUserPathway enrolls an app user and returns the mapped
// record.
func (s *AdminService) CreateAppUserPathway(ctx context.Context, appUserID string, data pathways.AppUserPathwayData) (*pathways.AppUserPathway, error) {
	raw, err := s.client.CreateAppUserPathway(ctx, appUserID, data)

	return mapOne(raw, err, pathways.MapRawAppUserPathway)
}

// UpdateAppUserPathway updates an enrollment and returns the mapped
// record.
func (s *AdminService) UpdateAppUserPathway(ctx context.Context, appUserID string, appUserPathwayID int, update pathways.AppUserPathwayUpdate) (*pathways.AppUserPathway, error) {
	raw, err := s.client.UpdateAppUserPathway(ctx, appUserID, appUserPathwayID, update)

	return mapOne(raw, err, pathways.MapRawAppUserPathway)
}

// ProcessAppUserPathway delegates to the raw client.
func (s *AdminService) ProcessAppUserPathway(ctx context.Context, appUserID string, appUserPathwayID int) (string, error) {
	return s.client.ProcessAppUserPathway(ctx, appUserID, appUserPathwayID)
}

// TransitionAppUserToPathwayStage delegates to the raw client.
func (s *AdminService) TransitionAppUserToPathwayStage(ctx context.Context, appUserID string, appUserPathwayID int, stageSlug string) (string, error) {
	return s.client.TransitionAppUserToPathwayStage(ctx, appUserID, appUserPathwayID, stageSlug)
}

// TriggerAdhocRule delegates to the raw client.
func (s *AdminService) TriggerAdhocRule(ctx context.Context, appUserID string, appUserPathwayID, ruleID int) (pathways.JSONObject, error) {
	return s.client.TriggerAdhocRule(ctx, appUserID, appUserPathwayID, ruleID)
}

// ListPathways lists pathway definitions as domain records.
func (s *AdminService) ListPathways(ctx context.Context, opts pathways.PathwayListOptions) (*pathways.ListResponse[pathways.Pathway], error) {
	raw, err := s.client.ListPathways(ctx, opts)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawPathway), nil
}

// GetPathway fetches one pathway as a domain record.
func (s *AdminService) GetPathway(ctx context.Context, pathwayID int, withRules bool) (*pathways.Pathway, error) {
	raw, err := s.client.GetPathway(ctx, pathwayID, withRules)

	return mapOne(raw, err, pathways.MapRawPathway)
}

// CreatePathway creates a pathway and returns the mapped record.
func (s *AdminService) CreatePathway(ctx context.Context, data pathways.PathwayData) (*pathways.Pathway, error) {
	raw, err := s.client.CreatePathway(ctx, data)

	return mapOne(raw, err, pathways.MapRawPathway)
}

// PatchPathway updates a pathway and returns the mapped record.
func (s *AdminService) PatchPathway(ctx context.Context, pathwayID int, update pathways.PathwayUpdate) (*pathways.Pathway, error) {
	raw, err := s.client.PatchPathway(ctx, pathwayID, update)

	return mapOne(raw, err, pathways.MapRawPathway)
}

// DeletePathway removes a pathway.
func (s *AdminService) DeletePathway(ctx context.Context, pathwayID int) (bool, error) {
	return s.client.DeletePathway(ctx, pathwayID)
}

// DuplicatePathway copies a pathway and returns the mapped copy.
func (s *AdminService) DuplicatePathway(ctx context.Context, pathwayID int, updatedMetadata pathways.JSONObject, ownerID string) (*pathways.Pathway, error) {
	raw, err := s.client.DuplicatePathway(ctx, pathwayID, updatedMetadata, ownerID)

	return mapOne(raw, err, pathways.MapRawPathway)
}

// ListPathwayStages lists a pathway's stages as domain records.
func (s *AdminService) ListPathwayStages(ctx context.Context, pathwayID, page int) (*pathways.ListResponse[pathways.Stage], error) {
	raw, err := s.client.ListPathwayStages(ctx, pathwayID, page)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawStage), nil
}

// CreatePathwayStage adds a stage and returns the mapped record.
func (s *AdminService) CreatePathwayStage(ctx context.Context, pathwayID int, data pathways.StageData) (*pathways.Stage, error) {
	raw, err := s.client.CreatePathwayStage(ctx, pathwayID, data)

	return mapOne(raw, err, pathways.MapRawStage)
}

// PatchPathwayStage updates a stage and returns the mapped record.
func (s *AdminService) PatchPathwayStage(ctx context.Context, pathwayID, stageID int, data pathways.StageData) (*pathways.Stage, error) {
	raw, err := s.client.PatchPathwayStage(ctx, pathwayID, stageID, data)

	return mapOne(raw, err, pathways.MapRawStage)
}

// DeletePathwayStage removes a stage.
func (s *AdminService) DeletePathwayStage(ctx context.Context, pathwayID, stageID int) (bool, error) {
	return s.client.DeletePathwayStage(ctx, pathwayID, stageID)
}

// ListPathwayIndexEvents lists a pathway's index event bindings as
// domain records.
func (s *AdminService) ListPathwayIndexEvents(ctx context.Context, pathwayID, page int) (*pathways.ListResponse[pathways.PathwayIndexEvent], error) {
	raw, err := s.client.ListPathwayIndexEvents(ctx, pathwayID, page)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawPathwayIndexEvent), nil
}

// CreatePathwayIndexEvent binds an index event type and returns the
// mapped record.
func (s *AdminService) CreatePathwayIndexEvent(ctx context.Context, pathwayID int, eventTypeSlug string, ruleIDs *pathways.RuleIDList) (*pathways.PathwayIndexEvent, error) {
	raw, err := s.client.CreatePathwayIndexEvent(ctx, pathwayID, eventTypeSlug, ruleIDs)

	return mapOne(raw, err, pathways.MapRawPathwayIndexEvent)
}

// PatchPathwayIndexEvent updates a binding and returns the mapped
// record.
func (s *AdminService) PatchPathwayIndexEvent(ctx context.Context, pathwayID, indexEventID int, eventTypeSlug string, ruleIDs *pathways.RuleIDList) (*pathways.PathwayIndexEvent, error) {
	raw, err := s.client.PatchPathwayIndexEvent(ctx, pathwayID, indexEventID, eventTypeSlug, ruleIDs)

	return mapOne(raw, err, pathways.MapRawPathwayIndexEvent)
}

// DeletePathwayIndexEvent removes a binding.
func (s *AdminService) DeletePathwayIndexEvent(ctx context.Context, pathwayID, indexEventID int) (bool, error) {
	return s.client.DeletePathwayIndexEvent(ctx, pathwayID, indexEventID)
}

// ListRules lists the rule catalogue as domain records.
func (s *AdminService) ListRules(ctx context.Context, page int, ownerID string) (*pathways.ListResponse[pathways.Rule], error) {
	raw, err := s.client.ListRules(ctx, page, ownerID)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawRule), nil
}

// GetRule fetches one rule as a domain record.
func (s *AdminService) GetRule(ctx context.Context, ruleID int) (*pathways.Rule, error) {
	raw, err := s.client.GetRule(ctx, ruleID)

	return mapOne(raw, err, pathways.MapRawRule)
}

// CreateRule creates a rule and returns the mapped record.
func (s *AdminService) CreateRule(ctx context.Context, data pathways.RuleData) (*pathways.Rule, error) {
	raw, err := s.client.CreateRule(ctx, data)

	return mapOne(raw, err, pathways.MapRawRule)
}

// PatchRule updates a rule and returns the mapped record.
func (s *AdminService) PatchRule(ctx context.Context, ruleID int, data pathways.RuleData) (*pathways.Rule, error) {
	raw, err := s.client.PatchRule(ctx, ruleID, data)

	return mapOne(raw, err, pathways.MapRawRule)
}

// DeleteRule removes a rule.
func (s *AdminService) DeleteRule(ctx context.Context, ruleID int) (bool, error) {
	return s.client.DeleteRule(ctx, ruleID)
}

// ListIndexEventTypes lists index event types as domain records.
func (s *AdminService) ListIndexEventTypes(ctx context.Context, page int) (*pathways.ListResponse[pathways.IndexEventType], error) {
	raw, err := s.client.ListIndexEventTypes(ctx, page)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawIndexEventType), nil
}

// CreateIndexEventType creates an index event type and returns the
// mapped record.
func (s *AdminService) CreateIndexEventType(ctx context.Context, name, slug string, translatedNames map[string]string) (*pathways.IndexEventType, error) {
	raw, err := s.client.CreateIndexEventType(ctx, name, slug, translatedNames)

	return mapOne(raw, err, pathways.MapRawIndexEventType)
}

// PatchIndexEventType updates an index event type and returns the
// mapped record.
func (s *AdminService) PatchIndexEventType(ctx context.Context, indexEventTypeID int, update pathways.IndexEventTypeUpdate) (*pathways.IndexEventType, error) {
	raw, err := s.client.PatchIndexEventType(ctx, indexEventTypeID, update)

	return mapOne(raw, err, pathways.MapRawIndexEventType)
}

// DeleteIndexEventType removes an index event type.
func (s *AdminService) DeleteIndexEventType(ctx context.Context, indexEventTypeID int) (bool, error) {
	return s.client.DeleteIndexEventType(ctx, indexEventTypeID)
}

// ListPathwaySnapshots lists a pathway's snapshots as domain records.
func (s *AdminService) ListPathwaySnapshots(ctx context.Context, pathwayID, page int) (*pathways.ListResponse[pathways.PathwaySnapshot], error) {
	raw, err := s.client.ListPathwaySnapshots(ctx, pathwayID, page)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawPathwaySnapshot), nil
}

// CreatePathwaySnapshot captures a snapshot and returns the mapped
// record.
func (s *AdminService) CreatePathwaySnapshot(ctx context.Context, pathwayID int, data pathways.PathwaySnapshotData) (*pathways.PathwaySnapshot, error) {
	raw, err := s.client.CreatePathwaySnapshot(ctx, pathwayID, data)

	return mapOne(raw, err, pathways.MapRawPathwaySnapshot)
}

// SharePathwaySnapshot publishes a snapshot and returns the mapped
// record.
func (s *AdminService) SharePathwaySnapshot(ctx context.Context, pathwayID, snapshotID int) (*pathways.PathwaySnapshot, error) {
	raw, err := s.client.SharePathwaySnapshot(ctx, pathwayID, snapshotID)

	return mapOne(raw, err, pathways.MapRawPathwaySnapshot)
}

// UnsharePathwaySnapshot withdraws a snapshot and returns the mapped
// record.
func (s *AdminService) UnsharePathwaySnapshot(ctx context.Context, pathwayID, snapshotID int) (*pathways.PathwaySnapshot, error) {
	raw, err := s.client.UnsharePathwaySnapshot(ctx, pathwayID, snapshotID)

	return mapOne(raw, err, pathways.MapRawPathwaySnapshot)
}

// ListSharedPathwaySnapshots lists shared snapshots as domain records.
func (s *AdminService) ListSharedPathwaySnapshots(ctx context.Context, page int) (*pathways.ListResponse[pathways.SharedPathwaySnapshot], error) {
	raw, err := s.client.ListSharedPathwaySnapshots(ctx, page)
	if err != nil {
		return nil, err
	}

	return mapList(raw, pathways.MapRawSharedPathwaySnapshot), nil
}

// UseSharedPathwaySnapshot instantiates a shared snapshot and returns
// the new pathway as a domain record. indexEventTypes maps the
// snapshot's index event type slugs onto this application's slugs.
func (s *AdminService) UseSharedPathwaySnapshot(ctx context.Context, snapshotID int, indexEventTypes map[string]string) (*pathways.Pathway, error) {
	raw, err := s.client.UseSharedPathwaySnapshot(ctx, snapshotID, indexEventTypes)

	return mapOne(raw, err, pathways.MapRawPathway)
}

// ListEngagementChecks delegates to the raw client; engagement checks
// are already schema-shaped.
func (s *AdminService) ListEngagementChecks(ctx context.Context, pathwayID, page int) (*pathways.ListResponse[pathways.EngagementCheck], error) {
	return s.client.ListEngagementChecks(ctx, pathwayID, page)
}

// GetEngagementCheck delegates to the raw client.
func (s *AdminService) GetEngagementCheck(ctx context.Context, pathwayID, checkID int) (*pathways.EngagementCheck, error) {
	return s.client.GetEngagementCheck(ctx, pathwayID, checkID)
}

// CreateEngagementCheck delegates to the raw client.
func (s *AdminService) CreateEngagementCheck(ctx context.Context, pathwayID int, data pathways.NewEngagementCheck) (*pathways.EngagementCheck, error) {
	return s.client.CreateEngagementCheck(ctx, pathwayID, data)
}

// PatchEngagementCheck delegates to the raw client.
func (s *AdminService) PatchEngagementCheck(ctx context.Context, pathwayID int, check pathways.EngagementCheck) (*pathways.EngagementCheck, error) {
	return s.client.PatchEngagementCheck(ctx, pathwayID, check)
}

// DeleteEngagementCheck delegates to the raw client.
func (s *AdminService) DeleteEngagementCheck(ctx context.Context, pathwayID, checkID int) (bool, error) {
	return s.client.DeleteEngagementCheck(ctx, pathwayID, checkID)
}
