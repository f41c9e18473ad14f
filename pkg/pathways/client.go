package pathways

import (
	"context"
	"net/http"
)

// HTTPDoer executes HTTP requests. *http.Client satisfies it, as does a
// retryablehttp standard client; timeouts and retries belong to the
// injected transport, never to this package.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Logger interface for structured logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config holds construction options shared by the end-user and
// administrative clients. The zero value selects the production base URL,
// http.DefaultClient and no logging.
type Config struct {
	// BaseURL overrides the service base URL. For admin clients it may
	// contain the {{app_ubiquity_token}} placeholder, substituted once at
	// construction time.
	BaseURL string

	// HTTPClient is the transport used for every request.
	HTTPClient HTTPDoer

	// Logger receives request/response logs when set.
	Logger Logger

	// Debug enables request and response logging.
	Debug bool

	// UserAgent overrides the User-Agent header.
	UserAgent string
}

// Client is the end-user surface of the Pathways API, operating on the
// authenticated app user's own data.
type Client interface {
	// Me fetches the current user's profile. When useIdentityFilter is
	// true the request is scoped by the identity encoded in the JWT.
	Me(ctx context.Context, useIdentityFilter bool) (*Me, error)

	// Subject returns the identity id encoded in the client's JWT.
	Subject() (string, error)

	// EntriesForJourney fetches the first page of a journey's entries.
	EntriesForJourney(ctx context.Context, journey *Journey) (*JourneyEntriesPage, error)

	// EntriesNextPage follows a page's next link. It returns
	// ErrNoMorePages when the page has no next link.
	EntriesNextPage(ctx context.Context, page *JourneyEntriesPage) (*JourneyEntriesPage, error)

	// ListJourneyEntriesByContentType exhausts a journey's entry pages
	// and returns the rule-execution entries delivering the given content
	// type, oldest page first.
	ListJourneyEntriesByContentType(ctx context.Context, journey *Journey, contentType WhatType) ([]JourneyEntry, error)

	// OriginalPathway fetches the full pathway definition an enrollment
	// was created from. It requires the app token because pathway
	// definitions live under the administrative URL space.
	OriginalPathway(ctx context.Context, appToken string, pathwayID int) (*Pathway, error)

	// UpdateIndexEvents creates or updates several index events
	// concurrently and reports the outcome of every element.
	UpdateIndexEvents(ctx context.Context, appToken, appUserID string, journeyID int, events []IndexEventUpdate) ([]IndexEventResult, error)

	// ActionJourneyEntry marks a journey entry as actioned.
	ActionJourneyEntry(ctx context.Context, appToken, appUserID string, journeyID, entryID int) (*JourneyEntry, error)

	// TransitionToPathwayStage moves the user's enrollment to the named
	// stage and returns the service's plain-text response.
	TransitionToPathwayStage(ctx context.Context, appToken, appUserID string, appUserPathwayID int, stageSlug string) (string, error)
}

// AppUsersClient manages app users, their journeys and their pathway
// enrollments.
type AppUsersClient interface {
	ListAppUsers(ctx context.Context, page int, identityID string) (*ListResponse[RawAppUser], error)
	CreateAppUser(ctx context.Context, identityID string) (*RawAppUser, error)

	ListAppUserJourneys(ctx context.Context, appUserID string, page int) (*ListResponse[RawAppUserJourney], error)
	CreateAppUserJourney(ctx context.Context, appUserID, startDate string) (*RawAppUserJourney, error)
	UpdateAppUserJourney(ctx context.Context, appUserID string, journeyID int, startDate, endDate string) (*RawAppUserJourney, error)

	ListJourneyIndexEvents(ctx context.Context, appUserID string, journeyID, page int) (*ListResponse[RawJourneyIndexEvent], error)
	CreateJourneyIndexEvent(ctx context.Context, appUserID string, journeyID int, eventTypeSlug, value string) (*RawJourneyIndexEvent, error)
	UpdateJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int, eventTypeSlug, value string) (*RawJourneyIndexEvent, error)
	PatchJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int, value string) (*RawJourneyIndexEvent, error)
	DeleteJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int) (bool, error)
	ListJourneyEntries(ctx context.Context, appUserID string, journeyID, page int) (*ListResponse[RawJourneyEntry], error)

	// ListEntriesForJourney exhausts the pagination chain behind a
	// journey's entries hyperlink, accumulating every page in order.
	ListEntriesForJourney(ctx context.Context, entriesURL string) ([]RawJourneyEntry, error)
	// ListIndexEventsForJourney fetches the page behind a journey's
	// index-events hyperlink.
	ListIndexEventsForJourney(ctx context.Context, indexEventsURL string) ([]RawJourneyIndexEvent, error)

	ListAppUserPathways(ctx context.Context, appUserID string, page int) (*ListResponse[RawAppUserPathway], error)
	CreateAppUserPathway(ctx context.Context, appUserID string, data AppUserPathwayData) (*RawAppUserPathway, error)
	UpdateAppUserPathway(ctx context.Context, appUserID string, appUserPathwayID int, update AppUserPathwayUpdate) (*RawAppUserPathway, error)
	ProcessAppUserPathway(ctx context.Context, appUserID string, appUserPathwayID int) (string, error)
	TransitionAppUserToPathwayStage(ctx context.Context, appUserID string, appUserPathwayID int, stageSlug string) (string, error)
	TriggerAdhocRule(ctx context.Context, appUserID string, appUserPathwayID, ruleID int) (JSONObject, error)
}

// PathwaysAdminClient manages pathway definitions, stages and their
// index events.
type PathwaysAdminClient interface {
	ListPathways(ctx context.Context, opts PathwayListOptions) (*ListResponse[RawPathway], error)
	GetPathway(ctx context.Context, pathwayID int, withRules bool) (*RawPathway, error)
	CreatePathway(ctx context.Context, data PathwayData) (*RawPathway, error)
	PatchPathway(ctx context.Context, pathwayID int, update PathwayUpdate) (*RawPathway, error)
	DeletePathway(ctx context.Context, pathwayID int) (bool, error)
	DuplicatePathway(ctx context.Context, pathwayID int, updatedMetadata JSONObject, ownerID string) (*RawPathway, error)

	ListPathwayStages(ctx context.Context, pathwayID, page int) (*ListResponse[RawStage], error)
	CreatePathwayStage(ctx context.Context, pathwayID int, data StageData) (*RawStage, error)
	PatchPathwayStage(ctx context.Context, pathwayID, stageID int, data StageData) (*RawStage, error)
	DeletePathwayStage(ctx context.Context, pathwayID, stageID int) (bool, error)

	ListPathwayIndexEvents(ctx context.Context, pathwayID, page int) (*ListResponse[RawPathwayIndexEvent], error)
	CreatePathwayIndexEvent(ctx context.Context, pathwayID int, eventTypeSlug string, ruleIDs *RuleIDList) (*RawPathwayIndexEvent, error)
	PatchPathwayIndexEvent(ctx context.Context, pathwayID, indexEventID int, eventTypeSlug string, ruleIDs *RuleIDList) (*RawPathwayIndexEvent, error)
	DeletePathwayIndexEvent(ctx context.Context, pathwayID, indexEventID int) (bool, error)
}

// RulesAdminClient manages the shared rule catalogue.
type RulesAdminClient interface {
	ListRules(ctx context.Context, page int, ownerID string) (*ListResponse[RawRule], error)
	GetRule(ctx context.Context, ruleID int) (*RawRule, error)
	CreateRule(ctx context.Context, data RuleData) (*RawRule, error)
	PatchRule(ctx context.Context, ruleID int, data RuleData) (*RawRule, error)
	DeleteRule(ctx context.Context, ruleID int) (bool, error)
}

// IndexEventTypesAdminClient manages index event type definitions.
type IndexEventTypesAdminClient interface {
	ListIndexEventTypes(ctx context.Context, page int) (*ListResponse[RawIndexEventType], error)
	CreateIndexEventType(ctx context.Context, name, slug string, translatedNames map[string]string) (*RawIndexEventType, error)
	PatchIndexEventType(ctx context.Context, indexEventTypeID int, update IndexEventTypeUpdate) (*RawIndexEventType, error)
	DeleteIndexEventType(ctx context.Context, indexEventTypeID int) (bool, error)
}

// SnapshotsAdminClient manages pathway snapshots and snapshot sharing.
type SnapshotsAdminClient interface {
	ListPathwaySnapshots(ctx context.Context, pathwayID, page int) (*ListResponse[RawPathwaySnapshot], error)
	CreatePathwaySnapshot(ctx context.Context, pathwayID int, data PathwaySnapshotData) (*RawPathwaySnapshot, error)
	SharePathwaySnapshot(ctx context.Context, pathwayID, snapshotID int) (*RawPathwaySnapshot, error)
	UnsharePathwaySnapshot(ctx context.Context, pathwayID, snapshotID int) (*RawPathwaySnapshot, error)

	ListSharedPathwaySnapshots(ctx context.Context, page int) (*ListResponse[RawSharedPathwaySnapshot], error)

	// UseSharedPathwaySnapshot instantiates a shared snapshot as a local
	// pathway. indexEventTypes maps the snapshot's index event type slugs
	// onto this application's slugs.
	UseSharedPathwaySnapshot(ctx context.Context, snapshotID int, indexEventTypes map[string]string) (*RawPathway, error)
}

// EngagementChecksAdminClient manages per-pathway engagement checks.
type EngagementChecksAdminClient interface {
	ListEngagementChecks(ctx context.Context, pathwayID, page int) (*ListResponse[EngagementCheck], error)
	GetEngagementCheck(ctx context.Context, pathwayID, checkID int) (*EngagementCheck, error)
	CreateEngagementCheck(ctx context.Context, pathwayID int, data NewEngagementCheck) (*EngagementCheck, error)
	PatchEngagementCheck(ctx context.Context, pathwayID int, check EngagementCheck) (*EngagementCheck, error)
	DeleteEngagementCheck(ctx context.Context, pathwayID, checkID int) (bool, error)
}

// AdminClient is the administrative surface of the Pathways API. Its
// methods return raw wire records; use AdminService for mapped domain
// records.
type AdminClient interface {
	AppUsersClient
	PathwaysAdminClient
	RulesAdminClient
	IndexEventTypesAdminClient
	SnapshotsAdminClient
	EngagementChecksAdminClient
}

// AdminService wraps an AdminClient and converts raw records into domain
// records. Operations whose responses carry no record body (deletes,
// transitions) delegate unchanged.
type AdminService interface {
	ListAppUsers(ctx context.Context, page int, identityID string) (*ListResponse[AppUser], error)
	CreateAppUser(ctx context.Context, identityID string) (*AppUser, error)

	ListAppUserJourneys(ctx context.Context, appUserID string, page int) (*ListResponse[AppUserJourney], error)
	CreateAppUserJourney(ctx context.Context, appUserID, startDate string) (*AppUserJourney, error)
	UpdateAppUserJourney(ctx context.Context, appUserID string, journeyID int, startDate, endDate string) (*AppUserJourney, error)

	ListJourneyIndexEvents(ctx context.Context, appUserID string, journeyID, page int) (*ListResponse[JourneyIndexEvent], error)
	CreateJourneyIndexEvent(ctx context.Context, appUserID string, journeyID int, eventTypeSlug, value string) (*JourneyIndexEvent, error)
	UpdateJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int, eventTypeSlug, value string) (*JourneyIndexEvent, error)
	PatchJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int, value string) (*JourneyIndexEvent, error)
	DeleteJourneyIndexEvent(ctx context.Context, appUserID string, journeyID, indexEventID int) (bool, error)
	ListJourneyEntries(ctx context.Context, appUserID string, journeyID, page int) (*ListResponse[JourneyEntry], error)
	ListEntriesForJourney(ctx context.Context, journey *AppUserJourney) ([]JourneyEntry, error)
	ListIndexEventsForJourney(ctx context.Context, journey *AppUserJourney) ([]JourneyIndexEvent, error)

	ListAppUserPathways(ctx context.Context, appUserID string, page int) (*ListResponse[AppUserPathway], error)
	CreateAppUserPathway(ctx context.Context, appUserID string, data AppUserPathwayData) (*AppUserPathway, error)
	UpdateAppUserPathway(ctx context.Context, appUserID string, appUserPathwayID int, update AppUserPathwayUpdate) (*AppUserPathway, error)
	ProcessAppUserPathway(ctx context.Context, appUserID string, appUserPathwayID int) (string, error)
	TransitionAppUserToPathwayStage(ctx context.Context, appUserID string, appUserPathwayID int, stageSlug string) (string, error)
	TriggerAdhocRule(ctx context.Context, appUserID string, appUserPathwayID, ruleID int) (JSONObject, error)

	ListPathways(ctx context.Context, opts PathwayListOptions) (*ListResponse[Pathway], error)
	GetPathway(ctx context.Context, pathwayID int, withRules bool) (*Pathway, error)
	CreatePathway(ctx context.Context, data PathwayData) (*Pathway, error)
	PatchPathway(ctx context.Context, pathwayID int, update PathwayUpdate) (*Pathway, error)
	DeletePathway(ctx context.Context, pathwayID int) (bool, error)
	DuplicatePathway(ctx context.Context, pathwayID int, updatedMetadata JSONObject, ownerID string) (*Pathway, error)

	ListPathwayStages(ctx context.Context, pathwayID, page int) (*ListResponse[Stage], error)
	CreatePathwayStage(ctx context.Context, pathwayID int, data StageData) (*Stage, error)
	PatchPathwayStage(ctx context.Context, pathwayID, stageID int, data StageData) (*Stage, error)
	DeletePathwayStage(ctx context.Context, pathwayID, stageID int) (bool, error)

	ListPathwayIndexEvents(ctx context.Context, pathwayID, page int) (*ListResponse[PathwayIndexEvent], error)
	CreatePathwayIndexEvent(ctx context.Context, pathwayID int, eventTypeSlug string, ruleIDs *RuleIDList) (*PathwayIndexEvent, error)
	PatchPathwayIndexEvent(ctx context.Context, pathwayID, indexEventID int, eventTypeSlug string, ruleIDs *RuleIDList) (*PathwayIndexEvent, error)
	DeletePathwayIndexEvent(ctx context.Context, pathwayID, indexEventID int) (bool, error)

	ListRules(ctx context.Context, page int, ownerID string) (*ListResponse[Rule], error)
	GetRule(ctx context.Context, ruleID int) (*Rule, error)
	CreateRule(ctx context.Context, data RuleData) (*Rule, error)
	PatchRule(ctx context.Context, ruleID int, data RuleData) (*Rule, error)
	DeleteRule(ctx context.Context, ruleID int) (bool, error)

	ListIndexEventTypes(ctx context.Context, page int) (*ListResponse[IndexEventType], error)
	CreateIndexEventType(ctx context.Context, name, slug string, translatedNames map[string]string) (*IndexEventType, error)
	PatchIndexEventType(ctx context.Context, indexEventTypeID int, update IndexEventTypeUpdate) (*IndexEventType, error)
	DeleteIndexEventType(ctx context.Context, indexEventTypeID int) (bool, error)

	ListPathwaySnapshots(ctx context.Context, pathwayID, page int) (*ListResponse[PathwaySnapshot], error)
	CreatePathwaySnapshot(ctx context.Context, pathwayID int, data PathwaySnapshotData) (*PathwaySnapshot, error)
	SharePathwaySnapshot(ctx context.Context, pathwayID, snapshotID int) (*PathwaySnapshot, error)
	UnsharePathwaySnapshot(ctx context.Context, pathwayID, snapshotID int) (*PathwaySnapshot, error)
	ListSharedPathwaySnapshots(ctx context.Context, page int) (*ListResponse[SharedPathwaySnapshot], error)
	UseSharedPathwaySnapshot(ctx context.Context, snapshotID int, indexEventTypes map[string]string) (*Pathway, error)

	ListEngagementChecks(ctx context.Context, pathwayID, page int) (*ListResponse[EngagementCheck], error)
	GetEngagementCheck(ctx context.Context, pathwayID, checkID int) (*EngagementCheck, error)
	CreateEngagementCheck(ctx context.Context, pathwayID int, data NewEngagementCheck) (*EngagementCheck, error)
	PatchEngagementCheck(ctx context.Context, pathwayID int, check EngagementCheck) (*EngagementCheck, error)
	DeleteEngagementCheck(ctx context.Context, pathwayID, checkID int) (bool, error)
}
