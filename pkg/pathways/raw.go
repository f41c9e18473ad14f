package pathways

import "encoding/json"

// Raw types mirror the wire JSON exactly: snake_case keys, flat foreign
// keys, and sub-fields that may arrive either inline or JSON-encoded as
// strings. They are returned unchanged by AdminClient; AdminService maps
// them into domain types.

// RawFacetedRule is a rule as serialized by the service, with each facet
// split across a type field and a detail field.
type RawFacetedRule struct {
	ID          int             `json:"id"`
	URL         string          `json:"url"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata"`
	Who         string          `json:"who"`
	WhoDetail   json.RawMessage `json:"who_detail"`
	When        string          `json:"when"`
	WhenDetail  json.RawMessage `json:"when_detail"`
	What        string          `json:"what"`
	WhatDetail  json.RawMessage `json:"what_detail"`
}

// RawRule is an alias kept for symmetry with the other raw types.
type RawRule = RawFacetedRule

// RawStage is a pathway stage as serialized by the service.
type RawStage struct {
	ID          int       `json:"id"`
	URL         string    `json:"url"`
	Number      int       `json:"number"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsAdhoc     bool      `json:"is_adhoc"`
	IsDeleted   bool      `json:"is_deleted"`
	Rules       []RawRule `json:"rules"`
}

// RawPathwayIndexEvent is a pathway-level index event binding.
type RawPathwayIndexEvent struct {
	ID            int       `json:"id"`
	URL           string    `json:"url"`
	EventTypeSlug string    `json:"event_type_slug"`
	Rules         []RawRule `json:"rules"`
}

// RawPathway is a pathway definition as serialized by the service.
// Metadata arrives as a JSON object or as a string containing JSON,
// depending on the endpoint.
type RawPathway struct {
	ID          int                    `json:"id"`
	URL         string                 `json:"url"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	IsActive    bool                   `json:"is_active"`
	IsDeleted   bool                   `json:"is_deleted"`
	Language    string                 `json:"language"`
	Source      string                 `json:"source"`
	Metadata    json.RawMessage        `json:"metadata"`
	Stages      []RawStage             `json:"stages"`
	IndexEvents []RawPathwayIndexEvent `json:"index_events"`
}

// RawPathwaySnapshot is a pathway snapshot: a full pathway body plus
// snapshot versioning fields.
type RawPathwaySnapshot struct {
	RawPathway

	IsSnapshot          bool   `json:"is_snapshot"`
	IsSharedSnapshot    bool   `json:"is_shared_snapshot"`
	SnapshotNumber      int    `json:"snapshot_number"`
	SnapshotName        string `json:"snapshot_name"`
	SnapshotDescription string `json:"snapshot_description"`
}

// RawSharedPathwaySnapshot is a snapshot shared by a parent
// organisation, with provenance fields.
type RawSharedPathwaySnapshot struct {
	RawPathwaySnapshot

	ParentOrganisationSlug string              `json:"parent_organisation_slug"`
	ParentName             string              `json:"parent_name"`
	ParentDescription      string              `json:"parent_description"`
	ParentIndexEventTypes  []RawIndexEventType `json:"parent_index_event_types"`
}

// RawIndexEventType is an index event type definition. TranslatedNames
// arrives as a JSON object or as a string containing JSON.
type RawIndexEventType struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	OrderIndex      int             `json:"order_index"`
	TranslatedNames json.RawMessage `json:"translated_names"`
}

// RawJourneyIndexEvent is a dated milestone value on a journey.
type RawJourneyIndexEvent struct {
	ID            int    `json:"id"`
	EventTypeSlug string `json:"event_type_slug"`
	EventTypeName string `json:"event_type_name"`
	Value         string `json:"value"`
	UpdatedOn     string `json:"updated_on"`
}

// RawJourneyEntry is one event in a journey's timeline. Data carries the
// per-type payload and is interpreted by MapRawJourneyEntry.
type RawJourneyEntry struct {
	ID            int             `json:"id"`
	Type          string          `json:"type"`
	EventDatetime string          `json:"event_datetime"`
	CreatedOn     string          `json:"created_on"`
	IsActioned    bool            `json:"is_actioned"`
	ActionedDate  *string         `json:"actioned_date"`
	Data          json.RawMessage `json:"data"`
}

// RawAppUserJourney is a journey from the administrative API. The
// index_events and entries fields arrive either as hyperlinks or as
// inline arrays depending on the endpoint; both shapes are preserved.
type RawAppUserJourney struct {
	ID          int             `json:"id"`
	URL         string          `json:"url"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	CreatedOn   string          `json:"created_on"`
	IndexEvents json.RawMessage `json:"index_events"`
	Entries     json.RawMessage `json:"entries"`
}

// RawAppUserPathway joins an app user to a pathway.
type RawAppUserPathway struct {
	ID               int    `json:"id"`
	URL              string `json:"url"`
	Journey          int    `json:"journey"`
	OriginalPathway  int    `json:"original_pathway"`
	CurrentStageSlug string `json:"current_stage_slug"`
	DisabledRuleIDs  []int  `json:"disabled_rule_ids"`
	IsActive         bool   `json:"is_active"`
	OwnerID          string `json:"owner_id"`
	ExternalID       string `json:"external_id"`
}

// RawAppUser is an app user from the administrative API.
type RawAppUser struct {
	ID         int                 `json:"id"`
	URL        string              `json:"url"`
	IdentityID string              `json:"identity_id"`
	Pathways   []RawAppUserPathway `json:"pathways"`
	Journeys   []RawAppUserJourney `json:"journeys"`
}

// RawMe is the end-user profile as serialized by the service.
type RawMe struct {
	ID         int              `json:"id"`
	IdentityID string           `json:"identity_id"`
	Pathways   []RawUserPathway `json:"pathways"`
	Journeys   []RawUserJourney `json:"journeys"`
}

// RawUserPathway is an enrollment embedded in the end-user profile; the
// original pathway reference arrives inline rather than as a foreign key.
type RawUserPathway struct {
	ID                 int               `json:"id"`
	OriginalPathway    RawUserPathwayRef `json:"original_pathway"`
	CurrentStageSlug   string            `json:"current_stage_slug"`
	DisabledRuleIDs    []int             `json:"disabled_rule_ids"`
	LastProcessingTime string            `json:"last_processing_time"`
	NextProcessingTime string            `json:"next_processing_time"`
}

// RawUserPathwayRef is the abbreviated pathway reference inside a
// RawUserPathway.
type RawUserPathwayRef struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	IsDeleted   bool   `json:"is_deleted"`
}

// RawUserJourney is a journey embedded in the end-user profile. Entries
// is always a hyperlink here; index events are always inline.
type RawUserJourney struct {
	ID          int                    `json:"id"`
	StartDate   string                 `json:"start_date"`
	EndDate     string                 `json:"end_date"`
	CreatedOn   string                 `json:"created_on"`
	IndexEvents []RawJourneyIndexEvent `json:"index_events"`
	Entries     string                 `json:"entries"`
}
