package pathways

import "encoding/json"

// JSONObject is an opaque JSON object passed through to or from the
// service without interpretation (rule details, metadata, ...).
type JSONObject map[string]interface{}

// WhoType selects the audience facet of a rule.
type WhoType string

// Audience facet values.
const (
	WhoAll   WhoType = "ALL"
	WhoGroup WhoType = "GROUP"
)

// WhenType selects the trigger facet of a rule.
type WhenType string

// Trigger facet values.
const (
	WhenDelay           WhenType = "DELAY"
	WhenIndexEvent      WhenType = "INDEX_EVENT"
	WhenStageTransition WhenType = "STAGE_TRANSITION"
	WhenFormSubmitted   WhenType = "FORM_SUBMITTED"
)

// WhatType selects the action facet of a rule, and doubles as the
// content type of the feature a rule delivers.
type WhatType string

// Action facet values.
const (
	WhatFeatureDocument WhatType = "FEATURE_DOCUMENT"
	WhatFeatureForm     WhatType = "FEATURE_FORM"
	WhatMessage         WhatType = "MESSAGE"
)

// ListResponse represents the paginated envelope returned by the
// service's list endpoints.
type ListResponse[T any] struct {
	Count    int     `json:"count"              yaml:"count"`
	Next     *string `json:"next"               yaml:"next"`
	Previous *string `json:"previous"           yaml:"previous"`
	Results  []T     `json:"results"            yaml:"results"`
}

// RuleFacet is one of the three orthogonal facets of a Rule. The details
// payload is interpreted by the remote service, not by this client.
type RuleFacet[T ~string] struct {
	Type    T          `json:"type"    yaml:"type"`
	Details JSONObject `json:"details" yaml:"details"`
}

// Rule determines audience (who), trigger (when) and action (what) for
// automated pathway behavior.
type Rule struct {
	ID          int                `json:"id"          yaml:"id"`
	URL         string             `json:"url"         yaml:"url"`
	Name        string             `json:"name"        yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	Metadata    JSONObject         `json:"metadata"    yaml:"metadata"`
	Who         RuleFacet[WhoType] `json:"who"         yaml:"who"`
	When        RuleFacet[WhenType] `json:"when"        yaml:"when"`
	What        RuleFacet[WhatType] `json:"what"        yaml:"what"`
}

// Stage is an ordered step within a Pathway.
type Stage struct {
	ID          int    `json:"id"          yaml:"id"`
	URL         string `json:"url"         yaml:"url"`
	Number      int    `json:"number"      yaml:"number"`
	Name        string `json:"name"        yaml:"name"`
	Slug        string `json:"slug"        yaml:"slug"`
	Description string `json:"description" yaml:"description"`
	IsAdhoc     bool   `json:"isAdhoc"     yaml:"isAdhoc"`
	IsDeleted   bool   `json:"isDeleted"   yaml:"isDeleted"`
	Rules       []Rule `json:"rules"       yaml:"rules"`
}

// PathwayIndexEvent binds an index event type to a pathway together with
// the rules it can trigger.
type PathwayIndexEvent struct {
	ID            int    `json:"id"            yaml:"id"`
	URL           string `json:"url"           yaml:"url"`
	EventTypeSlug string `json:"eventTypeSlug" yaml:"eventTypeSlug"`
	Rules         []Rule `json:"rules"         yaml:"rules"`
}

// Pathway is a configurable multi-stage workflow definition.
type Pathway struct {
	ID          int                 `json:"id"          yaml:"id"`
	URL         string              `json:"url"         yaml:"url"`
	Name        string              `json:"name"        yaml:"name"`
	Description string              `json:"description" yaml:"description"`
	IsActive    bool                `json:"isActive"    yaml:"isActive"`
	IsDeleted   bool                `json:"isDeleted"   yaml:"isDeleted"`
	Language    string              `json:"language"    yaml:"language"`
	Source      string              `json:"source"      yaml:"source"`
	Metadata    JSONObject          `json:"metadata"    yaml:"metadata"`
	Stages      []Stage             `json:"stages"      yaml:"stages"`
	IndexEvents []PathwayIndexEvent `json:"indexEvents" yaml:"indexEvents"`
}

// SnapshotMetadata carries the versioning fields a pathway snapshot adds
// on top of a plain Pathway.
type SnapshotMetadata struct {
	IsSnapshot       bool   `json:"isSnapshot"       yaml:"isSnapshot"`
	IsSharedSnapshot bool   `json:"isSharedSnapshot" yaml:"isSharedSnapshot"`
	Number           int    `json:"number"           yaml:"number"`
	Name             string `json:"name"             yaml:"name"`
	Description      string `json:"description"      yaml:"description"`
}

// PathwaySnapshot is a versioned, named copy of a Pathway definition.
// Snapshots are composed of a base Pathway plus snapshot metadata rather
// than forming a type hierarchy.
type PathwaySnapshot struct {
	Pathway  `yaml:",inline"`
	Snapshot SnapshotMetadata `json:"snapshot" yaml:"snapshot"`
}

// SharingMetadata records the provenance of a snapshot shared by a
// parent organisation.
type SharingMetadata struct {
	ParentOrganisationSlug string           `json:"parentOrganisationSlug" yaml:"parentOrganisationSlug"`
	ParentName             string           `json:"parentName"             yaml:"parentName"`
	ParentDescription      string           `json:"parentDescription"      yaml:"parentDescription"`
	ParentIndexEventTypes  []IndexEventType `json:"parentIndexEventTypes"  yaml:"parentIndexEventTypes"`
}

// SharedPathwaySnapshot is a PathwaySnapshot shared across tenant
// organisations.
type SharedPathwaySnapshot struct {
	PathwaySnapshot `yaml:",inline"`
	Sharing         SharingMetadata `json:"sharing" yaml:"sharing"`
}

// IndexEventType is a configured milestone type (admission, surgery, ...).
type IndexEventType struct {
	ID              int               `json:"id"              yaml:"id"`
	Name            string            `json:"name"            yaml:"name"`
	Slug            string            `json:"slug"            yaml:"slug"`
	OrderIndex      int               `json:"orderIndex"      yaml:"orderIndex"`
	TranslatedNames map[string]string `json:"translatedNames" yaml:"translatedNames"`
}

// JourneyIndexEvent is a dated milestone value attached to a journey.
// EventTypeName is denormalized type metadata and may be empty.
type JourneyIndexEvent struct {
	ID            int    `json:"id"                      yaml:"id"`
	EventTypeSlug string `json:"eventTypeSlug"           yaml:"eventTypeSlug"`
	EventTypeName string `json:"eventTypeName,omitempty" yaml:"eventTypeName,omitempty"`
	Value         string `json:"value"                   yaml:"value"`
	UpdatedOn     string `json:"updatedOn"               yaml:"updatedOn"`
}

// PathwayRef is the abbreviated pathway reference embedded in an
// end-user profile.
type PathwayRef struct {
	ID          int    `json:"id"          yaml:"id"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	IsActive    bool   `json:"isActive"    yaml:"isActive"`
	IsDeleted   bool   `json:"isDeleted"   yaml:"isDeleted"`
}

// UserPathway is a pathway enrollment as seen from the end-user profile.
type UserPathway struct {
	ID                 int        `json:"id"                 yaml:"id"`
	OriginalPathway    PathwayRef `json:"originalPathway"    yaml:"originalPathway"`
	CurrentStageSlug   string     `json:"currentStageSlug"   yaml:"currentStageSlug"`
	DisabledRuleIDs    []int      `json:"disabledRuleIds"    yaml:"disabledRuleIds"`
	LastProcessingTime string     `json:"lastProcessingTime" yaml:"lastProcessingTime"`
	NextProcessingTime string     `json:"nextProcessingTime" yaml:"nextProcessingTime"`
}

// Journey is a concrete enrollment instance progressing through time.
// Entries is a pagination link; journey entries are fetched lazily and
// never embedded inline.
type Journey struct {
	ID          int                 `json:"id"          yaml:"id"`
	StartDate   string              `json:"startDate"   yaml:"startDate"`
	EndDate     string              `json:"endDate"     yaml:"endDate"`
	CreatedOn   string              `json:"createdOn"   yaml:"createdOn"`
	IndexEvents []JourneyIndexEvent `json:"indexEvents" yaml:"indexEvents"`
	Entries     string              `json:"entries"     yaml:"entries"`
}

// Me is the profile of the current authenticated app user.
type Me struct {
	ID         int           `json:"id"         yaml:"id"`
	IdentityID string        `json:"identityId" yaml:"identityId"`
	Pathways   []UserPathway `json:"pathways"   yaml:"pathways"`
	Journeys   []Journey     `json:"journeys"   yaml:"journeys"`
}

// AppUserPathway joins an app user to a pathway.
type AppUserPathway struct {
	ID                int    `json:"id"                   yaml:"id"`
	URL               string `json:"url"                  yaml:"url"`
	JourneyID         int    `json:"journeyId"            yaml:"journeyId"`
	OriginalPathwayID int    `json:"originalPathwayId"    yaml:"originalPathwayId"`
	CurrentStageSlug  string `json:"currentStageSlug"     yaml:"currentStageSlug"`
	DisabledRuleIDs   []int  `json:"disabledRuleIds"      yaml:"disabledRuleIds"`
	IsActive          bool   `json:"isActive"             yaml:"isActive"`
	OwnerID           string `json:"ownerId,omitempty"    yaml:"ownerId,omitempty"`
	ExternalID        string `json:"externalId,omitempty" yaml:"externalId,omitempty"`
}

// AppUserJourney is a journey as returned by the administrative API.
// Depending on the endpoint the service returns index events inline or
// as a hyperlink; both are preserved.
type AppUserJourney struct {
	ID             int                 `json:"id"             yaml:"id"`
	URL            string              `json:"url"            yaml:"url"`
	StartDate      string              `json:"startDate"      yaml:"startDate"`
	EndDate        string              `json:"endDate"        yaml:"endDate"`
	CreatedOn      string              `json:"createdOn"      yaml:"createdOn"`
	IndexEvents    []JourneyIndexEvent `json:"indexEvents"    yaml:"indexEvents"`
	IndexEventsURL string              `json:"indexEventsUrl" yaml:"indexEventsUrl"`
	EntriesURL     string              `json:"entriesUrl"     yaml:"entriesUrl"`
}

// AppUser is an application user managed through the administrative API.
type AppUser struct {
	ID         int              `json:"id"         yaml:"id"`
	URL        string           `json:"url"        yaml:"url"`
	IdentityID string           `json:"identityId" yaml:"identityId"`
	Pathways   []AppUserPathway `json:"pathways"   yaml:"pathways"`
	Journeys   []AppUserJourney `json:"journeys"   yaml:"journeys"`
}

// EngagementCheck is defined by an external schema and passed through
// this client opaquely except for path parameterization.
type EngagementCheck struct {
	ID               int             `json:"id"                          yaml:"id"`
	URL              string          `json:"url,omitempty"               yaml:"url,omitempty"`
	Name             string          `json:"name"                        yaml:"name"`
	Description      string          `json:"description,omitempty"       yaml:"description,omitempty"`
	EngagementEvents json.RawMessage `json:"engagement_events,omitempty" yaml:"engagementEvents,omitempty"`
	What             json.RawMessage `json:"what,omitempty"              yaml:"what,omitempty"`
}

// NewEngagementCheck is the payload for creating an engagement check.
type NewEngagementCheck struct {
	Name             string          `json:"name"                        yaml:"name"`
	Description      string          `json:"description,omitempty"       yaml:"description,omitempty"`
	EngagementEvents json.RawMessage `json:"engagement_events,omitempty" yaml:"engagementEvents,omitempty"`
	What             json.RawMessage `json:"what,omitempty"              yaml:"what,omitempty"`
}

// RuleIDList is either a list of rule ids or a pre-serialized JSON array
// of rule ids. The wire format is always a JSON array string, regardless
// of which form the caller supplied.
type RuleIDList struct {
	ids          []int
	serialized   string
	isSerialized bool
}

// RuleIDs builds a RuleIDList from individual ids.
func RuleIDs(ids ...int) RuleIDList {
	return RuleIDList{ids: ids}
}

// SerializedRuleIDs wraps an already-serialized JSON array of rule ids.
func SerializedRuleIDs(serialized string) RuleIDList {
	return RuleIDList{serialized: serialized, isSerialized: true}
}

// Encode renders the JSON array string sent to the service.
func (l RuleIDList) Encode() string {
	if l.isSerialized {
		if l.serialized == "" {
			return "[]"
		}

		return l.serialized
	}

	if len(l.ids) == 0 {
		return "[]"
	}

	data, _ := json.Marshal(l.ids)

	return string(data)
}

// AppUserPathwayData is the payload for enrolling an app user in a
// pathway.
type AppUserPathwayData struct {
	JourneyID         int
	OriginalPathwayID int
	CurrentStageSlug  string
	DisabledRuleIDs   RuleIDList
	OwnerID           string
	ExternalID        string
}

// AppUserPathwayUpdate is a partial update of an app-user pathway; nil
// fields are left unchanged.
type AppUserPathwayUpdate struct {
	CurrentStageSlug *string
	DisabledRuleIDs  *RuleIDList
	IsActive         *bool
	OwnerID          *string
	ExternalID       *string
}

// PathwayListOptions filters ListPathways. WithRules defaults to true
// when nil, matching the service default; IsDeleted and OwnerID are
// omitted from the query when unset.
type PathwayListOptions struct {
	Page      int
	WithRules *bool
	IsDeleted *bool
	OwnerID   string
}

// PathwayData is the payload for creating a pathway.
type PathwayData struct {
	Name        string
	Description string
	IsActive    bool
	Metadata    JSONObject
	OwnerID     string
	ExternalID  string
}

// PathwayUpdate is the payload for updating a pathway. Metadata is
// omitted from the request when nil.
type PathwayUpdate struct {
	Name        string
	Description string
	IsActive    bool
	IsDeleted   bool
	Metadata    JSONObject
}

// StageData is the payload for creating or updating a pathway stage.
type StageData struct {
	Number      int
	Name        string
	Slug        string
	Description string
	IsAdhoc     bool
	RuleIDs     []int
	IsDeleted   bool
}

// RuleData is the payload for creating or updating a rule.
type RuleData struct {
	Name        string
	Description string
	Metadata    JSONObject
	Who         WhoType
	WhoDetail   JSONObject
	When        WhenType
	WhenDetail  JSONObject
	What        WhatType
	WhatDetail  JSONObject
	OwnerID     string
}

// IndexEventTypeUpdate is a partial update of an index event type; nil
// fields are left unchanged.
type IndexEventTypeUpdate struct {
	Name            *string
	Slug            *string
	TranslatedNames map[string]string
	OrderIndex      *int
}

// PathwaySnapshotData is the payload for creating a pathway snapshot.
type PathwaySnapshotData struct {
	Name        string
	Description string
}

// IndexEventUpdate describes one index event in an UpdateIndexEvents
// fan-out. A zero ID creates a new event; a non-zero ID updates the
// existing one.
type IndexEventUpdate struct {
	ID            int
	EventTypeSlug string
	Value         string
}

// IndexEventResult is the per-event outcome of an UpdateIndexEvents
// fan-out. Exactly one of Event and Err is set.
type IndexEventResult struct {
	Event *JourneyIndexEvent
	Err   error
}
