package pathways

import (
	"bytes"
	"encoding/json"
)

// Mapping from raw wire records to domain records. Every mapper is a
// pure function; slices are mapped element-wise in order, nil slices
// stay nil, and JSON-encoded-as-string sub-fields are decoded before
// assignment.

func mapSlice[R any, D any](raw []R, mapOne func(R) D) []D {
	if raw == nil {
		return nil
	}

	out := make([]D, len(raw))
	for i, r := range raw {
		out[i] = mapOne(r)
	}

	return out
}

// parseJSONObject decodes a wire field that is either a JSON object or a
// string containing JSON. Anything undecodable yields nil rather than an
// error; these fields are advisory metadata.
func parseJSONObject(raw json.RawMessage) JSONObject {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil
		}

		trimmed = []byte(inner)
	}

	var obj JSONObject
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil
	}

	return obj
}

// parseStringMap is parseJSONObject for map[string]string fields.
func parseStringMap(raw json.RawMessage) map[string]string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil
		}

		trimmed = []byte(inner)
	}

	var m map[string]string
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil
	}

	return m
}

// MapRawRule collapses the six flat facet fields of a raw rule into the
// three typed facets of a domain Rule.
func MapRawRule(raw RawRule) Rule {
	return Rule{
		ID:          raw.ID,
		URL:         raw.URL,
		Name:        raw.Name,
		Description: raw.Description,
		Metadata:    parseJSONObject(raw.Metadata),
		Who: RuleFacet[WhoType]{
			Type:    WhoType(raw.Who),
			Details: parseJSONObject(raw.WhoDetail),
		},
		When: RuleFacet[WhenType]{
			Type:    WhenType(raw.When),
			Details: parseJSONObject(raw.WhenDetail),
		},
		What: RuleFacet[WhatType]{
			Type:    WhatType(raw.What),
			Details: parseJSONObject(raw.WhatDetail),
		},
	}
}

// MapRawStage converts a raw stage, mapping its rules in order.
func MapRawStage(raw RawStage) Stage {
	return Stage{
		ID:          raw.ID,
		URL:         raw.URL,
		Number:      raw.Number,
		Name:        raw.Name,
		Slug:        raw.Slug,
		Description: raw.Description,
		IsAdhoc:     raw.IsAdhoc,
		IsDeleted:   raw.IsDeleted,
		Rules:       mapSlice(raw.Rules, MapRawRule),
	}
}

// MapRawPathwayIndexEvent converts a pathway-level index event binding.
func MapRawPathwayIndexEvent(raw RawPathwayIndexEvent) PathwayIndexEvent {
	return PathwayIndexEvent{
		ID:            raw.ID,
		URL:           raw.URL,
		EventTypeSlug: raw.EventTypeSlug,
		Rules:         mapSlice(raw.Rules, MapRawRule),
	}
}

// MapRawPathway converts a full pathway definition.
func MapRawPathway(raw RawPathway) Pathway {
	return Pathway{
		ID:          raw.ID,
		URL:         raw.URL,
		Name:        raw.Name,
		Description: raw.Description,
		IsActive:    raw.IsActive,
		IsDeleted:   raw.IsDeleted,
		Language:    raw.Language,
		Source:      raw.Source,
		Metadata:    parseJSONObject(raw.Metadata),
		Stages:      mapSlice(raw.Stages, MapRawStage),
		IndexEvents: mapSlice(raw.IndexEvents, MapRawPathwayIndexEvent),
	}
}

// MapRawPathwaySnapshot converts a pathway snapshot.
func MapRawPathwaySnapshot(raw RawPathwaySnapshot) PathwaySnapshot {
	return PathwaySnapshot{
		Pathway: MapRawPathway(raw.RawPathway),
		Snapshot: SnapshotMetadata{
			IsSnapshot:       raw.IsSnapshot,
			IsSharedSnapshot: raw.IsSharedSnapshot,
			Number:           raw.SnapshotNumber,
			Name:             raw.SnapshotName,
			Description:      raw.SnapshotDescription,
		},
	}
}

// MapRawSharedPathwaySnapshot converts a shared snapshot including its
// provenance fields.
func MapRawSharedPathwaySnapshot(raw RawSharedPathwaySnapshot) SharedPathwaySnapshot {
	return SharedPathwaySnapshot{
		PathwaySnapshot: MapRawPathwaySnapshot(raw.RawPathwaySnapshot),
		Sharing: SharingMetadata{
			ParentOrganisationSlug: raw.ParentOrganisationSlug,
			ParentName:             raw.ParentName,
			ParentDescription:      raw.ParentDescription,
			ParentIndexEventTypes:  mapSlice(raw.ParentIndexEventTypes, MapRawIndexEventType),
		},
	}
}

// MapRawIndexEventType converts an index event type definition.
func MapRawIndexEventType(raw RawIndexEventType) IndexEventType {
	return IndexEventType{
		ID:              raw.ID,
		Name:            raw.Name,
		Slug:            raw.Slug,
		OrderIndex:      raw.OrderIndex,
		TranslatedNames: parseStringMap(raw.TranslatedNames),
	}
}

// MapRawJourneyIndexEvent converts a journey index event.
func MapRawJourneyIndexEvent(raw RawJourneyIndexEvent) JourneyIndexEvent {
	return JourneyIndexEvent{
		ID:            raw.ID,
		EventTypeSlug: raw.EventTypeSlug,
		EventTypeName: raw.EventTypeName,
		Value:         raw.Value,
		UpdatedOn:     raw.UpdatedOn,
	}
}

// MapRawAppUserPathway converts an app-user pathway enrollment.
func MapRawAppUserPathway(raw RawAppUserPathway) AppUserPathway {
	return AppUserPathway{
		ID:                raw.ID,
		URL:               raw.URL,
		JourneyID:         raw.Journey,
		OriginalPathwayID: raw.OriginalPathway,
		CurrentStageSlug:  raw.CurrentStageSlug,
		DisabledRuleIDs:   raw.DisabledRuleIDs,
		IsActive:          raw.IsActive,
		OwnerID:           raw.OwnerID,
		ExternalID:        raw.ExternalID,
	}
}

// MapRawAppUserJourney converts an administrative journey. The service
// returns index_events and entries either inline or as hyperlinks; inline
// arrays land in IndexEvents, hyperlinks in IndexEventsURL and EntriesURL.
func MapRawAppUserJourney(raw RawAppUserJourney) AppUserJourney {
	journey := AppUserJourney{
		ID:        raw.ID,
		URL:       raw.URL,
		StartDate: raw.StartDate,
		EndDate:   raw.EndDate,
		CreatedOn: raw.CreatedOn,
	}

	if link, ok := decodeHyperlink(raw.IndexEvents); ok {
		journey.IndexEventsURL = link
	} else {
		var events []RawJourneyIndexEvent
		if err := json.Unmarshal(raw.IndexEvents, &events); err == nil {
			journey.IndexEvents = mapSlice(events, MapRawJourneyIndexEvent)
		}
	}

	if link, ok := decodeHyperlink(raw.Entries); ok {
		journey.EntriesURL = link
	}

	return journey
}

func decodeHyperlink(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}

	var link string
	if err := json.Unmarshal(trimmed, &link); err != nil {
		return "", false
	}

	return link, true
}

// MapRawAppUser converts an administrative app user record.
func MapRawAppUser(raw RawAppUser) AppUser {
	return AppUser{
		ID:         raw.ID,
		URL:        raw.URL,
		IdentityID: raw.IdentityID,
		Pathways:   mapSlice(raw.Pathways, MapRawAppUserPathway),
		Journeys:   mapSlice(raw.Journeys, MapRawAppUserJourney),
	}
}

// MapRawUserPathway converts an end-user profile enrollment.
func MapRawUserPathway(raw RawUserPathway) UserPathway {
	return UserPathway{
		ID: raw.ID,
		OriginalPathway: PathwayRef{
			ID:          raw.OriginalPathway.ID,
			Name:        raw.OriginalPathway.Name,
			Description: raw.OriginalPathway.Description,
			IsActive:    raw.OriginalPathway.IsActive,
			IsDeleted:   raw.OriginalPathway.IsDeleted,
		},
		CurrentStageSlug:   raw.CurrentStageSlug,
		DisabledRuleIDs:    raw.DisabledRuleIDs,
		LastProcessingTime: raw.LastProcessingTime,
		NextProcessingTime: raw.NextProcessingTime,
	}
}

// MapRawUserJourney converts an end-user profile journey.
func MapRawUserJourney(raw RawUserJourney) Journey {
	return Journey{
		ID:          raw.ID,
		StartDate:   raw.StartDate,
		EndDate:     raw.EndDate,
		CreatedOn:   raw.CreatedOn,
		IndexEvents: mapSlice(raw.IndexEvents, MapRawJourneyIndexEvent),
		Entries:     raw.Entries,
	}
}

// MapRawMe converts the end-user profile.
func MapRawMe(raw RawMe) Me {
	return Me{
		ID:         raw.ID,
		IdentityID: raw.IdentityID,
		Pathways:   mapSlice(raw.Pathways, MapRawUserPathway),
		Journeys:   mapSlice(raw.Journeys, MapRawUserJourney),
	}
}
