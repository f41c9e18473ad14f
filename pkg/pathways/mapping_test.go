package pathways

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRawRuleCollapsesFacets(t *testing.T) {
	t.Parallel()

	raw := RawRule{
		ID:          7,
		Name:        "welcome message",
		Who:         "ALL",
		WhoDetail:   json.RawMessage(`{}`),
		When:        "STAGE_TRANSITION",
		WhenDetail:  json.RawMessage(`{"stage_slug":"admission"}`),
		What:        "MESSAGE",
		WhatDetail:  json.RawMessage(`{"title":"Welcome"}`),
		Metadata:    json.RawMessage(`{"source":"editor"}`),
		Description: "sends the welcome message on admission",
	}

	rule := MapRawRule(raw)

	assert.Equal(t, 7, rule.ID)
	assert.Equal(t, WhoAll, rule.Who.Type)
	assert.Equal(t, WhenStageTransition, rule.When.Type)
	assert.Equal(t, WhatMessage, rule.What.Type)
	assert.Equal(t, "admission", rule.When.Details["stage_slug"])
	assert.Equal(t, "Welcome", rule.What.Details["title"])
	assert.Equal(t, "editor", rule.Metadata["source"])
}

func TestMapRawPathwayOrderPreserving(t *testing.T) {
	t.Parallel()

	raw := RawPathway{
		ID:       3,
		Name:     "hip replacement",
		IsActive: true,
		Metadata: json.RawMessage(`{"ward":"B"}`),
		Stages: []RawStage{
			{ID: 1, Number: 1, Slug: "admission"},
			{ID: 2, Number: 2, Slug: "surgery"},
			{ID: 3, Number: 3, Slug: "recovery"},
		},
		IndexEvents: []RawPathwayIndexEvent{
			{ID: 11, EventTypeSlug: "surgery-date"},
		},
	}

	pathway := MapRawPathway(raw)

	require.Len(t, pathway.Stages, 3)
	assert.Equal(t, "admission", pathway.Stages[0].Slug)
	assert.Equal(t, "surgery", pathway.Stages[1].Slug)
	assert.Equal(t, "recovery", pathway.Stages[2].Slug)
	require.Len(t, pathway.IndexEvents, 1)
	assert.Equal(t, "surgery-date", pathway.IndexEvents[0].EventTypeSlug)
	assert.Equal(t, "B", pathway.Metadata["ward"])
}

func TestMapRawPathwayStringEncodedMetadata(t *testing.T) {
	t.Parallel()

	// Some endpoints return metadata as a string containing JSON rather
	// than an inline object.
	raw := RawPathway{ID: 4, Metadata: json.RawMessage(`"{\"ward\":\"C\"}"`)}

	pathway := MapRawPathway(raw)

	assert.Equal(t, "C", pathway.Metadata["ward"])
}

func TestMapRawPathwayUndecodableMetadata(t *testing.T) {
	t.Parallel()

	raw := RawPathway{ID: 5, Metadata: json.RawMessage(`"not json"`)}

	pathway := MapRawPathway(raw)

	assert.Nil(t, pathway.Metadata)
}

func TestMapRawIndexEventType(t *testing.T) {
	t.Parallel()

	raw := RawIndexEventType{
		ID:              2,
		Name:            "Surgery",
		Slug:            "surgery",
		OrderIndex:      1,
		TranslatedNames: json.RawMessage(`{"de":"Operation"}`),
	}

	eventType := MapRawIndexEventType(raw)

	assert.Equal(t, 1, eventType.OrderIndex)
	assert.Equal(t, "Operation", eventType.TranslatedNames["de"])
}

func TestMapRawAppUserPathway(t *testing.T) {
	t.Parallel()

	raw := RawAppUserPathway{
		ID:               9,
		Journey:          3,
		OriginalPathway:  12,
		CurrentStageSlug: "recovery",
		DisabledRuleIDs:  []int{4, 5},
		IsActive:         true,
		ExternalID:       "ext-1",
	}

	enrollment := MapRawAppUserPathway(raw)

	assert.Equal(t, 3, enrollment.JourneyID)
	assert.Equal(t, 12, enrollment.OriginalPathwayID)
	assert.Equal(t, []int{4, 5}, enrollment.DisabledRuleIDs)
	assert.Equal(t, "ext-1", enrollment.ExternalID)
}

func TestMapRawAppUserJourneyHyperlinks(t *testing.T) {
	t.Parallel()

	raw := RawAppUserJourney{
		ID:          3,
		StartDate:   "2024-01-02",
		IndexEvents: json.RawMessage(`"https://pathways.example.com/v1/apps/app123/appusers/2/journeys/3/index-events/"`),
		Entries:     json.RawMessage(`"https://pathways.example.com/v1/apps/app123/appusers/2/journeys/3/entries/"`),
	}

	journey := MapRawAppUserJourney(raw)

	assert.Empty(t, journey.IndexEvents)
	assert.Contains(t, journey.IndexEventsURL, "/journeys/3/index-events/")
	assert.Contains(t, journey.EntriesURL, "/journeys/3/entries/")
}

func TestMapRawAppUserJourneyInlineIndexEvents(t *testing.T) {
	t.Parallel()

	raw := RawAppUserJourney{
		ID:          4,
		IndexEvents: json.RawMessage(`[{"id":1,"event_type_slug":"surgery","value":"2024-03-01"}]`),
	}

	journey := MapRawAppUserJourney(raw)

	require.Len(t, journey.IndexEvents, 1)
	assert.Equal(t, "surgery", journey.IndexEvents[0].EventTypeSlug)
	assert.Empty(t, journey.IndexEventsURL)
}

func TestMapRawMe(t *testing.T) {
	t.Parallel()

	raw := RawMe{
		ID:         1,
		IdentityID: "identity-1",
		Pathways: []RawUserPathway{{
			ID: 2,
			OriginalPathway: RawUserPathwayRef{
				ID:       12,
				Name:     "hip replacement",
				IsActive: true,
			},
			CurrentStageSlug: "recovery",
			DisabledRuleIDs:  []int{7},
		}},
		Journeys: []RawUserJourney{{
			ID:        3,
			StartDate: "2024-01-02",
			IndexEvents: []RawJourneyIndexEvent{
				{ID: 5, EventTypeSlug: "surgery", Value: "2024-03-01"},
			},
			Entries: "https://pathways.example.com/v1/me/journeys/3/entries/",
		}},
	}

	me := MapRawMe(raw)

	assert.Equal(t, "identity-1", me.IdentityID)
	require.Len(t, me.Pathways, 1)
	assert.Equal(t, "hip replacement", me.Pathways[0].OriginalPathway.Name)
	require.Len(t, me.Journeys, 1)
	assert.Equal(t, "surgery", me.Journeys[0].IndexEvents[0].EventTypeSlug)
	assert.Contains(t, me.Journeys[0].Entries, "/journeys/3/entries/")
}

func TestMapRawSharedPathwaySnapshot(t *testing.T) {
	t.Parallel()

	raw := RawSharedPathwaySnapshot{
		RawPathwaySnapshot: RawPathwaySnapshot{
			RawPathway: RawPathway{
				ID:   21,
				Name: "knee replacement",
			},
			IsSnapshot:       true,
			IsSharedSnapshot: true,
			SnapshotNumber:   3,
			SnapshotName:     "v3",
		},
		ParentOrganisationSlug: "parent-org",
		ParentName:             "Parent Org",
		ParentIndexEventTypes: []RawIndexEventType{
			{ID: 1, Slug: "surgery", TranslatedNames: json.RawMessage(`{}`)},
		},
	}

	snapshot := MapRawSharedPathwaySnapshot(raw)

	assert.Equal(t, "knee replacement", snapshot.Name)
	assert.True(t, snapshot.Snapshot.IsSharedSnapshot)
	assert.Equal(t, 3, snapshot.Snapshot.Number)
	assert.Equal(t, "parent-org", snapshot.Sharing.ParentOrganisationSlug)
	require.Len(t, snapshot.Sharing.ParentIndexEventTypes, 1)
	assert.Equal(t, "surgery", snapshot.Sharing.ParentIndexEventTypes[0].Slug)
}

func TestMapSliceNil(t *testing.T) {
	t.Parallel()

	pathway := MapRawPathway(RawPathway{ID: 1})

	assert.Nil(t, pathway.Stages)
	assert.Nil(t, pathway.IndexEvents)
}
