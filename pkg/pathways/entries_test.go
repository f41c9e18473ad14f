package pathways

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRawJourneyEntryStageTransition(t *testing.T) {
	t.Parallel()

	raw := RawJourneyEntry{
		ID:            1,
		Type:          "stage_transition",
		EventDatetime: "2024-03-01T10:00:00Z",
		CreatedOn:     "2024-03-01T10:00:01Z",
		Data: json.RawMessage(`{
			"pathway_id": 12,
			"new_stage_name": "Recovery",
			"new_stage_slug": "recovery",
			"previous_stage_name": "Surgery",
			"previous_stage_slug": "surgery"
		}`),
	}

	entry := MapRawJourneyEntry(raw)

	assert.Equal(t, EntryStageTransition, entry.Variant())
	require.NotNil(t, entry.StageTransition)
	assert.Equal(t, 12, entry.StageTransition.PathwayID)
	assert.Equal(t, "recovery", entry.StageTransition.NewStageSlug)
	assert.Equal(t, "surgery", entry.StageTransition.PreviousStageSlug)
	assert.Nil(t, entry.RuleExecution)
	assert.Equal(t, "Recovery", entry.Data["new_stage_name"])
}

func TestMapRawJourneyEntryRuleExecution(t *testing.T) {
	t.Parallel()

	raw := RawJourneyEntry{
		ID:   2,
		Type: "rule_execution",
		Data: json.RawMessage(`{
			"rule_id": 7,
			"rule_name": "share discharge form",
			"pathway_id": 12,
			"rule_what_type": "FEATURE_FORM",
			"rule_when_type": "STAGE_TRANSITION",
			"execution_details": {"delivery": "push"},
			"rule_what_details": {"form_id": "discharge"}
		}`),
	}

	entry := MapRawJourneyEntry(raw)

	assert.Equal(t, EntryRuleExecution, entry.Variant())
	require.NotNil(t, entry.RuleExecution)
	assert.Equal(t, 7, entry.RuleExecution.RuleID)
	assert.Equal(t, WhatFeatureForm, entry.RuleExecution.RuleWhatType)
	assert.Equal(t, WhenStageTransition, entry.RuleExecution.RuleWhenType)
	assert.Equal(t, "push", entry.RuleExecution.ExecutionDetails["delivery"])
	assert.Equal(t, "discharge", entry.RuleExecution.RuleWhatDetails["form_id"])
	assert.Nil(t, entry.StageTransition)
}

func TestMapRawJourneyEntryUnknownType(t *testing.T) {
	t.Parallel()

	raw := RawJourneyEntry{
		ID:   3,
		Type: "some_future_type",
		Data: json.RawMessage(`{"anything": "goes"}`),
	}

	entry := MapRawJourneyEntry(raw)

	assert.Equal(t, EntryOther, entry.Variant())
	assert.Equal(t, EntryType("some_future_type"), entry.Type)
	assert.Equal(t, "goes", entry.Data["anything"])
	assert.Nil(t, entry.StageTransition)
	assert.Nil(t, entry.RuleExecution)
}

func TestMapRawJourneyEntryMalformedPayload(t *testing.T) {
	t.Parallel()

	// A declared stage transition whose payload does not decode keeps the
	// typed field nil without failing the whole page.
	raw := RawJourneyEntry{
		ID:   4,
		Type: "stage_transition",
		Data: json.RawMessage(`{"pathway_id": "not a number"}`),
	}

	entry := MapRawJourneyEntry(raw)

	assert.Nil(t, entry.StageTransition)
	assert.Equal(t, "not a number", entry.Data["pathway_id"])
}

func TestMapRawJourneyEntryActioned(t *testing.T) {
	t.Parallel()

	actionedDate := "2024-03-02T08:00:00Z"
	raw := RawJourneyEntry{
		ID:           5,
		Type:         "adhoc_message",
		IsActioned:   true,
		ActionedDate: &actionedDate,
		Data:         json.RawMessage(`{"title": "Reminder"}`),
	}

	entry := MapRawJourneyEntry(raw)

	assert.Equal(t, EntryAdhocMessage, entry.Variant())
	assert.True(t, entry.IsActioned)
	require.NotNil(t, entry.ActionedDate)
	assert.Equal(t, actionedDate, *entry.ActionedDate)
}

func TestMapRawJourneyEntriesEnvelope(t *testing.T) {
	t.Parallel()

	next := "https://pathways.example.com/v1/me/journeys/3/entries/?page=2"
	raw := &ListResponse[RawJourneyEntry]{
		Count: 3,
		Next:  &next,
		Results: []RawJourneyEntry{
			{ID: 1, Type: "stage_transition", Data: json.RawMessage(`{}`)},
			{ID: 2, Type: "form_submitted", Data: json.RawMessage(`{}`)},
		},
	}

	page := MapRawJourneyEntries(raw)

	require.NotNil(t, page)
	assert.Equal(t, 3, page.Count)
	require.NotNil(t, page.Next)
	assert.Equal(t, next, *page.Next)
	assert.Nil(t, page.Previous)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, EntryFormSubmitted, page.Entries[1].Variant())

	assert.Nil(t, MapRawJourneyEntries(nil))
}
