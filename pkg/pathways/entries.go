package pathways

import "encoding/json"

// EntryType discriminates the variants of a journey entry.
type EntryType string

// Journey entry variants. Entry types the client does not recognize map
// to EntryOther; new server-side types never break decoding.
const (
	EntryStageTransition EntryType = "stage_transition"
	EntryRuleExecution   EntryType = "rule_execution"
	EntryAdhocMessage    EntryType = "adhoc_message"
	EntryFormSubmitted   EntryType = "form_submitted"
	EntryOther           EntryType = "other"
)

// StageTransitionData is the typed payload of a stage-transition entry.
type StageTransitionData struct {
	PathwayID         int    `json:"pathway_id"          yaml:"pathwayId"`
	NewStageName      string `json:"new_stage_name"      yaml:"newStageName"`
	NewStageSlug      string `json:"new_stage_slug"      yaml:"newStageSlug"`
	PreviousStageName string `json:"previous_stage_name" yaml:"previousStageName"`
	PreviousStageSlug string `json:"previous_stage_slug" yaml:"previousStageSlug"`
}

// RuleExecutionData is the typed payload of a rule-execution entry.
type RuleExecutionData struct {
	RuleID           int        `json:"rule_id"           yaml:"ruleId"`
	RuleName         string     `json:"rule_name"         yaml:"ruleName"`
	PathwayID        int        `json:"pathway_id"        yaml:"pathwayId"`
	RuleWhatType     WhatType   `json:"rule_what_type"    yaml:"ruleWhatType"`
	RuleWhenType     WhenType   `json:"rule_when_type"    yaml:"ruleWhenType"`
	ExecutionDetails JSONObject `json:"execution_details" yaml:"executionDetails"`
	RuleWhatDetails  JSONObject `json:"rule_what_details" yaml:"ruleWhatDetails"`
}

// JourneyEntry is one event in a journey's timeline. Data always holds
// the raw payload; StageTransition or RuleExecution is additionally set
// when the entry is of that variant.
type JourneyEntry struct {
	ID            int        `json:"id"            yaml:"id"`
	Type          EntryType  `json:"type"          yaml:"type"`
	EventDatetime string     `json:"eventDatetime" yaml:"eventDatetime"`
	CreatedOn     string     `json:"createdOn"     yaml:"createdOn"`
	IsActioned    bool       `json:"isActioned"    yaml:"isActioned"`
	ActionedDate  *string    `json:"actionedDate"  yaml:"actionedDate"`
	Data          JSONObject `json:"data"          yaml:"data"`

	StageTransition *StageTransitionData `json:"stageTransition,omitempty" yaml:"stageTransition,omitempty"`
	RuleExecution   *RuleExecutionData   `json:"ruleExecution,omitempty"   yaml:"ruleExecution,omitempty"`
}

// Variant returns the entry's discriminator, folding unknown wire types
// into EntryOther.
func (e *JourneyEntry) Variant() EntryType {
	switch e.Type {
	case EntryStageTransition, EntryRuleExecution, EntryAdhocMessage, EntryFormSubmitted:
		return e.Type
	case EntryOther:
		return EntryOther
	default:
		return EntryOther
	}
}

// JourneyEntriesPage is one page of a journey's entries, carrying the
// pagination links needed to fetch the neighbouring pages.
type JourneyEntriesPage struct {
	Count    int            `json:"count"    yaml:"count"`
	Next     *string        `json:"next"     yaml:"next"`
	Previous *string        `json:"previous" yaml:"previous"`
	Entries  []JourneyEntry `json:"entries"  yaml:"entries"`
}

// MapRawJourneyEntry converts one raw journey entry. It never fails: a
// payload that does not match the entry's declared type leaves the typed
// field nil while the opaque Data bag is still populated.
func MapRawJourneyEntry(raw RawJourneyEntry) JourneyEntry {
	entry := JourneyEntry{
		ID:            raw.ID,
		Type:          EntryType(raw.Type),
		EventDatetime: raw.EventDatetime,
		CreatedOn:     raw.CreatedOn,
		IsActioned:    raw.IsActioned,
		ActionedDate:  raw.ActionedDate,
		Data:          parseJSONObject(raw.Data),
	}

	switch entry.Type {
	case EntryStageTransition:
		var data StageTransitionData
		if err := json.Unmarshal(raw.Data, &data); err == nil {
			entry.StageTransition = &data
		}
	case EntryRuleExecution:
		var data RuleExecutionData
		if err := json.Unmarshal(raw.Data, &data); err == nil {
			entry.RuleExecution = &data
		}
	case EntryAdhocMessage, EntryFormSubmitted, EntryOther:
		// Payloads stay in Data only.
	}

	return entry
}

// MapRawJourneyEntries converts a page envelope of raw entries.
func MapRawJourneyEntries(raw *ListResponse[RawJourneyEntry]) *JourneyEntriesPage {
	if raw == nil {
		return nil
	}

	return &JourneyEntriesPage{
		Count:    raw.Count,
		Next:     raw.Next,
		Previous: raw.Previous,
		Entries:  mapSlice(raw.Results, MapRawJourneyEntry),
	}
}
