package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liquid-state/pathways-client/pkg/pathways"
)

func serviceForServer(t *testing.T, server *httptest.Server) *AdminService {
	t.Helper()

	service, err := NewAdminService(adminForServer(t, server))
	require.NoError(t, err)

	return service
}

func TestNewAdminServiceValidation(t *testing.T) {
	t.Parallel()

	_, err := NewAdminService(nil)
	assert.ErrorIs(t, err, pathways.ErrMissingAdminClient)
}

func TestServiceGetPathwayMapsFacets(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/pathways/12/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 12,
			"name": "hip replacement",
			"is_active": true,
			"metadata": {"ward": "B"},
			"stages": [{
				"id": 1,
				"number": 1,
				"slug": "admission",
				"rules": [{
					"id": 4,
					"name": "welcome",
					"who": "ALL",
					"who_detail": {},
					"when": "DELAY",
					"when_detail": {"days": 2},
					"what": "MESSAGE",
					"what_detail": {"title": "Welcome"},
					"metadata": {}
				}]
			}]
		}`))
	}))
	defer server.Close()

	service := serviceForServer(t, server)

	pathway, err := service.GetPathway(context.Background(), 12, true)
	require.NoError(t, err)
	assert.Equal(t, "hip replacement", pathway.Name)
	assert.Equal(t, "B", pathway.Metadata["ward"])
	require.Len(t, pathway.Stages, 1)
	require.Len(t, pathway.Stages[0].Rules, 1)

	rule := pathway.Stages[0].Rules[0]
	assert.Equal(t, pathways.WhoAll, rule.Who.Type)
	assert.Equal(t, pathways.WhenDelay, rule.When.Type)
	assert.Equal(t, pathways.WhatMessage, rule.What.Type)
	assert.Equal(t, "Welcome", rule.What.Details["title"])
}

func TestServiceDuplicatePathway(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/pathways/12/duplicate/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.RawPathway{ID: 13, Name: "hip replacement (copy)"})
	}))
	defer server.Close()

	service := serviceForServer(t, server)

	copyOf, err := service.DuplicatePathway(context.Background(), 12, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 13, copyOf.ID)
	assert.Equal(t, "hip replacement (copy)", copyOf.Name)
}

func TestServiceListAppUserJourneys(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/appusers/u-1/journeys/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 1,
			"next": null,
			"previous": null,
			"results": [{
				"id": 3,
				"start_date": "2024-01-02",
				"index_events": "https://pathways.example.com/v1/apps/app123/appusers/u-1/journeys/3/index-events/",
				"entries": "https://pathways.example.com/v1/apps/app123/appusers/u-1/journeys/3/entries/"
			}]
		}`))
	}))
	defer server.Close()

	service := serviceForServer(t, server)

	list, err := service.ListAppUserJourneys(context.Background(), "u-1", 0)
	require.NoError(t, err)
	require.Len(t, list.Results, 1)
	assert.Contains(t, list.Results[0].EntriesURL, "/journeys/3/entries/")
	assert.Contains(t, list.Results[0].IndexEventsURL, "/journeys/3/index-events/")
}

func TestServiceListIndexEventsForJourneyInline(t *testing.T) {
	t.Parallel()

	// Journeys that arrived with inline index events are answered without
	// a request; the server must never be hit.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	}))
	defer server.Close()

	service := serviceForServer(t, server)

	journey := &pathways.AppUserJourney{
		ID: 3,
		IndexEvents: []pathways.JourneyIndexEvent{
			{ID: 5, EventTypeSlug: "surgery", Value: "2024-03-01"},
		},
	}

	events, err := service.ListIndexEventsForJourney(context.Background(), journey)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "surgery", events[0].EventTypeSlug)
}

func TestServiceListEntriesForJourneyFollowsPages(t *testing.T) {
	t.Parallel()

	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.RawQuery {
		case "":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"count": 3,
				"next": "` + server.URL + `/entries/?page=2",
				"previous": null,
				"results": [
					{"id": 1, "type": "stage_transition", "data": {}},
					{"id": 2, "type": "rule_execution", "data": {}}
				]
			}`))
		case "page=2":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"count": 3,
				"next": null,
				"previous": null,
				"results": [{"id": 3, "type": "form_submitted", "data": {}}]
			}`))
		default:
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
	}))
	defer server.Close()

	service := serviceForServer(t, server)

	journey := &pathways.AppUserJourney{ID: 3, EntriesURL: server.URL + "/entries/"}

	entries, err := service.ListEntriesForJourney(context.Background(), journey)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, 3, entries[2].ID)
	assert.Equal(t, pathways.EntryFormSubmitted, entries[2].Variant())
}

func TestServiceCreateIndexEventType(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/index-event-types/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Surgery", r.FormValue("name"))
		assert.Equal(t, "surgery", r.FormValue("slug"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 2,
			"name": "Surgery",
			"slug": "surgery",
			"order_index": 0,
			"translated_names": "{\"de\": \"Operation\"}"
		}`))
	}))
	defer server.Close()

	service := serviceForServer(t, server)

	eventType, err := service.CreateIndexEventType(context.Background(), "Surgery", "surgery", nil)
	require.NoError(t, err)
	assert.Equal(t, "Operation", eventType.TranslatedNames["de"])
}
