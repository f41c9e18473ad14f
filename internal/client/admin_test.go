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

func adminForServer(t *testing.T, server *httptest.Server) *Admin {
	t.Helper()

	admin, err := NewAdmin("app123", "test-jwt", &pathways.Config{
		BaseURL: server.URL + "/v1/apps/{{app_ubiquity_token}}/",
	})
	require.NoError(t, err)

	return admin
}

func TestNewAdminValidation(t *testing.T) {
	t.Parallel()

	_, err := NewAdmin("", "test-jwt", nil)
	assert.ErrorIs(t, err, pathways.ErrMissingAppToken)

	_, err = NewAdmin("app123", "", nil)
	assert.ErrorIs(t, err, pathways.ErrMissingJWT)

	admin, err := NewAdmin("app123", "test-jwt", nil)
	require.NoError(t, err)
	assert.NotNil(t, admin)
}

func TestAdminListAppUsers(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/v1/apps/app123/appusers/", r.URL.Path)
		assert.Equal(t, "page=1&", r.URL.RawQuery)
		assert.Equal(t, "Bearer test-jwt", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.ListResponse[pathways.RawAppUser]{
			Count: 1,
			Results: []pathways.RawAppUser{
				{ID: 1, IdentityID: "identity-1", URL: "https://pathways.example.com/v1/apps/app123/appusers/1/"},
			},
		})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	list, err := admin.ListAppUsers(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	require.Len(t, list.Results, 1)
	assert.Equal(t, "identity-1", list.Results[0].IdentityID)
}

func TestAdminListAppUsersIdentityFilter(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "identity_id=identity-1&", r.URL.RawQuery)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.ListResponse[pathways.RawAppUser]{})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	_, err := admin.ListAppUsers(context.Background(), 0, "identity-1")
	require.NoError(t, err)
}

func TestAdminCreateAppUser(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/apps/app123/appusers/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "identity-1", r.FormValue("identity_id"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(pathways.RawAppUser{ID: 5, IdentityID: "identity-1"})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	appUser, err := admin.CreateAppUser(context.Background(), "identity-1")
	require.NoError(t, err)
	assert.Equal(t, 5, appUser.ID)
}

func TestAdminCreateAppUserPathway(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/appusers/u-1/pathways/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "3", r.FormValue("journey_id"))
		assert.Equal(t, "12", r.FormValue("original_pathway_id"))
		assert.Equal(t, "admission", r.FormValue("current_stage_slug"))
		assert.Equal(t, "[4,5]", r.FormValue("disabled_rule_ids"))
		assert.Empty(t, r.FormValue("owner_id"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.RawAppUserPathway{ID: 9, Journey: 3, OriginalPathway: 12})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	enrollment, err := admin.CreateAppUserPathway(context.Background(), "u-1", pathways.AppUserPathwayData{
		JourneyID:         3,
		OriginalPathwayID: 12,
		CurrentStageSlug:  "admission",
		DisabledRuleIDs:   pathways.RuleIDs(4, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, 9, enrollment.ID)
}

func TestAdminCreateAppUserPathwaySerializedRuleIDs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "[4, 5]", r.FormValue("disabled_rule_ids"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.RawAppUserPathway{ID: 10})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	_, err := admin.CreateAppUserPathway(context.Background(), "u-1", pathways.AppUserPathwayData{
		JourneyID:         3,
		OriginalPathwayID: 12,
		CurrentStageSlug:  "admission",
		DisabledRuleIDs:   pathways.SerializedRuleIDs("[4, 5]"),
	})
	require.NoError(t, err)
}

func TestAdminTransitionAppUserToPathwayStage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/apps/app123/appusers/u-1/pathways/9/transition/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "recovery", r.FormValue("new_stage_slug"))

		_, _ = w.Write([]byte("Transitioned to stage recovery"))
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	result, err := admin.TransitionAppUserToPathwayStage(context.Background(), "u-1", 9, "recovery")
	require.NoError(t, err)
	assert.Equal(t, "Transitioned to stage recovery", result)
}

func TestAdminTriggerAdhocRule(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/appusers/u-1/pathways/9/trigger_adhoc_rule/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "7", r.FormValue("rule_id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "triggered"}`))
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	result, err := admin.TriggerAdhocRule(context.Background(), "u-1", 9, 7)
	require.NoError(t, err)
	assert.Equal(t, "triggered", result["status"])
}

func TestAdminListPathwaysDefaults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/pathways/", r.URL.Path)
		assert.Equal(t, "with_rules=true&", r.URL.RawQuery)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.ListResponse[pathways.RawPathway]{Count: 0})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	_, err := admin.ListPathways(context.Background(), pathways.PathwayListOptions{})
	require.NoError(t, err)
}

func TestAdminListPathwaysFilters(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "page=2&is_deleted=false&with_rules=false&owner_id=owner-1&", r.URL.RawQuery)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.ListResponse[pathways.RawPathway]{})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	withRules := false
	isDeleted := false

	_, err := admin.ListPathways(context.Background(), pathways.PathwayListOptions{
		Page:      2,
		WithRules: &withRules,
		IsDeleted: &isDeleted,
		OwnerID:   "owner-1",
	})
	require.NoError(t, err)
}

func TestAdminGetPathway(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/pathways/12/", r.URL.Path)
		assert.Equal(t, "with_rules=true&", r.URL.RawQuery)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.RawPathway{ID: 12, Name: "hip replacement"})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	pathway, err := admin.GetPathway(context.Background(), 12, true)
	require.NoError(t, err)
	assert.Equal(t, "hip replacement", pathway.Name)
}

func TestAdminDuplicatePathway(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/pathways/12/duplicate/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.JSONEq(t, `{"ward": "C"}`, r.FormValue("updated_metadata"))
		assert.Equal(t, "owner-2", r.FormValue("updated_owner_id"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.RawPathway{ID: 13, Name: "hip replacement (copy)"})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	copyOf, err := admin.DuplicatePathway(context.Background(), 12, pathways.JSONObject{"ward": "C"}, "owner-2")
	require.NoError(t, err)
	assert.Equal(t, 13, copyOf.ID)
}

func TestAdminDeleteRule(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		assert.Equal(t, "/v1/apps/app123/rules/7/", r.URL.Path)

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	deleted, err := admin.DeleteRule(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestAdminUpdateJourneyIndexEvent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "PUT", r.Method)
		assert.Equal(t, "/v1/apps/app123/appusers/u-1/journeys/3/index-events/5/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "surgery", r.FormValue("event_type_slug"))
		assert.Equal(t, "2024-03-01", r.FormValue("value"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.RawJourneyIndexEvent{ID: 5, EventTypeSlug: "surgery", Value: "2024-03-01"})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	event, err := admin.UpdateJourneyIndexEvent(context.Background(), "u-1", 3, 5, "surgery", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", event.Value)
}

func TestAdminCreatePathwayStage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/pathways/12/stages/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "2", r.FormValue("number"))
		assert.Equal(t, "Surgery", r.FormValue("name"))
		assert.Equal(t, "surgery", r.FormValue("slug"))
		assert.Equal(t, "false", r.FormValue("is_adhoc"))
		assert.Equal(t, "[4]", r.FormValue("rules"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.RawStage{ID: 2, Number: 2, Slug: "surgery"})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	stage, err := admin.CreatePathwayStage(context.Background(), 12, pathways.StageData{
		Number:  2,
		Name:    "Surgery",
		Slug:    "surgery",
		RuleIDs: []int{4},
	})
	require.NoError(t, err)
	assert.Equal(t, "surgery", stage.Slug)
}

func TestAdminGetRuleNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/apps/app123/rules/7/", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Not found."}`))
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	_, err := admin.GetRule(context.Background(), 7)
	require.Error(t, err)

	var apiErr *pathways.APIError

	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "unable to get data for rule 7", apiErr.Message)
	assert.True(t, pathways.IsNotFound(err))
}

func TestAdminUseSharedPathwaySnapshot(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/v1/apps/app123/shared-snapshots/31/use/", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.JSONEq(t, `{"surgery": "operation"}`, r.FormValue("index_event_types"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.RawPathway{ID: 40, Name: "hip replacement"})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	pathway, err := admin.UseSharedPathwaySnapshot(context.Background(), 31, map[string]string{"surgery": "operation"})
	require.NoError(t, err)
	assert.Equal(t, 40, pathway.ID)
}

func TestAdminUseSharedPathwaySnapshotNoMapping(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "{}", r.FormValue("index_event_types"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pathways.RawPathway{ID: 41})
	}))
	defer server.Close()

	admin := adminForServer(t, server)

	_, err := admin.UseSharedPathwaySnapshot(context.Background(), 31, nil)
	require.NoError(t, err)
}
