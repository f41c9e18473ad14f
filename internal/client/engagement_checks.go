package client

import (
	"context"

	internalhttp "github.com/liquid-state/pathways-client/internal/http"
	"github.com/liquid-state/pathways-client/internal/paths"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// Engagement checks are defined by an external schema; this client
// parameterizes the paths and passes the payloads through opaquely.

// ListEngagementChecks lists a pathway's engagement checks.
func (a *Admin) ListEngagementChecks(ctx context.Context, pathwayID, page int) (*pathways.ListResponse[pathways.EngagementCheck], error) {
	return getList[pathways.EngagementCheck](ctx, a, paths.ListEngagementChecks, map[string]string{"pathwayId": itoa(pathwayID)}, pageQuery(page), "unable to list engagement checks")
}

// GetEngagementCheck fetches one engagement check.
func (a *Admin) GetEngagementCheck(ctx context.Context, pathwayID, checkID int) (*pathways.EngagementCheck, error) {
	params := map[string]string{"pathwayId": itoa(pathwayID), "checkId": itoa(checkID)}

	return getOne[pathways.EngagementCheck](ctx, a, paths.GetEngagementCheck, params, nil, "unable to get engagement check")
}

// CreateEngagementCheck creates an engagement check. The schema-defined
// sub-documents are serialized to JSON string form fields and omitted
// when absent.
func (a *Admin) CreateEngagementCheck(ctx context.Context, pathwayID int, data pathways.NewEngagementCheck) (*pathways.EngagementCheck, error) {
	form := internalhttp.NewForm()
	form.Set("name", data.Name)

	if data.Description != "" {
		form.Set("description", data.Description)
	}

	if len(data.EngagementEvents) > 0 {
		form.Set("engagement_events", string(data.EngagementEvents))
	}

	if len(data.What) > 0 {
		form.Set("what", string(data.What))
	}

	return postOne[pathways.EngagementCheck](ctx, a, paths.CreateEngagementCheck, map[string]string{"pathwayId": itoa(pathwayID)}, form, "unable to create engagement check")
}

// PatchEngagementCheck updates an engagement check in place.
func (a *Admin) PatchEngagementCheck(ctx context.Context, pathwayID int, check pathways.EngagementCheck) (*pathways.EngagementCheck, error) {
	form := internalhttp.NewForm()
	form.Set("name", check.Name)

	if check.Description != "" {
		form.Set("description", check.Description)
	}

	if len(check.EngagementEvents) > 0 {
		form.Set("engagement_events", string(check.EngagementEvents))
	}

	if len(check.What) > 0 {
		form.Set("what", string(check.What))
	}

	params := map[string]string{"pathwayId": itoa(pathwayID), "checkId": itoa(check.ID)}

	return patchOne[pathways.EngagementCheck](ctx, a, paths.PatchEngagementCheck, params, form, "unable to update engagement check")
}

// DeleteEngagementCheck removes an engagement check.
func (a *Admin) DeleteEngagementCheck(ctx context.Context, pathwayID, checkID int) (bool, error) {
	params := map[string]string{"pathwayId": itoa(pathwayID), "checkId": itoa(checkID)}

	return a.delete(ctx, paths.DeleteEngagementCheck, params, "unable to delete engagement check")
}
