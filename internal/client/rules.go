package client

import (
	"context"
	"fmt"

	internalhttp "github.com/liquid-state/pathways-client/internal/http"
	"github.com/liquid-state/pathways-client/internal/paths"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// ListRules lists the application's rule catalogue, optionally filtered
// by owner.
func (a *Admin) ListRules(ctx context.Context, page int, ownerID string) (*pathways.ListResponse[pathways.RawRule], error) {
	query := pageQuery(page)
	if ownerID != "" {
		query.Set("owner_id", ownerID)
	}

	return getList[pathways.RawRule](ctx, a, paths.ListRules, nil, query, "unable to get list of rules")
}

// GetRule fetches one rule.
func (a *Admin) GetRule(ctx context.Context, ruleID int) (*pathways.RawRule, error) {
	return getOne[pathways.RawRule](ctx, a, paths.GetRule, map[string]string{"ruleId": itoa(ruleID)}, nil, fmt.Sprintf("unable to get data for rule %d", ruleID))
}

// CreateRule creates a rule. Facet details and metadata are serialized
// to JSON string form fields.
func (a *Admin) CreateRule(ctx context.Context, data pathways.RuleData) (*pathways.RawRule, error) {
	return postOne[pathways.RawRule](ctx, a, paths.CreateRule, nil, ruleForm(data, true), "unable to create rule")
}

// PatchRule updates a rule.
func (a *Admin) PatchRule(ctx context.Context, ruleID int, data pathways.RuleData) (*pathways.RawRule, error) {
	return patchOne[pathways.RawRule](ctx, a, paths.PatchRule, map[string]string{"ruleId": itoa(ruleID)}, ruleForm(data, false), "unable to update rule")
}

// DeleteRule removes a rule.
func (a *Admin) DeleteRule(ctx context.Context, ruleID int) (bool, error) {
	return a.delete(ctx, paths.DeleteRule, map[string]string{"ruleId": itoa(ruleID)}, "unable to delete rule")
}

func ruleForm(data pathways.RuleData, includeOwner bool) *internalhttp.Form {
	form := internalhttp.NewForm()
	form.Set("name", data.Name)
	form.Set("description", data.Description)
	form.Set("who", string(data.Who))
	form.Set("who_detail", encodeJSONField(data.WhoDetail))
	form.Set("when", string(data.When))
	form.Set("when_detail", encodeJSONField(data.WhenDetail))
	form.Set("what", string(data.What))
	form.Set("what_detail", encodeJSONField(data.WhatDetail))

	if data.Metadata != nil {
		form.Set("metadata", encodeJSONField(data.Metadata))
	}

	if includeOwner && data.OwnerID != "" {
		form.Set("owner_id", data.OwnerID)
	}

	return form
}
