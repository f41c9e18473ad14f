package client

import (
	"context"
	"encoding/json"

	internalhttp "github.com/liquid-state/pathways-client/internal/http"
	"github.com/liquid-state/pathways-client/internal/paths"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// ListIndexEventTypes lists the application's index event types.
func (a *Admin) ListIndexEventTypes(ctx context.Context, page int) (*pathways.ListResponse[pathways.RawIndexEventType], error) {
	return getList[pathways.RawIndexEventType](ctx, a, paths.ListIndexEventTypes, nil, pageQuery(page), "unable to get list of index event types")
}

// CreateIndexEventType creates an index event type. Translated names are
// serialized to a JSON string form field.
func (a *Admin) CreateIndexEventType(ctx context.Context, name, slug string, translatedNames map[string]string) (*pathways.RawIndexEventType, error) {
	form := internalhttp.NewForm()
	form.Set("name", name)
	form.Set("slug", slug)
	form.Set("translated_names", encodeStringMapField(translatedNames))

	return postOne[pathways.RawIndexEventType](ctx, a, paths.CreateIndexEventType, nil, form, "unable to create index event type")
}

// PatchIndexEventType partially updates an index event type; nil fields
// are left unchanged.
func (a *Admin) PatchIndexEventType(ctx context.Context, indexEventTypeID int, update pathways.IndexEventTypeUpdate) (*pathways.RawIndexEventType, error) {
	form := internalhttp.NewForm()

	if update.Name != nil {
		form.Set("name", *update.Name)
	}

	if update.Slug != nil {
		form.Set("slug", *update.Slug)
	}

	if update.TranslatedNames != nil {
		form.Set("translated_names", encodeStringMapField(update.TranslatedNames))
	}

	if update.OrderIndex != nil {
		form.SetInt("order_index", *update.OrderIndex)
	}

	return patchOne[pathways.RawIndexEventType](ctx, a, paths.PatchIndexEventType, map[string]string{"indexEventTypeId": itoa(indexEventTypeID)}, form, "unable to update index event type")
}

// DeleteIndexEventType removes an index event type.
func (a *Admin) DeleteIndexEventType(ctx context.Context, indexEventTypeID int) (bool, error) {
	return a.delete(ctx, paths.DeleteIndexEventType, map[string]string{"indexEventTypeId": itoa(indexEventTypeID)}, "unable to delete index event type")
}

func encodeStringMapField(m map[string]string) string {
	if m == nil {
		return "{}"
	}

	data, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}

	return string(data)
}
