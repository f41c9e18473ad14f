package client

import (
	"context"

	internalhttp "github.com/liquid-state/pathways-client/internal/http"
	"github.com/liquid-state/pathways-client/internal/paths"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// ListPathwaySnapshots lists the snapshots taken of a pathway.
func (a *Admin) ListPathwaySnapshots(ctx context.Context, pathwayID, page int) (*pathways.ListResponse[pathways.RawPathwaySnapshot], error) {
	return getList[pathways.RawPathwaySnapshot](ctx, a, paths.ListPathwaySnapshots, map[string]string{"pathwayId": itoa(pathwayID)}, pageQuery(page), "unable to get list of pathway snapshots")
}

// CreatePathwaySnapshot captures the pathway's current definition as a
// new named snapshot.
func (a *Admin) CreatePathwaySnapshot(ctx context.Context, pathwayID int, data pathways.PathwaySnapshotData) (*pathways.RawPathwaySnapshot, error) {
	form := internalhttp.NewForm()
	form.Set("name", data.Name)
	form.Set("description", data.Description)

	return postOne[pathways.RawPathwaySnapshot](ctx, a, paths.CreatePathwaySnapshot, map[string]string{"pathwayId": itoa(pathwayID)}, form, "unable to create pathway snapshot")
}

// SharePathwaySnapshot publishes a snapshot to child organisations.
func (a *Admin) SharePathwaySnapshot(ctx context.Context, pathwayID, snapshotID int) (*pathways.RawPathwaySnapshot, error) {
	params := map[string]string{"pathwayId": itoa(pathwayID), "snapshotId": itoa(snapshotID)}

	return postOne[pathways.RawPathwaySnapshot](ctx, a, paths.SharePathwaySnapshot, params, nil, "unable to share pathway snapshot")
}

// UnsharePathwaySnapshot withdraws a previously shared snapshot.
func (a *Admin) UnsharePathwaySnapshot(ctx context.Context, pathwayID, snapshotID int) (*pathways.RawPathwaySnapshot, error) {
	params := map[string]string{"pathwayId": itoa(pathwayID), "snapshotId": itoa(snapshotID)}

	return postOne[pathways.RawPathwaySnapshot](ctx, a, paths.UnsharePathwaySnapshot, params, nil, "unable to unshare pathway snapshot")
}

// ListSharedPathwaySnapshots lists snapshots shared into this
// organisation by its parent.
func (a *Admin) ListSharedPathwaySnapshots(ctx context.Context, page int) (*pathways.ListResponse[pathways.RawSharedPathwaySnapshot], error) {
	return getList[pathways.RawSharedPathwaySnapshot](ctx, a, paths.ListSharedPathwaySnapshots, nil, pageQuery(page), "unable to get list of shared snapshots")
}

// UseSharedPathwaySnapshot instantiates a shared snapshot as a new local
// pathway and returns it. indexEventTypes maps the snapshot's index
// event type slugs onto this application's slugs; the service needs it
// to rebind the snapshot's index events on instantiation.
func (a *Admin) UseSharedPathwaySnapshot(ctx context.Context, snapshotID int, indexEventTypes map[string]string) (*pathways.RawPathway, error) {
	form := internalhttp.NewForm()
	form.Set("index_event_types", encodeStringMapField(indexEventTypes))

	return postOne[pathways.RawPathway](ctx, a, paths.UseSharedPathwaySnapshot, map[string]string{"snapshotId": itoa(snapshotID)}, form, "unable to use shared snapshot")
}
