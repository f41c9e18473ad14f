// Package pathwaysclient constructs Pathways API clients. It is the
// package applications import; pkg/pathways holds the types and
// interfaces the constructed clients speak.
package pathwaysclient

import (
	"github.com/liquid-state/pathways-client/internal/client"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// New creates an end-user client authenticated by jwt. A nil config
// selects the production base URL and http.DefaultClient.
func New(jwt string, config *pathways.Config) (pathways.Client, error) {
	return client.NewUser(jwt, config)
}

// NewAdmin creates a raw administrative client scoped to the
// application identified by appToken. Its methods return wire records;
// most callers want NewAdminService instead.
func NewAdmin(appToken, jwt string, config *pathways.Config) (pathways.AdminClient, error) {
	return client.NewAdmin(appToken, jwt, config)
}

// NewAdminService creates an administrative client that returns mapped
// domain records.
func NewAdminService(appToken, jwt string, config *pathways.Config) (pathways.AdminService, error) {
	adminClient, err := client.NewAdmin(appToken, jwt, config)
	if err != nil {
		return nil, err
	}

	return client.NewAdminService(adminClient)
}

// NewAdminServiceFor wraps an existing raw admin client, for callers
// that need both surfaces over one executor.
func NewAdminServiceFor(adminClient pathways.AdminClient) (pathways.AdminService, error) {
	return client.NewAdminService(adminClient)
}
