// Package pathways defines the public types and interfaces for the
// Pathways workflow-automation API client.
//
// The package contains three layers:
//
//   - Domain types (Pathway, Stage, Rule, AppUser, ...) shaped the way
//     application code wants them: camelCase, nested objects, typed
//     journey-entry variants.
//   - Raw types (RawPathway, RawRule, ...) mirroring the wire JSON
//     exactly: snake_case keys, flat foreign keys, JSON-encoded
//     sub-fields.
//   - Mappers converting raw records into domain records. Mapping is
//     pure, order-preserving and lossless for every field the domain
//     type declares.
//
// Concrete clients are constructed through the pathwaysclient package:
//
//	client, err := pathwaysclient.New(jwt, nil)
//	admin, err := pathwaysclient.NewAdminService(appToken, jwt, nil)
package pathways
