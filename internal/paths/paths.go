// Package paths holds the endpoint catalogue for the Pathways API and
// the template resolver that turns an Endpoint plus parameters into a
// request path.
package paths

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// Endpoint is a relative path template. Placeholders use the
// {{paramName}} form. When TrailingSlash is set and parameters were
// substituted, the resolved path is guaranteed to end in "/"; the
// templates themselves already carry their canonical trailing slash, so
// this only matters for templates ending in a placeholder.
type Endpoint struct {
	Template      string
	TrailingSlash bool
}

// Administrative endpoints, relative to the app-scoped base URL.
var (
	CreateAppUser                   = Endpoint{"appusers/", true}
	ListAppUsers                    = Endpoint{"appusers/", true}
	CreateAppUserJourney            = Endpoint{"appusers/{{appUserId}}/journeys/", true}
	ListAppUserJourneys             = Endpoint{"appusers/{{appUserId}}/journeys/", true}
	PatchAppUserJourney             = Endpoint{"appusers/{{appUserId}}/journeys/{{journeyId}}/", true}
	CreateAppUserJourneyIndexEvent  = Endpoint{"appusers/{{appUserId}}/journeys/{{journeyId}}/index-events/", true}
	ListAppUserJourneyIndexEvents   = Endpoint{"appusers/{{appUserId}}/journeys/{{journeyId}}/index-events/", true}
	UpdateAppUserJourneyIndexEvent  = Endpoint{"appusers/{{appUserId}}/journeys/{{journeyId}}/index-events/{{indexEventId}}/", true}
	PatchAppUserJourneyIndexEvent   = Endpoint{"appusers/{{appUserId}}/journeys/{{journeyId}}/index-events/{{indexEventId}}/", true}
	DeleteAppUserJourneyIndexEvent  = Endpoint{"appusers/{{appUserId}}/journeys/{{journeyId}}/index-events/{{indexEventId}}/", true}
	ListAppUserJourneyEntries       = Endpoint{"appusers/{{appUserId}}/journeys/{{journeyId}}/entries/", true}
	ActionAppUserJourneyEntry       = Endpoint{"appusers/{{appUserId}}/journeys/{{journeyId}}/entries/{{entryId}}/action/", true}
	CreateAppUserPathway            = Endpoint{"appusers/{{appUserId}}/pathways/", true}
	ListAppUserPathways             = Endpoint{"appusers/{{appUserId}}/pathways/", true}
	PatchAppUserPathway             = Endpoint{"appusers/{{appUserId}}/pathways/{{appUserPathwayId}}/", true}
	ProcessAppUserPathway           = Endpoint{"appusers/{{appUserId}}/pathways/{{appUserPathwayId}}/process/", true}
	TransitionAppUserToPathwayStage = Endpoint{"appusers/{{appUserId}}/pathways/{{appUserPathwayId}}/transition/", true}
	TriggerAdhocRule                = Endpoint{"appusers/{{appUserId}}/pathways/{{appUserPathwayId}}/trigger_adhoc_rule/", true}

	CreatePathway    = Endpoint{"pathways/", true}
	ListPathways     = Endpoint{"pathways/", true}
	GetPathway       = Endpoint{"pathways/{{pathwayId}}", true}
	PatchPathway     = Endpoint{"pathways/{{pathwayId}}/", true}
	DeletePathway    = Endpoint{"pathways/{{pathwayId}}/", true}
	DuplicatePathway = Endpoint{"pathways/{{pathwayId}}/duplicate/", true}

	CreatePathwayStage = Endpoint{"pathways/{{pathwayId}}/stages/", true}
	ListPathwayStages  = Endpoint{"pathways/{{pathwayId}}/stages/", true}
	PatchPathwayStage  = Endpoint{"pathways/{{pathwayId}}/stages/{{stageId}}/", true}
	DeletePathwayStage = Endpoint{"pathways/{{pathwayId}}/stages/{{stageId}}/", true}

	CreatePathwayIndexEvent = Endpoint{"pathways/{{pathwayId}}/index-events/", true}
	ListPathwayIndexEvents  = Endpoint{"pathways/{{pathwayId}}/index-events/", true}
	PatchPathwayIndexEvent  = Endpoint{"pathways/{{pathwayId}}/index-events/{{indexEventId}}/", true}
	DeletePathwayIndexEvent = Endpoint{"pathways/{{pathwayId}}/index-events/{{indexEventId}}/", true}

	CreateRule = Endpoint{"rules/", true}
	ListRules  = Endpoint{"rules/", true}
	GetRule    = Endpoint{"rules/{{ruleId}}", true}
	PatchRule  = Endpoint{"rules/{{ruleId}}/", true}
	DeleteRule = Endpoint{"rules/{{ruleId}}/", true}

	CreateIndexEventType = Endpoint{"index-event-types/", true}
	ListIndexEventTypes  = Endpoint{"index-event-types/", true}
	PatchIndexEventType  = Endpoint{"index-event-types/{{indexEventTypeId}}/", true}
	DeleteIndexEventType = Endpoint{"index-event-types/{{indexEventTypeId}}/", true}

	CreatePathwaySnapshot  = Endpoint{"pathways/{{pathwayId}}/snapshots/", true}
	ListPathwaySnapshots   = Endpoint{"pathways/{{pathwayId}}/snapshots/", true}
	SharePathwaySnapshot   = Endpoint{"pathways/{{pathwayId}}/snapshots/{{snapshotId}}/share/", true}
	UnsharePathwaySnapshot = Endpoint{"pathways/{{pathwayId}}/snapshots/{{snapshotId}}/unshare/", true}

	ListSharedPathwaySnapshots = Endpoint{"shared-snapshots/", true}
	UseSharedPathwaySnapshot   = Endpoint{"shared-snapshots/{{snapshotId}}/use/", true}

	CreateEngagementCheck = Endpoint{"pathways/{{pathwayId}}/engagement-checks/", true}
	ListEngagementChecks  = Endpoint{"pathways/{{pathwayId}}/engagement-checks/", true}
	GetEngagementCheck    = Endpoint{"pathways/{{pathwayId}}/engagement-checks/{{checkId}}/", true}
	PatchEngagementCheck  = Endpoint{"pathways/{{pathwayId}}/engagement-checks/{{checkId}}/", true}
	DeleteEngagementCheck = Endpoint{"pathways/{{pathwayId}}/engagement-checks/{{checkId}}/", true}
)

// End-user endpoints, relative to the user base URL.
var (
	Me = Endpoint{"me/", true}
)

var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z]+)\}\}`)

// Resolve substitutes params into the endpoint template. Every
// placeholder must be supplied; a missing key yields an error wrapping
// pathways.ErrMissingPathParam. When parameters were substituted and the
// endpoint requires it, a trailing slash is appended.
func (e Endpoint) Resolve(params map[string]string) (string, error) {
	var missing string

	path := placeholderPattern.ReplaceAllStringFunc(e.Template, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]

		value, ok := params[key]
		if !ok {
			if missing == "" {
				missing = key
			}

			return match
		}

		return value
	})

	if missing != "" {
		return "", fmt.Errorf("resolving %q, parameter %q: %w", e.Template, missing, pathways.ErrMissingPathParam)
	}

	if len(params) > 0 && e.TrailingSlash && !strings.HasSuffix(path, "/") {
		path += "/"
	}

	return path, nil
}

// MustResolve is Resolve for endpoints without placeholders; it panics on
// a template that still needs parameters.
func (e Endpoint) MustResolve() string {
	path, err := e.Resolve(nil)
	if err != nil {
		panic(err)
	}

	return path
}
