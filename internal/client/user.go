package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/liquid-state/pathways-client/internal/constants"
	internalhttp "github.com/liquid-state/pathways-client/internal/http"
	"github.com/liquid-state/pathways-client/internal/paths"
	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// User is the end-user client, operating on the authenticated app
// user's own data. Admin-scoped lookups (original pathway, index event
// writes) build an app-scoped executor on demand from the app token.
type User struct {
	jwt        string
	httpClient *internalhttp.Client
	config     *pathways.Config
}

// NewUser creates an end-user client authenticated by jwt.
func NewUser(jwt string, config *pathways.Config) (*User, error) {
	if jwt == "" {
		return nil, pathways.ErrMissingJWT
	}

	if config == nil {
		config = &pathways.Config{}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = constants.DefaultUserBaseURL
	}

	return &User{
		jwt:        jwt,
		httpClient: internalhttp.NewClient(baseURL, jwt, executorOptions(config)...),
		config:     config,
	}, nil
}

func executorOptions(config *pathways.Config) []internalhttp.Option {
	return []internalhttp.Option{
		internalhttp.WithHTTPClient(config.HTTPClient),
		internalhttp.WithLogger(config.Logger),
		internalhttp.WithDebug(config.Debug),
		internalhttp.WithUserAgent(config.UserAgent),
	}
}

// adminScoped builds an executor rooted at the app-scoped admin base
// URL. The end-user config's BaseURL overrides the user base only, so
// admin-scoped lookups always use the default template.
func (u *User) adminScoped(appToken string) (*internalhttp.Client, error) {
	if appToken == "" {
		return nil, pathways.ErrMissingAppToken
	}

	baseURL := strings.ReplaceAll(constants.DefaultAdminBaseURLTemplate, "{{app_ubiquity_token}}", appToken)

	return internalhttp.NewClient(baseURL, u.jwt, executorOptions(u.config)...), nil
}

// Subject returns the sub claim of the client's JWT. The payload is
// base64-decoded without signature verification; identity is asserted by
// the service, this is only used to scope requests.
func (u *User) Subject() (string, error) {
	segments := strings.Split(u.jwt, ".")
	if len(segments) != 3 {
		return "", pathways.ErrInvalidJWT
	}

	payload, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return "", fmt.Errorf("decoding JWT payload: %w", pathways.ErrInvalidJWT)
	}

	var claims struct {
		Sub string `json:"sub"`
	}

	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("parsing JWT claims: %w", pathways.ErrInvalidJWT)
	}

	return claims.Sub, nil
}

// Me fetches the current user's profile. When useIdentityFilter is true
// the request is scoped by the JWT's sub claim.
func (u *User) Me(ctx context.Context, useIdentityFilter bool) (*pathways.Me, error) {
	query := ""

	if useIdentityFilter {
		sub, err := u.Subject()
		if err != nil {
			return nil, err
		}

		params := pathways.NewParams()
		params.Set("identity_id", sub)
		query = params.Encode()
	}

	resp, err := u.httpClient.Get(ctx, paths.Me.MustResolve(), query, "unable to get data for user")
	if err != nil {
		return nil, err
	}

	raw, err := decodeJSON[pathways.RawMe](resp)
	if err != nil {
		return nil, err
	}

	me := pathways.MapRawMe(*raw)

	return &me, nil
}

// EntriesForJourney fetches the first page of a journey's entries by
// following its entries hyperlink.
func (u *User) EntriesForJourney(ctx context.Context, journey *pathways.Journey) (*pathways.JourneyEntriesPage, error) {
	return u.entriesPage(ctx, journey.Entries)
}

// EntriesNextPage follows a page's next link.
func (u *User) EntriesNextPage(ctx context.Context, page *pathways.JourneyEntriesPage) (*pathways.JourneyEntriesPage, error) {
	if page == nil || page.Next == nil {
		return nil, pathways.ErrNoMorePages
	}

	return u.entriesPage(ctx, *page.Next)
}

func (u *User) entriesPage(ctx context.Context, url string) (*pathways.JourneyEntriesPage, error) {
	resp, err := u.httpClient.GetURL(ctx, url, "unable to list entries for journey")
	if err != nil {
		return nil, err
	}

	raw, err := decodeJSON[pathways.ListResponse[pathways.RawJourneyEntry]](resp)
	if err != nil {
		return nil, err
	}

	return pathways.MapRawJourneyEntries(raw), nil
}

// ListJourneyEntriesByContentType exhausts a journey's entry pages
// sequentially and returns the rule-execution entries whose rule
// delivers the given content type, in page order. The accumulation is
// unbounded; callers own the decision to run this against large
// journeys.
func (u *User) ListJourneyEntriesByContentType(ctx context.Context, journey *pathways.Journey, contentType pathways.WhatType) ([]pathways.JourneyEntry, error) {
	var matches []pathways.JourneyEntry

	page, err := u.EntriesForJourney(ctx, journey)
	for {
		if err != nil {
			return nil, err
		}

		for _, entry := range page.Entries {
			if entry.RuleExecution != nil && entry.RuleExecution.RuleWhatType == contentType {
				matches = append(matches, entry)
			}
		}

		if page.Next == nil {
			return matches, nil
		}

		page, err = u.EntriesNextPage(ctx, page)
	}
}

// OriginalPathway fetches the canonical pathway definition an
// enrollment was created from. Pathway definitions live under the
// app-scoped URL space, so the app token is required.
func (u *User) OriginalPathway(ctx context.Context, appToken string, pathwayID int) (*pathways.Pathway, error) {
	admin, err := u.adminScoped(appToken)
	if err != nil {
		return nil, err
	}

	path, err := paths.GetPathway.Resolve(map[string]string{"pathwayId": itoa(pathwayID)})
	if err != nil {
		return nil, err
	}

	resp, err := admin.Get(ctx, path, "", fmt.Sprintf("unable to get data for pathway %d", pathwayID))
	if err != nil {
		return nil, err
	}

	raw, err := decodeJSON[pathways.RawPathway](resp)
	if err != nil {
		return nil, err
	}

	pathway := pathways.MapRawPathway(*raw)

	return &pathway, nil
}

// UpdateIndexEvents creates or updates the given index events
// concurrently. Events without an id are created, events with an id are
// replaced. Results are positional: results[i] reports the outcome of
// events[i], and one event's failure never masks another's success.
func (u *User) UpdateIndexEvents(ctx context.Context, appToken, appUserID string, journeyID int, events []pathways.IndexEventUpdate) ([]pathways.IndexEventResult, error) {
	admin, err := u.adminScoped(appToken)
	if err != nil {
		return nil, err
	}

	results := make([]pathways.IndexEventResult, len(events))

	var wg sync.WaitGroup

	for i, event := range events {
		wg.Add(1)

		go func(i int, event pathways.IndexEventUpdate) {
			defer wg.Done()

			results[i] = u.updateOneIndexEvent(ctx, admin, appUserID, journeyID, event)
		}(i, event)
	}

	wg.Wait()

	return results, nil
}

func (u *User) updateOneIndexEvent(ctx context.Context, admin *internalhttp.Client, appUserID string, journeyID int, event pathways.IndexEventUpdate) pathways.IndexEventResult {
	form := internalhttp.NewForm()
	form.Set("event_type_slug", event.EventTypeSlug)
	form.Set("value", event.Value)

	var (
		resp *internalhttp.Response
		err  error
	)

	if event.ID == 0 {
		params := map[string]string{"appUserId": appUserID, "journeyId": itoa(journeyID)}

		var path string

		path, err = paths.CreateAppUserJourneyIndexEvent.Resolve(params)
		if err == nil {
			resp, err = admin.Post(ctx, path, form, "unable to create index event")
		}
	} else {
		params := map[string]string{
			"appUserId":    appUserID,
			"journeyId":    itoa(journeyID),
			"indexEventId": itoa(event.ID),
		}

		var path string

		path, err = paths.UpdateAppUserJourneyIndexEvent.Resolve(params)
		if err == nil {
			resp, err = admin.Put(ctx, path, form, "unable to update index event")
		}
	}

	if err != nil {
		return pathways.IndexEventResult{Err: err}
	}

	raw, err := decodeJSON[pathways.RawJourneyIndexEvent](resp)
	if err != nil {
		return pathways.IndexEventResult{Err: err}
	}

	mapped := pathways.MapRawJourneyIndexEvent(*raw)

	return pathways.IndexEventResult{Event: &mapped}
}

// ActionJourneyEntry marks a journey entry as actioned and returns the
// updated entry.
func (u *User) ActionJourneyEntry(ctx context.Context, appToken, appUserID string, journeyID, entryID int) (*pathways.JourneyEntry, error) {
	admin, err := u.adminScoped(appToken)
	if err != nil {
		return nil, err
	}

	params := map[string]string{
		"appUserId": appUserID,
		"journeyId": itoa(journeyID),
		"entryId":   itoa(entryID),
	}

	path, err := paths.ActionAppUserJourneyEntry.Resolve(params)
	if err != nil {
		return nil, err
	}

	resp, err := admin.Post(ctx, path, nil, "unable to action journey entry")
	if err != nil {
		return nil, err
	}

	raw, err := decodeJSON[pathways.RawJourneyEntry](resp)
	if err != nil {
		return nil, err
	}

	entry := pathways.MapRawJourneyEntry(*raw)

	return &entry, nil
}

// TransitionToPathwayStage moves the user's enrollment to the named
// stage and returns the service's plain-text response.
func (u *User) TransitionToPathwayStage(ctx context.Context, appToken, appUserID string, appUserPathwayID int, stageSlug string) (string, error) {
	admin, err := u.adminScoped(appToken)
	if err != nil {
		return "", err
	}

	params := map[string]string{"appUserId": appUserID, "appUserPathwayId": itoa(appUserPathwayID)}

	path, err := paths.TransitionAppUserToPathwayStage.Resolve(params)
	if err != nil {
		return "", err
	}

	form := internalhttp.NewForm()
	form.Set("new_stage_slug", stageSlug)

	resp, err := admin.Post(ctx, path, form, "unable to transition to pathway stage")
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}
