package client

import (
	"context"

	"github.com/liquid-state/pathways-client/pkg/pathways"
)

// ListEntriesForJourney follows a journey's entries hyperlink and every
// subsequent next link until the chain is exhausted, concatenating the
// pages in order. The accumulation is unbounded; callers own the
// decision to run this against large journeys.
func (a *Admin) ListEntriesForJourney(ctx context.Context, entriesURL string) ([]pathways.RawJourneyEntry, error) {
	var results []pathways.RawJourneyEntry

	next := entriesURL
	for next != "" {
		resp, err := a.httpClient.GetURL(ctx, next, "unable to list entries for journey")
		if err != nil {
			return nil, err
		}

		page, err := decodeJSON[pathways.ListResponse[pathways.RawJourneyEntry]](resp)
		if err != nil {
			return nil, err
		}

		results = append(results, page.Results...)

		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}

	return results, nil
}

// ListIndexEventsForJourney fetches the single page behind a journey's
// index-events hyperlink.
func (a *Admin) ListIndexEventsForJourney(ctx context.Context, indexEventsURL string) ([]pathways.RawJourneyIndexEvent, error) {
	resp, err := a.httpClient.GetURL(ctx, indexEventsURL, "unable to list index events for journey")
	if err != nil {
		return nil, err
	}

	page, err := decodeJSON[pathways.ListResponse[pathways.RawJourneyIndexEvent]](resp)
	if err != nil {
		return nil, err
	}

	return page.Results, nil
}
