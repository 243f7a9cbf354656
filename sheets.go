package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// fetchEvents pulls the event table from the Apps Script deployment and
// normalizes it. Any failure is reported to the caller; callers treat "no
// events" as a displayable state.
func (a *app) fetchEvents(ctx context.Context) ([]EventRecord, error) {
	if err := a.config.CheckSheets(); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.AppsScriptURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build events request")
	}

	response, body, err := a.doRequest(request)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch events")
	}

	if response.StatusCode != http.StatusOK {
		return nil, TransportError{
			Endpoint: "events fetch",
			Message:  sheetsErrorMessage(body, response.Header.Get("Content-Type")),
			Code:     response.StatusCode,
		}
	}

	var envelope sheetsResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		// Misdeployed scripts answer 200 with an HTML error page
		return nil, TransportError{
			Endpoint: "events fetch",
			Message:  sheetsErrorMessage(body, response.Header.Get("Content-Type")),
			Code:     response.StatusCode,
		}
	}

	if envelope.Status != "success" {
		return nil, TransportError{Endpoint: "events fetch", Message: envelope.Message, Code: response.StatusCode}
	}

	events := decodeEvents(envelope.Data)
	log.Info().Int("count", len(events)).Msg("Events Loaded")
	return events, nil
}

// fetchEventsCached serves the badger-cached catalog when it is warm,
// fetching and refilling the cache otherwise.
func (a *app) fetchEventsCached(ctx context.Context) ([]EventRecord, error) {
	if events := cachedEvents(a.db); events != nil {
		return events, nil
	}

	events, err := a.fetchEvents(ctx)
	if err != nil {
		return nil, err
	}

	cacheEvents(a.db, events)
	return events, nil
}

// writeLog appends one audit row to the Logs sheet. The POST-with-JSON
// transport is the canonical one.
func (a *app) writeLog(ctx context.Context, entry LogEntry) error {
	if err := a.config.CheckSheets(); err != nil {
		return err
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "failed to marshal log entry")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.AppsScriptURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build log request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, body, err := a.doRequest(request)
	if err != nil {
		return errors.Wrap(err, "failed to send log request")
	}

	if response.StatusCode != http.StatusOK {
		return TransportError{
			Endpoint: "log write",
			Message:  sheetsErrorMessage(body, response.Header.Get("Content-Type")),
			Code:     response.StatusCode,
		}
	}

	var envelope sheetsResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return TransportError{
			Endpoint: "log write",
			Message:  sheetsErrorMessage(body, response.Header.Get("Content-Type")),
			Code:     response.StatusCode,
		}
	}

	if envelope.Status != "success" {
		return TransportError{Endpoint: "log write", Message: envelope.Message, Code: response.StatusCode}
	}

	return nil
}

// sheetsErrorMessage digs a readable message out of an Apps Script error
// body. Broken deployments answer with an HTML page whose title or error
// div carries the actual cause.
func sheetsErrorMessage(body []byte, contentType string) string {
	if !strings.Contains(contentType, "text/html") {
		return strings.TrimSpace(string(body))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return strings.TrimSpace(string(body))
	}

	if message := strings.TrimSpace(doc.Find("div.errorMessage").First().Text()); message != "" {
		return message
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Text())
}
