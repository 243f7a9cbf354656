package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchEventsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "success",
			"data": []map[string]interface{}{
				{
					"ID": "WK1", "Title": "Workshop", "Date": "2025-01-01",
					"EDU code": "E1", "Partner code": "P1",
					"General URL": "g", "EDU URL": "e", "Partner URL": "p",
				},
				{"Title": "Dropped", "Date": "2025-02-01"},
			},
		})
	}))
	defer server.Close()

	a := newTestApp(t, &fakeSheets{}, &fakeEmail{})
	a.config.AppsScriptURL = server.URL

	events, err := a.fetchEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Workshop", events[0].Title)
}

func TestFetchEventsErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"error","message":"sheet unavailable"}`))
	}))
	defer server.Close()

	a := newTestApp(t, &fakeSheets{}, &fakeEmail{})
	a.config.AppsScriptURL = server.URL

	_, err := a.fetchEvents(context.Background())
	require.Error(t, err)

	var transport TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "sheet unavailable", transport.Message)
}

func TestFetchEventsUnconfigured(t *testing.T) {
	a := newTestApp(t, &fakeSheets{}, &fakeEmail{})
	a.config.AppsScriptURL = "YOUR_GOOGLE_APPS_SCRIPT_DEPLOYMENT_URL"

	_, err := a.fetchEvents(context.Background())
	assert.ErrorAs(t, err, new(ConfigError))
}

func TestFetchEventsCachedHitsNetworkOnce(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","data":[{"ID":"WK1","Title":"Workshop","Date":"2025-01-01","EDU code":"E1","Partner code":"P1","General URL":"g","EDU URL":"e","Partner URL":"p"}]}`))
	}))
	defer server.Close()

	a := newTestApp(t, &fakeSheets{}, &fakeEmail{})
	a.config.AppsScriptURL = server.URL

	first, err := a.fetchEventsCached(context.Background())
	require.NoError(t, err)
	second, err := a.fetchEventsCached(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second read must come from the local cache")
}

func TestSheetsErrorMessageHTML(t *testing.T) {
	page := `<html><head><title>Error</title></head><body>
		<div class="errorMessage">Script function not found: doGet</div>
	</body></html>`

	message := sheetsErrorMessage([]byte(page), "text/html; charset=utf-8")
	assert.Equal(t, "Script function not found: doGet", message)
}

func TestSheetsErrorMessageHTMLTitleFallback(t *testing.T) {
	page := `<html><head><title>Authorization needed</title></head><body><p></p></body></html>`

	message := sheetsErrorMessage([]byte(page), "text/html")
	assert.Equal(t, "Authorization needed", message)
}

func TestSheetsErrorMessagePlainBody(t *testing.T) {
	message := sheetsErrorMessage([]byte("  upstream exploded  "), "text/plain")
	assert.Equal(t, "upstream exploded", message)
}

func TestWriteLogPostsEntry(t *testing.T) {
	sheets := &fakeSheets{}
	a := newTestApp(t, sheets, &fakeEmail{})

	entry := LogEntry{
		Email: "x@univ.edu", Affiliation: "academic", EventID: "WK1",
		EventTitle: "Workshop", PromoCode: "EDU50", RegistrationURL: "https://e",
	}
	require.NoError(t, a.writeLog(context.Background(), entry))
	require.Len(t, sheets.logs, 1)
	assert.Equal(t, entry, sheets.logs[0])
}
