package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const submitTimeout = 30 * time.Second

const msgTooManyRequests = "Too many requests. Please try again later."

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.handleHealthz)
	r.Get("/api/events", a.handleEvents)
	r.Get("/api/affiliations", a.handleAffiliations)
	r.Post("/api/requests", a.handleSubmit)

	return r
}

func writeJSON(w http.ResponseWriter, code int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to Encode Response")
	}
}

func (a *app) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiResponse{
		Status: "success",
		Data: map[string]int{
			"events":       len(a.events()),
			"affiliations": len(a.directory),
		},
	})
}

// handleEvents serves the select-box listing, refreshing the catalog
// through the local cache. A failed refresh degrades to the current
// in-memory catalog; "no events" is a valid, displayable state.
func (a *app) handleEvents(w http.ResponseWriter, r *http.Request) {
	events, err := a.fetchEventsCached(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("Event Refresh Failed, Serving Current Catalog")
		events = a.events()
	} else {
		a.setEvents(events)
	}

	summaries := lo.Map(events, func(e EventRecord, _ int) eventSummary {
		return eventSummary{ID: e.ID, Title: e.Title, Date: e.Date}
	})
	writeJSON(w, http.StatusOK, apiResponse{Status: "success", Data: summaries})
}

func (a *app) handleAffiliations(w http.ResponseWriter, r *http.Request) {
	summaries := make([]affiliationSummary, 0, len(a.directory))
	for _, affiliation := range a.directory {
		summaries = append(summaries, affiliationSummary{Key: affiliation.Key, Message: affiliation.Message})
	}
	writeJSON(w, http.StatusOK, apiResponse{Status: "success", Data: summaries})
}

func (a *app) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub submissionRequest
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Status: "error", Message: "Invalid request body."})
		return
	}

	if !a.limiter.Allow() {
		writeJSON(w, http.StatusTooManyRequests, apiResponse{Status: "error", Message: msgTooManyRequests})
		return
	}

	// One submission in flight per email; a duplicate submit while the
	// first is pending is rejected outright.
	if !a.markInflight(sub.Email) {
		writeJSON(w, http.StatusConflict, apiResponse{Status: "error", Message: "A request for this email is already in progress."})
		return
	}
	defer a.clearInflight(sub.Email)

	ctx, cancel := context.WithTimeout(r.Context(), submitTimeout)
	defer cancel()

	result := a.Process(ctx, sub)
	switch result.State {
	case stateRejected:
		writeJSON(w, http.StatusBadRequest, apiResponse{Status: "error", Message: result.Message})
	case stateFailed:
		writeJSON(w, http.StatusBadGateway, apiResponse{Status: "error", Message: result.Message})
	default:
		writeJSON(w, http.StatusOK, apiResponse{Status: "success", Message: "Your promo code is on its way. Check your email."})
	}
}
