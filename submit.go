package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// submissionState tracks one submission through the pipeline.
type submissionState int

const (
	stateIdle submissionState = iota
	stateValidating
	stateRejected
	stateSending
	stateDelivered
	stateLogging
	stateDone
	stateFailed
)

func (s submissionState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateValidating:
		return "validating"
	case stateRejected:
		return "rejected"
	case stateSending:
		return "sending"
	case stateDelivered:
		return "delivered"
	case stateLogging:
		return "logging"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Rejection messages shown to the visitor. Each check has its own.
const (
	msgSelectEvent       = "Please select an event."
	msgSelectAffiliation = "Please select your affiliation."
	msgInvalidEmail      = "Please enter a valid email address."
	msgGenericFailure    = "Failed to process your request. Please try again."
)

// SubmissionResult is the outward-visible outcome of one submission.
type SubmissionResult struct {
	State   submissionState
	Message string
}

func rejected(message string) SubmissionResult {
	return SubmissionResult{State: stateRejected, Message: message}
}

// Process runs one submission end to end: validate, resolve, send the
// email, then best-effort log. Validation failures perform no side effects.
// A log-write failure never turns a delivered submission into a failure.
func (a *app) Process(ctx context.Context, sub submissionRequest) SubmissionResult {
	state := stateValidating
	log.Debug().Str("email", sub.Email).Str("affiliation", sub.Affiliation).Str("event", sub.EventID).Msg("Submission Received")

	if sub.EventID == "" {
		return rejected(msgSelectEvent)
	}
	event, found := FindEvent(a.events(), sub.EventID)
	if !found {
		return rejected(msgSelectEvent)
	}

	if sub.Affiliation == "" {
		return rejected(msgSelectAffiliation)
	}
	affiliation, known := a.directory[sub.Affiliation]
	if !known {
		return rejected(msgSelectAffiliation)
	}

	if !EmailValid(sub.Email) {
		return rejected(msgInvalidEmail)
	}

	if err := ValidateDomain(sub.Email, affiliation); err != nil {
		journal(journalEntry{
			At: time.Now(), Email: sub.Email, Affiliation: sub.Affiliation,
			EventID: event.ID, Outcome: stateRejected.String(), Detail: err.Error(),
		})
		return rejected(err.Error())
	}

	resolution := Resolve(event, affiliation.Category)

	state = stateSending
	if err := a.sendPromoEmail(ctx, sub.Email, affiliation, event, resolution); err != nil {
		log.Error().Err(err).Str("state", state.String()).Msg("Email Send Failed")
		journal(journalEntry{
			At: time.Now(), Email: sub.Email, Affiliation: sub.Affiliation,
			EventID: event.ID, Outcome: stateFailed.String(), Detail: err.Error(),
		})
		return SubmissionResult{State: stateFailed, Message: msgGenericFailure}
	}
	state = stateDelivered
	log.Debug().Str("state", state.String()).Str("email", sub.Email).Msg("Email Delivered")

	// Log write is best effort; failures are diagnostics only
	state = stateLogging
	entry := LogEntry{
		Email:           sub.Email,
		Affiliation:     sub.Affiliation,
		EventID:         event.ID,
		EventTitle:      event.Title,
		PromoCode:       resolution.PromoCode,
		RegistrationURL: resolution.RegistrationURL,
	}
	if err := a.writeLog(ctx, entry); err != nil {
		log.Error().Err(err).Str("state", state.String()).Msg("Log Write Failed")
	}

	journal(journalEntry{
		At: time.Now(), Email: sub.Email, Affiliation: sub.Affiliation,
		EventID: event.ID, Outcome: stateDone.String(),
	})

	return SubmissionResult{State: stateDone}
}
