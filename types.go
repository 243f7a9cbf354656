package main

import "encoding/json"

// sheetsResponse is the envelope every Apps Script reply uses, for both the
// events fetch and the log write.
type sheetsResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    []json.RawMessage `json:"data,omitempty"`
}

// LogEntry is one audit row appended to the Logs sheet. The timestamp
// column is generated by the log store at write time.
type LogEntry struct {
	Email           string `json:"email"`
	Affiliation     string `json:"affiliation"`
	EventID         string `json:"eventId"`
	EventTitle      string `json:"eventTitle"`
	PromoCode       string `json:"promoCode"`
	RegistrationURL string `json:"registrationUrl"`
}

// emailSendRequest is the EmailJS send payload.
type emailSendRequest struct {
	ServiceID      string              `json:"service_id"`
	TemplateID     string              `json:"template_id"`
	UserID         string              `json:"user_id"`
	TemplateParams emailTemplateParams `json:"template_params"`
}

type emailTemplateParams struct {
	EventTitle         string `json:"event_title"`
	PromoCode          string `json:"promo_code"`
	RegistrationURL    string `json:"registration_url"`
	AffiliationMessage string `json:"affiliation_message"`
	ToEmail            string `json:"to_email"`
}

// submissionRequest is the body of POST /api/requests.
type submissionRequest struct {
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
	EventID     string `json:"eventId"`
}

// apiResponse mirrors the Apps Script status envelope so the form's fetch
// handling stays uniform across endpoints.
type apiResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// eventSummary is what the form's select box needs per event.
type eventSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// affiliationSummary is one choice of the affiliation selector.
type affiliationSummary struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}
