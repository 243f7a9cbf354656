package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const emailSendURL = "https://api.emailjs.com/api/v1.0/email/send"

// sendPromoEmail dispatches the templated promo-code email through EmailJS.
// Exactly one attempt is made; there is no retry policy.
func (a *app) sendPromoEmail(ctx context.Context, email string, affiliation Affiliation, event EventRecord, resolution Resolution) error {
	if err := a.config.CheckEmail(); err != nil {
		return err
	}

	payload, err := json.Marshal(emailSendRequest{
		ServiceID:  a.config.EmailServiceID,
		TemplateID: a.config.EmailTemplateID,
		UserID:     a.config.EmailAPIKey,
		TemplateParams: emailTemplateParams{
			EventTitle:         event.Title,
			PromoCode:          resolution.PromoCode,
			RegistrationURL:    resolution.RegistrationURL,
			AffiliationMessage: affiliation.Message,
			ToEmail:            email,
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal email payload")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, a.emailURL, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build email request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, body, err := a.doRequest(request)
	if err != nil {
		return errors.Wrap(err, "failed to send email request")
	}

	if response.StatusCode != http.StatusOK {
		return TransportError{Endpoint: "email send", Message: string(body), Code: response.StatusCode}
	}

	log.Info().Str("event", event.Title).Str("category", affiliation.Category.String()).Msg("Promo Email Sent")
	return nil
}
