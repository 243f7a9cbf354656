package main

import (
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const userAgent = "promocodes/1.0"

// doRequest makes a request and returns the response and body.
// This function encapsulates the boilerplate for logging and reading the
// response body.
func (a *app) doRequest(req *http.Request) (*http.Response, []byte, error) {
	req.Header.Set("User-Agent", userAgent)

	// Log the request
	log.Debug().Str("method", req.Method).Str("host", req.Host).Str("path", req.URL.Path).Msg("Request")

	// Send the request (while acquiring timings)
	start := time.Now()
	resp, err := a.client.Do(req)
	duration := time.Since(start)

	// Handle errors
	if err != nil {
		log.Error().Err(err).Msg("Request Error")
		return nil, nil, err
	}

	// Read the body
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)

	if err != nil {
		log.Err(err).Int("code", resp.StatusCode).Str("content-type", resp.Header.Get("Content-Type")).Int("content-length", len(body)).
			Str("duration", duration.String()).Msg("Response (Unable to Read Body)")
		return nil, nil, err
	}

	log.Debug().Int("code", resp.StatusCode).Str("content-type", resp.Header.Get("Content-Type")).Int("content-length", len(body)).
		Str("duration", duration.String()).Msg("Response")
	return resp, body, nil
}
