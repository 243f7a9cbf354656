package main

import "fmt"

// ConfigError names the missing or placeholder configuration value.
type ConfigError string

// ValidationError carries the exact message shown to the visitor.
type ValidationError string

// TransportError wraps a non-success response from an external endpoint.
type TransportError struct {
	Endpoint string
	Message  string
	Code     int
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("not configured: %s", string(e))
}

func (e ValidationError) Error() string {
	return string(e)
}

func (e TransportError) Error() string {
	msg := e.Message
	if len(msg) > 120 {
		msg = msg[:120]
	}
	return fmt.Sprintf("%s returned %d: %s", e.Endpoint, e.Code, msg)
}
