package forkify

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNetwork indicates the request never produced a response: transport failure or timeout.
	ErrNetwork = errors.New("network request failed")

	// ErrNotFound indicates the API has no recipe with the requested id.
	ErrNotFound = errors.New("recipe not found")

	// ErrAPI indicates the API answered with a non-success status.
	ErrAPI = errors.New("recipe api error")

	// ErrDecode indicates the response body was not the expected JSON.
	ErrDecode = errors.New("invalid api response")

	// ErrMissingAPIKey indicates an upload was attempted without an API key.
	ErrMissingAPIKey = errors.New("api key is required to upload recipes")
)

// StatusError is a non-2xx answer from the API. It matches ErrNotFound or ErrAPI with errors.Is.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

func (e *StatusError) Unwrap() error {
	if e.notFound() {
		return ErrNotFound
	}
	return ErrAPI
}

// The API answers an unknown id with 400 "Invalid _id" rather than 404.
func (e *StatusError) notFound() bool {
	return e.Code == http.StatusNotFound ||
		(e.Code == http.StatusBadRequest && strings.Contains(e.Message, "Invalid _id"))
}
