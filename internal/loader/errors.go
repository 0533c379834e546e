package loader

import (
	"fmt"
	"net/http"
)

// FetchError means the dataset could not be retrieved: a transport failure,
// an unreadable file, or a non-success HTTP status.
type FetchError struct {
	Source string
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("fetch %s: %d %s: %v", e.Source, e.Status, http.StatusText(e.Status), e.Err)
	case e.Status != 0:
		return fmt.Sprintf("fetch %s: %d %s", e.Source, e.Status, http.StatusText(e.Status))
	default:
		return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FormatError means the dataset was retrieved but is not a plant dataset:
// wrong content type, malformed JSON, or invalid records.
type FormatError struct {
	Source string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dataset %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("dataset %s: %s: %v", e.Source, e.Reason, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
