package fetch

import (
	"fmt"
	"time"
)

// TimeoutError is returned when a page does not load within the timeout.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s loading %s", e.Timeout, e.URL)
}

// FetchError wraps any other failure to load a page.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
