package strapi

import (
	"encoding/json"
	"fmt"
)

// NetworkError covers transport failures and non-2xx responses from the
// destination API.  When the response body parses as JSON it is attached for
// diagnostics; Strapi tends to put validation detail there.
type NetworkError struct {
	URL        string
	StatusCode int
	Body       json.RawMessage
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("strapi: request to %s failed: %v", e.URL, e.Err)
	}
	if len(e.Body) > 0 {
		return fmt.Sprintf("strapi: request to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("strapi: request to %s failed with status %d", e.URL, e.StatusCode)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// FormatError means the destination answered 2xx but the payload wasn't the
// shape we were promised.
type FormatError struct {
	Op     string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("strapi: %s: %s", e.Op, e.Reason)
}
