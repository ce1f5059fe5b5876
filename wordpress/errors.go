package wordpress

import "fmt"

// NetworkError covers transport failures and non-2xx responses when talking
// to the source API or downloading assets from it.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wordpress: request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("wordpress: request to %s failed with status %d", e.URL, e.StatusCode)
}

func (e *NetworkError) Unwrap() error { return e.Err }
