package propertyapi

import (
	"errors"
	"fmt"
)

// ErrFetch matches every *FetchError via errors.Is.
var ErrFetch = errors.New("property api fetch failed")

// FetchError is the single failure kind of the client. It covers transport
// errors, non-2xx statuses and undecodable bodies alike.
type FetchError struct {
	Op         string // "summary", "list" or "detail"
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool { return target == ErrFetch }
