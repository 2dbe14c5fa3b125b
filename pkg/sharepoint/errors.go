package sharepoint

import (
	"errors"
	"fmt"
)

// Sentinel errors for local precondition failures. These are returned before
// any network I/O happens.
var (
	ErrSiteNotResolved  = errors.New("site not resolved, call ResolveSite first")
	ErrDriveNotResolved = errors.New("drive not resolved, call ResolveDrive first")
	ErrNoDrives         = errors.New("site has no document libraries")
	ErrDecodingFailed   = errors.New("decoding response failed")
)

// AuthError is returned when the token endpoint rejects the
// client-credentials exchange. Status code and body are surfaced verbatim.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("token endpoint rejected credentials: status %d: %s", e.StatusCode, e.Body)
}

// RemoteError is returned for any non-2xx response from a resource endpoint.
// It carries the original status code and body without further
// interpretation; distinguishing e.g. 403 from 404 is left to the caller.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("graph api error: status %d: %s", e.StatusCode, e.Body)
}
