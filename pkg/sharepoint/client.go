// Package sharepoint is a client for SharePoint document management through
// the Microsoft Graph API, authenticated app-only via the OAuth2
// client-credentials flow.
//
// A Client owns the Graph base URL, a lazily-acquired bearer token, and two
// pieces of resolved context (site id, drive id) that gate most operations.
// The token is fetched on the first resource call and refreshed automatically
// near expiry by the underlying token source. Resource operations are thin:
// a precondition check on the cached context, one HTTP round trip, and a
// decoded JSON result.
package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	tokenURLTemplate = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	graphRootURL     = "https://graph.microsoft.com/v1.0/"
	graphScope       = "https://graph.microsoft.com/.default"
)

var (
	customTokenURL = ""
	customRootURL  = graphRootURL
)

// SetCustomTokenEndpoint overrides the default token endpoint.
// This is primarily used for testing against a mock OAuth server.
func SetCustomTokenEndpoint(tokenURL string) {
	customTokenURL = tokenURL
}

// SetCustomGraphEndpoint overrides the default Microsoft Graph API root
// endpoint. Useful for testing against a mock Graph server.
func SetCustomGraphEndpoint(graphURL string) {
	customRootURL = graphURL
}

// Logger is the interface the SDK uses for logging. It is satisfied by
// internal/logger implementations, but any compatible logger works.
type Logger interface {
	Debug(msg string, args ...any)
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// noopLogger discards all log messages.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any)     {}
func (noopLogger) Debugf(format string, args ...any) {}
func (noopLogger) Warnf(format string, args ...any)  {}

// Credentials holds the Azure AD application identity used for the
// client-credentials exchange. All fields are required.
type Credentials struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	// TenantName is the SharePoint hostname prefix, e.g. "contoso" for
	// contoso.sharepoint.com.
	TenantName string
}

// Client is a stateful client for SharePoint operations through Microsoft
// Graph. It caches the resolved site and drive ids for the lifetime of the
// instance; bearer token acquisition and refresh are handled by the
// underlying oauth2 token source.
type Client struct {
	httpClient *http.Client
	tenantName string
	logger     Logger

	mu      sync.RWMutex // guards siteID, driveID
	siteID  string
	driveID string
}

// NewClient creates a SharePoint client from app-only credentials. No network
// call is made until the first operation; the token endpoint is contacted
// lazily and its result cached by the token source.
func NewClient(ctx context.Context, creds Credentials, logger Logger) *Client {
	tokenURL := customTokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf(tokenURLTemplate, creds.TenantID)
	}

	conf := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{graphScope},
	}

	if logger == nil {
		logger = noopLogger{}
	}

	return &Client{
		httpClient: conf.Client(ctx),
		tenantName: creds.TenantName,
		logger:     logger,
	}
}

// apiCall performs one authenticated HTTP round trip. Token-endpoint
// rejections surface as *AuthError, non-2xx resource responses as
// *RemoteError carrying the verbatim status and body. There is no retry at
// any layer.
func (c *Client) apiCall(ctx context.Context, method, url, contentType string, body io.Reader) (*http.Response, error) {
	c.logger.Debug("api call", "method", method, "url", url)

	if c.httpClient == nil {
		return nil, errors.New("HTTP client is nil, please provide a valid HTTP client")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request failed: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			authErr := &AuthError{Body: string(retrieveErr.Body)}
			if retrieveErr.Response != nil {
				authErr.StatusCode = retrieveErr.Response.StatusCode
			}
			return nil, authErr
		}
		return nil, fmt.Errorf("network error: %w", err)
	}

	if res.StatusCode >= http.StatusBadRequest {
		defer closeBodySafely(res.Body, c.logger, "error response")
		resBody, _ := io.ReadAll(res.Body)
		return nil, &RemoteError{StatusCode: res.StatusCode, Body: string(resBody)}
	}

	return res, nil
}

// makeAPICallAndDecode performs an API call and decodes the JSON response
// into dest. This collapses the repetitive apiCall + defer + decode pattern
// used across the SDK.
func (c *Client) makeAPICallAndDecode(ctx context.Context, method, url, contentType string, body io.Reader, dest any, operation string) error {
	res, err := c.apiCall(ctx, method, url, contentType, body)
	if err != nil {
		return err
	}
	defer closeBodySafely(res.Body, c.logger, operation)

	if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decoding %s response: %w", ErrDecodingFailed, operation, err)
	}

	return nil
}

// closeBodySafely closes an HTTP response body and logs any error. Intended
// for defer statements where error handling is not critical.
func closeBodySafely(body io.Closer, logger Logger, operation string) {
	if err := body.Close(); err != nil {
		logger.Warnf("Failed to close %s body: %v", operation, err)
	}
}

// marshalBody marshals a request body and wraps it for apiCall.
func marshalBody(v any, operation string) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s request: %w", operation, err)
	}
	return bytes.NewReader(data), nil
}
