package sharepoint

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// DownloadItem downloads a file's content to a local path. The Graph API
// answers the content request with a 302 redirect to a pre-authenticated URL,
// which must be fetched without the Authorization header; the authenticated
// client would follow the redirect with the bearer token attached, so the
// redirect is intercepted and the target fetched with a plain client.
func (c *Client) DownloadItem(ctx context.Context, itemID, localPath string) error {
	contentURL, err := c.driveURL("/items/" + url.PathEscape(itemID) + "/content")
	if err != nil {
		return err
	}

	noRedirectClient := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Transport: c.httpClient.Transport,
	}

	req, err := http.NewRequestWithContext(ctx, "GET", contentURL, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}

	res, err := noRedirectClient.Do(req)
	if err != nil {
		return fmt.Errorf("initiating download: %w", err)
	}
	defer closeBodySafely(res.Body, c.logger, "download")

	if res.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(res.Body)
		return &RemoteError{StatusCode: res.StatusCode, Body: string(body)}
	}

	if res.StatusCode == http.StatusFound {
		downloadURL := res.Header.Get("Location")
		if downloadURL == "" {
			return fmt.Errorf("no download location in redirect header")
		}
		return c.downloadFromURL(ctx, downloadURL, localPath)
	}

	return saveResponseToFile(res, localPath)
}

// downloadFromURL fetches a pre-authenticated download URL with a plain
// client and writes the body to a local file.
func (c *Client) downloadFromURL(ctx context.Context, downloadURL, localPath string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", downloadURL, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading from URL: %w", err)
	}
	defer closeBodySafely(res.Body, c.logger, "download content")

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return &RemoteError{StatusCode: res.StatusCode, Body: string(body)}
	}

	return saveResponseToFile(res, localPath)
}

// saveResponseToFile saves an HTTP response body to a local file. Filesystem
// failures come back as wrapped os errors, distinct from RemoteError.
func saveResponseToFile(res *http.Response, localPath string) error {
	file, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("creating local file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, res.Body); err != nil {
		return fmt.Errorf("saving to local file: %w", err)
	}

	return nil
}
