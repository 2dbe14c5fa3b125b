package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Paging controls pagination for collection operations. Zero value fetches a
// single server-sized page. Top caps the page size via $top; NextLink resumes
// from a link returned by an earlier call; FetchAll drains every page.
type Paging struct {
	Top      int
	NextLink string
	FetchAll bool
}

// applyTop appends a $top query parameter to a URL, using the correct
// separator for URLs that already carry a query string.
func applyTop(rawURL string, top int) string {
	if top <= 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s$top=%d", rawURL, sep, top)
}

// collectPages follows @odata.nextLink to gather collection pages. It returns
// the raw items and the next link for the page after the last one fetched, ""
// when the collection is exhausted.
func (c *Client) collectPages(ctx context.Context, initialURL string, paging Paging) ([]json.RawMessage, string, error) {
	var allItems []json.RawMessage

	nextLink := applyTop(initialURL, paging.Top)
	if paging.NextLink != "" {
		nextLink = paging.NextLink
	}

	for nextLink != "" {
		res, err := c.apiCall(ctx, "GET", nextLink, "", nil)
		if err != nil {
			return nil, "", err
		}

		var page struct {
			Value    []json.RawMessage `json:"value"`
			NextLink string            `json:"@odata.nextLink"`
		}

		bodyBytes, err := io.ReadAll(res.Body)
		closeBodySafely(res.Body, c.logger, "collection page")
		if err != nil {
			return nil, "", fmt.Errorf("reading page body: %w", err)
		}

		if err := json.Unmarshal(bodyBytes, &page); err != nil {
			return nil, "", fmt.Errorf("%w: decoding collection page: %w", ErrDecodingFailed, err)
		}

		allItems = append(allItems, page.Value...)
		nextLink = page.NextLink

		if !paging.FetchAll {
			break
		}
	}

	return allItems, nextLink, nil
}

// decodeRawItems unmarshals the raw pages collected by collectPages into a
// typed slice.
func decodeRawItems[T any](raw []json.RawMessage) ([]T, error) {
	items := make([]T, 0, len(raw))
	for _, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			return nil, fmt.Errorf("%w: decoding collection item: %w", ErrDecodingFailed, err)
		}
		items = append(items, item)
	}
	return items, nil
}
