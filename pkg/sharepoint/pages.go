package sharepoint

import (
	"context"
	"net/url"
)

// articleLayoutWebPartID is the layout web part the service assigns to
// standard article pages.
const articleLayoutWebPartID = "3eb3e627-5144-4667-83d5-7662c6abb714"

// siteURL builds a URL under the resolved site. It returns
// ErrSiteNotResolved before any network I/O when no site is cached.
func (c *Client) siteURL(parts ...string) (string, error) {
	siteID, err := c.requireSite()
	if err != nil {
		return "", err
	}
	u := customRootURL + "sites/" + url.PathEscape(siteID)
	for _, p := range parts {
		u += p
	}
	return u, nil
}

// ListPages lists the pages of the resolved site.
func (c *Client) ListPages(ctx context.Context, paging Paging) (SitePageList, string, error) {
	var pages SitePageList

	initialURL, err := c.siteURL("/pages")
	if err != nil {
		return pages, "", err
	}

	rawItems, nextLink, err := c.collectPages(ctx, initialURL, paging)
	if err != nil {
		return pages, "", err
	}

	pages.Value, err = decodeRawItems[SitePage](rawItems)
	if err != nil {
		return pages, "", err
	}

	return pages, nextLink, nil
}

// GetPage retrieves a site page by id.
func (c *Client) GetPage(ctx context.Context, pageID string) (SitePage, error) {
	var page SitePage

	pageURL, err := c.siteURL("/pages/" + url.PathEscape(pageID))
	if err != nil {
		return page, err
	}

	if err := c.makeAPICallAndDecode(ctx, "GET", pageURL, "", nil, &page, "get page"); err != nil {
		return page, err
	}

	return page, nil
}

// CreatePage creates a new article-layout page on the resolved site. The
// page starts in draft state; PublishPage makes it visible.
func (c *Client) CreatePage(ctx context.Context, name, title string) (SitePage, error) {
	var page SitePage

	pagesURL, err := c.siteURL("/pages")
	if err != nil {
		return page, err
	}

	body, err := marshalBody(map[string]string{
		"name":            name,
		"title":           title,
		"layoutWebpartId": articleLayoutWebPartID,
	}, "create page")
	if err != nil {
		return page, err
	}

	if err := c.makeAPICallAndDecode(ctx, "POST", pagesURL, "application/json", body, &page, "create page"); err != nil {
		return page, err
	}

	return page, nil
}

// UpdatePage updates a page's title and description.
func (c *Client) UpdatePage(ctx context.Context, pageID, title, description string) (SitePage, error) {
	var page SitePage

	pageURL, err := c.siteURL("/pages/" + url.PathEscape(pageID))
	if err != nil {
		return page, err
	}

	body, err := marshalBody(map[string]string{
		"title":       title,
		"description": description,
	}, "update page")
	if err != nil {
		return page, err
	}

	if err := c.makeAPICallAndDecode(ctx, "PATCH", pageURL, "application/json", body, &page, "update page"); err != nil {
		return page, err
	}

	return page, nil
}

// PublishPage publishes a draft page.
func (c *Client) PublishPage(ctx context.Context, pageID string) error {
	publishURL, err := c.siteURL("/pages/" + url.PathEscape(pageID) + "/publish")
	if err != nil {
		return err
	}

	res, err := c.apiCall(ctx, "POST", publishURL, "", nil)
	if err != nil {
		return err
	}
	closeBodySafely(res.Body, c.logger, "publish page")

	return nil
}

// DeletePage deletes a site page.
func (c *Client) DeletePage(ctx context.Context, pageID string) error {
	pageURL, err := c.siteURL("/pages/" + url.PathEscape(pageID))
	if err != nil {
		return err
	}

	res, err := c.apiCall(ctx, "DELETE", pageURL, "", nil)
	if err != nil {
		return err
	}
	closeBodySafely(res.Body, c.logger, "delete page")

	return nil
}

// AddWebPart adds a web part to a page. The web part payload is passed to
// the service as-is under "webPartData".
func (c *Client) AddWebPart(ctx context.Context, pageID string, webPartData any) (WebPart, error) {
	var webPart WebPart

	webPartsURL, err := c.siteURL("/pages/" + url.PathEscape(pageID) + "/webparts")
	if err != nil {
		return webPart, err
	}

	body, err := marshalBody(map[string]any{"webPartData": webPartData}, "add web part")
	if err != nil {
		return webPart, err
	}

	if err := c.makeAPICallAndDecode(ctx, "POST", webPartsURL, "application/json", body, &webPart, "add web part"); err != nil {
		return webPart, err
	}

	return webPart, nil
}
