package sharepoint

import (
	"context"
	"net/url"
)

// ListLists lists the lists of the resolved site, hidden ones included.
func (c *Client) ListLists(ctx context.Context, paging Paging) (ListCollection, string, error) {
	var lists ListCollection

	initialURL, err := c.siteURL("/lists")
	if err != nil {
		return lists, "", err
	}

	rawItems, nextLink, err := c.collectPages(ctx, initialURL, paging)
	if err != nil {
		return lists, "", err
	}

	lists.Value, err = decodeRawItems[List](rawItems)
	if err != nil {
		return lists, "", err
	}

	return lists, nextLink, nil
}

// CreateListItem creates an item in a list. Fields carries the column
// values verbatim.
func (c *Client) CreateListItem(ctx context.Context, listID string, fields map[string]any) (ListItem, error) {
	var item ListItem

	itemsURL, err := c.siteURL("/lists/" + url.PathEscape(listID) + "/items")
	if err != nil {
		return item, err
	}

	body, err := marshalBody(map[string]any{"fields": fields}, "create list item")
	if err != nil {
		return item, err
	}

	if err := c.makeAPICallAndDecode(ctx, "POST", itemsURL, "application/json", body, &item, "create list item"); err != nil {
		return item, err
	}

	return item, nil
}

// GetListItem retrieves a list item by id.
func (c *Client) GetListItem(ctx context.Context, listID, itemID string) (ListItem, error) {
	var item ListItem

	itemURL, err := c.siteURL("/lists/" + url.PathEscape(listID) + "/items/" + url.PathEscape(itemID))
	if err != nil {
		return item, err
	}

	if err := c.makeAPICallAndDecode(ctx, "GET", itemURL, "", nil, &item, "get list item"); err != nil {
		return item, err
	}

	return item, nil
}

// UpdateListItem updates the fields of a list item.
func (c *Client) UpdateListItem(ctx context.Context, listID, itemID string, fields map[string]any) (ListItem, error) {
	var item ListItem

	itemURL, err := c.siteURL("/lists/" + url.PathEscape(listID) + "/items/" + url.PathEscape(itemID))
	if err != nil {
		return item, err
	}

	body, err := marshalBody(map[string]any{"fields": fields}, "update list item")
	if err != nil {
		return item, err
	}

	if err := c.makeAPICallAndDecode(ctx, "PATCH", itemURL, "application/json", body, &item, "update list item"); err != nil {
		return item, err
	}

	return item, nil
}

// DeleteListItem deletes a list item.
func (c *Client) DeleteListItem(ctx context.Context, listID, itemID string) error {
	itemURL, err := c.siteURL("/lists/" + url.PathEscape(listID) + "/items/" + url.PathEscape(itemID))
	if err != nil {
		return err
	}

	res, err := c.apiCall(ctx, "DELETE", itemURL, "", nil)
	if err != nil {
		return err
	}
	closeBodySafely(res.Body, c.logger, "delete list item")

	return nil
}
