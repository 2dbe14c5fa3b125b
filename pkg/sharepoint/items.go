package sharepoint

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// driveURL builds a URL under the resolved drive. It returns
// ErrDriveNotResolved before any network I/O when no drive is cached.
func (c *Client) driveURL(parts ...string) (string, error) {
	driveID, err := c.requireDrive()
	if err != nil {
		return "", err
	}
	u := customRootURL + "drives/" + url.PathEscape(driveID)
	for _, p := range parts {
		u += p
	}
	return u, nil
}

// CreateFolder creates a folder under the given parent item. Name conflicts
// are resolved by renaming the new folder.
func (c *Client) CreateFolder(ctx context.Context, parentID, name string) (DriveItem, error) {
	var item DriveItem

	itemURL, err := c.driveURL("/items/" + url.PathEscape(parentID) + "/children")
	if err != nil {
		return item, err
	}

	body, err := marshalBody(map[string]any{
		"name":                              name,
		"folder":                            map[string]any{},
		"@microsoft.graph.conflictBehavior": "rename",
	}, "create folder")
	if err != nil {
		return item, err
	}

	if err := c.makeAPICallAndDecode(ctx, "POST", itemURL, "application/json", body, &item, "create folder"); err != nil {
		return item, err
	}

	return item, nil
}

// GetItem retrieves a drive item's metadata by id.
func (c *Client) GetItem(ctx context.Context, itemID string) (DriveItem, error) {
	var item DriveItem

	itemURL, err := c.driveURL("/items/" + url.PathEscape(itemID))
	if err != nil {
		return item, err
	}

	if err := c.makeAPICallAndDecode(ctx, "GET", itemURL, "", nil, &item, "get item"); err != nil {
		return item, err
	}

	return item, nil
}

// ListChildren lists the children of a folder with pagination support.
func (c *Client) ListChildren(ctx context.Context, folderID string, paging Paging) (DriveItemList, string, error) {
	var items DriveItemList

	initialURL, err := c.driveURL("/items/" + url.PathEscape(folderID) + "/children")
	if err != nil {
		return items, "", err
	}

	rawItems, nextLink, err := c.collectPages(ctx, initialURL, paging)
	if err != nil {
		return items, "", err
	}

	items.Value, err = decodeRawItems[DriveItem](rawItems)
	if err != nil {
		return items, "", err
	}

	return items, nextLink, nil
}

// DeleteItem deletes a file or folder by id.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	itemURL, err := c.driveURL("/items/" + url.PathEscape(itemID))
	if err != nil {
		return err
	}

	res, err := c.apiCall(ctx, "DELETE", itemURL, "", nil)
	if err != nil {
		return err
	}
	closeBodySafely(res.Body, c.logger, "delete item")

	return nil
}

// RenameItem renames a file or folder, leaving it in place.
func (c *Client) RenameItem(ctx context.Context, itemID, newName string) (DriveItem, error) {
	var item DriveItem

	itemURL, err := c.driveURL("/items/" + url.PathEscape(itemID))
	if err != nil {
		return item, err
	}

	body, err := marshalBody(map[string]string{"name": newName}, "rename item")
	if err != nil {
		return item, err
	}

	if err := c.makeAPICallAndDecode(ctx, "PATCH", itemURL, "application/json", body, &item, "rename item"); err != nil {
		return item, err
	}

	return item, nil
}

// MoveItem moves an item into another folder of the same drive.
func (c *Client) MoveItem(ctx context.Context, itemID, destFolderID string) (DriveItem, error) {
	var item DriveItem

	itemURL, err := c.driveURL("/items/" + url.PathEscape(itemID))
	if err != nil {
		return item, err
	}

	body, err := marshalBody(map[string]any{
		"parentReference": map[string]string{"id": destFolderID},
	}, "move item")
	if err != nil {
		return item, err
	}

	if err := c.makeAPICallAndDecode(ctx, "PATCH", itemURL, "application/json", body, &item, "move item"); err != nil {
		return item, err
	}

	return item, nil
}

// CopyItem asynchronously copies an item into a destination folder under a
// new name. The Graph API answers 202 Accepted; the returned string is the
// Location header's monitor URL for polling copy progress.
func (c *Client) CopyItem(ctx context.Context, itemID, newName, destFolderID string) (string, error) {
	driveID, err := c.requireDrive()
	if err != nil {
		return "", err
	}

	copyURL := customRootURL + "drives/" + url.PathEscape(driveID) + "/items/" + url.PathEscape(itemID) + "/copy"

	body, err := marshalBody(map[string]any{
		"parentReference": map[string]string{
			"driveId": driveID,
			"id":      destFolderID,
		},
		"name": newName,
	}, "copy item")
	if err != nil {
		return "", err
	}

	res, err := c.apiCall(ctx, "POST", copyURL, "application/json", body)
	if err != nil {
		return "", err
	}
	defer closeBodySafely(res.Body, c.logger, "copy item")

	return res.Header.Get("Location"), nil
}

// SearchItems searches the drive for items matching the query.
func (c *Client) SearchItems(ctx context.Context, query string, paging Paging) (DriveItemList, string, error) {
	var items DriveItemList

	initialURL, err := c.driveURL("/root/search(q='" + url.QueryEscape(query) + "')")
	if err != nil {
		return items, "", err
	}

	rawItems, nextLink, err := c.collectPages(ctx, initialURL, paging)
	if err != nil {
		return items, "", err
	}

	items.Value, err = decodeRawItems[DriveItem](rawItems)
	if err != nil {
		return items, "", err
	}

	return items, nextLink, nil
}

// UploadFile uploads a local file into a folder in a single request. Suitable
// for small files only; larger files go through an upload session.
func (c *Client) UploadFile(ctx context.Context, localPath, folderID string) (DriveItem, error) {
	var item DriveItem

	fileName := filepath.Base(localPath)
	uploadURL, err := c.driveURL("/items/" + url.PathEscape(folderID) + ":/" + url.PathEscape(fileName) + ":/content")
	if err != nil {
		return item, err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return item, fmt.Errorf("opening file for upload: %w", err)
	}
	defer closeBodySafely(file, c.logger, "upload file")

	if err := c.makeAPICallAndDecode(ctx, "PUT", uploadURL, "application/octet-stream", file, &item, "upload file"); err != nil {
		return item, err
	}

	return item, nil
}
