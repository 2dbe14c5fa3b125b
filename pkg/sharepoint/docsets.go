package sharepoint

import (
	"context"
	"net/url"
)

// documentSetContentTypeID is the base content type id of SharePoint
// document sets. Creating a list item with this content type turns it into
// a document set backed by a drive folder of the same name.
const documentSetContentTypeID = "0x0120D520"

// ListDocumentSets lists the document sets of a list, i.e. the list items
// whose content type is Document Set.
func (c *Client) ListDocumentSets(ctx context.Context, listID string, paging Paging) (ListItemCollection, string, error) {
	var docsets ListItemCollection

	filter := url.Values{}
	filter.Set("$filter", "contentType/name eq 'Document Set'")

	initialURL, err := c.siteURL("/lists/" + url.PathEscape(listID) + "/items?" + filter.Encode())
	if err != nil {
		return docsets, "", err
	}

	rawItems, nextLink, err := c.collectPages(ctx, initialURL, paging)
	if err != nil {
		return docsets, "", err
	}

	docsets.Value, err = decodeRawItems[ListItem](rawItems)
	if err != nil {
		return docsets, "", err
	}

	return docsets, nextLink, nil
}

// GetDocumentSet retrieves a document set's list item by id.
func (c *Client) GetDocumentSet(ctx context.Context, listID, docsetID string) (ListItem, error) {
	return c.GetListItem(ctx, listID, docsetID)
}

// CreateDocumentSet creates a document set with the given title in a list.
func (c *Client) CreateDocumentSet(ctx context.Context, listID, title string) (ListItem, error) {
	return c.CreateListItem(ctx, listID, map[string]any{
		"Title":         title,
		"ContentTypeId": documentSetContentTypeID,
	})
}

// UpdateDocumentSet updates a document set's title.
func (c *Client) UpdateDocumentSet(ctx context.Context, listID, docsetID, title string) (ListItem, error) {
	return c.UpdateListItem(ctx, listID, docsetID, map[string]any{
		"Title":         title,
		"ContentTypeId": documentSetContentTypeID,
	})
}

// DeleteDocumentSet deletes a document set and its contents.
func (c *Client) DeleteDocumentSet(ctx context.Context, listID, docsetID string) error {
	return c.DeleteListItem(ctx, listID, docsetID)
}

// ListDocumentSetContents lists the documents inside a document set. The
// docset id here is the id of the backing drive folder, so this is a
// drive-scoped operation.
func (c *Client) ListDocumentSetContents(ctx context.Context, docsetID string, paging Paging) (DriveItemList, string, error) {
	return c.ListChildren(ctx, docsetID, paging)
}
