package sharepoint

import (
	"context"
	"net/url"
)

// ListPermissions lists the permission grants on a drive item.
func (c *Client) ListPermissions(ctx context.Context, itemID string, paging Paging) (PermissionList, string, error) {
	var permissions PermissionList

	initialURL, err := c.driveURL("/items/" + url.PathEscape(itemID) + "/permissions")
	if err != nil {
		return permissions, "", err
	}

	rawItems, nextLink, err := c.collectPages(ctx, initialURL, paging)
	if err != nil {
		return permissions, "", err
	}

	permissions.Value, err = decodeRawItems[Permission](rawItems)
	if err != nil {
		return permissions, "", err
	}

	return permissions, nextLink, nil
}

// ShareWithUser invites a user to a drive item with the given role. The role
// string ("read", "write", ...) is passed through to the service verbatim;
// the service validates it.
func (c *Client) ShareWithUser(ctx context.Context, itemID, email, role string) (PermissionList, error) {
	var permissions PermissionList

	inviteURL, err := c.driveURL("/items/" + url.PathEscape(itemID) + "/invite")
	if err != nil {
		return permissions, err
	}

	body, err := marshalBody(map[string]any{
		"recipients": []map[string]string{
			{"email": email},
		},
		"roles":         []string{role},
		"requireSignIn": true,
	}, "share with user")
	if err != nil {
		return permissions, err
	}

	if err := c.makeAPICallAndDecode(ctx, "POST", inviteURL, "application/json", body, &permissions, "share with user"); err != nil {
		return permissions, err
	}

	return permissions, nil
}

// CreateSharingLink creates a sharing link on a drive item. Link type
// ("view", "edit", "embed") and scope ("anonymous", "organization") go to
// the service unvalidated; the created link's URL comes back in the
// permission's link facet.
func (c *Client) CreateSharingLink(ctx context.Context, itemID, linkType, scope string) (Permission, error) {
	var permission Permission

	linkURL, err := c.driveURL("/items/" + url.PathEscape(itemID) + "/createLink")
	if err != nil {
		return permission, err
	}

	body, err := marshalBody(map[string]string{
		"type":  linkType,
		"scope": scope,
	}, "create sharing link")
	if err != nil {
		return permission, err
	}

	if err := c.makeAPICallAndDecode(ctx, "POST", linkURL, "application/json", body, &permission, "create sharing link"); err != nil {
		return permission, err
	}

	return permission, nil
}

// UpdatePermission replaces the roles of an existing permission grant.
func (c *Client) UpdatePermission(ctx context.Context, itemID, permissionID, role string) (Permission, error) {
	var permission Permission

	permURL, err := c.driveURL("/items/" + url.PathEscape(itemID) + "/permissions/" + url.PathEscape(permissionID))
	if err != nil {
		return permission, err
	}

	body, err := marshalBody(map[string]any{
		"roles": []string{role},
	}, "update permission")
	if err != nil {
		return permission, err
	}

	if err := c.makeAPICallAndDecode(ctx, "PATCH", permURL, "application/json", body, &permission, "update permission"); err != nil {
		return permission, err
	}

	return permission, nil
}

// DeletePermission revokes a permission grant from a drive item.
func (c *Client) DeletePermission(ctx context.Context, itemID, permissionID string) error {
	permURL, err := c.driveURL("/items/" + url.PathEscape(itemID) + "/permissions/" + url.PathEscape(permissionID))
	if err != nil {
		return err
	}

	res, err := c.apiCall(ctx, "DELETE", permURL, "", nil)
	if err != nil {
		return err
	}
	closeBodySafely(res.Body, c.logger, "delete permission")

	return nil
}
