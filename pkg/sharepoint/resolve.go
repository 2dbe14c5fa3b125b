package sharepoint

import (
	"context"
	"net/url"
)

// ResolveSite looks up a site by its name under the tenant's SharePoint
// hostname and caches the site id on the client. Site-scoped operations
// require a successful resolution (or a seeded id via UseSite) first.
func (c *Client) ResolveSite(ctx context.Context, siteName string) (Site, error) {
	var site Site

	siteURL := customRootURL + "sites/" + c.tenantName + ".sharepoint.com:/sites/" + url.PathEscape(siteName)
	if err := c.makeAPICallAndDecode(ctx, "GET", siteURL, "", nil, &site, "resolve site"); err != nil {
		return site, err
	}

	c.mu.Lock()
	c.siteID = site.ID
	c.mu.Unlock()

	return site, nil
}

// ResolveDrive fetches the drive collection of the resolved site and caches
// the first drive's id, which is the site's default document library. A site
// with no document libraries yields ErrNoDrives.
func (c *Client) ResolveDrive(ctx context.Context) (Drive, error) {
	var drives DriveList

	siteID, err := c.requireSite()
	if err != nil {
		return Drive{}, err
	}

	drivesURL := customRootURL + "sites/" + url.PathEscape(siteID) + "/drives"
	if err := c.makeAPICallAndDecode(ctx, "GET", drivesURL, "", nil, &drives, "resolve drive"); err != nil {
		return Drive{}, err
	}

	if len(drives.Value) == 0 {
		return Drive{}, ErrNoDrives
	}

	drive := drives.Value[0]
	c.mu.Lock()
	c.driveID = drive.ID
	c.mu.Unlock()

	return drive, nil
}

// SiteID returns the cached site id, or "" when no site has been resolved.
func (c *Client) SiteID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.siteID
}

// DriveID returns the cached drive id, or "" when no drive has been resolved.
func (c *Client) DriveID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.driveID
}

// UseSite seeds the cached site id without a lookup, e.g. from persisted
// state of an earlier resolution.
func (c *Client) UseSite(siteID string) {
	c.mu.Lock()
	c.siteID = siteID
	c.mu.Unlock()
}

// UseDrive seeds the cached drive id without a lookup.
func (c *Client) UseDrive(driveID string) {
	c.mu.Lock()
	c.driveID = driveID
	c.mu.Unlock()
}

// requireSite returns the cached site id or ErrSiteNotResolved. Callers check
// this before building a URL, so a precondition failure never reaches the
// network.
func (c *Client) requireSite() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.siteID == "" {
		return "", ErrSiteNotResolved
	}
	return c.siteID, nil
}

// requireDrive returns the cached drive id or ErrDriveNotResolved.
func (c *Client) requireDrive() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.driveID == "" {
		return "", ErrDriveNotResolved
	}
	return c.driveID, nil
}
