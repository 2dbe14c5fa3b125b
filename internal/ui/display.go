// Package ui formats SharePoint data structures for the terminal and holds
// the shared pagination flags and progress bar used by the commands.
package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tmattila/sharepoint-client/pkg/sharepoint"
)

// DisplayItems prints drive items in a table format.
func DisplayItems(items sharepoint.DriveItemList) {
	if len(items.Value) == 0 {
		fmt.Println("No items found.")
		return
	}

	fmt.Printf("%-50.50s %12s %-8s %s\n", "Name", "Size", "Type", "Last Modified")
	for _, item := range items.Value {
		itemType := "file"
		if item.Folder != nil {
			itemType = "folder"
		}
		fmt.Printf("%-50.50s %12d %-8s %s\n", item.Name, item.Size, itemType,
			item.LastModifiedDateTime.Local().Format("2006-01-02 15:04"))
	}
}

// DisplayItem prints the details of a single drive item.
func DisplayItem(item sharepoint.DriveItem) {
	fmt.Printf("Name:          %s\n", item.Name)
	fmt.Printf("ID:            %s\n", item.ID)
	fmt.Printf("Size:          %d bytes\n", item.Size)
	fmt.Printf("Web URL:       %s\n", item.WebURL)
	fmt.Printf("Created:       %s\n", item.CreatedDateTime.Local().Format(time.RFC1123))
	fmt.Printf("Last Modified: %s\n", item.LastModifiedDateTime.Local().Format(time.RFC1123))
	if item.Folder != nil {
		fmt.Printf("Type:          Folder (%d children)\n", item.Folder.ChildCount)
	} else if item.File != nil {
		fmt.Printf("Type:          File (%s)\n", item.File.MimeType)
	}
}

// DisplaySite prints a resolved site.
func DisplaySite(site sharepoint.Site) {
	fmt.Printf("Site:    %s\n", site.DisplayName)
	fmt.Printf("ID:      %s\n", site.ID)
	fmt.Printf("Web URL: %s\n", site.WebURL)
}

// DisplayDrive prints a resolved drive.
func DisplayDrive(drive sharepoint.Drive) {
	fmt.Printf("Drive:   %s (%s)\n", drive.Name, drive.DriveType)
	fmt.Printf("ID:      %s\n", drive.ID)
	fmt.Printf("Web URL: %s\n", drive.WebURL)
}

// DisplayPermissions prints the permission grants on an item.
func DisplayPermissions(permissions sharepoint.PermissionList) {
	if len(permissions.Value) == 0 {
		fmt.Println("No permissions found.")
		return
	}

	for _, p := range permissions.Value {
		fmt.Printf("ID: %s  Roles: %v\n", p.ID, p.Roles)
		if p.Link != nil {
			fmt.Printf("  Link (%s, %s): %s\n", p.Link.Type, p.Link.Scope, p.Link.WebURL)
		}
		if p.GrantedTo != nil && p.GrantedTo.User != nil {
			fmt.Printf("  Granted to: %s <%s>\n", p.GrantedTo.User.DisplayName, p.GrantedTo.User.Email)
		}
		for _, identity := range p.GrantedToIdentities {
			if identity.User != nil {
				fmt.Printf("  Granted to: %s <%s>\n", identity.User.DisplayName, identity.User.Email)
			}
		}
	}
}

// DisplayPages prints site pages in a table format.
func DisplayPages(pages sharepoint.SitePageList) {
	if len(pages.Value) == 0 {
		fmt.Println("No pages found.")
		return
	}

	fmt.Printf("%-36s %-30.30s %s\n", "ID", "Name", "Title")
	for _, page := range pages.Value {
		fmt.Printf("%-36s %-30.30s %s\n", page.ID, page.Name, page.Title)
	}
}

// DisplayPage prints the details of a single site page.
func DisplayPage(page sharepoint.SitePage) {
	fmt.Printf("Title:       %s\n", page.Title)
	fmt.Printf("ID:          %s\n", page.ID)
	fmt.Printf("Name:        %s\n", page.Name)
	fmt.Printf("Web URL:     %s\n", page.WebURL)
	if page.Description != "" {
		fmt.Printf("Description: %s\n", page.Description)
	}
	if page.PublishingState.Level != "" {
		fmt.Printf("State:       %s\n", page.PublishingState.Level)
	}
}

// DisplayLists prints the lists of a site.
func DisplayLists(lists sharepoint.ListCollection) {
	if len(lists.Value) == 0 {
		fmt.Println("No lists found.")
		return
	}

	fmt.Printf("%-36s %-30.30s %s\n", "ID", "Name", "Template")
	for _, l := range lists.Value {
		fmt.Printf("%-36s %-30.30s %s\n", l.ID, l.DisplayName, l.ListInfo.Template)
	}
}

// DisplayListItems prints list items with their title field.
func DisplayListItems(items sharepoint.ListItemCollection) {
	if len(items.Value) == 0 {
		fmt.Println("No items found.")
		return
	}

	fmt.Printf("%-8s %-30.30s %s\n", "ID", "Title", "Content Type")
	for _, item := range items.Value {
		title, _ := item.Fields["Title"].(string)
		fmt.Printf("%-8s %-30.30s %s\n", item.ID, title, item.ContentType.Name)
	}
}

// DisplayListItem prints a list item's fields.
func DisplayListItem(item sharepoint.ListItem) {
	fmt.Printf("ID:           %s\n", item.ID)
	fmt.Printf("Content Type: %s\n", item.ContentType.Name)
	fmt.Printf("Web URL:      %s\n", item.WebURL)
	for name, value := range item.Fields {
		fmt.Printf("  %s: %v\n", name, value)
	}
}

// DisplayUploadSession prints the state of an upload session.
func DisplayUploadSession(session sharepoint.UploadSession) {
	fmt.Println("Upload Session Status:")
	fmt.Printf("  Upload URL: %s\n", session.UploadURL)
	fmt.Printf("  Expiration: %s\n", session.ExpirationDateTime)
	if len(session.NextExpectedRanges) == 0 {
		fmt.Println("  Status: Upload completed")
	} else {
		fmt.Println("  Next Expected Ranges:")
		for _, r := range session.NextExpectedRanges {
			fmt.Printf("    %s\n", r)
		}
	}
}

// NewProgressBar creates a progress bar for a transfer of maxBytes. When
// visible is false the bar writes to io.Discard, which keeps transfer code
// identical in tests and scripted runs.
func NewProgressBar(maxBytes int64, visible bool) *progressbar.ProgressBar {
	writer := io.Writer(os.Stderr)
	if !visible {
		writer = io.Discard
	}
	return progressbar.NewOptions64(
		maxBytes,
		progressbar.OptionSetDescription("Uploading..."),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(writer, "\n")
		}),
		progressbar.OptionClearOnFinish(),
	)
}
