package app

import (
	"context"
	"io"

	"github.com/tmattila/sharepoint-client/pkg/sharepoint"
)

// SDK defines the interface the commands use to talk to SharePoint. It
// mirrors the sharepoint.Client surface and allows for mocking in tests.
type SDK interface {
	// Context resolution
	ResolveSite(ctx context.Context, siteName string) (sharepoint.Site, error)
	ResolveDrive(ctx context.Context) (sharepoint.Drive, error)
	UseSite(siteID string)
	UseDrive(driveID string)
	SiteID() string
	DriveID() string

	// Files and folders
	CreateFolder(ctx context.Context, parentID, name string) (sharepoint.DriveItem, error)
	GetItem(ctx context.Context, itemID string) (sharepoint.DriveItem, error)
	ListChildren(ctx context.Context, folderID string, paging sharepoint.Paging) (sharepoint.DriveItemList, string, error)
	DeleteItem(ctx context.Context, itemID string) error
	RenameItem(ctx context.Context, itemID, newName string) (sharepoint.DriveItem, error)
	MoveItem(ctx context.Context, itemID, destFolderID string) (sharepoint.DriveItem, error)
	CopyItem(ctx context.Context, itemID, newName, destFolderID string) (string, error)
	SearchItems(ctx context.Context, query string, paging sharepoint.Paging) (sharepoint.DriveItemList, string, error)
	DownloadItem(ctx context.Context, itemID, localPath string) error
	UploadFile(ctx context.Context, localPath, folderID string) (sharepoint.DriveItem, error)

	// Upload sessions
	CreateUploadSession(ctx context.Context, filename, folderID string) (sharepoint.UploadSession, error)
	UploadChunk(ctx context.Context, uploadURL string, startByte, endByte, totalSize int64, chunkData io.Reader) (sharepoint.UploadSession, error)
	GetUploadSessionStatus(ctx context.Context, uploadURL string) (sharepoint.UploadSession, error)
	CancelUploadSession(ctx context.Context, uploadURL string) error

	// Sharing and permissions
	ListPermissions(ctx context.Context, itemID string, paging sharepoint.Paging) (sharepoint.PermissionList, string, error)
	ShareWithUser(ctx context.Context, itemID, email, role string) (sharepoint.PermissionList, error)
	CreateSharingLink(ctx context.Context, itemID, linkType, scope string) (sharepoint.Permission, error)
	UpdatePermission(ctx context.Context, itemID, permissionID, role string) (sharepoint.Permission, error)
	DeletePermission(ctx context.Context, itemID, permissionID string) error

	// Site pages
	ListPages(ctx context.Context, paging sharepoint.Paging) (sharepoint.SitePageList, string, error)
	GetPage(ctx context.Context, pageID string) (sharepoint.SitePage, error)
	CreatePage(ctx context.Context, name, title string) (sharepoint.SitePage, error)
	UpdatePage(ctx context.Context, pageID, title, description string) (sharepoint.SitePage, error)
	PublishPage(ctx context.Context, pageID string) error
	DeletePage(ctx context.Context, pageID string) error
	AddWebPart(ctx context.Context, pageID string, webPartData any) (sharepoint.WebPart, error)

	// Lists and list items
	ListLists(ctx context.Context, paging sharepoint.Paging) (sharepoint.ListCollection, string, error)
	CreateListItem(ctx context.Context, listID string, fields map[string]any) (sharepoint.ListItem, error)
	GetListItem(ctx context.Context, listID, itemID string) (sharepoint.ListItem, error)
	UpdateListItem(ctx context.Context, listID, itemID string, fields map[string]any) (sharepoint.ListItem, error)
	DeleteListItem(ctx context.Context, listID, itemID string) error

	// Document sets
	ListDocumentSets(ctx context.Context, listID string, paging sharepoint.Paging) (sharepoint.ListItemCollection, string, error)
	GetDocumentSet(ctx context.Context, listID, docsetID string) (sharepoint.ListItem, error)
	CreateDocumentSet(ctx context.Context, listID, title string) (sharepoint.ListItem, error)
	UpdateDocumentSet(ctx context.Context, listID, docsetID, title string) (sharepoint.ListItem, error)
	DeleteDocumentSet(ctx context.Context, listID, docsetID string) error
	ListDocumentSetContents(ctx context.Context, docsetID string, paging sharepoint.Paging) (sharepoint.DriveItemList, string, error)
}

var _ SDK = (*sharepoint.Client)(nil)
