package cmd

import (
	"context"
	"io"
	"log"
	"os"
	"testing"

	"github.com/tmattila/sharepoint-client/internal/app"
	"github.com/tmattila/sharepoint-client/internal/logger"
	"github.com/tmattila/sharepoint-client/pkg/sharepoint"
)

// MockSDK is a mock implementation of the SDK interface for testing. Each
// method delegates to its function field when set and returns a zero value
// otherwise. SiteID/DriveID default to non-empty ids so Ensure* helpers
// skip resolution.
type MockSDK struct {
	ResolveSiteFunc  func(siteName string) (sharepoint.Site, error)
	ResolveDriveFunc func() (sharepoint.Drive, error)
	SiteIDFunc       func() string
	DriveIDFunc      func() string

	CreateFolderFunc func(parentID, name string) (sharepoint.DriveItem, error)
	GetItemFunc      func(itemID string) (sharepoint.DriveItem, error)
	ListChildrenFunc func(folderID string, paging sharepoint.Paging) (sharepoint.DriveItemList, string, error)
	DeleteItemFunc   func(itemID string) error
	RenameItemFunc   func(itemID, newName string) (sharepoint.DriveItem, error)
	MoveItemFunc     func(itemID, destFolderID string) (sharepoint.DriveItem, error)
	CopyItemFunc     func(itemID, newName, destFolderID string) (string, error)
	SearchItemsFunc  func(query string, paging sharepoint.Paging) (sharepoint.DriveItemList, string, error)
	DownloadItemFunc func(itemID, localPath string) error
	UploadFileFunc   func(localPath, folderID string) (sharepoint.DriveItem, error)

	CreateUploadSessionFunc    func(filename, folderID string) (sharepoint.UploadSession, error)
	UploadChunkFunc            func(uploadURL string, startByte, endByte, totalSize int64, chunkData io.Reader) (sharepoint.UploadSession, error)
	GetUploadSessionStatusFunc func(uploadURL string) (sharepoint.UploadSession, error)
	CancelUploadSessionFunc    func(uploadURL string) error

	ListPermissionsFunc   func(itemID string, paging sharepoint.Paging) (sharepoint.PermissionList, string, error)
	ShareWithUserFunc     func(itemID, email, role string) (sharepoint.PermissionList, error)
	CreateSharingLinkFunc func(itemID, linkType, scope string) (sharepoint.Permission, error)
	UpdatePermissionFunc  func(itemID, permissionID, role string) (sharepoint.Permission, error)
	DeletePermissionFunc  func(itemID, permissionID string) error

	ListPagesFunc   func(paging sharepoint.Paging) (sharepoint.SitePageList, string, error)
	GetPageFunc     func(pageID string) (sharepoint.SitePage, error)
	CreatePageFunc  func(name, title string) (sharepoint.SitePage, error)
	UpdatePageFunc  func(pageID, title, description string) (sharepoint.SitePage, error)
	PublishPageFunc func(pageID string) error
	DeletePageFunc  func(pageID string) error
	AddWebPartFunc  func(pageID string, webPartData any) (sharepoint.WebPart, error)

	ListListsFunc      func(paging sharepoint.Paging) (sharepoint.ListCollection, string, error)
	CreateListItemFunc func(listID string, fields map[string]any) (sharepoint.ListItem, error)
	GetListItemFunc    func(listID, itemID string) (sharepoint.ListItem, error)
	UpdateListItemFunc func(listID, itemID string, fields map[string]any) (sharepoint.ListItem, error)
	DeleteListItemFunc func(listID, itemID string) error

	ListDocumentSetsFunc        func(listID string, paging sharepoint.Paging) (sharepoint.ListItemCollection, string, error)
	GetDocumentSetFunc          func(listID, docsetID string) (sharepoint.ListItem, error)
	CreateDocumentSetFunc       func(listID, title string) (sharepoint.ListItem, error)
	UpdateDocumentSetFunc       func(listID, docsetID, title string) (sharepoint.ListItem, error)
	DeleteDocumentSetFunc       func(listID, docsetID string) error
	ListDocumentSetContentsFunc func(docsetID string, paging sharepoint.Paging) (sharepoint.DriveItemList, string, error)
}

func (m *MockSDK) ResolveSite(ctx context.Context, siteName string) (sharepoint.Site, error) {
	if m.ResolveSiteFunc != nil {
		return m.ResolveSiteFunc(siteName)
	}
	return sharepoint.Site{}, nil
}

func (m *MockSDK) ResolveDrive(ctx context.Context) (sharepoint.Drive, error) {
	if m.ResolveDriveFunc != nil {
		return m.ResolveDriveFunc()
	}
	return sharepoint.Drive{}, nil
}

func (m *MockSDK) UseSite(siteID string) {}

func (m *MockSDK) UseDrive(driveID string) {}

func (m *MockSDK) SiteID() string {
	if m.SiteIDFunc != nil {
		return m.SiteIDFunc()
	}
	return "mock-site-id"
}

func (m *MockSDK) DriveID() string {
	if m.DriveIDFunc != nil {
		return m.DriveIDFunc()
	}
	return "mock-drive-id"
}

func (m *MockSDK) CreateFolder(ctx context.Context, parentID, name string) (sharepoint.DriveItem, error) {
	if m.CreateFolderFunc != nil {
		return m.CreateFolderFunc(parentID, name)
	}
	return sharepoint.DriveItem{}, nil
}

func (m *MockSDK) GetItem(ctx context.Context, itemID string) (sharepoint.DriveItem, error) {
	if m.GetItemFunc != nil {
		return m.GetItemFunc(itemID)
	}
	return sharepoint.DriveItem{}, nil
}

func (m *MockSDK) ListChildren(ctx context.Context, folderID string, paging sharepoint.Paging) (sharepoint.DriveItemList, string, error) {
	if m.ListChildrenFunc != nil {
		return m.ListChildrenFunc(folderID, paging)
	}
	return sharepoint.DriveItemList{}, "", nil
}

func (m *MockSDK) DeleteItem(ctx context.Context, itemID string) error {
	if m.DeleteItemFunc != nil {
		return m.DeleteItemFunc(itemID)
	}
	return nil
}

func (m *MockSDK) RenameItem(ctx context.Context, itemID, newName string) (sharepoint.DriveItem, error) {
	if m.RenameItemFunc != nil {
		return m.RenameItemFunc(itemID, newName)
	}
	return sharepoint.DriveItem{Name: newName}, nil
}

func (m *MockSDK) MoveItem(ctx context.Context, itemID, destFolderID string) (sharepoint.DriveItem, error) {
	if m.MoveItemFunc != nil {
		return m.MoveItemFunc(itemID, destFolderID)
	}
	return sharepoint.DriveItem{}, nil
}

func (m *MockSDK) CopyItem(ctx context.Context, itemID, newName, destFolderID string) (string, error) {
	if m.CopyItemFunc != nil {
		return m.CopyItemFunc(itemID, newName, destFolderID)
	}
	return "mock-monitor-url", nil
}

func (m *MockSDK) SearchItems(ctx context.Context, query string, paging sharepoint.Paging) (sharepoint.DriveItemList, string, error) {
	if m.SearchItemsFunc != nil {
		return m.SearchItemsFunc(query, paging)
	}
	return sharepoint.DriveItemList{}, "", nil
}

func (m *MockSDK) DownloadItem(ctx context.Context, itemID, localPath string) error {
	if m.DownloadItemFunc != nil {
		return m.DownloadItemFunc(itemID, localPath)
	}
	return nil
}

func (m *MockSDK) UploadFile(ctx context.Context, localPath, folderID string) (sharepoint.DriveItem, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(localPath, folderID)
	}
	return sharepoint.DriveItem{}, nil
}

func (m *MockSDK) CreateUploadSession(ctx context.Context, filename, folderID string) (sharepoint.UploadSession, error) {
	if m.CreateUploadSessionFunc != nil {
		return m.CreateUploadSessionFunc(filename, folderID)
	}
	return sharepoint.UploadSession{}, nil
}

func (m *MockSDK) UploadChunk(ctx context.Context, uploadURL string, startByte, endByte, totalSize int64, chunkData io.Reader) (sharepoint.UploadSession, error) {
	if m.UploadChunkFunc != nil {
		return m.UploadChunkFunc(uploadURL, startByte, endByte, totalSize, chunkData)
	}
	return sharepoint.UploadSession{}, nil
}

func (m *MockSDK) GetUploadSessionStatus(ctx context.Context, uploadURL string) (sharepoint.UploadSession, error) {
	if m.GetUploadSessionStatusFunc != nil {
		return m.GetUploadSessionStatusFunc(uploadURL)
	}
	return sharepoint.UploadSession{}, nil
}

func (m *MockSDK) CancelUploadSession(ctx context.Context, uploadURL string) error {
	if m.CancelUploadSessionFunc != nil {
		return m.CancelUploadSessionFunc(uploadURL)
	}
	return nil
}

func (m *MockSDK) ListPermissions(ctx context.Context, itemID string, paging sharepoint.Paging) (sharepoint.PermissionList, string, error) {
	if m.ListPermissionsFunc != nil {
		return m.ListPermissionsFunc(itemID, paging)
	}
	return sharepoint.PermissionList{}, "", nil
}

func (m *MockSDK) ShareWithUser(ctx context.Context, itemID, email, role string) (sharepoint.PermissionList, error) {
	if m.ShareWithUserFunc != nil {
		return m.ShareWithUserFunc(itemID, email, role)
	}
	return sharepoint.PermissionList{}, nil
}

func (m *MockSDK) CreateSharingLink(ctx context.Context, itemID, linkType, scope string) (sharepoint.Permission, error) {
	if m.CreateSharingLinkFunc != nil {
		return m.CreateSharingLinkFunc(itemID, linkType, scope)
	}
	return sharepoint.Permission{}, nil
}

func (m *MockSDK) UpdatePermission(ctx context.Context, itemID, permissionID, role string) (sharepoint.Permission, error) {
	if m.UpdatePermissionFunc != nil {
		return m.UpdatePermissionFunc(itemID, permissionID, role)
	}
	return sharepoint.Permission{}, nil
}

func (m *MockSDK) DeletePermission(ctx context.Context, itemID, permissionID string) error {
	if m.DeletePermissionFunc != nil {
		return m.DeletePermissionFunc(itemID, permissionID)
	}
	return nil
}

func (m *MockSDK) ListPages(ctx context.Context, paging sharepoint.Paging) (sharepoint.SitePageList, string, error) {
	if m.ListPagesFunc != nil {
		return m.ListPagesFunc(paging)
	}
	return sharepoint.SitePageList{}, "", nil
}

func (m *MockSDK) GetPage(ctx context.Context, pageID string) (sharepoint.SitePage, error) {
	if m.GetPageFunc != nil {
		return m.GetPageFunc(pageID)
	}
	return sharepoint.SitePage{}, nil
}

func (m *MockSDK) CreatePage(ctx context.Context, name, title string) (sharepoint.SitePage, error) {
	if m.CreatePageFunc != nil {
		return m.CreatePageFunc(name, title)
	}
	return sharepoint.SitePage{}, nil
}

func (m *MockSDK) UpdatePage(ctx context.Context, pageID, title, description string) (sharepoint.SitePage, error) {
	if m.UpdatePageFunc != nil {
		return m.UpdatePageFunc(pageID, title, description)
	}
	return sharepoint.SitePage{}, nil
}

func (m *MockSDK) PublishPage(ctx context.Context, pageID string) error {
	if m.PublishPageFunc != nil {
		return m.PublishPageFunc(pageID)
	}
	return nil
}

func (m *MockSDK) DeletePage(ctx context.Context, pageID string) error {
	if m.DeletePageFunc != nil {
		return m.DeletePageFunc(pageID)
	}
	return nil
}

func (m *MockSDK) AddWebPart(ctx context.Context, pageID string, webPartData any) (sharepoint.WebPart, error) {
	if m.AddWebPartFunc != nil {
		return m.AddWebPartFunc(pageID, webPartData)
	}
	return sharepoint.WebPart{}, nil
}

func (m *MockSDK) ListLists(ctx context.Context, paging sharepoint.Paging) (sharepoint.ListCollection, string, error) {
	if m.ListListsFunc != nil {
		return m.ListListsFunc(paging)
	}
	return sharepoint.ListCollection{}, "", nil
}

func (m *MockSDK) CreateListItem(ctx context.Context, listID string, fields map[string]any) (sharepoint.ListItem, error) {
	if m.CreateListItemFunc != nil {
		return m.CreateListItemFunc(listID, fields)
	}
	return sharepoint.ListItem{}, nil
}

func (m *MockSDK) GetListItem(ctx context.Context, listID, itemID string) (sharepoint.ListItem, error) {
	if m.GetListItemFunc != nil {
		return m.GetListItemFunc(listID, itemID)
	}
	return sharepoint.ListItem{}, nil
}

func (m *MockSDK) UpdateListItem(ctx context.Context, listID, itemID string, fields map[string]any) (sharepoint.ListItem, error) {
	if m.UpdateListItemFunc != nil {
		return m.UpdateListItemFunc(listID, itemID, fields)
	}
	return sharepoint.ListItem{}, nil
}

func (m *MockSDK) DeleteListItem(ctx context.Context, listID, itemID string) error {
	if m.DeleteListItemFunc != nil {
		return m.DeleteListItemFunc(listID, itemID)
	}
	return nil
}

func (m *MockSDK) ListDocumentSets(ctx context.Context, listID string, paging sharepoint.Paging) (sharepoint.ListItemCollection, string, error) {
	if m.ListDocumentSetsFunc != nil {
		return m.ListDocumentSetsFunc(listID, paging)
	}
	return sharepoint.ListItemCollection{}, "", nil
}

func (m *MockSDK) GetDocumentSet(ctx context.Context, listID, docsetID string) (sharepoint.ListItem, error) {
	if m.GetDocumentSetFunc != nil {
		return m.GetDocumentSetFunc(listID, docsetID)
	}
	return sharepoint.ListItem{}, nil
}

func (m *MockSDK) CreateDocumentSet(ctx context.Context, listID, title string) (sharepoint.ListItem, error) {
	if m.CreateDocumentSetFunc != nil {
		return m.CreateDocumentSetFunc(listID, title)
	}
	return sharepoint.ListItem{}, nil
}

func (m *MockSDK) UpdateDocumentSet(ctx context.Context, listID, docsetID, title string) (sharepoint.ListItem, error) {
	if m.UpdateDocumentSetFunc != nil {
		return m.UpdateDocumentSetFunc(listID, docsetID, title)
	}
	return sharepoint.ListItem{}, nil
}

func (m *MockSDK) DeleteDocumentSet(ctx context.Context, listID, docsetID string) error {
	if m.DeleteDocumentSetFunc != nil {
		return m.DeleteDocumentSetFunc(listID, docsetID)
	}
	return nil
}

func (m *MockSDK) ListDocumentSetContents(ctx context.Context, docsetID string, paging sharepoint.Paging) (sharepoint.DriveItemList, string, error) {
	if m.ListDocumentSetContentsFunc != nil {
		return m.ListDocumentSetContentsFunc(docsetID, paging)
	}
	return sharepoint.DriveItemList{}, "", nil
}

// newTestApp creates an app instance with a mock SDK for testing.
func newTestApp(sdk app.SDK) *app.App {
	return &app.App{
		SDK:    sdk,
		Logger: logger.NoopLogger{},
	}
}

// captureOutput captures stdout and stderr, returning them as a string.
func captureOutput(t *testing.T, f func()) string {
	t.Helper()

	originalLogOutput := log.Writer()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	oldStderr := os.Stderr
	r2, w2, _ := os.Pipe()
	os.Stderr = w2
	log.SetOutput(w2)

	f()

	w.Close()
	w2.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr
	log.SetOutput(originalLogOutput)

	stdout, _ := io.ReadAll(r)
	stderr, _ := io.ReadAll(r2)

	return string(stdout) + string(stderr)
}
