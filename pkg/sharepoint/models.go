package sharepoint

import "time"

// Site represents a SharePoint site resolved through the Graph API.
type Site struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	WebURL      string `json:"webUrl"`
	Description string `json:"description"`
}

// Drive represents a document library of a site.
type Drive struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DriveType   string `json:"driveType"`
	WebURL      string `json:"webUrl"`
	Description string `json:"description"`
}

// DriveList represents the drive collection of a site.
type DriveList struct {
	Value []Drive `json:"value"`
}

// DriveItem represents a file or folder stored in a document library.
type DriveItem struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	ETag                 string    `json:"eTag"`
	Size                 int64     `json:"size"`
	WebURL               string    `json:"webUrl"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	LastModifiedDateTime time.Time `json:"lastModifiedDateTime"`
	DownloadURL          string    `json:"@microsoft.graph.downloadUrl,omitempty"`
	ParentReference      struct {
		DriveID string `json:"driveId"`
		ID      string `json:"id"`
		Path    string `json:"path"`
	} `json:"parentReference"`
	Folder *struct {
		ChildCount int `json:"childCount"`
	} `json:"folder,omitempty"`
	File *struct {
		MimeType string `json:"mimeType"`
	} `json:"file,omitempty"`
}

// DriveItemList represents a collection of DriveItems.
type DriveItemList struct {
	Value []DriveItem `json:"value"`
}

// UploadSession represents the state of a large-file upload session.
// NextExpectedRanges is empty once the final chunk has been accepted.
type UploadSession struct {
	UploadURL          string   `json:"uploadUrl"`
	ExpirationDateTime string   `json:"expirationDateTime"`
	NextExpectedRanges []string `json:"nextExpectedRanges"`
}

// Identity represents a single actor (user or application).
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
}

// IdentitySet groups the identities associated with an event or grant.
type IdentitySet struct {
	User        *Identity `json:"user,omitempty"`
	Application *Identity `json:"application,omitempty"`
}

// SharingLink holds the link facet of a link-type permission.
type SharingLink struct {
	Type   string `json:"type"`
	Scope  string `json:"scope"`
	WebURL string `json:"webUrl"`
}

// Permission represents a permission grant on a drive item.
type Permission struct {
	ID                  string        `json:"id"`
	Roles               []string      `json:"roles"`
	Link                *SharingLink  `json:"link,omitempty"`
	GrantedTo           *IdentitySet  `json:"grantedTo,omitempty"`
	GrantedToIdentities []IdentitySet `json:"grantedToIdentities,omitempty"`
}

// PermissionList represents a collection of permissions. The invite endpoint
// also responds with this shape.
type PermissionList struct {
	Value []Permission `json:"value"`
}

// SitePage represents a modern page of a site.
type SitePage struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	WebURL          string `json:"webUrl"`
	PageLayout      string `json:"pageLayout"`
	PublishingState struct {
		Level string `json:"level"`
	} `json:"publishingState"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	LastModifiedDateTime time.Time `json:"lastModifiedDateTime"`
}

// SitePageList represents a collection of site pages.
type SitePageList struct {
	Value []SitePage `json:"value"`
}

// WebPart represents a web part placed on a site page.
type WebPart struct {
	ID          string `json:"id"`
	WebPartType string `json:"webPartType,omitempty"`
	Data        any    `json:"data,omitempty"`
}

// List represents a SharePoint list.
type List struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	WebURL      string `json:"webUrl"`
	ListInfo    struct {
		Template string `json:"template"`
		Hidden   bool   `json:"hidden"`
	} `json:"list"`
}

// ListCollection represents the lists of a site.
type ListCollection struct {
	Value []List `json:"value"`
}

// ListItem represents an item in a SharePoint list. Fields carries the
// column values verbatim; document sets are list items whose content type
// derives from the Document Set base type.
type ListItem struct {
	ID          string         `json:"id"`
	WebURL      string         `json:"webUrl"`
	Fields      map[string]any `json:"fields,omitempty"`
	ContentType struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"contentType"`
	CreatedDateTime      time.Time `json:"createdDateTime"`
	LastModifiedDateTime time.Time `json:"lastModifiedDateTime"`
}

// ListItemCollection represents a collection of list items.
type ListItemCollection struct {
	Value []ListItem `json:"value"`
}
