package sharepoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenResponse = `{"access_token":"test-token","token_type":"Bearer","expires_in":3600}`

// newTestClient wires a client to a mock token endpoint and a mock Graph
// server, restoring the default endpoints when the test finishes.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, testTokenResponse)
	}))
	t.Cleanup(tokenServer.Close)

	graphServer := httptest.NewServer(handler)
	t.Cleanup(graphServer.Close)

	prevToken, prevRoot := customTokenURL, customRootURL
	SetCustomTokenEndpoint(tokenServer.URL)
	SetCustomGraphEndpoint(graphServer.URL + "/")
	t.Cleanup(func() {
		customTokenURL = prevToken
		customRootURL = prevRoot
	})

	creds := Credentials{
		ClientID:     "test-client-id",
		ClientSecret: "test-secret",
		TenantID:     "test-tenant-id",
		TenantName:   "contoso",
	}
	return NewClient(context.Background(), creds, nil)
}

func TestTokenFetchedOnceAcrossCalls(t *testing.T) {
	var tokenCalls atomic.Int64

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, testTokenResponse)
	}))
	defer tokenServer.Close()

	graphServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id":"item1","name":"a.txt"}`)
	}))
	defer graphServer.Close()

	prevToken, prevRoot := customTokenURL, customRootURL
	SetCustomTokenEndpoint(tokenServer.URL)
	SetCustomGraphEndpoint(graphServer.URL + "/")
	defer func() {
		customTokenURL = prevToken
		customRootURL = prevRoot
	}()

	client := NewClient(context.Background(), Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		TenantID:     "tenant",
		TenantName:   "contoso",
	}, nil)
	client.UseDrive("drive1")

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := client.GetItem(ctx, "item1")
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), tokenCalls.Load(), "token endpoint should be hit exactly once while the token is valid")
}

func TestAuthErrorFromTokenEndpoint(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client","error_description":"bad secret"}`)
	}))
	defer tokenServer.Close()

	prevToken := customTokenURL
	SetCustomTokenEndpoint(tokenServer.URL)
	defer func() { customTokenURL = prevToken }()

	client := NewClient(context.Background(), Credentials{
		ClientID:     "id",
		ClientSecret: "wrong",
		TenantID:     "tenant",
		TenantName:   "contoso",
	}, nil)
	client.UseDrive("drive1")

	_, err := client.GetItem(context.Background(), "item1")
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid_client")
}

func TestRemoteErrorCarriesStatusAndBody(t *testing.T) {
	const errorBody = `{"error":{"code":"itemNotFound","message":"The resource could not be found."}}`

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, errorBody)
	}))
	client.UseDrive("drive1")

	_, err := client.GetItem(context.Background(), "missing")
	require.Error(t, err)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
	assert.Equal(t, errorBody, remoteErr.Body)
}

func TestPreconditionFailuresIssueNoRequests(t *testing.T) {
	var requests atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))

	ctx := context.Background()

	_, err := client.GetItem(ctx, "item1")
	assert.ErrorIs(t, err, ErrDriveNotResolved)

	_, _, err = client.ListChildren(ctx, "folder1", Paging{})
	assert.ErrorIs(t, err, ErrDriveNotResolved)

	err = client.DeleteItem(ctx, "item1")
	assert.ErrorIs(t, err, ErrDriveNotResolved)

	_, err = client.CreateUploadSession(ctx, "big.bin", "folder1")
	assert.ErrorIs(t, err, ErrDriveNotResolved)

	_, err = client.ResolveDrive(ctx)
	assert.ErrorIs(t, err, ErrSiteNotResolved)

	_, _, err = client.ListPages(ctx, Paging{})
	assert.ErrorIs(t, err, ErrSiteNotResolved)

	_, err = client.CreateListItem(ctx, "list1", map[string]any{"Title": "x"})
	assert.ErrorIs(t, err, ErrSiteNotResolved)

	assert.Equal(t, int64(0), requests.Load(), "precondition failures must not reach the network")
}

func TestDecodingFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json at all`)
	}))
	client.UseDrive("drive1")

	_, err := client.GetItem(context.Background(), "item1")
	assert.ErrorIs(t, err, ErrDecodingFailed)
}

func TestResolveSiteCachesSiteID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/contoso.sharepoint.com:/sites/Engineering", r.URL.Path)
		fmt.Fprint(w, `{"id":"site-abc","displayName":"Engineering","webUrl":"https://contoso.sharepoint.com/sites/Engineering"}`)
	}))

	site, err := client.ResolveSite(context.Background(), "Engineering")
	require.NoError(t, err)
	assert.Equal(t, "site-abc", site.ID)
	assert.Equal(t, "site-abc", client.SiteID())
}

func TestResolveDrive(t *testing.T) {
	t.Run("caches first drive", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/sites/site-abc/drives", r.URL.Path)
			fmt.Fprint(w, `{"value":[{"id":"drive-1","name":"Documents"},{"id":"drive-2","name":"Other"}]}`)
		}))
		client.UseSite("site-abc")

		drive, err := client.ResolveDrive(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "drive-1", drive.ID)
		assert.Equal(t, "drive-1", client.DriveID())
	})

	t.Run("empty collection", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"value":[]}`)
		}))
		client.UseSite("site-abc")

		_, err := client.ResolveDrive(context.Background())
		assert.ErrorIs(t, err, ErrNoDrives)
		assert.Empty(t, client.DriveID())
	})
}

func TestPaginationFollowsNextLink(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/drives/drive1/items/folder1/children", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"value":[{"id":"c","name":"c.txt"}]}`)
			return
		}
		assert.Equal(t, "5", r.URL.Query().Get("$top"))
		fmt.Fprintf(w, `{"value":[{"id":"a","name":"a.txt"},{"id":"b","name":"b.txt"}],"@odata.nextLink":"%s/drives/drive1/items/folder1/children?page=2"}`, server.URL)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, testTokenResponse)
	}))
	defer tokenServer.Close()

	prevToken, prevRoot := customTokenURL, customRootURL
	SetCustomTokenEndpoint(tokenServer.URL)
	SetCustomGraphEndpoint(server.URL + "/")
	defer func() {
		customTokenURL = prevToken
		customRootURL = prevRoot
	}()

	client := NewClient(context.Background(), Credentials{
		ClientID: "id", ClientSecret: "secret", TenantID: "tenant", TenantName: "contoso",
	}, nil)
	client.UseDrive("drive1")

	t.Run("single page keeps next link", func(t *testing.T) {
		items, nextLink, err := client.ListChildren(context.Background(), "folder1", Paging{Top: 5})
		require.NoError(t, err)
		assert.Len(t, items.Value, 2)
		assert.Contains(t, nextLink, "page=2")
	})

	t.Run("fetch all drains pages", func(t *testing.T) {
		items, nextLink, err := client.ListChildren(context.Background(), "folder1", Paging{Top: 5, FetchAll: true})
		require.NoError(t, err)
		assert.Len(t, items.Value, 3)
		assert.Empty(t, nextLink)
	})

	t.Run("resume from next link", func(t *testing.T) {
		items, nextLink, err := client.ListChildren(context.Background(), "folder1", Paging{
			NextLink: server.URL + "/drives/drive1/items/folder1/children?page=2",
		})
		require.NoError(t, err)
		assert.Len(t, items.Value, 1)
		assert.Equal(t, "c", items.Value[0].ID)
		assert.Empty(t, nextLink)
	})
}

func TestApplyTop(t *testing.T) {
	assert.Equal(t, "http://x/items", applyTop("http://x/items", 0))
	assert.Equal(t, "http://x/items?$top=10", applyTop("http://x/items", 10))
	assert.Equal(t, "http://x/items?a=b&$top=10", applyTop("http://x/items?a=b", 10))
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrSiteNotResolved, ErrDriveNotResolved))
	assert.False(t, errors.Is(ErrNoDrives, ErrDriveNotResolved))
}
