package fc2ppvdb

import (
	"context"
	"fc2ppvdb-scraper/lib/testutil"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// a stand-in for fc2ppvdb.com serving just enough of the article page
// and article-info api to walk the csrf handshake. the tls certificate
// is self-signed, which the client tolerates on purpose.
type fakeSite struct {
	server *httptest.Server

	// knobs for breaking the handshake
	omitCsrfMeta   bool
	omitXsrfCookie bool
	apiBody        string

	pageRequests int
	pageCookies  string
	apiHeaders   http.Header
}

func newFakeSite(t *testing.T) *fakeSite {
	site := &fakeSite{apiBody: souvenirArticle}

	mux := http.NewServeMux()
	mux.HandleFunc("/articles/article-info", func(w http.ResponseWriter, r *http.Request) {
		site.apiHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, site.apiBody)
	})
	mux.HandleFunc("/articles/", func(w http.ResponseWriter, r *http.Request) {
		site.pageRequests++
		site.pageCookies = r.Header.Get("Cookie")

		if !site.omitXsrfCookie {
			http.SetCookie(w, &http.Cookie{Name: "XSRF-TOKEN", Value: "xsrf-cookie-value", Path: "/"})
		}
		http.SetCookie(w, &http.Cookie{Name: "fc2ppvdb_session", Value: "refreshed-session", Path: "/"})

		w.Header().Set("Content-Type", "text/html")
		if site.omitCsrfMeta {
			fmt.Fprint(w, `<html><head><title>ログイン - FC2PPVDB</title></head><body></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><head>
			<meta name="csrf-token" content="csrf-token-value">
			<title>FC2-PPV-4544576 - FC2PPVDB</title>
		</head><body></body></html>`)
	})

	site.server = httptest.NewTLSServer(mux)
	t.Cleanup(site.server.Close)
	return site
}

func newTestClient(t *testing.T, site *fakeSite, cookieFile string) *Client {
	client, err := NewClient(ClientOptions{
		BaseUrl:    site.server.URL,
		CookieFile: cookieFile,
	})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestScene(t *testing.T) {
	result, cleanup := testutil.SetupScraper(t, testutil.ScraperParams{
		Name:   "scrapers/fc2ppvdb",
		Cookie: "operator-session",
	})
	defer cleanup()

	site := newFakeSite(t)
	client := newTestClient(t, site, result.CookieFile)

	scene, err := client.Scene(context.Background(), "4544576")
	require.NoError(t, err)

	require.Equal(t, "FC2-PPV-4544576", scene.Code)
	require.Equal(t, site.server.URL+"/articles/4544576", scene.Url)
	require.Equal(t, "【個人撮影】初撮りの記録", scene.Title)
	require.Equal(t, site.server.URL+"/storage/thumbnails/4544576.jpg", scene.Image)

	// the page fetch presents the restored session cookie
	require.Equal(t, 1, site.pageRequests)
	require.Contains(t, site.pageCookies, "fc2ppvdb_session=operator-session")

	// the api fetch echoes both csrf tokens back
	require.Equal(t, "csrf-token-value", site.apiHeaders.Get("X-CSRF-TOKEN"))
	require.Equal(t, "XMLHttpRequest", site.apiHeaders.Get("X-Requested-With"))
	require.Equal(t, "xsrf-cookie-value", site.apiHeaders.Get("X-XSRF-TOKEN"))

	// the session the site handed back replaced the stored one
	contents, err := os.ReadFile(result.CookieFile)
	require.NoError(t, err)
	require.Equal(t, "refreshed-session", string(contents))
}

func TestSceneMissingSessionCookie(t *testing.T) {
	result, cleanup := testutil.SetupScraper(t, testutil.ScraperParams{
		Name: "scrapers/fc2ppvdb",
	})
	defer cleanup()

	site := newFakeSite(t)
	client := newTestClient(t, site, result.CookieFile)

	_, err := client.Scene(context.Background(), "4544576")
	require.ErrorIs(t, err, MissingSessionCookie)
	require.ErrorContains(t, err, result.CookieFile)

	// fails before touching the network
	require.Equal(t, 0, site.pageRequests)

	// an empty placeholder tells the operator where the cookie goes
	contents, err := os.ReadFile(result.CookieFile)
	require.NoError(t, err)
	require.Equal(t, "", string(contents))
}

func TestSceneMissingCsrfToken(t *testing.T) {
	result, cleanup := testutil.SetupScraper(t, testutil.ScraperParams{
		Name:   "scrapers/fc2ppvdb",
		Cookie: "operator-session",
	})
	defer cleanup()

	site := newFakeSite(t)
	site.omitCsrfMeta = true
	client := newTestClient(t, site, result.CookieFile)

	_, err := client.Scene(context.Background(), "4544576")
	require.ErrorIs(t, err, MissingCsrfToken)

	// the session set by the page fetch survives the failure
	contents, err := os.ReadFile(result.CookieFile)
	require.NoError(t, err)
	require.Equal(t, "refreshed-session", string(contents))
}

func TestSceneMissingXsrfCookie(t *testing.T) {
	result, cleanup := testutil.SetupScraper(t, testutil.ScraperParams{
		Name:   "scrapers/fc2ppvdb",
		Cookie: "operator-session",
	})
	defer cleanup()

	site := newFakeSite(t)
	site.omitXsrfCookie = true
	client := newTestClient(t, site, result.CookieFile)

	_, err := client.Scene(context.Background(), "4544576")
	require.ErrorIs(t, err, MissingXsrfCookie)
}

func TestSceneBadApiJson(t *testing.T) {
	result, cleanup := testutil.SetupScraper(t, testutil.ScraperParams{
		Name:   "scrapers/fc2ppvdb",
		Cookie: "operator-session",
	})
	defer cleanup()

	site := newFakeSite(t)
	site.apiBody = `<html>rate limited</html>`
	client := newTestClient(t, site, result.CookieFile)

	_, err := client.Scene(context.Background(), "4544576")
	require.ErrorContains(t, err, "decode article info")
}

func TestSceneMissingArticle(t *testing.T) {
	result, cleanup := testutil.SetupScraper(t, testutil.ScraperParams{
		Name:   "scrapers/fc2ppvdb",
		Cookie: "operator-session",
	})
	defer cleanup()

	site := newFakeSite(t)
	site.apiBody = `{"article": null}`
	client := newTestClient(t, site, result.CookieFile)

	_, err := client.Scene(context.Background(), "4544576")

	var missing MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "article", missing.Field)
}
