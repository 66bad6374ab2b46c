package testutil

import (
	"fc2ppvdb-scraper/lib/telemetry"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type ScraperParams struct {
	Name string
	// contents of the session cookie file; if empty no file is created
	// so tests can exercise the missing-cookie path
	Cookie string
}

type ScraperResult struct {
	CookieFile string
}

// SetupScraper prepares telemetry and a scratch session cookie file for
// a scraper test. The cookie file lives in a per-test temp dir and is
// cleaned up with it.
func SetupScraper(t testing.TB, params ScraperParams) (ScraperResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	cookieFile := filepath.Join(t.TempDir(), "cookie")
	if params.Cookie != "" {
		err := os.WriteFile(cookieFile, []byte(params.Cookie), 0600)
		if err != nil {
			t.Fatal(err)
		}
	}

	return ScraperResult{CookieFile: cookieFile}, cleanup
}
