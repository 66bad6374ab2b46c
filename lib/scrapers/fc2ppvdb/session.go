package fc2ppvdb

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// the cookie the site hands out to logged-in sessions
const sessionCookieName = "fc2ppvdb_session"

// DefaultCookieFile is where the session cookie lives unless configured
// otherwise: a file named "cookie" next to the binary.
func DefaultCookieFile() string {
	exe, err := os.Executable()
	if err != nil {
		return "cookie"
	}
	return filepath.Join(filepath.Dir(exe), "cookie")
}

// loads the session cookie file into the client's jar, trimming any
// trailing newline an editor left behind. reports whether a non-empty
// value was loaded.
func (c *Client) restoreSession() bool {
	raw, err := os.ReadFile(c.CookieFile)
	if err != nil {
		return false
	}
	value := strings.TrimSpace(string(raw))
	if value == "" {
		return false
	}

	slog.Debug("using session cookie", "value", value)
	c.jar().SetCookies(c.BaseUrl, []*http.Cookie{{
		Name:  sessionCookieName,
		Value: value,
	}})
	return true
}

// writes the jar's current session cookie back to the cookie file.
// runs exactly once per scrape, on success and failure paths alike.
// write failures are logged, never fatal.
func (c *Client) persistSession() {
	value := ""
	for _, cookie := range c.jar().Cookies(c.BaseUrl) {
		if cookie.Name == sessionCookieName {
			value = cookie.Value
			break
		}
	}
	if value == "" {
		slog.Warn("writing empty session cookie file")
	}

	err := os.WriteFile(c.CookieFile, []byte(value), 0600)
	if err != nil {
		slog.Error("failed to write session cookie file", "path", c.CookieFile, "err", err.Error())
		return
	}
	slog.Debug("wrote session cookie file", "path", c.CookieFile, "value", value)
}

func (c *Client) jar() http.CookieJar {
	return c.Http.GetClient().Jar
}
