package mathsdk

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// SessionCookieName is the cookie the backend sets on successful sign-in.
// The client never inspects its value; only its presence matters.
const SessionCookieName = "auth_token"

// Client is a typed HTTP client for the MathApp backend. It carries a cookie
// jar so the server-set session cookie rides along on every request; the
// client never stores a bearer token itself.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a backend client with a fresh cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// SessionCookie returns the current session cookie from the jar, or nil when
// no session has been established. This is a presence marker only; validity
// is enforced server-side on each call.
func (c *Client) SessionCookie() *http.Cookie {
	base, err := url.Parse(c.BaseURL)
	if err != nil || c.HTTPClient.Jar == nil {
		return nil
	}

	for _, cookie := range c.HTTPClient.Jar.Cookies(base) {
		if cookie.Name == SessionCookieName {
			return cookie
		}
	}
	return nil
}

// ClearSession drops the session cookie by overwriting it with an expired one.
// Used after sign-out and account deletion so a stale jar entry cannot make
// the client look authenticated.
func (c *Client) ClearSession() {
	base, err := url.Parse(c.BaseURL)
	if err != nil || c.HTTPClient.Jar == nil {
		return
	}

	c.HTTPClient.Jar.SetCookies(base, []*http.Cookie{{
		Name:   SessionCookieName,
		Value:  "",
		MaxAge: -1,
	}})
}
