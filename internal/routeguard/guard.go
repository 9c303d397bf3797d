// Package routeguard classifies request paths and redirects based on session
// presence before any protected page renders. It checks only that the session
// cookie exists; validity is enforced server-side on every API call, so this
// is a UX convenience, not a security boundary.
package routeguard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/myc22ka/mathapp-client/pkg/mathsdk"
)

// Path classification allow-lists.
var (
	// staticPublicPaths are public by exact match.
	staticPublicPaths = []string{"/"}

	// prefixPublicPaths cover the auth, recovery, and verification screens.
	prefixPublicPaths = []string{"/auth", "/forgot-password", "/verify"}

	// skipPrefixes are request paths the guard never inspects: data endpoints
	// redirecting to a login page would confuse their callers.
	skipPrefixes = []string{"/api"}
)

// PathClass is the guard's view of a request path.
type PathClass int

const (
	// ClassProtected: everything not on an allow-list.
	ClassProtected PathClass = iota
	// ClassPublicStatic: exact match against the static allow-list.
	ClassPublicStatic
	// ClassPublicPrefix: starts with an allow-listed prefix.
	ClassPublicPrefix
)

// Action is the guard's verdict for a request.
type Action int

const (
	// Allow lets the request through unchanged.
	Allow Action = iota
	// RedirectLogin sends the client to the login screen, preserving the
	// requested path as a return target.
	RedirectLogin
	// RedirectHome sends an already-authenticated client away from a
	// public-only screen.
	RedirectHome
)

// Decision is the verdict plus the redirect target when one applies.
type Decision struct {
	Action   Action
	Location string
}

// Classify buckets a path as protected, public-static, or public-prefixed.
func Classify(path string) PathClass {
	for _, p := range staticPublicPaths {
		if path == p {
			return ClassPublicStatic
		}
	}
	for _, prefix := range prefixPublicPaths {
		if strings.HasPrefix(path, prefix) {
			return ClassPublicPrefix
		}
	}
	return ClassProtected
}

// Decide applies the guard's decision table to a path and the presence of a
// session marker.
func Decide(path string, hasSession bool) Decision {
	class := Classify(path)
	public := class != ClassProtected

	if !hasSession && !public {
		return Decision{
			Action:   RedirectLogin,
			Location: "/login?from=" + url.QueryEscape(path),
		}
	}

	if hasSession && public && path != "/" {
		return Decision{Action: RedirectHome, Location: "/"}
	}

	return Decision{Action: Allow}
}

// Middleware enforces Decide on every request, reading only the presence of
// the session cookie.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		_, err := r.Cookie(mathsdk.SessionCookieName)
		hasSession := err == nil

		decision := Decide(r.URL.Path, hasSession)
		if decision.Action != Allow {
			http.Redirect(w, r, decision.Location, http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}
