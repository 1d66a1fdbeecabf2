// Package routeguard decides where a navigation may land based on the
// current session. Pure; the caller performs the actual redirect.
package routeguard

import (
	"strings"

	"spellbudex/internal/session"
)

type Decision int

const (
	// Allow lets the navigation proceed.
	Allow Decision = iota
	// ToLogin redirects to the sign-in surface.
	ToLogin
	// ToHome redirects to the landing page.
	ToHome
	// ToDashboard redirects to the admin dashboard.
	ToDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case ToLogin:
		return "to_login"
	case ToHome:
		return "to_home"
	case ToDashboard:
		return "to_dashboard"
	}
	return "unknown"
}

const LoginPath = "/login"

// Fixed path sets. Prefix matching so detail routes under a protected
// surface inherit its guard.
var (
	protectedPrefixes = []string{"/dashboard", "/profile", "/my-reservations"}
	adminPrefixes     = []string{"/dashboard"}
	authPaths         = []string{"/login", "/register"}
)

// Decide evaluates one navigation. Auth-only paths bounce signed-in users
// away; protected paths demand a session; admin paths additionally demand a
// privileged profile.
func Decide(path string, sess session.Session) Decision {
	if isAuthPath(path) {
		if sess.IsZero() {
			return Allow
		}
		if sess.Profile.IsAdmin {
			return ToDashboard
		}
		return ToHome
	}

	if hasPrefix(path, adminPrefixes) {
		if sess.IsZero() {
			return ToLogin
		}
		if !sess.Profile.IsAdmin {
			return ToHome
		}
		return Allow
	}

	if hasPrefix(path, protectedPrefixes) && sess.IsZero() {
		return ToLogin
	}
	return Allow
}

func isAuthPath(path string) bool {
	for _, p := range authPaths {
		if path == p {
			return true
		}
	}
	return false
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
