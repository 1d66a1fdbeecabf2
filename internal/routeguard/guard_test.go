//go:build unit

package routeguard_test

import (
	"testing"

	"spellbudex/internal/routeguard"
	"spellbudex/internal/session"

	"github.com/stretchr/testify/assert"
)

func anonymous() session.Session { return session.Session{} }

func customer() session.Session {
	return session.Session{Token: "t", Profile: session.Profile{ID: 7, Email: "anna@example.pl"}}
}

func admin() session.Session {
	return session.Session{Token: "t", Profile: session.Profile{ID: 1, IsAdmin: true}}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		path string
		sess session.Session
		want routeguard.Decision
	}{
		{"public page, anonymous", "/", anonymous(), routeguard.Allow},
		{"public page, signed in", "/equipment/5", customer(), routeguard.Allow},

		{"protected page, anonymous", "/my-reservations", anonymous(), routeguard.ToLogin},
		{"protected subpath, anonymous", "/my-reservations/12", anonymous(), routeguard.ToLogin},
		{"protected page, signed in", "/profile", customer(), routeguard.Allow},

		{"admin page, anonymous", "/dashboard", anonymous(), routeguard.ToLogin},
		{"admin page, plain customer", "/dashboard", customer(), routeguard.ToHome},
		{"admin subpath, plain customer", "/dashboard/equipment", customer(), routeguard.ToHome},
		{"admin page, admin", "/dashboard", admin(), routeguard.Allow},

		{"login page, anonymous", "/login", anonymous(), routeguard.Allow},
		{"login page, signed in", "/login", customer(), routeguard.ToHome},
		{"register page, signed in", "/register", customer(), routeguard.ToHome},
		{"login page, admin", "/login", admin(), routeguard.ToDashboard},

		// Prefix matching must not swallow lookalike paths.
		{"lookalike prefix stays public", "/dashboard-info", anonymous(), routeguard.Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, routeguard.Decide(tt.path, tt.sess))
		})
	}
}
