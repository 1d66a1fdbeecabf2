package api

// Reactor receives the environment-coupled reactions to rejected calls so the
// classification itself stays pure. Implementations own navigation and user
// notification; the client only tells them what happened.
//
// Every hook fires at most once per call, and the call still rejects.
type Reactor interface {
	// SessionExpired fires after the client has evicted the session on a 401.
	// Implementations redirect to the login surface with an "expired"
	// indicator unless the user is already there.
	SessionExpired()

	// PermissionDenied fires on 403; state is left unchanged.
	PermissionDenied()

	// ServerUnavailable fires on 5xx responses.
	ServerUnavailable()

	// Unreachable fires when no response arrived at all (network failure or
	// the fixed request timeout elapsing).
	Unreachable()
}

// NopReactor ignores every reaction. Useful for tests and for headless use of
// the client.
type NopReactor struct{}

func (NopReactor) SessionExpired()    {}
func (NopReactor) PermissionDenied()  {}
func (NopReactor) ServerUnavailable() {}
func (NopReactor) Unreachable()       {}
