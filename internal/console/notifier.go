package console

import (
	"fmt"
	"io"
	"sync"

	"spellbudex/internal/routeguard"
)

// Notifier renders the client's central reactions on the terminal. A 401
// eviction additionally flags a pending redirect that the console consumes
// on its next prompt.
type Notifier struct {
	mu       sync.Mutex
	out      io.Writer
	expired  bool
	location string
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// SetLocation records the surface currently rendered. The expired-session
// indicator stays silent while the user is already at the login surface,
// so a rejected login attempt reports only its own failure detail.
func (n *Notifier) SetLocation(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = path
}

func (n *Notifier) SessionExpired() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.location == routeguard.LoginPath {
		return
	}
	n.expired = true
	fmt.Fprintln(n.out, "! Sesja wygasła. Zaloguj się ponownie.")
}

func (n *Notifier) PermissionDenied() {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, "! Brak uprawnień do wykonania tej operacji.")
}

func (n *Notifier) ServerUnavailable() {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, "! Serwer chwilowo niedostępny. Spróbuj ponownie później.")
}

func (n *Notifier) Unreachable() {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, "! Brak połączenia z serwerem. Sprawdź sieć i spróbuj ponownie.")
}

// ConsumeExpired reports and clears the pending post-eviction redirect.
func (n *Notifier) ConsumeExpired() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	was := n.expired
	n.expired = false
	return was
}
