package session

// Profile is the backend-owned view of the authenticated user, cached
// client-side. It must stay a flat JSON object: the store treats any value
// that fails to parse back into this shape as corrupt and evicts it.
type Profile struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	NIP     string `json:"nip"`
	Address string `json:"address"`
	IsAdmin bool   `json:"is_admin"`
}

// Session is the client-held record of an authenticated identity: the opaque
// bearer credential plus the profile it belongs to.
type Session struct {
	Token   string
	Profile Profile
}

func (s Session) IsZero() bool {
	return s.Token == ""
}
