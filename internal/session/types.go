// Package session owns the authenticated session: the in-memory state
// machine and its durable record on disk.
package session

// User is the authenticated account profile. Email is immutable after
// account creation; the server enforces it and the client treats it as
// read-only. Avatar is a reference (path or URL) and may be absent.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Session is the authenticated state. Token and RefreshToken are set and
// cleared together; a token without a user is never stored.
type Session struct {
	User         *User  `json:"user,omitempty"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Empty reports whether the session holds no usable credentials.
func (s Session) Empty() bool {
	return s.User == nil || s.Token == ""
}

// State is the position of the session state machine.
type State int

const (
	SignedOut State = iota
	Authenticating
	Authenticated
	RefreshingToken
)

// String returns a display-friendly label for the state.
func (s State) String() string {
	switch s {
	case SignedOut:
		return "signed out"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case RefreshingToken:
		return "refreshing token"
	default:
		return "unknown"
	}
}

// ProfileUpdate carries the fields a profile update may change. Zero-value
// fields are left untouched server-side. Password changes require the old
// password alongside the new one.
type ProfileUpdate struct {
	Name        string `json:"name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Password    string `json:"password,omitempty"`
	OldPassword string `json:"old_password,omitempty"`
}
