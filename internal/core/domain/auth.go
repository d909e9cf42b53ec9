package domain

// AuthMode selects which auth form is active. Toggled only by
// explicit user action, except the post-registration handoff back to
// login.
type AuthMode int

const (
	LoginMode AuthMode = iota
	RegisterMode
)

func (m AuthMode) String() string {
	if m == RegisterMode {
		return "register"
	}
	return "login"
}
