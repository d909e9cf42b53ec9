package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned by gated operations when no session
// token is stored. Detected locally, never sent over the network.
var ErrUnauthenticated = errors.New("not authenticated")

// AuthError carries a server-supplied rejection message.
type AuthError struct {
	Detail string
}

func (e AuthError) Error() string {
	return fmt.Sprintf("auth rejected: %s", e.Detail)
}
