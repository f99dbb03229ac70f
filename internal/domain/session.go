package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the explicit authentication context handed to the presentation
// layer by a successful login. The core holds no session state of its own;
// the collaborator passes the session back into scoped calls.
type Session struct {
	Token     uuid.UUID `json:"token"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
