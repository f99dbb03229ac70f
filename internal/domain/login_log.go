package domain

import "time"

type LoginStatus string

const (
	LoginSuccess LoginStatus = "Success"
	LoginFailure LoginStatus = "Failure"
)

// LoginLogEntry records one authentication attempt. Entries are append-only
// and immutable.
type LoginLogEntry struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	LoginTime time.Time   `json:"loginTime"`
	Status    LoginStatus `json:"status"`
}

// LoginLogRepository defines the interface for the login audit log.
type LoginLogRepository interface {
	Append(username string, status LoginStatus) error
	// List returns entries ordered by login time descending.
	List() ([]*LoginLogEntry, error)
}
