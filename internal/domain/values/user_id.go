package values

import (
	"fmt"
	"strconv"
	"strings"
)

// UserID identifies a user. IDs are assigned by the backend, never by the client.
type UserID int64

// ParseUserID parses a positive decimal user ID.
func ParseUserID(s string) (UserID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID %q: %w", s, err)
	}
	id := UserID(n)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// Validate returns an error if the ID is not positive
func (id UserID) Validate() error {
	if id <= 0 {
		return fmt.Errorf("invalid user ID: %d (must be positive)", int64(id))
	}
	return nil
}

// Int64 returns the underlying integer
func (id UserID) Int64() int64 {
	return int64(id)
}

// String returns the decimal representation
func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
