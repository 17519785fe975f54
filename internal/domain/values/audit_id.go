package values

import (
	"fmt"

	"github.com/google/uuid"
)

// AuditID identifies an audit session or view. Generated per process.
type AuditID struct {
	value uuid.UUID
}

// NewAuditID creates a new random audit ID
func NewAuditID() AuditID {
	return AuditID{value: uuid.New()}
}

// ParseAuditID parses a string into an AuditID
func ParseAuditID(s string) (AuditID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AuditID{}, fmt.Errorf("invalid audit ID: %w", err)
	}
	return AuditID{value: id}, nil
}

// String returns the string representation
func (a AuditID) String() string {
	return a.value.String()
}

// IsZero returns true if this is the zero value
func (a AuditID) IsZero() bool {
	return a.value == uuid.Nil
}

// Equals checks if two AuditIDs are equal
func (a AuditID) Equals(other AuditID) bool {
	return a.value == other.value
}
