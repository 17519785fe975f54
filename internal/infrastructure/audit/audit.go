// Package audit tags API requests with per-process session and view IDs.
package audit

import (
	"net/http"

	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// Header names sent when auditing is enabled.
const (
	SessionHeader = "X-Audit-Session-Id"
	ViewHeader    = "X-Audit-View-Id"
)

// Tracker holds the IDs for one process.
type Tracker struct {
	session values.AuditID
	view    values.AuditID
	enabled bool
}

// NewTracker creates a tracker. A disabled tracker adds no headers.
func NewTracker(enabled bool) *Tracker {
	t := &Tracker{enabled: enabled}
	if enabled {
		t.session = values.NewAuditID()
		t.view = values.NewAuditID()
	}
	return t
}

// Enabled reports whether audit headers are sent.
func (t *Tracker) Enabled() bool {
	return t != nil && t.enabled
}

// SessionID returns the session ID, zero when disabled.
func (t *Tracker) SessionID() values.AuditID {
	return t.session
}

// ViewID returns the view ID, zero when disabled.
func (t *Tracker) ViewID() values.AuditID {
	return t.view
}

// Headers returns the headers to add to every request, or nil when disabled.
func (t *Tracker) Headers() http.Header {
	if !t.Enabled() {
		return nil
	}
	h := http.Header{}
	h.Set(SessionHeader, t.session.String())
	h.Set(ViewHeader, t.view.String())
	return h
}
