package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/services"
)

const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// TableFormatter formats users as human-readable text.
type TableFormatter struct {
	writer      io.Writer
	EnableColor bool
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{
		writer:      w,
		EnableColor: true, // Default to true, caller can disable
	}
}

// colorize returns the string wrapped in ANSI color codes if enabled.
func (f *TableFormatter) colorize(text, code string) string {
	if !f.EnableColor {
		return text
	}
	return code + text + colorReset
}

// Format writes the users as a list.
//
//nolint:errcheck // Table formatting errors are non-critical (best-effort terminal output)
func (f *TableFormatter) Format(users []entities.User) error {
	if len(users) == 0 {
		fmt.Fprintln(f.writer, "No users.")
		return nil
	}

	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))
	invalid := 0
	for _, u := range users {
		invalid += f.formatUser(u)
	}
	fmt.Fprintln(f.writer, f.colorize(strings.Repeat("─", 80), colorGray))

	fmt.Fprintf(f.writer, "Users: %d total\n", len(users))
	if invalid > 0 {
		fmt.Fprintf(f.writer, "%s %d field(s) with invalid data\n", f.colorize("⚠", colorYellow), invalid)
	}
	return nil
}

// formatUser writes one user and returns how many of its fields were invalid.
//
//nolint:errcheck // Best-effort terminal output
func (f *TableFormatter) formatUser(u entities.User) int {
	fmt.Fprintf(f.writer, "%s %s <%s>\n",
		f.colorize(fmt.Sprintf("#%s", u.ID), colorCyan),
		f.colorize(u.Name, colorBold),
		u.Email)

	if u.CreatedAt != nil {
		fmt.Fprintf(f.writer, "  Created: %s\n", u.CreatedAt.Format(time.RFC3339))
	}
	if u.UpdatedAt != nil && (u.CreatedAt == nil || !u.UpdatedAt.Equal(*u.CreatedAt)) {
		fmt.Fprintf(f.writer, "  Updated: %s\n", u.UpdatedAt.Format(time.RFC3339))
	}

	invalid := 0
	if len(u.ProfileFields) > 0 {
		fmt.Fprintln(f.writer, "  Profile:")
		for _, view := range services.RenderFields(u.ProfileFields) {
			fmt.Fprintf(f.writer, "    %d. %s\n", view.Position+1, view.String())
			if view.Invalid() {
				invalid++
				fmt.Fprintf(f.writer, "       %s\n", f.colorize(view.Warning, colorYellow))
			}
		}
	}

	fmt.Fprintln(f.writer)
	return invalid
}
