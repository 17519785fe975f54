package output

import (
	"encoding/json"
	"io"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
)

// JSONFormatter formats users as a JSON array, the same shape GET /users returns.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
// If indent is true, the output will be pretty-printed with indentation.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// Format writes the users as JSON.
func (f *JSONFormatter) Format(users []entities.User) error {
	if users == nil {
		users = []entities.User{}
	}

	var data []byte
	var err error

	if f.indent {
		data, err = json.MarshalIndent(users, "", "  ")
	} else {
		data, err = json.Marshal(users)
	}

	if err != nil {
		return err
	}

	if _, err = f.writer.Write(data); err != nil {
		return err
	}

	_, err = f.writer.Write([]byte("\n"))
	return err
}
