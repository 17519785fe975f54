package output

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
)

// YAMLFormatter formats users as YAML. The output is accepted by serve --seed.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the users as YAML.
func (f *YAMLFormatter) Format(users []entities.User) error {
	if users == nil {
		users = []entities.User{}
	}
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(users); err != nil {
		return err
	}

	return encoder.Close()
}
