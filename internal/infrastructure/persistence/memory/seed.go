package memory

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// DefaultUsers returns the sample users the server starts with.
func DefaultUsers() []entities.User {
	return []entities.User{
		{
			ID:    1,
			Name:  "Taro Tanaka",
			Email: "tanaka@example.com",
			ProfileFields: []entities.ProfileField{
				entities.NewTextField("Hobby", "reading"),
				entities.NewNumberField("Age", 30),
			},
		},
		{
			ID:    2,
			Name:  "Hanako Mitsui",
			Email: "mitsui@example.com",
			ProfileFields: []entities.ProfileField{
				entities.NewTextField("Job", "Engineer"),
				entities.NewGenderField("Sex", values.GenderFemale),
			},
		},
	}
}

// seedFile is the on-disk seed document. A bare list of users is accepted too.
type seedFile struct {
	Users []entities.User `yaml:"users"`
}

// LoadSeedFile reads users from a YAML (or JSON) file.
// Each user must carry a name and an email.
func LoadSeedFile(path string) ([]entities.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}

	users, err := parseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	for i, u := range users {
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("seed file %s: user[%d]: %w", path, i, err)
		}
	}
	return users, nil
}

func parseSeed(data []byte) ([]entities.User, error) {
	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err == nil && doc.Users != nil {
		return doc.Users, nil
	}

	var list []entities.User
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}
