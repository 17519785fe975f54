package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

func createTestUsers() []entities.User {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return []entities.User{
		{
			ID: 1, Name: "Taro Tanaka", Email: "tanaka@example.com",
			CreatedAt: &created, UpdatedAt: &created,
			ProfileFields: []entities.ProfileField{
				entities.NewTextField("Hobby", "reading"),
				entities.NewNumberField("Age", 30),
			},
		},
		{
			ID: 2, Name: "Hanako Mitsui", Email: "mitsui@example.com",
			ProfileFields: []entities.ProfileField{
				entities.NewGenderField("Sex", values.GenderFemale),
				{FieldType: values.FieldTypeNumber, Name: "Height", Value: "tall"},
			},
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	buf := &bytes.Buffer{}
	f := NewTableFormatter(buf)
	f.EnableColor = false

	require.NoError(t, f.Format(createTestUsers()))
	out := buf.String()

	assert.Contains(t, out, "#1 Taro Tanaka <tanaka@example.com>")
	assert.Contains(t, out, "Created: 2025-01-02T03:04:05Z")
	assert.NotContains(t, out, "Updated:")
	assert.Contains(t, out, "1. Hobby: reading (Text)")
	assert.Contains(t, out, "2. Age: 30 (Number)")
	assert.Contains(t, out, "1. Sex: Female (Gender)")
	assert.Contains(t, out, "2. Height: tall (Number)")
	assert.Contains(t, out, "warning: this field's data is invalid")
	assert.Contains(t, out, "Users: 2 total")
	assert.Contains(t, out, "1 field(s) with invalid data")
	assert.NotContains(t, out, "\033[")
}

func TestTableFormatter_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTableFormatter(buf).Format(nil))
	assert.Equal(t, "No users.\n", buf.String())
}

func TestTableFormatter_Color(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewTableFormatter(buf).Format(createTestUsers()))
	assert.Contains(t, buf.String(), colorBold+"Taro Tanaka"+colorReset)
}

func TestJSONFormatter_Format_Indented(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter(buf, true).Format(createTestUsers()))

	assert.Contains(t, buf.String(), "\n  {")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Taro Tanaka", decoded[0]["name"])
	fields := decoded[0]["profileFields"].([]any)
	assert.Equal(t, map[string]any{"fieldType": "number", "name": "Age", "value": float64(30)}, fields[1])
}

func TestJSONFormatter_Format_Compact(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewJSONFormatter(buf, false).Format(nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter_Format_RoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewYAMLFormatter(buf).Format(createTestUsers()))

	var users []entities.User
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "mitsui@example.com", users[1].Email)
	assert.Equal(t, values.FieldTypeGender, users[1].ProfileFields[0].FieldType)
	assert.Equal(t, "female", users[1].ProfileFields[0].Value)
}
