package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseFieldType(t *testing.T) {
	tests := []struct {
		in   string
		want FieldType
	}{
		{"text", FieldTypeText},
		{"NUMBER", FieldTypeNumber},
		{"  gender ", FieldTypeGender},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFieldType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ParseFieldType_Invalid(t *testing.T) {
	for _, in := range []string{"", "date", "boolean", "texts"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseFieldType(in)
			assert.Error(t, err)
		})
	}
}

func Test_MustParseFieldType_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustParseFieldType("date")
	})
	assert.Equal(t, FieldTypeText, MustParseFieldType("text"))
}

func Test_FieldType_Label(t *testing.T) {
	assert.Equal(t, "Text", FieldTypeText.Label())
	assert.Equal(t, "Number", FieldTypeNumber.Label())
	assert.Equal(t, "Gender", FieldTypeGender.Label())
	assert.Equal(t, "date", FieldType("date").Label())
}

func Test_FieldTypes_Order(t *testing.T) {
	assert.Equal(t, []FieldType{FieldTypeText, FieldTypeNumber, FieldTypeGender}, FieldTypes())
}

func Test_Gender(t *testing.T) {
	g, err := ParseGender(" Male")
	require.NoError(t, err)
	assert.Equal(t, GenderMale, g)
	assert.Equal(t, "Male", g.Label())
	assert.Equal(t, "Female", GenderFemale.Label())

	_, err = ParseGender("other")
	assert.Error(t, err)
	assert.Error(t, Gender("").Validate())
}

func Test_ParseUserID(t *testing.T) {
	id, err := ParseUserID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.Int64())
	assert.Equal(t, "42", id.String())

	for _, in := range []string{"", "0", "-3", "abc", "1.5"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseUserID(in)
			assert.Error(t, err)
		})
	}
}

func Test_NewAuditID(t *testing.T) {
	id1 := NewAuditID()
	id2 := NewAuditID()

	assert.False(t, id1.IsZero(), "new ID should not be zero")
	assert.False(t, id1.Equals(id2), "two new IDs should be different")
}

func Test_ParseAuditID(t *testing.T) {
	valid := "123e4567-e89b-12d3-a456-426614174000"

	id, err := ParseAuditID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, id.String())

	for _, in := range []string{"", "invalid", "123"} {
		_, err := ParseAuditID(in)
		assert.Error(t, err, in)
	}
	assert.True(t, AuditID{}.IsZero())
}
