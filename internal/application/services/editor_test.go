package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	apperrors "github.com/reglet-dev/userprofiles/internal/application/errors"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	domainservices "github.com/reglet-dev/userprofiles/internal/domain/services"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

func Test_Editor_AddField_ValidInputsPassValidator(t *testing.T) {
	inputs := []dto.FieldInput{
		{Name: "Hobby", Type: values.FieldTypeText, Value: "reading"},
		{Name: "Age", Type: values.FieldTypeNumber, Value: "30"},
		{Name: "Sex", Type: values.FieldTypeGender, Gender: values.GenderFemale},
	}

	e := NewEditor(new(MockUserAPI), nil, nil)
	for _, in := range inputs {
		require.NoError(t, e.AddField(in))
	}

	fields := e.Fields()
	require.Len(t, fields, 3)
	for _, f := range fields {
		assert.True(t, domainservices.IsValid(&f), "field %+v", f)
	}
}

func Test_Editor_AddField_Number(t *testing.T) {
	e := NewEditor(new(MockUserAPI), nil, nil)

	require.NoError(t, e.AddField(dto.FieldInput{Name: "Age", Type: values.FieldTypeNumber, Value: "30"}))
	require.Len(t, e.Fields(), 1)

	v, err := e.Fields()[0].ValueByDiscriminator()
	require.NoError(t, err)
	assert.Equal(t, entities.NumberField{Name: "Age", Value: 30}, v)

	err = e.AddField(dto.FieldInput{Name: "Age", Type: values.FieldTypeNumber, Value: "abc"})
	require.Error(t, err)
	assert.True(t, IsInputError(err))
	assert.Equal(t, MsgEnterValidNumber, err.Error())
	assert.Equal(t, MsgEnterValidNumber, e.Err())
	assert.Len(t, e.Fields(), 1, "list unchanged")
}

func Test_Editor_AddField_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   dto.FieldInput
		want string
	}{
		{"missing name", dto.FieldInput{Type: values.FieldTypeText, Value: "x"}, MsgEnterFieldName},
		{"missing text value", dto.FieldInput{Name: "Hobby", Type: values.FieldTypeText}, MsgEnterValue},
		{"missing number value", dto.FieldInput{Name: "Age", Type: values.FieldTypeNumber}, MsgEnterValue},
		{"NaN", dto.FieldInput{Name: "Age", Type: values.FieldTypeNumber, Value: "NaN"}, MsgEnterValidNumber},
		{"infinity", dto.FieldInput{Name: "Age", Type: values.FieldTypeNumber, Value: "+Inf"}, MsgEnterValidNumber},
		{"hex float", dto.FieldInput{Name: "Age", Type: values.FieldTypeNumber, Value: "0x1p4"}, MsgEnterValidNumber},
		{"signed hex", dto.FieldInput{Name: "Age", Type: values.FieldTypeNumber, Value: "-0X10"}, MsgEnterValidNumber},
		{"bad gender", dto.FieldInput{Name: "Sex", Type: values.FieldTypeGender, Gender: "other"}, MsgInvalidField},
		{"unknown type", dto.FieldInput{Name: "Birthday", Type: "date", Value: "2000-01-01"}, MsgInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor(new(MockUserAPI), nil, nil)
			err := e.AddField(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Empty(t, e.Fields())
			assert.Equal(t, tt.in, e.Scratch(), "failed input stays in scratch")
		})
	}
}

func Test_Editor_AddField_ClearsScratch(t *testing.T) {
	e := NewEditor(new(MockUserAPI), nil, nil)
	require.NoError(t, e.AddField(dto.FieldInput{Name: "Sex", Type: values.FieldTypeGender, Gender: values.GenderFemale}))
	assert.Equal(t, dto.FieldInput{Type: values.FieldTypeGender, Gender: values.GenderMale}, e.Scratch())
	assert.Empty(t, e.Err())
}

func Test_Editor_RemoveField(t *testing.T) {
	e := NewEditor(new(MockUserAPI), nil, nil)
	require.NoError(t, e.AddField(dto.FieldInput{Name: "A", Type: values.FieldTypeText, Value: "1"}))
	require.NoError(t, e.AddField(dto.FieldInput{Name: "B", Type: values.FieldTypeText, Value: "2"}))
	require.NoError(t, e.AddField(dto.FieldInput{Name: "C", Type: values.FieldTypeText, Value: "3"}))
	before := e.Fields()

	for _, pos := range []int{-1, 3, 100} {
		e.RemoveField(pos)
		assert.Equal(t, before, e.Fields(), "position %d", pos)
	}

	e.RemoveField(1)
	fields := e.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "A", fields[0].Name)
	assert.Equal(t, "C", fields[1].Name)
	assert.Equal(t, "B", before[1].Name, "earlier snapshot is not aliased")
}

func Test_Editor_Submit_SendsPayloadAndRefreshesOnce(t *testing.T) {
	api := new(MockUserAPI)
	refresher := &countingRefresher{}
	e := NewEditor(api, refresher, nil)

	e.SetName("Alice")
	e.SetEmail("a@x.com")
	require.NoError(t, e.AddField(dto.FieldInput{Name: "Sex", Type: values.FieldTypeGender, Gender: values.GenderMale}))

	var sent dto.CreateUserRequest
	api.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.CreateUserRequest")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(dto.CreateUserRequest) }).
		Return(&entities.User{ID: 3, Name: "Alice", Email: "a@x.com"}, nil).Once()

	user, err := e.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, values.UserID(3), user.ID)

	body, err := json.Marshal(sent)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"name":"Alice","email":"a@x.com","profileFields":[{"fieldType":"gender","name":"Sex","value":"male"}]}`,
		string(body))

	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, StateEmpty, e.State())
	assert.Empty(t, e.Fields())
	api.AssertExpectations(t)
}

func Test_Editor_Submit_OmitsEmptyFields(t *testing.T) {
	api := new(MockUserAPI)
	e := NewEditor(api, nil, nil)
	e.SetName("Bob")
	e.SetEmail("b@x.com")

	api.On("CreateUser", mock.Anything, dto.CreateUserRequest{Name: "Bob", Email: "b@x.com"}).
		Return(&entities.User{ID: 4}, nil).Once()

	_, err := e.Submit(context.Background())
	require.NoError(t, err)

	body, err := json.Marshal(dto.CreateUserRequest{Name: "Bob", Email: "b@x.com"})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "profileFields")
	api.AssertExpectations(t)
}

func Test_Editor_Submit_MissingEmail(t *testing.T) {
	api := new(MockUserAPI)
	refresher := &countingRefresher{}
	e := NewEditor(api, refresher, nil)
	e.SetName("Alice")

	_, err := e.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, IsInputError(err))
	assert.Equal(t, MsgEnterNameAndEmail, e.Err())
	assert.Zero(t, refresher.calls)
	api.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func Test_Editor_Submit_FailureKeepsDraft(t *testing.T) {
	api := new(MockUserAPI)
	refresher := &countingRefresher{}
	e := NewEditor(api, refresher, nil)
	e.SetName("Alice")
	e.SetEmail("a@x.com")
	require.NoError(t, e.AddField(dto.FieldInput{Name: "Age", Type: values.FieldTypeNumber, Value: "30"}))

	apiErr := apperrors.NewAPIError(400, "profile fields are invalid", apperrors.CodeValidation)
	api.On("CreateUser", mock.Anything, mock.Anything).Return(nil, apiErr).Once()

	_, err := e.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "failed to create user: profile fields are invalid", err.Error())
	assert.Equal(t, err.Error(), e.Err())

	var got *apperrors.APIError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, apperrors.CodeValidation, got.Code)

	assert.Zero(t, refresher.calls)
	assert.Equal(t, StateAccumulating, e.State())
	assert.Len(t, e.Fields(), 1)
	assert.Equal(t, "Alice", e.Name())
}

func Test_Editor_Submit_GenericFailureMessage(t *testing.T) {
	api := new(MockUserAPI)
	e := NewEditor(api, nil, nil)
	e.SetName("Alice")
	e.SetEmail("a@x.com")

	api.On("CreateUser", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := e.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "failed to create user: connection refused", e.Err())
}

func Test_Editor_Submit_Busy(t *testing.T) {
	api := new(MockUserAPI)
	e := NewEditor(api, nil, nil)
	e.SetName("Alice")
	e.SetEmail("a@x.com")

	started := make(chan struct{})
	release := make(chan struct{})
	api.On("CreateUser", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&entities.User{ID: 1}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background())
		done <- err
	}()

	<-started
	assert.Equal(t, StateSubmitting, e.State())
	_, err := e.Submit(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, e.Submitting())
}

func Test_Editor_State(t *testing.T) {
	e := NewEditor(new(MockUserAPI), nil, nil)
	assert.Equal(t, StateEmpty, e.State())
	e.SetName("Alice")
	assert.Equal(t, StateAccumulating, e.State())
	e.Reset()
	assert.Equal(t, StateEmpty, e.State())
	assert.Equal(t, "accumulating", StateAccumulating.String())
}

func Test_ParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"30", 30, true},
		{" 41.5 ", 41.5, true},
		{"-2", -2, true},
		{"1e3", 1000, true},
		{"0", 0, true},
		{"0.5", 0.5, true},
		{"0x1p4", 0, false},
		{"+0x10", 0, false},
		{"1e400", 0, false},
		{"30 kg", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDecimal(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
