// Package services contains application use cases.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	apperrors "github.com/reglet-dev/userprofiles/internal/application/errors"
	"github.com/reglet-dev/userprofiles/internal/application/ports"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/services"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// Messages surfaced by the editor.
const (
	MsgEnterFieldName    = "enter a field name"
	MsgEnterValue        = "enter a value"
	MsgEnterValidNumber  = "enter a valid number for a number field"
	MsgInvalidField      = "the constructed field is invalid"
	MsgEnterNameAndEmail = "enter name and email"
	MsgCreateUserFailed  = "failed to create user"
)

// EditorState is the lifecycle stage of the draft.
type EditorState int

const (
	// StateEmpty means nothing has been entered.
	StateEmpty EditorState = iota
	// StateAccumulating means the draft holds a name, an email or fields.
	StateAccumulating
	// StateSubmitting means a create request is in flight.
	StateSubmitting
)

func (s EditorState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateAccumulating:
		return "accumulating"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("EditorState(%d)", int(s))
	}
}

// Editor holds the draft user being assembled before submission.
type Editor struct {
	api       ports.UserAPI
	refresher ports.Refresher
	logger    *slog.Logger

	mu         sync.Mutex
	name       string
	email      string
	fields     []entities.ProfileField
	scratch    dto.FieldInput
	errMsg     string
	submitting bool
}

// NewEditor creates an editor that submits through api and, after each
// successful create, asks refresher to re-fetch the list. refresher may be nil.
func NewEditor(api ports.UserAPI, refresher ports.Refresher, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		api:       api,
		refresher: refresher,
		logger:    logger,
		scratch:   dto.DefaultFieldInput(),
	}
}

// SetName sets the draft name.
func (e *Editor) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.name = name
}

// SetEmail sets the draft email.
func (e *Editor) SetEmail(email string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.email = email
}

// Name returns the draft name.
func (e *Editor) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.name
}

// Email returns the draft email.
func (e *Editor) Email() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.email
}

// Scratch returns the pending field input.
func (e *Editor) Scratch() dto.FieldInput {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scratch
}

// Fields returns a copy of the draft's fields in order.
func (e *Editor) Fields() []entities.ProfileField {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]entities.ProfileField, len(e.fields))
	copy(out, e.fields)
	return out
}

// Err returns the last surfaced message, or "" when the last operation succeeded.
func (e *Editor) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errMsg
}

// Submitting reports whether a create request is in flight.
func (e *Editor) Submitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

// State returns the current lifecycle stage.
func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.submitting:
		return StateSubmitting
	case e.name == "" && e.email == "" && len(e.fields) == 0:
		return StateEmpty
	default:
		return StateAccumulating
	}
}

// AddField builds a field from in and appends it to the draft.
// On failure the draft is unchanged, in is kept as the scratch input and an
// *apperrors.InputError is returned. On success the scratch is cleared,
// keeping only the selected type.
func (e *Editor) AddField(in dto.FieldInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scratch = in
	field, err := buildField(in)
	if err != nil {
		e.errMsg = err.Error()
		return err
	}

	e.fields = append(e.fields, field)
	e.scratch = dto.FieldInput{Type: in.Type, Gender: values.GenderMale}
	e.errMsg = ""
	e.logger.Debug("draft field added", "name", field.Name, "type", field.FieldType, "count", len(e.fields))
	return nil
}

// buildField constructs the variant selected by in.Type and re-validates it.
func buildField(in dto.FieldInput) (entities.ProfileField, error) {
	if in.Name == "" {
		return entities.ProfileField{}, apperrors.NewInputError(MsgEnterFieldName)
	}
	if in.Type != values.FieldTypeGender && in.Value == "" {
		return entities.ProfileField{}, apperrors.NewInputError(MsgEnterValue)
	}

	var field entities.ProfileField
	switch in.Type {
	case values.FieldTypeText:
		field = entities.NewTextField(in.Name, in.Value)
	case values.FieldTypeNumber:
		n, ok := parseDecimal(in.Value)
		if !ok {
			return entities.ProfileField{}, apperrors.NewInputError(MsgEnterValidNumber)
		}
		field = entities.NewNumberField(in.Name, n)
	case values.FieldTypeGender:
		field = entities.NewGenderField(in.Name, in.Gender)
	default:
		return entities.ProfileField{}, apperrors.NewInputError(MsgInvalidField)
	}

	if !services.IsValid(&field) {
		return entities.ProfileField{}, apperrors.NewInputError(MsgInvalidField)
	}
	return field, nil
}

// parseDecimal parses a finite decimal number. Hexadecimal floats, which
// strconv would otherwise accept, are rejected.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// RemoveField removes the field at position. Out-of-range positions are ignored.
func (e *Editor) RemoveField(position int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if position < 0 || position >= len(e.fields) {
		return
	}
	e.fields = append(e.fields[:position:position], e.fields[position+1:]...)
}

// Reset discards the draft.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
	e.scratch = dto.DefaultFieldInput()
}

// resetLocked clears the draft. The scratch input is left alone.
func (e *Editor) resetLocked() {
	e.name = ""
	e.email = ""
	e.fields = nil
	e.errMsg = ""
}

// Submit sends the draft to the users API.
//
// Without a name or email it fails with an *apperrors.InputError and makes no
// call. While another submit is in flight it returns apperrors.ErrBusy. On
// success the draft is reset and the list refreshed once; a refresh failure is
// surfaced by the refresher, not here. On failure the draft is kept for retry.
func (e *Editor) Submit(ctx context.Context) (*entities.User, error) {
	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return nil, apperrors.ErrBusy
	}
	if e.name == "" || e.email == "" {
		e.errMsg = MsgEnterNameAndEmail
		e.mu.Unlock()
		return nil, apperrors.NewInputError(MsgEnterNameAndEmail)
	}

	req := dto.CreateUserRequest{Name: e.name, Email: e.email}
	if len(e.fields) > 0 {
		req.ProfileFields = make([]entities.ProfileField, len(e.fields))
		copy(req.ProfileFields, e.fields)
	}
	e.submitting = true
	e.errMsg = ""
	e.mu.Unlock()

	e.logger.Debug("creating user", "name", req.Name, "fields", len(req.ProfileFields))
	user, err := e.api.CreateUser(ctx, req)

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		msg := fmt.Sprintf("%s: %s", MsgCreateUserFailed, apperrors.UserMessage(err))
		e.errMsg = msg
		e.mu.Unlock()
		e.logger.Error("user creation failed", "error", err)
		return nil, apperrors.NewOperationError(msg, err)
	}
	e.resetLocked()
	e.mu.Unlock()

	if user != nil {
		e.logger.Info("user created", "id", user.ID)
	}
	if e.refresher != nil {
		if rerr := e.refresher.Refresh(ctx); rerr != nil {
			e.logger.Warn("refresh after create failed", "error", rerr)
		}
	}
	return user, nil
}

// IsInputError reports whether err is a local validation failure.
func IsInputError(err error) bool {
	var inErr *apperrors.InputError
	return errors.As(err, &inErr)
}
