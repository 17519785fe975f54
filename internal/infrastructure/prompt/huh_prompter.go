// Package prompt collects draft users interactively with huh forms.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	"github.com/reglet-dev/userprofiles/internal/application/ports"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// Ensure interface compliance
var _ ports.FieldPrompter = (*HuhPrompter)(nil)

// Options configures the prompter.
type Options struct {
	Input  io.Reader
	Output io.Writer
	// Accessible switches huh to plain line-based prompts.
	Accessible bool
}

// HuhPrompter implements ports.FieldPrompter on charmbracelet/huh.
type HuhPrompter struct {
	opts Options
}

// NewHuhPrompter creates a prompter.
func NewHuhPrompter(opts Options) *HuhPrompter {
	return &HuhPrompter{opts: opts}
}

// PromptIdentity asks for the values still missing among name and email.
func (p *HuhPrompter) PromptIdentity(ctx context.Context, name, email string) (string, string, error) {
	var fields []huh.Field
	if strings.TrimSpace(name) == "" {
		fields = append(fields, huh.NewInput().Title("Name").Value(&name).Validate(required("name")))
	}
	if strings.TrimSpace(email) == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&email).Validate(required("email")))
	}
	if len(fields) == 0 {
		return name, email, nil
	}

	if err := p.run(ctx, huh.NewForm(huh.NewGroup(fields...))); err != nil {
		return "", "", err
	}
	return name, email, nil
}

// PromptField asks what to do next with the draft: add a field, pre-filled
// from start, remove one of draft, or finish. Aborting the form finishes.
func (p *HuhPrompter) PromptField(ctx context.Context, start dto.FieldInput, draft []string) (dto.FieldStep, error) {
	a := newFieldAnswers(start, draft)

	err := p.run(ctx, a.form())
	if errors.Is(err, huh.ErrUserAborted) {
		return dto.FieldStep{Action: dto.FieldActionDone, Input: start}, nil
	}
	if err != nil {
		return dto.FieldStep{}, err
	}
	return a.step(), nil
}

func (p *HuhPrompter) run(ctx context.Context, form *huh.Form) error {
	form = form.WithAccessible(p.opts.Accessible)
	if p.opts.Input != nil {
		form = form.WithInput(p.opts.Input)
	}
	if p.opts.Output != nil {
		form = form.WithOutput(p.opts.Output)
	}
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// fieldAnswers is the state bound to one field form.
type fieldAnswers struct {
	name      string
	value     string
	fieldType values.FieldType
	gender    values.Gender
	draft     []string
	action    dto.FieldAction
	position  int
}

func newFieldAnswers(start dto.FieldInput, draft []string) *fieldAnswers {
	a := &fieldAnswers{
		name:      start.Name,
		value:     start.Value,
		fieldType: start.Type,
		gender:    start.Gender,
		draft:     draft,
		action:    dto.FieldActionAdd,
	}
	if a.fieldType.Validate() != nil {
		a.fieldType = values.FieldTypeText
	}
	if a.gender.Validate() != nil {
		a.gender = values.GenderMale
	}
	return a
}

func (a *fieldAnswers) actionOptions() []huh.Option[dto.FieldAction] {
	opts := []huh.Option[dto.FieldAction]{huh.NewOption("Add a profile field", dto.FieldActionAdd)}
	if len(a.draft) > 0 {
		opts = append(opts, huh.NewOption("Remove a profile field", dto.FieldActionRemove))
	}
	return append(opts, huh.NewOption("Done", dto.FieldActionDone))
}

func (a *fieldAnswers) form() *huh.Form {
	typeOptions := make([]huh.Option[values.FieldType], 0, len(values.FieldTypes()))
	for _, t := range values.FieldTypes() {
		typeOptions = append(typeOptions, huh.NewOption(t.Label(), t))
	}
	removeOptions := make([]huh.Option[int], 0, len(a.draft))
	for i, label := range a.draft {
		removeOptions = append(removeOptions, huh.NewOption(label, i))
	}
	adding := func() bool { return a.action == dto.FieldActionAdd }

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[dto.FieldAction]().
				Title("Profile fields").
				Options(a.actionOptions()...).
				Value(&a.action),
		),
		huh.NewGroup(
			huh.NewInput().Title("Field name").Value(&a.name),
			huh.NewSelect[values.FieldType]().
				Title("Field type").
				Options(typeOptions...).
				Value(&a.fieldType),
		).WithHideFunc(func() bool { return !adding() }),
		huh.NewGroup(
			huh.NewInput().Title("Value").Value(&a.value),
		).WithHideFunc(func() bool { return !adding() || a.fieldType == values.FieldTypeGender }),
		huh.NewGroup(
			huh.NewSelect[values.Gender]().
				Title("Gender").
				Options(
					huh.NewOption(values.GenderMale.Label(), values.GenderMale),
					huh.NewOption(values.GenderFemale.Label(), values.GenderFemale),
				).
				Value(&a.gender),
		).WithHideFunc(func() bool { return !adding() || a.fieldType != values.FieldTypeGender }),
	}
	if len(removeOptions) > 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title("Field to remove").
				Options(removeOptions...).
				Value(&a.position),
		).WithHideFunc(func() bool { return a.action != dto.FieldActionRemove }))
	}
	return huh.NewForm(groups...)
}

// input converts the answers; the editor decides whether they are acceptable.
func (a *fieldAnswers) input() dto.FieldInput {
	return dto.FieldInput{
		Name:   a.name,
		Type:   a.fieldType,
		Value:  a.value,
		Gender: a.gender,
	}
}

func (a *fieldAnswers) step() dto.FieldStep {
	step := dto.FieldStep{Action: a.action, Input: a.input()}
	if a.action == dto.FieldActionRemove {
		if len(a.draft) == 0 {
			step.Action = dto.FieldActionDone
		}
		step.Position = a.position
	}
	return step
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
