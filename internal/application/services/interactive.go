package services

import (
	"context"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	"github.com/reglet-dev/userprofiles/internal/application/ports"
	"github.com/reglet-dev/userprofiles/internal/domain/services"
)

// CollectFields drives an editor from a prompter until the person is done.
// Rejected inputs are passed to report and asked for again, pre-filled.
// If the prompter fails or ctx ends, the draft is discarded.
// It returns the number of fields added.
func CollectFields(ctx context.Context, e *Editor, p ports.FieldPrompter, report func(msg string)) (int, error) {
	added := 0
	for {
		if err := ctx.Err(); err != nil {
			e.Reset()
			return added, err
		}

		step, err := p.PromptField(ctx, e.Scratch(), draftLabels(e))
		if err != nil {
			e.Reset()
			return added, err
		}

		switch step.Action {
		case dto.FieldActionDone:
			return added, nil
		case dto.FieldActionRemove:
			e.RemoveField(step.Position)
		default:
			if err := e.AddField(step.Input); err != nil {
				if report != nil {
					report(e.Err())
				}
				continue
			}
			added++
		}
	}
}

// draftLabels renders the draft's fields for a removal choice.
func draftLabels(e *Editor) []string {
	views := services.RenderFields(e.Fields())
	labels := make([]string, len(views))
	for i, v := range views {
		labels[i] = v.String()
	}
	return labels
}

// CollectIdentity fills the editor's missing name and email from the prompter.
func CollectIdentity(ctx context.Context, e *Editor, p ports.FieldPrompter) error {
	name, email, err := p.PromptIdentity(ctx, e.Name(), e.Email())
	if err != nil {
		return err
	}
	e.SetName(name)
	e.SetEmail(email)
	return nil
}
