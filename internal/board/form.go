package board

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/evanschultz/plank/internal/app"
	"github.com/evanschultz/plank/internal/domain"
)

// Form field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPeople      = "people"
)

// InvalidInputMessage is shown when a submission is rejected.
const InvalidInputMessage = "Invalid input, please try again!"

// FormID is the element id of the mounted form.
const FormID = "user-input"

// RejectPolicy decides when field failures block a submission.
type RejectPolicy string

const (
	// RejectAny blocks the submission when any field fails.
	RejectAny RejectPolicy = "any"
	// RejectAll blocks only when every field fails, reproducing the legacy board.
	RejectAll RejectPolicy = "all"
)

// ProjectStore is the store surface the views depend on.
type ProjectStore interface {
	Add(context.Context, app.AddProjectInput) (domain.Project, error)
	Move(context.Context, string, domain.Status) error
	Has(context.Context, string) (bool, error)
	Subscribe(app.Listener)
}

// FormConfig holds the validation settings of the input form.
type FormConfig struct {
	Policy               RejectPolicy
	TitleRequired        bool
	DescriptionMinLength *int
	DescriptionMaxLength *int
	PeopleMin            *int
	PeopleMax            *int
}

// DefaultFormConfig returns the stock constraints: a title, a description
// longer than five characters and a team size strictly between 1 and 5.
func DefaultFormConfig() FormConfig {
	return FormConfig{
		Policy:               RejectAny,
		TitleRequired:        true,
		DescriptionMinLength: Bound(5),
		PeopleMin:            Bound(1),
		PeopleMax:            Bound(5),
	}
}

// Fields expands the config into the three form fields.
func (c FormConfig) Fields() []Field {
	return []Field{
		{
			Name:        FieldTitle,
			Label:       "Title",
			Kind:        FieldText,
			Constraints: Constraints{Required: c.TitleRequired},
		},
		{
			Name:  FieldDescription,
			Label: "Description",
			Kind:  FieldText,
			Constraints: Constraints{
				Required:  true,
				MinLength: c.DescriptionMinLength,
				MaxLength: c.DescriptionMaxLength,
			},
		},
		{
			Name:  FieldPeople,
			Label: "People",
			Kind:  FieldNumber,
			Constraints: Constraints{
				Required: true,
				Min:      c.PeopleMin,
				Max:      c.PeopleMax,
			},
		},
	}
}

// InputForm collects new project values and forwards accepted ones to the store.
type InputForm struct {
	mount   mount
	store   ProjectStore
	alerter Alerter
	policy  RejectPolicy
	fields  []Field
	values  map[string]string
}

// NewInputForm mounts the form at the start of the app host.
func NewInputForm(surface Surface, store ProjectStore, alerter Alerter, cfg FormConfig) *InputForm {
	if alerter == nil {
		alerter = AlertFunc(func(string) {})
	}
	policy := cfg.Policy
	if policy != RejectAll {
		policy = RejectAny
	}
	f := &InputForm{
		mount:   newMount(surface, TemplateForm, HostApp, InsertAtStart, FormID),
		store:   store,
		alerter: alerter,
		policy:  policy,
		fields:  cfg.Fields(),
		values:  map[string]string{},
	}
	for _, field := range f.fields {
		f.values[field.Name] = ""
		f.mount.handle.SetText(field.Name, field.Label)
	}
	return f
}

// Fields returns the form fields in display order.
func (f *InputForm) Fields() []Field {
	return append([]Field(nil), f.fields...)
}

// SetValue stores the current text of one field. Unknown names are ignored.
func (f *InputForm) SetValue(name, value string) {
	if _, ok := f.values[name]; !ok {
		return
	}
	f.values[name] = value
}

// Value returns the current text of one field.
func (f *InputForm) Value(name string) string {
	return f.values[name]
}

// Validate checks every field and applies the reject policy.
func (f *InputForm) Validate() error {
	var (
		failures     []FieldError
		failedFields int
	)
	for _, field := range f.fields {
		fieldErrs := field.Check(f.values[field.Name])
		if len(fieldErrs) > 0 {
			failedFields++
			failures = append(failures, fieldErrs...)
		}
	}
	if failedFields == 0 {
		return nil
	}
	if f.policy == RejectAll && failedFields < len(f.fields) {
		return nil
	}
	return &ValidationError{Fields: failures}
}

// Submit validates the fields, then adds the project and clears the inputs.
// A rejected submission raises an alert and leaves every value in place.
func (f *InputForm) Submit(ctx context.Context) error {
	if err := f.Validate(); err != nil {
		f.alerter.Alert(InvalidInputMessage)
		return err
	}
	people := teamSize(f.values[FieldPeople])
	if _, err := f.store.Add(ctx, app.AddProjectInput{
		Title:       f.values[FieldTitle],
		Description: f.values[FieldDescription],
		People:      people,
	}); err != nil {
		return fmt.Errorf("add project: %w", err)
	}
	f.Clear()
	return nil
}

// teamSize parses the people field. RejectAll can let a blank or non-numeric
// value through; every project still gets at least one person.
func teamSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Clear empties every field.
func (f *InputForm) Clear() {
	for name := range f.values {
		f.values[name] = ""
	}
}
