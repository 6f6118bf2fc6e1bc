package form

import (
	"context"
	"errors"

	"github.com/T14g/react-tdd/internal/validation"
)

type State int

const (
	Pristine State = iota
	Editing
	Validating
	Valid
	Invalid
	SubmitFailed
)

func (s State) String() string {
	switch s {
	case Pristine:
		return "pristine"
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case SubmitFailed:
		return "submit_failed"
	default:
		return "unknown"
	}
}

// SaveFailedMessage is shown when a submission fails for reasons other than validation.
const SaveFailedMessage = "An error occurred during save."

// Submitter sends validated values to the backend.
type Submitter func(ctx context.Context, values map[string]any) error

type fieldErrors interface {
	FieldErrors() validation.ErrorMap
}

// Form tracks the values, errors and submission state of one form.
type Form struct {
	rules     validation.RuleSet
	values    map[string]any
	errors    validation.ErrorMap
	state     State
	submitErr error
}

func New(rules validation.RuleSet, initial map[string]any) *Form {
	values := make(map[string]any, len(initial))
	for field, value := range initial {
		values[field] = value
	}
	return &Form{
		rules:  rules,
		values: values,
		errors: validation.ErrorMap{},
		state:  Pristine,
	}
}

func (f *Form) State() State {
	return f.state
}

func (f *Form) Errors() validation.ErrorMap {
	return validation.MergeErrorMaps(f.errors, nil)
}

func (f *Form) Values() map[string]any {
	values := make(map[string]any, len(f.values))
	for field, value := range f.values {
		values[field] = value
	}
	return values
}

// SubmitErr is the transport failure behind SubmitFailed.
func (f *Form) SubmitErr() error {
	return f.submitErr
}

func (f *Form) Change(field string, value any) {
	f.values[field] = value
	f.submitErr = nil
	f.state = Editing
}

// Blur validates one field and records its result alongside earlier ones.
func (f *Form) Blur(field string) (string, error) {
	f.state = Validating
	errs, err := validation.ValidateAll(f.rules, map[string]any{field: f.values[field]})
	if err != nil {
		return "", err
	}
	f.errors = validation.MergeErrorMaps(f.errors, errs)
	f.settle()
	return errs[field], nil
}

// Submit validates every value and, when they all pass, hands them to submit
// exactly once. The returned error is only set for a rule table that does not
// cover the form's fields; outcomes are reported through the state.
func (f *Form) Submit(ctx context.Context, submit Submitter) (State, error) {
	f.state = Validating
	f.submitErr = nil

	errs, err := validation.ValidateAll(f.rules, f.values)
	if err != nil {
		return f.state, err
	}
	f.errors = errs
	if f.settle() == Invalid {
		return f.state, nil
	}

	if err := submit(ctx, f.Values()); err != nil {
		var fe fieldErrors
		if errors.As(err, &fe) && validation.HasAnyError(fe.FieldErrors()) {
			f.errors = validation.MergeErrorMaps(f.errors, fe.FieldErrors())
			f.state = Invalid
			return f.state, nil
		}
		f.submitErr = err
		f.state = SubmitFailed
		return f.state, nil
	}
	return f.state, nil
}

func (f *Form) settle() State {
	if validation.HasAnyError(f.errors) {
		f.state = Invalid
	} else {
		f.state = Valid
	}
	return f.state
}
