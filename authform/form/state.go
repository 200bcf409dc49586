package form

// State of a single mounted form.
type State struct {
	// Values entered by the user, keyed by field name.
	Values map[string]string
	// FieldErrors holds at most one message per field from the last
	// validation.
	FieldErrors map[string]string
	// FormError is the message of the last failed submission.
	FormError string
	// Submitting is set while a submission is in flight.
	Submitting bool
}

func newState() State {
	return State{
		Values:      make(map[string]string),
		FieldErrors: make(map[string]string),
	}
}

// FieldError returns the error message for a field, or an empty string.
func (s State) FieldError(field string) string {
	return s.FieldErrors[field]
}

func (s State) clone() State {
	out := State{
		Values:      make(map[string]string, len(s.Values)),
		FieldErrors: make(map[string]string, len(s.FieldErrors)),
		FormError:   s.FormError,
		Submitting:  s.Submitting,
	}
	for k, v := range s.Values {
		out.Values[k] = v
	}
	for k, v := range s.FieldErrors {
		out.FieldErrors[k] = v
	}
	return out
}
