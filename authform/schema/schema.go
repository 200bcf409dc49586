package schema

import (
	"github.com/samber/oops"
)

const (
	EmailField    Kind = "email"
	TextField     Kind = "text"
	PasswordField Kind = "password"
)

// Kind defines the type of a form input field.  It doubles as the HTML input
// type when the form is rendered.
type Kind string

const (
	// NoFormat skips the format check.
	NoFormat Format = ""
	// EmailFormat requires a syntactic email address: local-part "@" domain,
	// where the domain contains at least one ".".
	EmailFormat Format = "email"
)

// Format names a syntactic check applied to a field value.
type Format string

// Field describes a single form field and the constraints on its value.
type Field struct {
	// Name of the field.  Used as key for values, errors and the submitted
	// payload.  Must be unique within a Schema.
	Name string
	// The Label of the field as it appears on the rendered form.  Also used
	// in default error messages.
	Label string
	// Placeholder text shown in an empty input.
	Placeholder string
	Kind        Kind
	// Whether the field must be non-empty (after trimming whitespace).
	Required bool
	// Minimum length of the value in characters.  Zero disables the check.
	MinLength int
	Format    Format

	// Messages overriding the defaults for each constraint kind.  Empty
	// strings fall back to the default message.
	RequiredMessage  string
	MinLengthMessage string
	FormatMessage    string
}

// CrossFieldRule is a constraint spanning more than one field.  Rules are
// only evaluated once every field passed its own constraints.
type CrossFieldRule struct {
	// Fields the rule reads, in order.  At least two.
	Fields []string
	// Predicate receives the values of Fields in the same order and reports
	// whether the rule holds.
	Predicate func(values []string) bool
	// ErrorField receives the error message when the rule fails.
	ErrorField string
	Message    string
}

// Schema is the declarative description of a form's validation rules.
type Schema struct {
	// Name identifies the form (e.g., "login").
	Name            string
	Fields          []Field
	CrossFieldRules []CrossFieldRule
}

// New returns a Schema after checking that field names are unique and that
// every cross-field rule references declared fields only.
func New(name string, fields []Field, rules ...CrossFieldRule) (*Schema, error) {
	errb := oops.Code("SCHEMA_INVALID").With("schema", name)
	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, errb.Errorf("field with empty name")
		}
		if declared[f.Name] {
			return nil, errb.With("field", f.Name).Errorf("duplicate field %q", f.Name)
		}
		declared[f.Name] = true
	}
	for idx, r := range rules {
		if len(r.Fields) < 2 {
			return nil, errb.With("rule", idx).Errorf("cross-field rule %d references fewer than 2 fields", idx)
		}
		if r.Predicate == nil {
			return nil, errb.With("rule", idx).Errorf("cross-field rule %d has no predicate", idx)
		}
		for _, name := range append([]string{r.ErrorField}, r.Fields...) {
			if !declared[name] {
				return nil, errb.With("rule", idx).Errorf("cross-field rule %d references unknown field %q", idx, name)
			}
		}
	}

	s := &Schema{
		Name:            name,
		Fields:          make([]Field, len(fields)),
		CrossFieldRules: make([]CrossFieldRule, len(rules)),
	}
	copy(s.Fields, fields)
	copy(s.CrossFieldRules, rules)
	return s, nil
}

// MustNew is like New but panics on an invalid schema.  Use for schemas
// defined at startup.
func MustNew(name string, fields []Field, rules ...CrossFieldRule) *Schema {
	s, err := New(name, fields, rules...)
	if err != nil {
		panic(err)
	}
	return s
}

// Field returns the declared field with the given name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the names of all fields in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for idx := range s.Fields {
		names[idx] = s.Fields[idx].Name
	}
	return names
}

// Equal returns a cross-field predicate that holds when all values are
// identical.
func Equal(values []string) bool {
	for idx := 1; idx < len(values); idx++ {
		if values[idx] != values[0] {
			return false
		}
	}
	return true
}
