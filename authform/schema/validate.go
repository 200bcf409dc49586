package schema

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Result of validating form values against a Schema.  Exactly one of Payload
// or Errors is set.
type Result struct {
	// Payload holds the values of the declared fields when validation passed.
	Payload map[string]string
	// Errors maps a field name to its first failing message.
	Errors map[string]string
}

// Valid reports whether validation passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks values against the schema.  Each field is checked in
// declaration order and its first failing constraint is reported.  Cross-field
// rules only run when every field passed, and only the first failing rule is
// reported.
func Validate(s *Schema, values map[string]string) Result {
	errs := make(map[string]string)
	for _, f := range s.Fields {
		if msg, ok := checkField(f, values[f.Name]); !ok {
			errs[f.Name] = msg
		}
	}
	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	for _, rule := range s.CrossFieldRules {
		ruleValues := make([]string, len(rule.Fields))
		for idx, name := range rule.Fields {
			ruleValues[idx] = values[name]
		}
		if !rule.Predicate(ruleValues) {
			return Result{Errors: map[string]string{rule.ErrorField: rule.Message}}
		}
	}

	payload := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		payload[f.Name] = values[f.Name]
	}
	return Result{Payload: payload}
}

func checkField(f Field, value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		if f.Required {
			return orDefault(f.RequiredMessage, fmt.Sprintf("%s is required", f.label())), false
		}
		// optional and empty: nothing else to check
		return "", true
	}
	if f.MinLength > 0 && utf8.RuneCountInString(value) < f.MinLength {
		return orDefault(f.MinLengthMessage, fmt.Sprintf("%s must be at least %d characters", f.label(), f.MinLength)), false
	}
	switch f.Format {
	case EmailFormat:
		if !IsEmail(value) {
			return orDefault(f.FormatMessage, "Not a valid email address"), false
		}
	}
	return "", true
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

func orDefault(msg, def string) string {
	if msg != "" {
		return msg
	}
	return def
}

// emailValidator is safe for concurrent use and caches its rules.
var emailValidator = validator.New()

// IsEmail reports whether addr is an email address whose domain has at least
// one "." and no empty labels.  The address syntax itself is checked by the
// validator's "email" rule.
func IsEmail(addr string) bool {
	if strings.IndexFunc(addr, unicode.IsSpace) >= 0 || strings.Count(addr, "@") != 1 {
		return false
	}
	if err := emailValidator.Var(addr, "required,email"); err != nil {
		return false
	}
	domain := addr[strings.Index(addr, "@")+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return false
		}
	}
	return true
}
