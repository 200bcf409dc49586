package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() map[string]string {
	return map[string]string{
		FieldEmail:                "bob.smith@email.com",
		FieldName:                 "Bob Smith",
		FieldPassword:             "secret1",
		FieldPasswordConfirmation: "secret1",
	}
}

func TestLoginValid(t *testing.T) {
	values := map[string]string{
		FieldEmail:    "bob@x.com",
		FieldPassword: "hunter2",
		"remember":    "on", // undeclared fields are not part of the payload
	}
	res := Validate(Login(), values)
	require.True(t, res.Valid(), "unexpected errors: %v", res.Errors)

	want := map[string]string{FieldEmail: "bob@x.com", FieldPassword: "hunter2"}
	if diff := cmp.Diff(want, res.Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginMissingFields(t *testing.T) {
	res := Validate(Login(), map[string]string{FieldEmail: "   "})
	require.False(t, res.Valid())
	assert.Nil(t, res.Payload)

	want := map[string]string{FieldEmail: "Required", FieldPassword: "Required"}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestLoginDoesNotCheckEmailFormat(t *testing.T) {
	res := Validate(Login(), map[string]string{FieldEmail: "bob", FieldPassword: "x"})
	assert.True(t, res.Valid())
}

func TestRegisterValid(t *testing.T) {
	res := Validate(Register(), validRegistration())
	require.True(t, res.Valid(), "unexpected errors: %v", res.Errors)
	if diff := cmp.Diff(validRegistration(), res.Payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterPasswordsMustMatch(t *testing.T) {
	values := validRegistration()
	values[FieldPasswordConfirmation] = "secret2"

	res := Validate(Register(), values)
	require.False(t, res.Valid())
	assert.Equal(t, map[string]string{FieldPasswordConfirmation: "Passwords must match"}, res.Errors)
}

func TestRegisterPasswordTooShort(t *testing.T) {
	for _, confirmation := range []string{"abc", "abcdef", ""} {
		values := validRegistration()
		values[FieldPassword] = "abc"
		values[FieldPasswordConfirmation] = confirmation

		res := Validate(Register(), values)
		require.False(t, res.Valid())
		assert.Equal(t, "Password must be at least 6 characters", res.Errors[FieldPassword], "confirmation %q", confirmation)
	}
}

func TestRegisterCrossFieldSkippedOnFieldErrors(t *testing.T) {
	values := validRegistration()
	values[FieldName] = ""
	values[FieldPasswordConfirmation] = "different"

	res := Validate(Register(), values)
	assert.Equal(t, map[string]string{FieldName: "Name is required"}, res.Errors)
}

func TestRegisterAggregatesFieldErrors(t *testing.T) {
	res := Validate(Register(), map[string]string{FieldEmail: "bob@", FieldPassword: "12345"})
	want := map[string]string{
		FieldEmail:                "Not a valid email address",
		FieldName:                 "Name is required",
		FieldPassword:             "Password must be at least 6 characters",
		FieldPasswordConfirmation: "Password confirmation is required",
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateIdempotent(t *testing.T) {
	s := Register()
	values := validRegistration()
	values[FieldPasswordConfirmation] = "secret2"

	first := Validate(s, values)
	second := Validate(s, values)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validation is not idempotent (-first +second):\n%s", diff)
	}
}

func TestFirstCrossFieldRuleWins(t *testing.T) {
	fields := []Field{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	s := MustNew("multi", fields,
		CrossFieldRule{Fields: []string{"a", "b"}, Predicate: Equal, ErrorField: "b", Message: "a and b differ"},
		CrossFieldRule{Fields: []string{"a", "c"}, Predicate: Equal, ErrorField: "c", Message: "a and c differ"},
	)
	res := Validate(s, map[string]string{"a": "1", "b": "2", "c": "3"})
	assert.Equal(t, map[string]string{"b": "a and b differ"}, res.Errors)
}

func TestDefaultMessages(t *testing.T) {
	s := MustNew("defaults", []Field{
		{Name: "user", Label: "User", Required: true},
		{Name: "code", Label: "Code", MinLength: 4},
		{Name: "mail", Format: EmailFormat},
	})
	res := Validate(s, map[string]string{"code": "ab", "mail": "nope"})
	want := map[string]string{
		"user": "User is required",
		"code": "Code must be at least 4 characters",
		"mail": "Not a valid email address",
	}
	if diff := cmp.Diff(want, res.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionalEmptyFieldSkipsChecks(t *testing.T) {
	s := MustNew("optional", []Field{{Name: "nick", MinLength: 3, Format: EmailFormat}})
	assert.True(t, Validate(s, map[string]string{}).Valid())
}

func TestMinLengthCountsCharacters(t *testing.T) {
	s := MustNew("runes", []Field{{Name: "pw", MinLength: 6}})
	assert.True(t, Validate(s, map[string]string{"pw": "αβγδεζ"}).Valid())
	assert.False(t, Validate(s, map[string]string{"pw": "αβγ"}).Valid())
}

func TestIsEmail(t *testing.T) {
	good := []string{"bob@x.com", "bob.smith@email.com", "a+b@sub.example.org", "o'neil@x.co.uk"}
	bad := []string{
		"", "bob", "bob@", "@x.com", "bob@x", "bob@x.", "bob@.com", "bob@@x.com", "b@b@x.com",
		"bob @x.com", " bob@x.com", "bob@x..com", "bob@-x.com", `"b@b"@x.com`,
	}
	for _, addr := range good {
		assert.True(t, IsEmail(addr), addr)
	}
	for _, addr := range bad {
		assert.False(t, IsEmail(addr), addr)
	}
}

func TestNewRejectsInvalidSchemas(t *testing.T) {
	_, err := New("dupe", []Field{{Name: "a"}, {Name: "a"}})
	assert.Error(t, err)

	_, err = New("empty", []Field{{Name: ""}})
	assert.Error(t, err)

	_, err = New("unknown", []Field{{Name: "a"}, {Name: "b"}},
		CrossFieldRule{Fields: []string{"a", "z"}, Predicate: Equal, ErrorField: "b"})
	assert.Error(t, err)

	_, err = New("badtarget", []Field{{Name: "a"}, {Name: "b"}},
		CrossFieldRule{Fields: []string{"a", "b"}, Predicate: Equal, ErrorField: "z"})
	assert.Error(t, err)

	_, err = New("single", []Field{{Name: "a"}, {Name: "b"}},
		CrossFieldRule{Fields: []string{"a"}, Predicate: Equal, ErrorField: "a"})
	assert.Error(t, err)

	_, err = New("nopredicate", []Field{{Name: "a"}, {Name: "b"}},
		CrossFieldRule{Fields: []string{"a", "b"}, ErrorField: "b"})
	assert.Error(t, err)
}

func TestSchemaLookups(t *testing.T) {
	s := Register()
	assert.Equal(t, []string{FieldEmail, FieldName, FieldPassword, FieldPasswordConfirmation}, s.FieldNames())

	f, ok := s.Field(FieldName)
	require.True(t, ok)
	assert.Equal(t, TextField, f.Kind)

	_, ok = s.Field("missing")
	assert.False(t, ok)
}
