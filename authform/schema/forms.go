package schema

// Field names shared by the login and registration forms.
const (
	FieldEmail                = "email"
	FieldName                 = "name"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "passwordConfirmation"
)

const passwordMinLength = 6

// Login returns the sign-in form schema.  Both fields only need to be present.
func Login() *Schema {
	return MustNew("login", []Field{
		{
			Name:            FieldEmail,
			Label:           "Email",
			Placeholder:     "bob.smith@email.com",
			Kind:            EmailField,
			Required:        true,
			RequiredMessage: "Required",
		},
		{
			Name:            FieldPassword,
			Label:           "Password",
			Placeholder:     "********",
			Kind:            PasswordField,
			Required:        true,
			RequiredMessage: "Required",
		},
	})
}

// Register returns the sign-up form schema.
func Register() *Schema {
	return MustNew("register", []Field{
		{
			Name:            FieldEmail,
			Label:           "Email",
			Placeholder:     "bob.smith@email.com",
			Kind:            EmailField,
			Required:        true,
			Format:          EmailFormat,
			RequiredMessage: "Email is required",
			FormatMessage:   "Not a valid email address",
		},
		{
			Name:            FieldName,
			Label:           "Name",
			Placeholder:     "Bob Smith",
			Kind:            TextField,
			Required:        true,
			RequiredMessage: "Name is required",
		},
		{
			Name:             FieldPassword,
			Label:            "Password",
			Placeholder:      "********",
			Kind:             PasswordField,
			Required:         true,
			MinLength:        passwordMinLength,
			RequiredMessage:  "Password is required",
			MinLengthMessage: "Password must be at least 6 characters",
		},
		{
			Name:             FieldPasswordConfirmation,
			Label:            "Confirm Password",
			Placeholder:      "********",
			Kind:             PasswordField,
			Required:         true,
			MinLength:        passwordMinLength,
			RequiredMessage:  "Password confirmation is required",
			MinLengthMessage: "Password must be at least 6 characters",
		},
	}, CrossFieldRule{
		Fields:     []string{FieldPassword, FieldPasswordConfirmation},
		Predicate:  Equal,
		ErrorField: FieldPasswordConfirmation,
		Message:    "Passwords must match",
	})
}
