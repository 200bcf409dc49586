package main

import (
	"context"
	"fmt"
	"io"

	"github.com/G-Node/authform/authform/form"
	"github.com/G-Node/authform/authform/schema"
	"github.com/G-Node/authform/authform/submit"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewLoginCmd creates the login subcommand.
func NewLoginCmd(flags *globalFlags) *cobra.Command {
	return newFormCmd(flags, "login", "Sign in with email and password", schema.Login(), form.LoginEndpoint)
}

// NewRegisterCmd creates the register subcommand.
func NewRegisterCmd(flags *globalFlags) *cobra.Command {
	return newFormCmd(flags, "register", "Create a new account", schema.Register(), form.RegisterEndpoint)
}

func newFormCmd(flags *globalFlags, use, short string, s *schema.Schema, endpoint form.Endpoint) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			client, err := submit.New(cfg.ServerEndpoint, submit.WithLogger(logger), submit.WithTimeout(cfg.RequestTimeout))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			navigator := form.NavigatorFunc(func(path string) {
				fmt.Fprintf(out, "Continue at %s%s\n", cfg.ServerEndpoint, path)
			})
			ctrl := form.NewController(s, endpoint, client, navigator, form.WithLogger(logger))
			defer ctrl.Close()
			return fillForm(cmd.Context(), ctrl, surveyPrompter{}, out)
		},
	}
}

// fillForm prompts for every field, submits the form and prompts again for
// the fields that failed validation until the submission goes through or the
// user gives up after a failed submission.
func fillForm(ctx context.Context, ctrl *form.Controller, p Prompter, out io.Writer) error {
	s := ctrl.Schema()
	pending := s.FieldNames()
	for {
		for _, name := range pending {
			f, _ := s.Field(name)
			state := ctrl.State()
			value, err := ask(ctx, p, f, state.Values[name], state.FieldError(name))
			if err != nil {
				return err
			}
			ctrl.SetValue(name, value)
		}

		res, err := ctrl.Submit(ctx)
		if err != nil {
			return err
		}
		switch res.Status {
		case form.StatusSucceeded:
			fmt.Fprintln(out, "Done.")
			for _, c := range res.Outcome.Cookies {
				fmt.Fprintf(out, "Received session cookie %q\n", c.Name)
			}
			return nil
		case form.StatusRejected:
			state := ctrl.State()
			pending = pending[:0]
			for _, name := range s.FieldNames() {
				if msg := state.FieldError(name); msg != "" {
					fmt.Fprintf(out, "%s: %s\n", name, msg)
					pending = append(pending, name)
				}
			}
		case form.StatusFailed:
			msg := ctrl.State().FormError
			fmt.Fprintf(out, "Error: %s\n", msg)
			retry, err := p.Confirm(ctx, "Try again?", true)
			if err != nil {
				return err
			}
			if !retry {
				return oops.Code("SUBMISSION_FAILED").With("form", s.Name).Errorf("%s", msg)
			}
			pending = s.FieldNames()
		default:
			return oops.Code("SUBMISSION_IGNORED").With("form", s.Name).Errorf("form is closed or already submitting")
		}
	}
}

// ask prompts for a single field.  Errors from the last submission are shown
// next to the label.  Previous values are offered as default, except for
// passwords.
func ask(ctx context.Context, p Prompter, f schema.Field, current, errMsg string) (string, error) {
	message := f.Label
	if errMsg != "" {
		message = fmt.Sprintf("%s (%s)", f.Label, errMsg)
	}
	if f.Kind == schema.PasswordField {
		return p.Password(ctx, message, "")
	}
	return p.Input(ctx, message, current, f.Placeholder)
}
