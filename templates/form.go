package templates

// AuthForm renders a sign-in or sign-up form with its field errors and the
// form level error of the last submission.
const AuthForm = `
{{ define "content" }}
			<div class="user {{ .Name }}">
				<form class="ui form" action="{{ .Action }}" method="post" novalidate>
					<h3 class="ui top attached header">{{ .Title }}</h3>
					<p class="form-error" id="form-error">{{ .FormError }}</p>
					<div class="ui attached segment">
						{{ range $field := .Fields }}
							<div class="form-element {{ if $field.Required }}required{{ end }} {{ if $field.Error }}error{{ end }}">
								<label for="{{ $field.Name }}">{{ $field.Label }}</label>
								<input id="{{ $field.Name }}" name="{{ $field.Name }}" type="{{ $field.Kind }}" placeholder="{{ $field.Placeholder }}" value="{{ $field.Value }}"{{ if eq $field.Kind "password" }} autocomplete="off"{{ end }}>
								<p class="field-error" id="{{ $field.Name }}-error">{{ $field.Error }}</p>
							</div>
						{{ end }}
						<button class="ui green button" type="submit">Submit</button>
					</div>
				</form>
			</div>
{{ end }}
`

// Home is shown after a successful submission.
const Home = `
{{ define "content" }}
			<div class="home">
				{{ if .SignedIn }}
					<p>You are signed in.</p>
				{{ else }}
					<p><a href="/login">Sign in</a> or <a href="/register">create an account</a>.</p>
				{{ end }}
			</div>
{{ end }}
`
