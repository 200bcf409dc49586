package templates

// LogView template for displaying the submission attempts in a list.
const LogView = `
{{ define "content" }}
	<div class="ui container">
		<p id="log-desc">Submission attempts{{ if .Identity }} by {{ .Identity }} (<a href="/log">all</a>){{ end }}</p>
		<table id="attempts-table" class="ui unstackable fixed single line table">
			<tbody>
				{{ range $a := .Attempts }}
					<tr>
						<td class="name four wide"><a href="/log/{{ $a.ID }}">{{ $a.Endpoint }}</a></td>
						<td class="name four wide"><a href="/log?identity={{ $a.Identity }}">{{ $a.Identity }}</a></td>
						<td class="name four wide">{{ $a.SubmitTime.Format "2006-01-02 15:04:05" }}</td>
						<td class="name four wide">{{ if not $a.IsFinished }}In flight{{ else if $a.Success }}OK{{ else }}{{ $a.Message }}{{ end }}</td>
					</tr>
				{{ end }}
			</tbody>
		</table>
	</div>
{{ end }}
`

// AttemptView shows the details of a single submission attempt.
const AttemptView = `
{{ define "content" }}
	<div class="ui container attempt">
		<h3>{{ .Attempt.Endpoint }}</h3>
		<dl>
			<dt>Identity</dt><dd>{{ .Attempt.Identity }}</dd>
			<dt>Credentials</dt><dd>{{ if .Attempt.WithCredentials }}yes{{ else }}no{{ end }}</dd>
			<dt>Submitted</dt><dd>{{ .Attempt.SubmitTime.Format "15:04:05 Mon Jan 2 2006" }}</dd>
			{{ if .Attempt.IsFinished }}
				<dt>Finished</dt><dd>{{ .Attempt.EndTime.Format "15:04:05 Mon Jan 2 2006" }}</dd>
				<dt>Status</dt><dd>{{ .Attempt.StatusCode }}</dd>
				<dt>Result</dt><dd>{{ if .Attempt.Success }}OK{{ else }}{{ .Attempt.Message }}{{ end }}</dd>
			{{ else }}
				<dt>Result</dt><dd>In flight</dd>
			{{ end }}
		</dl>
	</div>
{{ end }}
`
