package templates

var Fail = `
{{ define "content" }}

<br><br>
<h1>{{ .StatusCode }}: {{ .StatusText }}</h1>
<div class="error">
{{ .Message }}
</div>

{{ end }}
`
