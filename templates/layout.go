package templates

// Layout is the main site template. It includes the header and footer and
// embeds the content for every other page.
var Layout = `
{{ define "layout" }}
<!DOCTYPE html>
<html>
	<head>
		<meta charset="utf-8">
		<title>{{ if .Title }}{{ .Title }} - {{ end }}authform</title>
	</head>
	<body>
		<div class="full height">
			<div class="ui top secondary menu">
				<a class="item" href="/">Home</a>
				<a class="item" href="/login">Sign in</a>
				<a class="item" href="/register">Sign up</a>
				<a class="item" href="/log">Attempts</a>
			</div>
			{{ template "content" . }}
		</div>
	</body>
</html>
{{ end }}
`
