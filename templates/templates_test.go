package templates

import (
	"bytes"
	"testing"

	"golang.org/x/net/html"
)

func TestPagesParseAndRender(t *testing.T) {
	pages := map[string]struct {
		page string
		data map[string]interface{}
	}{
		"form": {AuthForm, map[string]interface{}{
			"Title":     "Sign in",
			"Name":      "login",
			"Action":    "/login",
			"FormError": "Invalid credentials",
			"Fields": []map[string]interface{}{
				{"Name": "email", "Label": "Email", "Kind": "email", "Value": "bob@x.com", "Required": true},
				{"Name": "password", "Label": "Password", "Kind": "password", "Error": "Required"},
			},
		}},
		"home": {Home, map[string]interface{}{"Title": "Home", "SignedIn": true}},
		"log":  {LogView, map[string]interface{}{"Title": "Attempts"}},
		"fail": {Fail, map[string]interface{}{"Title": "Not Found", "StatusCode": 404, "StatusText": "Not Found", "Message": "No such attempt"}},
	}

	for name, p := range pages {
		tmpl, err := Parse(p.page)
		if err != nil {
			t.Fatalf("Failed to parse %s template: %s", name, err.Error())
		}
		out := new(bytes.Buffer)
		if err := tmpl.Execute(out, p.data); err != nil {
			t.Fatalf("Failed to render %s page: %v", name, err.Error())
		}
		if _, err := html.Parse(out); err != nil {
			t.Fatalf("Bad HTML when rendering %s page: %v", name, err.Error())
		}
	}
}
