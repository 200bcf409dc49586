// Package templates holds the HTML page templates of the web interface.
// Every page defines a "content" template which is rendered inside Layout.
package templates

import (
	"html/template"
)

// Parse returns the Layout template combined with the given page.
func Parse(page string) (*template.Template, error) {
	tmpl, err := template.New("layout").Parse(Layout)
	if err != nil {
		return nil, err
	}
	return tmpl.Parse(page)
}
