// Package view renders the server-side HTML screens.
package view

import "html/template"

// Page is the data every template receives. Form holds the screen's submitted
// values so they survive a failed submit; Data holds whatever the screen loaded.
type Page struct {
	Title     string
	Principal string
	CSRFField template.HTML
	Message   string
	Success   bool
	Errors    map[string]string
	Form      any
	Data      any
}

// Fail records a failure message.
func (p *Page) Fail(msg string) {
	p.Message = msg
	p.Success = false
}

// Succeed records a confirmation message.
func (p *Page) Succeed(msg string) {
	p.Message = msg
	p.Success = true
}

func (p *Page) FieldError(field string) string {
	return p.Errors[field]
}
