package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ErrorData holds data for error pages
type ErrorData struct {
	PageData
	Heading string
	Message string
}

// Error renders an error page with a link home
func Error(data ErrorData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<main class="error"><h1>`)
		hw.text(data.Heading)
		hw.raw(`</h1><p class="message">`)
		hw.text(data.Message)
		hw.raw(`</p><p><a href="/">Return to home</a></p></main>`)
		return hw.err
	})
	return Page(data.PageData, body)
}
