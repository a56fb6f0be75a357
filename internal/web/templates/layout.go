package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// PageData holds data common to every page
type PageData struct {
	Title string
	// RefreshSeconds reloads the page periodically when positive
	RefreshSeconds int
}

// Page wraps body in the site layout
func Page(data PageData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		if data.RefreshSeconds > 0 {
			hw.raw(`<meta http-equiv="refresh" content="` + strconv.Itoa(data.RefreshSeconds) + `">`)
		}
		hw.raw(`<title>`)
		hw.text(data.Title)
		hw.raw(` - Penalties</title></head><body>`)
		hw.raw(`<header><a href="/" class="brand">Penalties</a></header>`)
		hw.component(ctx, body)
		hw.raw(`</body></html>`)
		return hw.err
	})
}
