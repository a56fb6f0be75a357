package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HomeData holds data for the home page
type HomeData struct {
	PageData
	// LookupID is echoed back when a lookup fails
	LookupID string
}

// Home renders the shootout lookup form
func Home(data HomeData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<main class="home"><h1>Follow a shootout</h1>`)
		hw.raw(`<form method="get" action="/shootouts" class="lookup">`)
		hw.raw(`<label for="id">Shootout ID</label>`)
		hw.raw(`<input type="text" id="id" name="id" required value="`)
		hw.text(data.LookupID)
		hw.raw(`"><button type="submit">View</button></form></main>`)
		return hw.err
	})
	return Page(data.PageData, body)
}
