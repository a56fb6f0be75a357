package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so components can emit markup
// without checking every call
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}
