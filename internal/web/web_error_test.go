package web_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreboardNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/shootouts/MISSING")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "main.error h1", "Shootout not found")
	assertContainsText(t, doc, "main.error .message", "MISSING")
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/teams/AC-Milan")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
