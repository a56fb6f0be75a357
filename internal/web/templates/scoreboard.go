package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// KickRow is one line of the kick table
type KickRow struct {
	Round   int
	Team    string
	Player  string
	Success bool
}

// ScoreboardData holds data for the scoreboard page
type ScoreboardData struct {
	PageData
	ID       string
	TeamA    string
	TeamB    string
	Score    string
	Round    int
	DueTeam  string
	Finished bool
	Winner   string
	Kicks    []KickRow
}

// Scoreboard renders a shootout's score, status and kicks
func Scoreboard(data ScoreboardData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<main class="scoreboard" data-shootout-id="`)
		hw.text(data.ID)
		hw.raw(`"><h1><span class="team team-a">`)
		hw.text(data.TeamA)
		hw.raw(`</span> v <span class="team team-b">`)
		hw.text(data.TeamB)
		hw.raw(`</span></h1>`)

		hw.raw(`<p id="score" class="score">`)
		hw.text(data.Score)
		hw.raw(`</p>`)

		if data.Finished {
			hw.raw(`<p id="status" class="status finished">Winner: <strong class="winner">`)
			hw.text(data.Winner)
			hw.raw(`</strong></p>`)
		} else {
			hw.raw(`<p id="status" class="status in-progress">Round `)
			hw.raw(strconv.Itoa(data.Round))
			hw.raw(`, <span class="due-team">`)
			hw.text(data.DueTeam)
			hw.raw(`</span> to kick</p>`)
		}

		hw.component(ctx, kickTable(data.Kicks))
		hw.raw(`</main>`)
		return hw.err
	})
	return Page(data.PageData, body)
}

func kickTable(rows []KickRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		if len(rows) == 0 {
			hw.raw(`<p class="no-kicks">No kicks taken yet</p>`)
			return hw.err
		}

		hw.raw(`<table class="kicks"><thead><tr><th>Round</th><th>Team</th><th>Player</th><th>Result</th></tr></thead><tbody>`)
		for _, row := range rows {
			result, class := "Miss", "kick miss"
			if row.Success {
				result, class = "Goal", "kick goal"
			}
			hw.raw(`<tr class="` + class + `"><td class="round">`)
			hw.raw(strconv.Itoa(row.Round))
			hw.raw(`</td><td class="team">`)
			hw.text(row.Team)
			hw.raw(`</td><td class="player">`)
			hw.text(row.Player)
			hw.raw(`</td><td class="result">` + result + `</td></tr>`)
		}
		hw.raw(`</tbody></table>`)
		return hw.err
	})
}
