package web

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/jaminalder/codex-bridgit/internal/app"
)

const (
	dotRadius      = 8
	selectedRadius = 14
	linkWidth      = 6
)

type templates struct {
	base  *template.Template
	game  *template.Template
	board *template.Template
	index *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"color": playerColor,
		"title": titleCase,
	}
}

func playerColor(player string) string {
	switch player {
	case "blue":
		return "#1d4ed8"
	case "red":
		return "#dc2626"
	default:
		return "#6b7280"
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Bridg-it</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>
<style>
circle.active { cursor: pointer; }
.alert { color: #b91c1c; }
</style>
</head><body>{{template "content" .}}</body></html>`))
	template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
	template.Must(base.New("modes").Parse(modesTemplate))
	index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Bridg-it</h1>
<form action="/game" method="post">
  {{template "modes" .Modes}}
  <button type="submit">New game</button>
</form>`))
	game := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Bridg-it</h1>
<form hx-post="/game/{{.ID}}/reset" hx-target="#board" hx-swap="outerHTML">
  {{template "modes" .Modes}}
  <button type="submit">Restart</button>
</form>
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div id="board-wrap" sse-swap="board">{{template "board" .Board}}</div>
</div>`))
	board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
	return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
	var buf bytes.Buffer
	if name == "" {
		_ = t.Execute(&buf, data)
	} else {
		_ = t.ExecuteTemplate(&buf, name, data)
	}
	return buf.Bytes()
}

const modesTemplate = `<select name="mode">{{range .}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>`

const boardTemplate = `
<div id="board">
  <p class="status">{{.Status}}</p>
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <svg xmlns="http://www.w3.org/2000/svg" width="{{.View.Width}}" height="{{.View.Height}}" viewBox="0 0 {{.View.Width}} {{.View.Height}}">
    {{range .View.Links}}
    <line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="{{color .Player}}" stroke-width="{{$.LinkWidth}}" stroke-linecap="round"/>
    {{end}}
    {{with .View.Selected}}
    <circle class="selected" cx="{{.X}}" cy="{{.Y}}" r="{{$.SelectedRadius}}" fill="none" stroke="{{color .Player}}" stroke-width="3"/>
    {{end}}
    {{range .View.Dots}}
    {{if and $.Clickable .Active}}
    <circle class="active" cx="{{.X}}" cy="{{.Y}}" r="{{$.Radius}}" fill="{{color .Player}}" hx-post="/game/{{$.ID}}/click" hx-vals='{"row": {{.Row}}, "col": {{.Col}}}' hx-target="#board" hx-swap="outerHTML"/>
    {{else}}
    <circle cx="{{.X}}" cy="{{.Y}}" r="{{$.Radius}}" fill="{{color .Player}}"/>
    {{end}}
    {{end}}
  </svg>
</div>
`

type modeOption struct {
	Value    app.Mode
	Label    string
	Selected bool
}

func modeOptions(selected app.Mode) []modeOption {
	out := make([]modeOption, 0, len(app.Modes))
	for _, m := range app.Modes {
		out = append(out, modeOption{Value: m, Label: m.Label(), Selected: m == selected})
	}
	return out
}

type boardData struct {
	ID             string
	View           app.View
	Status         string
	Error          string
	Clickable      bool
	Radius         float64
	SelectedRadius float64
	LinkWidth      float64
}

func newBoardData(gs app.GameState, errMsg string) boardData {
	return boardData{
		ID:             gs.ID,
		View:           gs.View,
		Status:         statusLine(gs),
		Error:          errMsg,
		Clickable:      !gs.Over() && !gs.Thinking,
		Radius:         dotRadius,
		SelectedRadius: selectedRadius,
		LinkWidth:      linkWidth,
	}
}

func statusLine(gs app.GameState) string {
	switch {
	case gs.View.Winner != "":
		return titleCase(gs.View.Winner) + " wins!"
	case gs.Stalemate:
		return "Stalemate: " + gs.View.Turn + " has no legal move"
	case gs.Thinking:
		return "AI is thinking..."
	default:
		return titleCase(gs.View.Turn) + " to move"
	}
}
