package web

import (
    "bytes"
    "fmt"
    "html/template"
    "net/http"
    "strings"

    "github.com/google/uuid"

    "github.com/jaminalder/trap-the-mouse/internal/app"
    "github.com/jaminalder/trap-the-mouse/internal/domain"
)

type templates struct {
    base   *template.Template
    game   *template.Template
    screen *template.Template
    index  *template.Template
}

func funcs() template.FuncMap {
    return template.FuncMap{
        "center": func(l domain.Layout, c domain.Cell) domain.Point {
            return l.CellCenter(domain.Coord{Row: c.Row, Col: c.Col})
        },
        "points": func(l domain.Layout, c domain.Cell) string {
            poly := l.CellPolygon(domain.Coord{Row: c.Row, Col: c.Col})
            parts := make([]string, len(poly))
            for i, p := range poly {
                parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
            }
            return strings.Join(parts, " ")
        },
        "cellClass": func(c domain.Cell) string {
            switch {
            case c.Obstacle:
                return "obstacle"
            case c.Mouse:
                return "mouse"
            default:
                return "free"
            }
        },
        "coord":  func(f float64) string { return fmt.Sprintf("%.1f", f) },
        "levels": func() []domain.Level { return []domain.Level{domain.LevelEasy, domain.LevelMedium, domain.LevelHard} },
    }
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Trap the Mouse</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
<style>
body { background: #2baf62; font-family: sans-serif; }
polygon.free { fill: #20834a; stroke: #155731; stroke-width: 4; cursor: pointer; }
polygon.obstacle { fill: #935139; stroke: #873e23; stroke-width: 4; }
polygon.mouse { fill: #20834a; stroke: #155731; stroke-width: 4; }
circle.mouse { fill: #d9d9d9; stroke: #000; }
</style>
</head><body>{{template "content" .}}</body></html>`))
    template.Must(base.New("screen").Funcs(funcs()).Parse(screenTemplate))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Trap the Mouse</h1><form action="/game" method="post"><button>New game</button></form>`))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div hx-sse="swap:screen">{{template "screen" .}}</div>
</div>`))
    // Standalone screen template used for fragment rendering
    screen := template.Must(template.New("screen_only").Funcs(funcs()).Parse(screenTemplate))
    return &templates{base: base, game: game, screen: screen, index: index}
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

// screenData feeds the screen template.
type screenData struct {
    ID    string
    View  domain.View
    Error string
}

func newScreenData(st app.SessionState, errMsg string) screenData {
    return screenData{ID: st.ID, View: st.View, Error: errMsg}
}

const screenTemplate = `
<div id="screen" class="{{.View.Phase}}">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  {{if eq .View.Phase.String "menu"}}
    <h1>Trap the Mouse</h1>
    <form hx-post="/game/{{.ID}}/opponent" hx-target="#screen" hx-swap="outerHTML" method="post">
      <input type="hidden" name="opponent" value="ai">
      <button type="submit">Play vs AI</button>
    </form>
    <form hx-post="/game/{{.ID}}/opponent" hx-target="#screen" hx-swap="outerHTML" method="post">
      <input type="hidden" name="opponent" value="human">
      <button type="submit">Play vs Human</button>
    </form>
  {{else if eq .View.Phase.String "level-select"}}
    <h1>Select AI level</h1>
    {{range $l := levels}}
    <form hx-post="/game/{{$.ID}}/level" hx-target="#screen" hx-swap="outerHTML" method="post">
      <input type="hidden" name="level" value="{{$l}}">
      <button type="submit">{{$l}}</button>
    </form>
    {{end}}
  {{else}}
    {{if .View.Winner.String}}
    <h2 class="result">{{.View.Winner}} won!</h2>
    <div hx-post="/game/{{.ID}}/dismiss" hx-trigger="load delay:2s" hx-target="#screen" hx-swap="outerHTML"></div>
    {{else}}
    <h2 class="turn">{{.View.TurnLabel}}</h2>
    {{end}}
    <svg id="board" width="900" height="630" xmlns="http://www.w3.org/2000/svg">
      {{range $row := .View.Cells}}{{range $c := $row}}
      {{$p := center $.View.Layout $c}}
      <polygon class="{{cellClass $c}}" points="{{points $.View.Layout $c}}"
        hx-post="/game/{{$.ID}}/click" hx-vals='{"x": {{coord $p.X}}, "y": {{coord $p.Y}}}'
        hx-target="#screen" hx-swap="outerHTML"/>
      {{if $c.Mouse}}<circle class="mouse" cx="{{coord $p.X}}" cy="{{coord $p.Y}}" r="12"/>{{end}}
      {{end}}{{end}}
    </svg>
    {{if eq .View.Phase.String "playing"}}
    <form hx-post="/game/{{.ID}}/reset" hx-target="#screen" hx-swap="outerHTML" method="post"><button>Reset</button></form>
    <form hx-post="/game/{{.ID}}/back" hx-target="#screen" hx-swap="outerHTML" method="post"><button>Back</button></form>
    {{end}}
  {{end}}
</div>
`

// Helper to set cookie
func ensurePlayerCookie(w http.ResponseWriter, r *http.Request) string {
    if c, err := r.Cookie("player_id"); err == nil && c.Value != "" {
        return c.Value
    }
    // Generate UUIDv4 for player ID
    v := uuid.NewString()
    http.SetCookie(w, &http.Cookie{Name: "player_id", Value: v, Path: "/"})
    return v
}
