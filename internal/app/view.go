package app

import "github.com/jaminalder/codex-bridgit/internal/domain"

// DotView is a dot as the board client draws it.
type DotView struct {
	Player string  `json:"player"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Active bool    `json:"active"`
}

// LinkView is a drawn link with its endpoint coordinates.
type LinkView struct {
	Player  string  `json:"player"`
	FromRow int     `json:"from_row"`
	FromCol int     `json:"from_col"`
	ToRow   int     `json:"to_row"`
	ToCol   int     `json:"to_col"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
}

// View is an immutable rendering of a game.
type View struct {
	Turn     string     `json:"turn"`
	Winner   string     `json:"winner,omitempty"`
	Selected *DotView   `json:"selected,omitempty"`
	Dots     []DotView  `json:"dots"`
	Links    []LinkView `json:"links"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
}

func newView(g *domain.Game, width, height float64) View {
	v := View{
		Turn:   g.CurrentPlayer().String(),
		Width:  width,
		Height: height,
	}
	if g.Over() {
		v.Winner = g.Winner().String()
	}
	for _, p := range []domain.Player{domain.Red, domain.Blue} {
		for _, d := range g.Dots(p) {
			dv := dotView(d)
			dv.Active = p == g.CurrentPlayer() && !g.Over()
			v.Dots = append(v.Dots, dv)
		}
		for _, l := range g.Links(p) {
			v.Links = append(v.Links, LinkView{
				Player:  p.String(),
				FromRow: l.From.Row,
				FromCol: l.From.Col,
				ToRow:   l.To.Row,
				ToCol:   l.To.Col,
				X1:      l.From.X,
				Y1:      l.From.Y,
				X2:      l.To.X,
				Y2:      l.To.Y,
			})
		}
	}
	if sel := g.Selected(); sel != nil {
		dv := dotView(sel)
		v.Selected = &dv
	}
	return v
}

func dotView(d *domain.Dot) DotView {
	return DotView{Player: d.Player.String(), Row: d.Row, Col: d.Col, X: d.X, Y: d.Y}
}
