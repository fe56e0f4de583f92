package display

import (
	"fmt"
	"html/template"
	"io"
	"sync/atomic"
	"time"
)

// Board holds the most recently published page. Readers never see a
// partially rendered cycle.
type Board struct {
	latest atomic.Pointer[Page]
}

// NewBoard returns an empty board.
func NewBoard() *Board { return &Board{} }

// Publish stamps the page and makes it the latest.
func (b *Board) Publish(p *Page) {
	if b == nil || p == nil {
		return
	}
	if p.RenderedAt.IsZero() {
		p.RenderedAt = time.Now().UTC()
	}
	b.latest.Store(p)
}

// Latest returns the last published page, or nil before the first cycle completes.
func (b *Board) Latest() *Page {
	if b == nil {
		return nil
	}
	return b.latest.Load()
}

type pageView struct {
	*Page
	RefreshSeconds int
}

// WriteHTML renders p as a standalone document which reloads itself every refresh.
func WriteHTML(w io.Writer, p *Page, refresh time.Duration) error {
	if p == nil {
		return fmt.Errorf("no page to render")
	}
	secs := int(refresh / time.Second)
	if secs <= 0 {
		secs = 60
	}
	if err := pageTemplate.Execute(w, pageView{Page: p, RefreshSeconds: secs}); err != nil {
		return fmt.Errorf("render page %s: %w", p.CycleID, err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{.RefreshSeconds}}">
<title>{{.Icon}} {{.PageTitle}}</title>
<style>
body{font-family:sans-serif;max-width:960px;margin:0 auto;padding:1rem;background:#0e1117;color:#fafafa}
img{max-width:100%}
figure{margin:0 0 1rem}
.warning{background:#3d3a12;border-left:4px solid #f0c000;padding:.75rem}
.compare{display:flex;gap:.5rem}
.compare figure{flex:1}
footer{color:#888;font-size:.8rem}
</style>
</head>
<body>
{{range .Blocks}}{{if eq .Kind "header"}}<h1>{{.Text}}</h1>
{{else if eq .Kind "subheader"}}<h2>{{.Text}}</h2>
{{else if eq .Kind "heading"}}<h3>{{.Text}}</h3>
{{else if eq .Kind "field"}}<p class="field">{{.Icon}} <strong>{{.Label}}:</strong> {{.Text}}</p>
{{else if eq .Kind "text"}}<p>{{.Text}}</p>
{{else if eq .Kind "image"}}<figure><img src="{{.Src}}" alt="{{.Caption}}"><figcaption>{{.Caption}}</figcaption></figure>
{{else if eq .Kind "link"}}<p><a href="{{.Href}}">{{.Text}}</a></p>
{{else if eq .Kind "warning"}}<div class="warning">{{.Text}}</div>
{{else if eq .Kind "divider"}}<hr>
{{else if eq .Kind "compare"}}<div class="compare">{{with .Compare}}<figure><img src="{{.Left}}" alt="{{.LeftLabel}}"><figcaption>{{.LeftLabel}}</figcaption></figure><figure><img src="{{.Right}}" alt="{{.RightLabel}}"><figcaption>{{.RightLabel}}</figcaption></figure>{{end}}</div>
{{end}}{{end}}<footer>cycle {{.CycleID}} rendered {{.RenderedAt.Format "2006-01-02 15:04:05 UTC"}}</footer>
</body>
</html>
`))
