package display

import "time"

// Surface is the set of widgets a refresh cycle draws with.
type Surface interface {
	Title(title, icon string)
	Header(text string)
	Subheader(text string)
	Heading(text string)
	Field(icon, label, value string)
	Text(text string)
	Image(src, caption string)
	Link(text, href string)
	Warning(text string)
	Divider()
	Compare(c Comparison)
}

// Comparison feeds the side-by-side image widget.
type Comparison struct {
	Left       string `json:"left"`
	Right      string `json:"right"`
	LeftLabel  string `json:"left_label"`
	RightLabel string `json:"right_label"`
}

// BlockKind identifies a rendered widget.
type BlockKind string

const (
	KindHeader    BlockKind = "header"
	KindSubheader BlockKind = "subheader"
	KindHeading   BlockKind = "heading"
	KindField     BlockKind = "field"
	KindText      BlockKind = "text"
	KindImage     BlockKind = "image"
	KindLink      BlockKind = "link"
	KindWarning   BlockKind = "warning"
	KindDivider   BlockKind = "divider"
	KindCompare   BlockKind = "compare"
)

// Block is one widget on a page.
type Block struct {
	Kind    BlockKind   `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Icon    string      `json:"icon,omitempty"`
	Label   string      `json:"label,omitempty"`
	Src     string      `json:"src,omitempty"`
	Caption string      `json:"caption,omitempty"`
	Href    string      `json:"href,omitempty"`
	Compare *Comparison `json:"compare,omitempty"`
}

// Page records the widgets of one refresh cycle. It is not safe for
// concurrent writes; publish it to a Board once complete.
type Page struct {
	CycleID    string    `json:"cycle_id"`
	PageTitle  string    `json:"title"`
	Icon       string    `json:"icon"`
	RenderedAt time.Time `json:"rendered_at"`
	Blocks     []Block   `json:"blocks"`
}

// NewPage starts an empty page for the given cycle.
func NewPage(cycleID string) *Page {
	return &Page{CycleID: cycleID}
}

func (p *Page) add(b Block) { p.Blocks = append(p.Blocks, b) }

func (p *Page) Title(title, icon string) {
	p.PageTitle = title
	p.Icon = icon
}

func (p *Page) Header(text string)    { p.add(Block{Kind: KindHeader, Text: text}) }
func (p *Page) Subheader(text string) { p.add(Block{Kind: KindSubheader, Text: text}) }
func (p *Page) Heading(text string)   { p.add(Block{Kind: KindHeading, Text: text}) }
func (p *Page) Text(text string)      { p.add(Block{Kind: KindText, Text: text}) }
func (p *Page) Warning(text string)   { p.add(Block{Kind: KindWarning, Text: text}) }
func (p *Page) Divider()              { p.add(Block{Kind: KindDivider}) }

func (p *Page) Field(icon, label, value string) {
	p.add(Block{Kind: KindField, Icon: icon, Label: label, Text: value})
}

func (p *Page) Image(src, caption string) {
	p.add(Block{Kind: KindImage, Src: src, Caption: caption})
}

func (p *Page) Link(text, href string) {
	p.add(Block{Kind: KindLink, Text: text, Href: href})
}

func (p *Page) Compare(c Comparison) {
	p.add(Block{Kind: KindCompare, Compare: &c})
}

// Count returns how many blocks of kind the page holds.
func (p *Page) Count(kind BlockKind) int {
	n := 0
	for _, b := range p.Blocks {
		if b.Kind == kind {
			n++
		}
	}
	return n
}
