package render

import (
	"deckforge/internal/models"
	"deckforge/internal/theme"
)

// Kind identifies the type of a recorded Element.
type Kind int

const (
	KindBackground Kind = iota
	KindText
	KindBullets
	KindImage
)

// String returns a short name for the kind, used in logs and test output.
func (k Kind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindText:
		return "text"
	case KindBullets:
		return "bullets"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Element is one recorded drawing instruction. Only the fields relevant to
// its Kind are set.
type Element struct {
	Kind   Kind
	Frame  Rect
	Color  string   // background
	Text   string   // text
	Items  []string // bullets
	URL    string   // image
	Style  TextStyle
	VAlign VAlign
}

// Page is the ordered list of elements that make up one slide.
type Page struct {
	Elements []Element
}

// Draw replays the page on another canvas in recording order.
func (p Page) Draw(c Canvas) {
	for _, e := range p.Elements {
		switch e.Kind {
		case KindBackground:
			c.SetBackground(e.Color)
		case KindText:
			c.AddText(e.Text, e.Frame, e.Style)
		case KindBullets:
			c.AddBullets(e.Items, e.Frame, e.Style, e.VAlign)
		case KindImage:
			c.AddImage(e.URL, e.Frame)
		}
	}
}

// Texts returns the text of every text element, in order.
func (p Page) Texts() []string {
	var out []string
	for _, e := range p.Elements {
		if e.Kind == KindText {
			out = append(out, e.Text)
		}
	}
	return out
}

// Find returns the first element of the given kind.
func (p Page) Find(kind Kind) (Element, bool) {
	for _, e := range p.Elements {
		if e.Kind == kind {
			return e, true
		}
	}
	return Element{}, false
}

// Document is a whole presentation ready for encoding.
type Document struct {
	Title string
	Theme theme.Theme
	Pages []Page
}

// Recorder is a Canvas that keeps every instruction it receives.
type Recorder struct {
	page Page
}

// Record renders content with th into a new Page.
func Record(content models.Slide, th theme.Theme, isTitle bool) Page {
	var r Recorder
	Slide(&r, content, th, isTitle)
	return r.Page()
}

// Page returns the elements recorded so far.
func (r *Recorder) Page() Page {
	return r.page
}

func (r *Recorder) SetBackground(color string) {
	r.page.Elements = append(r.page.Elements, Element{
		Kind:  KindBackground,
		Frame: Rect{W: SlideWidth, H: SlideHeight},
		Color: color,
	})
}

func (r *Recorder) AddText(text string, frame Rect, style TextStyle) {
	r.page.Elements = append(r.page.Elements, Element{Kind: KindText, Frame: frame, Text: text, Style: style})
}

func (r *Recorder) AddBullets(items []string, frame Rect, style TextStyle, valign VAlign) {
	r.page.Elements = append(r.page.Elements, Element{Kind: KindBullets, Frame: frame, Items: items, Style: style, VAlign: valign})
}

func (r *Recorder) AddImage(url string, frame Rect) {
	r.page.Elements = append(r.page.Elements, Element{Kind: KindImage, Frame: frame, URL: url})
}
